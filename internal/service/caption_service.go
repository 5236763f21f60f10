package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	config "github.com/tradeposthq/tradepost/configs"
	"github.com/tradeposthq/tradepost/internal/models"
	"github.com/tradeposthq/tradepost/internal/transfer"
)

// CaptionService asks the caption generator collaborator for a caption and
// hashtag set. Per-platform hashtag handling happens at publish time, not
// here.
type CaptionService interface {
	Generate(ctx context.Context, company *models.Company, ref models.ContentRef) (*transfer.CaptionResult, error)
}

type captionService struct {
	cfg config.Config
}

func NewCaptionService(cfg config.Config) CaptionService {
	return &captionService{cfg: cfg}
}

func (s *captionService) Generate(ctx context.Context, company *models.Company, ref models.ContentRef) (*transfer.CaptionResult, error) {
	payload := transfer.CaptionRequest{
		CompanyID:   company.ID,
		CompanyName: company.Name,
		Trade:       company.Trade,
		ContentKind: string(ref.Kind),
		ContentID:   ref.ID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.cfg.CaptionServiceURL+"/captions", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: caption service returned status %d", ErrGenerationFailed, resp.StatusCode)
	}

	var result transfer.CaptionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("%w: decoding caption response: %v", ErrGenerationFailed, err)
	}

	if result.Caption == "" {
		return nil, fmt.Errorf("%w: empty caption returned", ErrGenerationFailed)
	}

	return &result, nil
}
