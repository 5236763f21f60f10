package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/h2non/filetype"
	gonanoid "github.com/matoous/go-nanoid/v2"
	config "github.com/tradeposthq/tradepost/configs"
	"github.com/tradeposthq/tradepost/internal/models"
	"github.com/tradeposthq/tradepost/internal/repository"
	"github.com/tradeposthq/tradepost/internal/transfer"
)

// GraphicService turns a review into a branded graphic asset. Generation
// happens at most once per review; the resulting URL is cached on the row.
type GraphicService interface {
	EnsureGraphic(ctx context.Context, company *models.Company, review *models.Review) (string, error)
}

type graphicService struct {
	cfg config.Config
	rv  repository.ReviewRepository
	r2  *R2Service
}

func NewGraphicService(cfg config.Config, rv repository.ReviewRepository, r2 *R2Service) GraphicService {
	return &graphicService{cfg: cfg, rv: rv, r2: r2}
}

func (s *graphicService) EnsureGraphic(ctx context.Context, company *models.Company, review *models.Review) (string, error) {
	if review.GraphicURL != "" {
		return review.GraphicURL, nil
	}

	imageBytes, err := s.render(ctx, company, review)
	if err != nil {
		return "", err
	}

	kind, err := filetype.Match(imageBytes)
	if err != nil || (kind.Extension != "png" && kind.Extension != "jpg") {
		return "", fmt.Errorf("%w: generator returned non-image payload", ErrGenerationFailed)
	}

	key, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	url, err := s.r2.UploadGraphic(ctx, fmt.Sprintf("review-graphics/%s.%s", key, kind.Extension), imageBytes, kind.MIME.Value)
	if err != nil {
		return "", fmt.Errorf("error uploading graphic: %w", err)
	}

	if err := s.rv.SetGraphicURL(ctx, review.ID, url); err != nil {
		return "", err
	}
	review.GraphicURL = url

	return url, nil
}

func (s *graphicService) render(ctx context.Context, company *models.Company, review *models.Review) ([]byte, error) {
	payload := transfer.GraphicRequest{
		CompanyID:    company.ID,
		CompanyName:  company.Name,
		Trade:        company.Trade,
		ReviewerName: review.ReviewerName,
		Rating:       review.Rating,
		Text:         review.Text,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.cfg.GraphicServiceURL+"/graphics", bytes.NewBuffer(body))
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
		return nil, fmt.Errorf("%w: graphic service returned status %d", ErrGenerationFailed, resp.StatusCode)
	}

	imageBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("%w: reading graphic response: %v", ErrGenerationFailed, err)
	}

	return imageBytes, nil
}
