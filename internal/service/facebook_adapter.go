package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	config "github.com/tradeposthq/tradepost/configs"
	"github.com/tradeposthq/tradepost/internal/models"
	"github.com/tradeposthq/tradepost/internal/transfer"
	"github.com/tradeposthq/tradepost/pkg/utils"
)

const facebookGraphBase = "https://graph.facebook.com/v21.0"

// facebookAdapter publishes a photo to a business page.
type facebookAdapter struct {
	cfg config.Config
}

func NewFacebookAdapter(cfg config.Config) PlatformAdapter {
	return &facebookAdapter{cfg: cfg}
}

func (a *facebookAdapter) Platform() string {
	return models.PlatformFacebook
}

func (a *facebookAdapter) Publish(ctx context.Context, conn *models.PlatformConnection, assetURL, caption string) (string, error) {
	accessToken, err := utils.Decrypt(conn.AccessToken, []byte(a.cfg.SecretKey))
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/%s/photos", facebookGraphBase, conn.AccountID)

	data := url.Values{}
	data.Set("url", assetURL)
	data.Set("message", caption)
	data.Set("access_token", accessToken)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var fbErr transfer.FacebookErrorResponse
		if err := json.Unmarshal(respBody, &fbErr); err == nil && fbErr.Error.Message != "" {
			return "", fmt.Errorf("facebook error: %s", fbErr.Error.Message)
		}
		return "", fmt.Errorf("unexpected status code from Facebook: %d", resp.StatusCode)
	}

	var result transfer.FacebookPhotoResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}

	if result.PostID != "" {
		return result.PostID, nil
	}
	if result.ID == "" {
		return "", fmt.Errorf("no post ID returned from Facebook")
	}
	return result.ID, nil
}
