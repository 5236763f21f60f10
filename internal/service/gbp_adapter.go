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
	"github.com/tradeposthq/tradepost/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
)

const gbpBase = "https://mybusiness.googleapis.com/v4"

// gbpAdapter publishes a local post to a Google Business Profile location.
// conn.AccountID carries the full resource name, "accounts/{a}/locations/{l}".
// The v4 localPosts surface has no generated client, so calls go over an
// oauth2 HTTP client that refreshes the stored token as needed.
type gbpAdapter struct {
	cfg config.Config
}

func NewGBPAdapter(cfg config.Config) PlatformAdapter {
	return &gbpAdapter{cfg: cfg}
}

func (a *gbpAdapter) Platform() string {
	return models.PlatformGBP
}

func (a *gbpAdapter) Publish(ctx context.Context, conn *models.PlatformConnection, assetURL, caption string) (string, error) {
	client, err := a.httpClient(ctx, conn)
	if err != nil {
		return "", err
	}

	payload := transfer.GBPLocalPostRequest{
		LanguageCode: "en",
		Summary:      caption,
		TopicType:    "STANDARD",
		Media: []transfer.GBPMediaItem{
			{MediaFormat: "PHOTO", SourceURL: assetURL},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error marshalling payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/localPosts", gbpBase, conn.AccountID)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		if gErr, ok := err.(*googleapi.Error); ok {
			return "", fmt.Errorf("business profile error: %s", gErr.Message)
		}
		return "", err
	}

	var result transfer.GBPLocalPostResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}
	if result.Name == "" {
		return "", fmt.Errorf("no post name returned from Business Profile")
	}

	return result.Name, nil
}

func (a *gbpAdapter) httpClient(ctx context.Context, conn *models.PlatformConnection) (*http.Client, error) {
	accessToken, err := utils.Decrypt(conn.AccessToken, []byte(a.cfg.SecretKey))
	if err != nil {
		return nil, err
	}
	refreshToken, err := utils.Decrypt(conn.RefreshToken, []byte(a.cfg.SecretKey))
	if err != nil {
		return nil, err
	}

	oauth2Config := &oauth2.Config{
		ClientID:     a.cfg.GoogleClientID,
		ClientSecret: a.cfg.GoogleClientSecret,
		Scopes:       []string{"https://www.googleapis.com/auth/business.manage"},
		Endpoint:     google.Endpoint,
	}

	token := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Expiry:       conn.TokenExpiresAt,
	}

	return oauth2Config.Client(ctx, token), nil
}
