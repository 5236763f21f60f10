package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	config "github.com/tradeposthq/tradepost/configs"
	"github.com/tradeposthq/tradepost/internal/models"
	"github.com/tradeposthq/tradepost/internal/transfer"
	"github.com/tradeposthq/tradepost/pkg/utils"
)

const instagramGraphBase = "https://graph.instagram.com/v21.0"

// instagramAdapter implements the feed platform's two-phase publish: create
// a media container, wait for it to finish processing, then publish it.
type instagramAdapter struct {
	cfg   config.Config
	sleep func(time.Duration)
}

func NewInstagramAdapter(cfg config.Config) PlatformAdapter {
	return &instagramAdapter{cfg: cfg, sleep: time.Sleep}
}

func (a *instagramAdapter) Platform() string {
	return models.PlatformInstagram
}

func (a *instagramAdapter) Publish(ctx context.Context, conn *models.PlatformConnection, assetURL, caption string) (string, error) {
	accessToken, err := utils.Decrypt(conn.AccessToken, []byte(a.cfg.SecretKey))
	if err != nil {
		return "", err
	}

	containerID, err := a.createContainer(ctx, conn.AccountID, assetURL, caption, accessToken)
	if err != nil {
		return "", fmt.Errorf("failed to create media container: %w", err)
	}

	if err := a.waitForContainer(ctx, containerID, accessToken); err != nil {
		return "", err
	}

	mediaID, err := a.publishContainer(ctx, conn.AccountID, containerID, accessToken)
	if err != nil {
		return "", fmt.Errorf("failed to publish container: %w", err)
	}

	return mediaID, nil
}

func (a *instagramAdapter) createContainer(ctx context.Context, accountID, assetURL, caption, accessToken string) (string, error) {
	url := fmt.Sprintf("%s/%s/media", instagramGraphBase, accountID)

	payload := map[string]interface{}{
		"image_url":    assetURL,
		"caption":      caption,
		"access_token": accessToken,
	}

	var result transfer.InstagramContainerResponse
	if err := a.postJSON(ctx, url, payload, &result); err != nil {
		return "", err
	}
	if result.ID == "" {
		return "", fmt.Errorf("no container ID returned from Instagram")
	}
	return result.ID, nil
}

// waitForContainer polls the container status a bounded number of times with
// a fixed delay. The wait is local to this adapter call; sibling platform
// publishes are not blocked by it.
func (a *instagramAdapter) waitForContainer(ctx context.Context, containerID, accessToken string) error {
	attempts := a.cfg.Rotation.ContainerPollAttempts
	interval := time.Duration(a.cfg.Rotation.ContainerPollSeconds) * time.Second

	for i := 0; i < attempts; i++ {
		if i > 0 {
			a.sleep(interval)
		}

		status, err := a.containerStatus(ctx, containerID, accessToken)
		if err != nil {
			return fmt.Errorf("failed to check container status: %w", err)
		}

		switch status {
		case "FINISHED":
			return nil
		case "ERROR", "EXPIRED":
			return fmt.Errorf("container processing failed with status %s", status)
		}
	}

	return fmt.Errorf("container processing timed out after %d checks", attempts)
}

func (a *instagramAdapter) containerStatus(ctx context.Context, containerID, accessToken string) (string, error) {
	url := fmt.Sprintf("%s/%s?fields=status_code&access_token=%s", instagramGraphBase, containerID, accessToken)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code from Instagram: %d", resp.StatusCode)
	}

	var result transfer.InstagramContainerStatus
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}
	return result.StatusCode, nil
}

func (a *instagramAdapter) publishContainer(ctx context.Context, accountID, containerID, accessToken string) (string, error) {
	url := fmt.Sprintf("%s/%s/media_publish", instagramGraphBase, accountID)

	payload := map[string]interface{}{
		"creation_id":  containerID,
		"access_token": accessToken,
	}

	var result transfer.InstagramPublishResponse
	if err := a.postJSON(ctx, url, payload, &result); err != nil {
		return "", err
	}
	if result.ID == "" {
		return "", fmt.Errorf("no media ID returned from Instagram")
	}
	return result.ID, nil
}

func (a *instagramAdapter) postJSON(ctx context.Context, url string, payload map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code from Instagram: %d (%s)", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("error parsing response: %w", err)
	}
	return nil
}
