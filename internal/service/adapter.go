package service

import (
	"context"
	"strings"

	"github.com/tradeposthq/tradepost/internal/models"
)

// PlatformAdapter publishes one asset+caption to one external platform and
// returns the platform's post id.
type PlatformAdapter interface {
	Platform() string
	Publish(ctx context.Context, conn *models.PlatformConnection, assetURL, caption string) (string, error)
}

// FormatCaption appends hashtags as "#tag" tokens after a blank line. The
// local-listing surface gets the bare caption; hashtags mean nothing there.
func FormatCaption(caption string, hashtags []string, platform string) string {
	if platform == models.PlatformGBP || len(hashtags) == 0 {
		return caption
	}

	tags := make([]string, 0, len(hashtags))
	for _, t := range hashtags {
		t = strings.TrimSpace(strings.TrimPrefix(t, "#"))
		if t == "" {
			continue
		}
		tags = append(tags, "#"+t)
	}
	if len(tags) == 0 {
		return caption
	}

	return caption + "\n\n" + strings.Join(tags, " ")
}
