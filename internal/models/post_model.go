package models

import (
	"strings"
	"time"
)

type ContentKind string

const (
	ContentKindImage   ContentKind = "image"
	ContentKindReview  ContentKind = "review"
	ContentKindProject ContentKind = "project" // legacy, read-only
)

// ContentRef is the tagged reference a post carries to exactly one content
// row. Persistence stores nullable columns; branching dispatches on Kind.
type ContentRef struct {
	Kind ContentKind `json:"kind"`
	ID   int64       `json:"id"`
}

type ScheduledPost struct {
	ID           int64       `db:"id" json:"id"`
	CompanyID    int64       `db:"company_id" json:"company_id"`
	ContentKind  ContentKind `db:"content_kind" json:"content_kind"`
	MediaItemID  *int64      `db:"media_item_id" json:"media_item_id"`
	ReviewID     *int64      `db:"review_id" json:"review_id"`
	ProjectID    *int64      `db:"project_id" json:"project_id"`
	Caption      string      `db:"caption" json:"caption"`
	Hashtags     string      `db:"hashtags" json:"hashtags"` // space-separated, no leading '#'
	AssetURL     string      `db:"asset_url" json:"asset_url"`
	ScheduledFor time.Time   `db:"scheduled_for" json:"scheduled_for"`
	Status       string      `db:"status" json:"status"`
	PostedAt     *time.Time  `db:"posted_at" json:"posted_at"`
	ErrorMessage string      `db:"error_message" json:"error_message"`
	RetryCount   int         `db:"retry_count" json:"retry_count"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

const (
	PostStatusPending = "pending"
	PostStatusPosted  = "posted"
	PostStatusFailed  = "failed"
	PostStatusSkipped = "skipped"
)

func (p *ScheduledPost) Content() ContentRef {
	switch p.ContentKind {
	case ContentKindReview:
		if p.ReviewID != nil {
			return ContentRef{Kind: ContentKindReview, ID: *p.ReviewID}
		}
	case ContentKindProject:
		if p.ProjectID != nil {
			return ContentRef{Kind: ContentKindProject, ID: *p.ProjectID}
		}
	default:
		if p.MediaItemID != nil {
			return ContentRef{Kind: ContentKindImage, ID: *p.MediaItemID}
		}
	}
	return ContentRef{Kind: p.ContentKind}
}

func (p *ScheduledPost) HashtagList() []string {
	return strings.Fields(p.Hashtags)
}

// PublishResult is one platform's outcome for one post.
type PublishResult struct {
	ID             int64     `db:"id" json:"id"`
	PostID         int64     `db:"post_id" json:"post_id"`
	CompanyID      int64     `db:"company_id" json:"company_id"`
	Platform       string    `db:"platform" json:"platform"`
	PlatformPostID string    `db:"platform_post_id" json:"platform_post_id"`
	ErrorMessage   string    `db:"error_message" json:"error_message"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
