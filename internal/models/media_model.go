package models

import "time"

type MediaItem struct {
	ID           int64      `db:"id" json:"id"`
	CompanyID    int64      `db:"company_id" json:"company_id"`
	FileURL      string     `db:"file_url" json:"file_url"`
	ThumbnailURL string     `db:"thumbnail_url" json:"thumbnail_url"`
	Available    bool       `db:"available" json:"available"`
	TimesPosted  int        `db:"times_posted" json:"times_posted"`
	LastPostedAt *time.Time `db:"last_posted_at" json:"last_posted_at"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}
