package models

import "time"

type Review struct {
	ID           int64      `db:"id" json:"id"`
	CompanyID    int64      `db:"company_id" json:"company_id"`
	ReviewerName string     `db:"reviewer_name" json:"reviewer_name"`
	Rating       int        `db:"rating" json:"rating"`
	Text         string     `db:"text" json:"text"`
	UsedInPost   bool       `db:"used_in_post" json:"used_in_post"`
	LastPostedAt *time.Time `db:"last_posted_at" json:"last_posted_at"`
	GraphicURL   string     `db:"graphic_url" json:"graphic_url"` // generated once, cached
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}
