package models

import (
	"strconv"
	"strings"
	"time"
)

type Company struct {
	ID                   int64     `db:"id" json:"id"`
	Name                 string    `db:"name" json:"name"`
	Trade                string    `db:"trade" json:"trade"`
	Timezone             string    `db:"timezone" json:"timezone"`
	PostsPerWeek         int       `db:"posts_per_week" json:"posts_per_week"`
	PostingHours         string    `db:"posting_hours" json:"posting_hours"` // csv of hours, e.g. "8,12,18"
	ReviewPostingEnabled bool      `db:"review_posting_enabled" json:"review_posting_enabled"`
	ReviewMinRating      int       `db:"review_min_rating" json:"review_min_rating"`
	Active               bool      `db:"active" json:"active"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// PostingHoursList parses the stored csv into hours. Malformed entries are
// skipped; an empty result means the company never configured a cadence.
func (c *Company) PostingHoursList() []int {
	parts := strings.Split(c.PostingHours, ",")
	hours := make([]int, 0, len(parts))
	for _, p := range parts {
		h, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || h < 0 || h > 23 {
			continue
		}
		hours = append(hours, h)
	}
	return hours
}

// Location resolves the company timezone, falling back to UTC.
func (c *Company) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
