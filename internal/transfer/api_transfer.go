package transfer

import "github.com/golang-jwt/jwt/v5"

type CustomClaims struct {
	OperatorID string `json:"operator_id"`
	jwt.RegisteredClaims
}

type SettingsUpdate struct {
	PostsPerWeek         int   `json:"posts_per_week"`
	PostingHours         []int `json:"posting_hours"`
	ReviewPostingEnabled bool  `json:"review_posting_enabled"`
	ReviewMinRating      int   `json:"review_min_rating"`
}

type HookEvent struct {
	CompanyID int64 `json:"company_id"`
	ReviewID  int64 `json:"review_id,omitempty"`
}
