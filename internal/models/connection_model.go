package models

import "time"

const (
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
	PlatformGBP       = "gbp"
)

const (
	ConnectionStatusConnected    = "connected"
	ConnectionStatusDisconnected = "disconnected"
)

// PlatformConnection is read-only to this engine; rows are created and
// refreshed by the OAuth flow that lives outside it.
type PlatformConnection struct {
	ID             int64     `db:"id" json:"id"`
	CompanyID      int64     `db:"company_id" json:"company_id"`
	Platform       string    `db:"platform" json:"platform"`
	AccountID      string    `db:"account_id" json:"account_id"`
	AccountName    string    `db:"account_name" json:"account_name"`
	AccessToken    string    `db:"access_token" json:"-"`
	RefreshToken   string    `db:"refresh_token" json:"-"`
	TokenExpiresAt time.Time `db:"token_expires_at" json:"token_expires_at"`
	Status         string    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
