package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/tradeposthq/tradepost/internal/models"
)

// PlatformConnectionRepository is a read-only view: connection rows are
// written by the OAuth flow outside this engine.
type PlatformConnectionRepository interface {
	ListConnected(ctx context.Context, companyID int64) ([]*models.PlatformConnection, error)
}

type platformConnectionRepository struct {
	db *sql.DB
}

func NewPlatformConnectionRepository(db *sql.DB) PlatformConnectionRepository {
	return &platformConnectionRepository{db: db}
}

func (r *platformConnectionRepository) ListConnected(ctx context.Context, companyID int64) ([]*models.PlatformConnection, error) {
	query := `
		SELECT id, company_id, platform, account_id, account_name, access_token, refresh_token, token_expires_at, status, created_at, updated_at
		FROM platform_connections
		WHERE company_id = $1 AND status = $2
	`

	rows, err := r.db.QueryContext(ctx, query, companyID, models.ConnectionStatusConnected)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var connections []*models.PlatformConnection
	for rows.Next() {
		var c models.PlatformConnection
		err := rows.Scan(&c.ID, &c.CompanyID, &c.Platform, &c.AccountID, &c.AccountName, &c.AccessToken, &c.RefreshToken, &c.TokenExpiresAt, &c.Status, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		connections = append(connections, &c)
	}
	return connections, nil
}
