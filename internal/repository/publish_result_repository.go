package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/tradeposthq/tradepost/internal/models"
)

type PublishResultRepository interface {
	Create(ctx context.Context, result *models.PublishResult) (int64, error)
	ListByPostID(ctx context.Context, postID int64) ([]*models.PublishResult, error)
}

type publishResultRepository struct {
	db *sql.DB
}

func NewPublishResultRepository(db *sql.DB) PublishResultRepository {
	return &publishResultRepository{db: db}
}

func (r *publishResultRepository) Create(ctx context.Context, result *models.PublishResult) (int64, error) {
	query := `
		INSERT INTO publish_results (post_id, company_id, platform, platform_post_id, error_message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, result.PostID, result.CompanyID, result.Platform, result.PlatformPostID, result.ErrorMessage).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *publishResultRepository) ListByPostID(ctx context.Context, postID int64) ([]*models.PublishResult, error) {
	query := `SELECT id, post_id, company_id, platform, platform_post_id, error_message, created_at FROM publish_results WHERE post_id = $1`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var results []*models.PublishResult
	for rows.Next() {
		var pr models.PublishResult
		err := rows.Scan(&pr.ID, &pr.PostID, &pr.CompanyID, &pr.Platform, &pr.PlatformPostID, &pr.ErrorMessage, &pr.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		results = append(results, &pr)
	}
	return results, nil
}
