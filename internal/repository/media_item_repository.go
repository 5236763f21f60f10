package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/tradeposthq/tradepost/internal/models"
)

type MediaItemRepository interface {
	ListAvailable(ctx context.Context, companyID int64) ([]*models.MediaItem, error)
	StampPosted(ctx context.Context, id int64, postedAt time.Time) error
	TouchPublished(ctx context.Context, id int64, publishedAt time.Time) error
}

type mediaItemRepository struct {
	db *sql.DB
}

func NewMediaItemRepository(db *sql.DB) MediaItemRepository {
	return &mediaItemRepository{db: db}
}

const mediaItemColumns = `id, company_id, file_url, thumbnail_url, available, times_posted, last_posted_at, created_at`

// ListAvailable returns the non-paused pool ordered for fair rotation:
// least-posted first, then least-recently-posted with never-posted rows
// leading.
func (r *mediaItemRepository) ListAvailable(ctx context.Context, companyID int64) ([]*models.MediaItem, error) {
	query := `
		SELECT ` + mediaItemColumns + `
		FROM media_items
		WHERE company_id = $1 AND available = true
		ORDER BY times_posted ASC, last_posted_at ASC NULLS FIRST
	`

	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var items []*models.MediaItem
	for rows.Next() {
		var m models.MediaItem
		err := rows.Scan(&m.ID, &m.CompanyID, &m.FileURL, &m.ThumbnailURL, &m.Available, &m.TimesPosted, &m.LastPostedAt, &m.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		items = append(items, &m)
	}
	return items, nil
}

func (r *mediaItemRepository) StampPosted(ctx context.Context, id int64, postedAt time.Time) error {
	query := `
		UPDATE media_items
		SET times_posted = times_posted + 1,
			last_posted_at = $1
		WHERE id = $2
	`
	_, err := r.db.ExecContext(ctx, query, postedAt, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *mediaItemRepository) TouchPublished(ctx context.Context, id int64, publishedAt time.Time) error {
	query := `UPDATE media_items SET last_posted_at = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, publishedAt, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
