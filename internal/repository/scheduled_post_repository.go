package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/tradeposthq/tradepost/internal/models"
)

type ScheduledPostRepository interface {
	GetByID(ctx context.Context, id int64) (*models.ScheduledPost, error)
	Create(ctx context.Context, tx *sql.Tx, post *models.ScheduledPost) (int64, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*models.ScheduledPost, error)
	ListFailed(ctx context.Context) ([]*models.ScheduledPost, error)
	ListRecentKinds(ctx context.Context, companyID int64, limit int) ([]models.ContentKind, error)
	CountPendingFuture(ctx context.Context, companyID int64, now time.Time) (int, error)
	ListPendingTimes(ctx context.Context, companyID int64) ([]time.Time, error)
	ListDue(ctx context.Context, now time.Time, limit, retryCeiling int) ([]*models.ScheduledPost, error)
	MarkPosted(ctx context.Context, id int64, postedAt time.Time, errorMessage string) error
	MarkFailed(ctx context.Context, id int64, errorMessage string) error
	MarkFailedTerminal(ctx context.Context, id int64, errorMessage string) error
	MarkSkipped(ctx context.Context, id int64) error
	MarkRetry(ctx context.Context, id int64) error
}

type scheduledPostRepository struct {
	db *sql.DB
}

func NewScheduledPostRepository(db *sql.DB) ScheduledPostRepository {
	return &scheduledPostRepository{db: db}
}

const postColumns = `id, company_id, content_kind, media_item_id, review_id, project_id, caption, hashtags, asset_url, scheduled_for, status, posted_at, error_message, retry_count, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*models.ScheduledPost, error) {
	var p models.ScheduledPost
	err := row.Scan(&p.ID, &p.CompanyID, &p.ContentKind, &p.MediaItemID, &p.ReviewID, &p.ProjectID, &p.Caption, &p.Hashtags, &p.AssetURL, &p.ScheduledFor, &p.Status, &p.PostedAt, &p.ErrorMessage, &p.RetryCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *scheduledPostRepository) Create(ctx context.Context, tx *sql.Tx, post *models.ScheduledPost) (int64, error) {
	query := `
		INSERT INTO scheduled_posts (company_id, content_kind, media_item_id, review_id, project_id, caption, hashtags, asset_url, scheduled_for, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id int64
	var err error

	args := []any{post.CompanyID, post.ContentKind, post.MediaItemID, post.ReviewID, post.ProjectID, post.Caption, post.Hashtags, post.AssetURL, post.ScheduledFor, models.PostStatusPending}
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *scheduledPostRepository) GetByID(ctx context.Context, id int64) (*models.ScheduledPost, error) {
	query := `SELECT ` + postColumns + ` FROM scheduled_posts WHERE id = $1`

	p, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return p, nil
}

func (r *scheduledPostRepository) ListByCompany(ctx context.Context, companyID int64) ([]*models.ScheduledPost, error) {
	query := `SELECT ` + postColumns + ` FROM scheduled_posts WHERE company_id = $1 ORDER BY scheduled_for DESC`
	return r.list(ctx, query, companyID)
}

func (r *scheduledPostRepository) ListFailed(ctx context.Context) ([]*models.ScheduledPost, error) {
	query := `SELECT ` + postColumns + ` FROM scheduled_posts WHERE status = $1 ORDER BY updated_at DESC`
	return r.list(ctx, query, models.PostStatusFailed)
}

func (r *scheduledPostRepository) list(ctx context.Context, query string, args ...any) ([]*models.ScheduledPost, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.ScheduledPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// ListRecentKinds returns the content kinds of the most recently created
// posts, newest first. Feeds the image/review alternation policy.
func (r *scheduledPostRepository) ListRecentKinds(ctx context.Context, companyID int64, limit int) ([]models.ContentKind, error) {
	query := `SELECT content_kind FROM scheduled_posts WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, companyID, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var kinds []models.ContentKind
	for rows.Next() {
		var k models.ContentKind
		if err := rows.Scan(&k); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func (r *scheduledPostRepository) CountPendingFuture(ctx context.Context, companyID int64, now time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM scheduled_posts WHERE company_id = $1 AND status = $2 AND scheduled_for > $3`

	var count int
	err := r.db.QueryRowContext(ctx, query, companyID, models.PostStatusPending, now).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

func (r *scheduledPostRepository) ListPendingTimes(ctx context.Context, companyID int64) ([]time.Time, error) {
	query := `SELECT scheduled_for FROM scheduled_posts WHERE company_id = $1 AND status = $2`

	rows, err := r.db.QueryContext(ctx, query, companyID, models.PostStatusPending)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		times = append(times, t)
	}
	return times, nil
}

// ListDue excludes posts at or above the retry ceiling permanently; those
// wait for manual intervention.
func (r *scheduledPostRepository) ListDue(ctx context.Context, now time.Time, limit, retryCeiling int) ([]*models.ScheduledPost, error) {
	query := `
		SELECT ` + postColumns + `
		FROM scheduled_posts
		WHERE status = $1 AND scheduled_for <= $2 AND retry_count < $3
		ORDER BY scheduled_for ASC
		LIMIT $4
	`
	return r.list(ctx, query, models.PostStatusPending, now, retryCeiling, limit)
}

// MarkPosted records a successful publish. errorMessage carries the entries
// for any sibling platforms that failed alongside the success, or "" when
// every platform went through.
func (r *scheduledPostRepository) MarkPosted(ctx context.Context, id int64, postedAt time.Time, errorMessage string) error {
	query := `
		UPDATE scheduled_posts
		SET status = $1,
			posted_at = $2,
			error_message = $3,
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusPosted, postedAt, errorMessage, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *scheduledPostRepository) MarkFailed(ctx context.Context, id int64, errorMessage string) error {
	query := `
		UPDATE scheduled_posts
		SET status = $1,
			error_message = $2,
			retry_count = retry_count + 1,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusFailed, errorMessage, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// MarkFailedTerminal records a failure that retrying cannot fix, so the
// retry budget is left untouched.
func (r *scheduledPostRepository) MarkFailedTerminal(ctx context.Context, id int64, errorMessage string) error {
	query := `
		UPDATE scheduled_posts
		SET status = $1,
			error_message = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusFailed, errorMessage, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *scheduledPostRepository) MarkSkipped(ctx context.Context, id int64) error {
	query := `
		UPDATE scheduled_posts
		SET status = $1,
			updated_at = $2
		WHERE id = $3 AND status = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusSkipped, time.Now(), id, models.PostStatusPending)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// MarkRetry puts a failed post back in front of the publisher for a manual
// retry. The accumulated retry_count is left intact.
func (r *scheduledPostRepository) MarkRetry(ctx context.Context, id int64) error {
	query := `
		UPDATE scheduled_posts
		SET status = $1,
			error_message = '',
			updated_at = $2
		WHERE id = $3 AND status = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusPending, time.Now(), id, models.PostStatusFailed)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
