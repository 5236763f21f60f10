package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/tradeposthq/tradepost/internal/models"
)

type ReviewRepository interface {
	ListEligible(ctx context.Context, companyID int64, minRating int) ([]*models.Review, error)
	SetGraphicURL(ctx context.Context, id int64, graphicURL string) error
	StampPosted(ctx context.Context, id int64, postedAt time.Time) error
	TouchPublished(ctx context.Context, id int64, publishedAt time.Time) error
}

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewColumns = `id, company_id, reviewer_name, rating, text, used_in_post, last_posted_at, graphic_url, created_at`

func scanReview(row interface{ Scan(...any) error }) (*models.Review, error) {
	var rv models.Review
	var graphicURL sql.NullString
	err := row.Scan(&rv.ID, &rv.CompanyID, &rv.ReviewerName, &rv.Rating, &rv.Text, &rv.UsedInPost, &rv.LastPostedAt, &graphicURL, &rv.CreatedAt)
	if err != nil {
		return nil, err
	}
	rv.GraphicURL = graphicURL.String
	return &rv, nil
}

// ListEligible filters to usable testimonials (rating at or above the company
// floor, non-empty text) ordered unposted-first, then least recently posted.
func (r *reviewRepository) ListEligible(ctx context.Context, companyID int64, minRating int) ([]*models.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE company_id = $1 AND rating >= $2 AND text <> ''
		ORDER BY used_in_post ASC, last_posted_at ASC NULLS FIRST
	`

	rows, err := r.db.QueryContext(ctx, query, companyID, minRating)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, nil
}

func (r *reviewRepository) SetGraphicURL(ctx context.Context, id int64, graphicURL string) error {
	query := `UPDATE reviews SET graphic_url = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, graphicURL, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *reviewRepository) StampPosted(ctx context.Context, id int64, postedAt time.Time) error {
	query := `
		UPDATE reviews
		SET used_in_post = true,
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

func (r *reviewRepository) TouchPublished(ctx context.Context, id int64, publishedAt time.Time) error {
	query := `UPDATE reviews SET last_posted_at = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, publishedAt, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
