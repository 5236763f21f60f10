package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/tradeposthq/tradepost/internal/models"
)

type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Company, error)
	ListActive(ctx context.Context) ([]*models.Company, error)
	UpdateCadence(ctx context.Context, company *models.Company) error
}

type companyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) CompanyRepository {
	return &companyRepository{db: db}
}

const companyColumns = `id, name, trade, timezone, posts_per_week, posting_hours, review_posting_enabled, review_min_rating, active, created_at, updated_at`

func (r *companyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var c models.Company
	err := row.Scan(&c.ID, &c.Name, &c.Trade, &c.Timezone, &c.PostsPerWeek, &c.PostingHours, &c.ReviewPostingEnabled, &c.ReviewMinRating, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &c, nil
}

func (r *companyRepository) ListActive(ctx context.Context) ([]*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE active = true`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		var c models.Company
		err := rows.Scan(&c.ID, &c.Name, &c.Trade, &c.Timezone, &c.PostsPerWeek, &c.PostingHours, &c.ReviewPostingEnabled, &c.ReviewMinRating, &c.Active, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		companies = append(companies, &c)
	}
	return companies, nil
}

func (r *companyRepository) UpdateCadence(ctx context.Context, company *models.Company) error {
	query := `
		UPDATE companies
		SET posts_per_week = $1,
			posting_hours = $2,
			review_posting_enabled = $3,
			review_min_rating = $4,
			updated_at = $5
		WHERE id = $6
	`
	_, err := r.db.ExecContext(ctx, query, company.PostsPerWeek, company.PostingHours, company.ReviewPostingEnabled, company.ReviewMinRating, time.Now(), company.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
