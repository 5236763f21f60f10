package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	config "github.com/tradeposthq/tradepost/configs"
	"github.com/tradeposthq/tradepost/internal/models"
	"github.com/tradeposthq/tradepost/internal/repository"
	"github.com/tradeposthq/tradepost/internal/transfer"
)

type CompanyService interface {
	GetSettings(ctx context.Context, companyID int64) (*models.Company, error)
	UpdateSettings(ctx context.Context, companyID int64, update *transfer.SettingsUpdate) error
}

type companyService struct {
	cfg config.Config
	cr  repository.CompanyRepository
}

func NewCompanyService(cfg config.Config, cr repository.CompanyRepository) CompanyService {
	return &companyService{cfg: cfg, cr: cr}
}

func (s *companyService) GetSettings(ctx context.Context, companyID int64) (*models.Company, error) {
	company, err := s.cr.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, errors.New("company doesn't exist")
	}
	return company, nil
}

func (s *companyService) UpdateSettings(ctx context.Context, companyID int64, update *transfer.SettingsUpdate) error {
	company, err := s.cr.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return errors.New("company doesn't exist")
	}

	if update.PostsPerWeek < 1 || update.PostsPerWeek > 7 {
		return errors.New("posts_per_week must be between 1 and 7")
	}
	if update.ReviewMinRating < 1 || update.ReviewMinRating > 5 {
		return errors.New("review_min_rating must be between 1 and 5")
	}

	hours, err := s.validateHours(update.PostingHours)
	if err != nil {
		return err
	}

	company.PostsPerWeek = update.PostsPerWeek
	company.PostingHours = hours
	company.ReviewPostingEnabled = update.ReviewPostingEnabled
	company.ReviewMinRating = update.ReviewMinRating

	if err := s.cr.UpdateCadence(ctx, company); err != nil {
		return fmt.Errorf("error updating cadence settings: %w", err)
	}
	return nil
}

func (s *companyService) validateHours(hours []int) (string, error) {
	if len(hours) == 0 || len(hours) > s.cfg.Rotation.MaxDailySlots {
		return "", fmt.Errorf("posting_hours must contain between 1 and %d entries", s.cfg.Rotation.MaxDailySlots)
	}

	seen := make(map[int]struct{}, len(hours))
	parts := make([]string, 0, len(hours))
	for _, h := range hours {
		if h < 0 || h > 23 {
			return "", errors.New("posting hours must be between 0 and 23")
		}
		if _, dup := seen[h]; dup {
			return "", errors.New("posting hours must be distinct")
		}
		seen[h] = struct{}{}
		parts = append(parts, strconv.Itoa(h))
	}
	return strings.Join(parts, ","), nil
}
