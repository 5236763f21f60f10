package service

import (
	"context"
	"math/rand"
	"sort"
	"time"

	config "github.com/tradeposthq/tradepost/configs"
	"github.com/tradeposthq/tradepost/internal/models"
	"github.com/tradeposthq/tradepost/internal/repository"
)

// ContentSelector picks the next content row for a company's rotation.
// Both methods return (nil, nil) on exhaustion; callers decide the fallback.
type ContentSelector interface {
	NextMediaItem(ctx context.Context, company *models.Company) (*models.MediaItem, error)
	NextReview(ctx context.Context, company *models.Company) (*models.Review, error)
}

type contentSelector struct {
	cfg config.Config
	mi  repository.MediaItemRepository
	rv  repository.ReviewRepository
	now func() time.Time
}

func NewContentSelector(cfg config.Config, mi repository.MediaItemRepository, rv repository.ReviewRepository) ContentSelector {
	return &contentSelector{
		cfg: cfg,
		mi:  mi,
		rv:  rv,
		now: time.Now,
	}
}

// NextMediaItem applies the fairness ordering: least-posted items first,
// never-posted before least-recently-posted, uniform random among the tie
// set at the minimum count. A pool of exactly one item sits out a cooldown
// between repeats so single-photo companies don't post the same image twice
// in a row within days.
func (s *contentSelector) NextMediaItem(ctx context.Context, company *models.Company) (*models.MediaItem, error) {
	items, err := s.mi.ListAvailable(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	if len(items) == 1 {
		cooldown := time.Duration(s.cfg.Rotation.SingleItemCooldownDays) * 24 * time.Hour
		only := items[0]
		if only.LastPostedAt != nil && s.now().Sub(*only.LastPostedAt) < cooldown {
			return nil, nil
		}
		return only, nil
	}

	sortMediaItems(items)

	minPosted := items[0].TimesPosted
	tied := 1
	for tied < len(items) && items[tied].TimesPosted == minPosted {
		tied++
	}

	return items[rand.Intn(tied)], nil
}

// NextReview prefers any never-posted review (uniform random among them).
// Once every review has been used, the least-recently-posted one is reused,
// but only after its cooldown has elapsed.
func (s *contentSelector) NextReview(ctx context.Context, company *models.Company) (*models.Review, error) {
	reviews, err := s.rv.ListEligible(ctx, company.ID, company.ReviewMinRating)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, nil
	}

	sortReviews(reviews)

	var unposted []*models.Review
	for _, rv := range reviews {
		if !rv.UsedInPost {
			unposted = append(unposted, rv)
		}
	}
	if len(unposted) > 0 {
		return unposted[rand.Intn(len(unposted))], nil
	}

	oldest := reviews[0]
	cooldown := time.Duration(s.cfg.Rotation.ReviewReuseCooldownDays) * 24 * time.Hour
	if oldest.LastPostedAt != nil && s.now().Sub(*oldest.LastPostedAt) < cooldown {
		return nil, nil
	}
	return oldest, nil
}

// The SQL already orders candidates, but selection re-sorts locally so the
// fairness invariant doesn't depend on the storage backend.
func sortMediaItems(items []*models.MediaItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].TimesPosted != items[j].TimesPosted {
			return items[i].TimesPosted < items[j].TimesPosted
		}
		return lessNullsFirst(items[i].LastPostedAt, items[j].LastPostedAt)
	})
}

func sortReviews(reviews []*models.Review) {
	sort.SliceStable(reviews, func(i, j int) bool {
		if reviews[i].UsedInPost != reviews[j].UsedInPost {
			return !reviews[i].UsedInPost
		}
		return lessNullsFirst(reviews[i].LastPostedAt, reviews[j].LastPostedAt)
	})
}

func lessNullsFirst(a, b *time.Time) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return a.Before(*b)
}
