package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	config "github.com/tradeposthq/tradepost/configs"
	"github.com/tradeposthq/tradepost/internal/models"
	"github.com/tradeposthq/tradepost/internal/repository"
)

// PostComposer assembles one pending scheduled post: content pick, calendar
// slot, generated caption. Returns ErrNoContent when the rotation pool is
// exhausted.
type PostComposer interface {
	Compose(ctx context.Context, company *models.Company) (int64, error)
}

type postComposer struct {
	cfg      config.Config
	posts    repository.ScheduledPostRepository
	media    repository.MediaItemRepository
	reviews  repository.ReviewRepository
	selector ContentSelector
	captions CaptionService
	graphics GraphicService
	now      func() time.Time
}

func NewPostComposer(
	cfg config.Config,
	posts repository.ScheduledPostRepository,
	media repository.MediaItemRepository,
	reviews repository.ReviewRepository,
	selector ContentSelector,
	captions CaptionService,
	graphics GraphicService) PostComposer {
	return &postComposer{
		cfg:      cfg,
		posts:    posts,
		media:    media,
		reviews:  reviews,
		selector: selector,
		captions: captions,
		graphics: graphics,
		now:      time.Now,
	}
}

func (s *postComposer) Compose(ctx context.Context, company *models.Company) (int64, error) {
	now := s.now().In(company.Location())

	recent, err := s.posts.ListRecentKinds(ctx, company.ID, 3)
	if err != nil {
		return 0, fmt.Errorf("error loading recent post kinds: %w", err)
	}

	var review *models.Review
	var item *models.MediaItem
	assetURL := ""

	if NextContentKind(recent, company.ReviewPostingEnabled) == models.ContentKindReview {
		review, assetURL, err = s.pickReview(ctx, company)
		if err != nil {
			return 0, err
		}
	}

	// Image path, either first choice or fallback after a failed review
	// attempt. A second cascade never happens.
	if review == nil {
		item, err = s.selector.NextMediaItem(ctx, company)
		if err != nil {
			return 0, fmt.Errorf("error selecting media item: %w", err)
		}
		if item == nil {
			return 0, ErrNoContent
		}
		assetURL = item.FileURL
	}

	booked, err := s.posts.ListPendingTimes(ctx, company.ID)
	if err != nil {
		return 0, fmt.Errorf("error loading pending bookings: %w", err)
	}

	policy := SlotPolicy{ScanDays: s.cfg.Rotation.SlotScanDays, MinGap: time.Hour}
	slot := FindNextSlot(now, company.PostingHoursList(), booked, policy)

	post := &models.ScheduledPost{
		CompanyID:    company.ID,
		ScheduledFor: slot,
		AssetURL:     assetURL,
	}
	if review != nil {
		post.ContentKind = models.ContentKindReview
		post.ReviewID = &review.ID
	} else {
		post.ContentKind = models.ContentKindImage
		post.MediaItemID = &item.ID
	}

	caption, err := s.captions.Generate(ctx, company, post.Content())
	if err != nil {
		return 0, fmt.Errorf("error generating caption: %w", err)
	}
	post.Caption = caption.Caption
	post.Hashtags = joinHashtags(caption.Hashtags)

	postID, err := s.posts.Create(ctx, nil, post)
	if err != nil {
		// Insert failed: no counter stamping happens.
		return 0, fmt.Errorf("error creating scheduled post: %w", err)
	}

	// Rotation counters move exactly once per successful composition, and
	// only after the post row is durable.
	if review != nil {
		err = s.reviews.StampPosted(ctx, review.ID, now)
	} else {
		err = s.media.StampPosted(ctx, item.ID, now)
	}
	if err != nil {
		return postID, fmt.Errorf("error stamping rotation counters: %w", err)
	}

	return postID, nil
}

// pickReview selects a review and ensures its graphic exists. Any failure
// along the way falls back to the image path by returning a nil review.
func (s *postComposer) pickReview(ctx context.Context, company *models.Company) (*models.Review, string, error) {
	review, err := s.selector.NextReview(ctx, company)
	if err != nil {
		return nil, "", fmt.Errorf("error selecting review: %w", err)
	}
	if review == nil {
		return nil, "", nil
	}

	assetURL, err := s.graphics.EnsureGraphic(ctx, company, review)
	if err != nil {
		slog.Info("review graphic generation failed, falling back to image",
			slog.Int64("company_id", company.ID),
			slog.Int64("review_id", review.ID),
			slog.String("error", err.Error()))
		return nil, "", nil
	}

	return review, assetURL, nil
}

func joinHashtags(tags []string) string {
	out := ""
	for _, t := range tags {
		if t == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += t
	}
	return out
}
