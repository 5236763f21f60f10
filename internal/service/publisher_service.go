package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/tradeposthq/tradepost/internal/models"
	"github.com/tradeposthq/tradepost/internal/repository"
)

const noAccountsMessage = "No social accounts connected"

// Publisher fans one due post out across every connected platform and
// aggregates the results into the post's status.
type Publisher interface {
	PublishPost(ctx context.Context, postID int64) (bool, error)
}

type publisherService struct {
	posts    repository.ScheduledPostRepository
	media    repository.MediaItemRepository
	reviews  repository.ReviewRepository
	conns    repository.PlatformConnectionRepository
	results  repository.PublishResultRepository
	adapters map[string]PlatformAdapter
	now      func() time.Time
}

func NewPublisher(
	posts repository.ScheduledPostRepository,
	media repository.MediaItemRepository,
	reviews repository.ReviewRepository,
	conns repository.PlatformConnectionRepository,
	results repository.PublishResultRepository,
	adapters []PlatformAdapter) Publisher {
	byPlatform := make(map[string]PlatformAdapter, len(adapters))
	for _, a := range adapters {
		byPlatform[a.Platform()] = a
	}
	return &publisherService{
		posts:    posts,
		media:    media,
		reviews:  reviews,
		conns:    conns,
		results:  results,
		adapters: byPlatform,
		now:      time.Now,
	}
}

type publishOutcome struct {
	platform       string
	platformPostID string
	err            error
}

// PublishPost reports whether the post ended up posted. A returned error
// means the engine itself could not proceed, not that a platform rejected
// the content.
func (s *publisherService) PublishPost(ctx context.Context, postID int64) (bool, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return false, err
	}
	if post == nil {
		return false, fmt.Errorf("post %d not found", postID)
	}
	if post.Status != models.PostStatusPending {
		// Skipped or already handled; publishing never regresses status.
		return post.Status == models.PostStatusPosted, nil
	}

	connections, err := s.conns.ListConnected(ctx, post.CompanyID)
	if err != nil {
		return false, err
	}

	// Zero connected accounts is terminal immediately: retrying cannot help
	// until someone reconnects an account, so the retry budget stays
	// untouched.
	if len(connections) == 0 {
		if err := s.posts.MarkFailedTerminal(ctx, post.ID, noAccountsMessage); err != nil {
			return false, err
		}
		slog.Info("post failed, no connected accounts", slog.Int64("post_id", post.ID), slog.Int64("company_id", post.CompanyID))
		return false, nil
	}

	outcomes := s.fanOut(ctx, post, connections)

	succeeded := 0
	failures := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		result := &models.PublishResult{
			PostID:    post.ID,
			CompanyID: post.CompanyID,
			Platform:  o.platform,
		}
		if o.err != nil {
			result.ErrorMessage = o.err.Error()
			failures = append(failures, fmt.Sprintf("%s: %s", o.platform, o.err.Error()))
			slog.Info("platform publish failed", slog.Int64("post_id", post.ID), slog.String("platform", o.platform), slog.String("error", o.err.Error()))
		} else {
			result.PlatformPostID = o.platformPostID
			succeeded++
		}
		if _, err := s.results.Create(ctx, result); err != nil {
			slog.Error("error saving publish result", slog.Int64("post_id", post.ID), slog.String("error", err.Error()))
		}
	}

	failureMessage := strings.Join(failures, "; ")

	if succeeded == 0 {
		if err := s.posts.MarkFailed(ctx, post.ID, failureMessage); err != nil {
			return false, err
		}
		return false, nil
	}

	// Partial failures ride along on the posted row so the operator surface
	// shows which platforms missed out without digging into result rows.
	postedAt := s.now()
	if err := s.posts.MarkPosted(ctx, post.ID, postedAt, failureMessage); err != nil {
		return false, err
	}

	// Second bookkeeping touch: the content item is now actually published,
	// not merely scheduled.
	s.touchContent(ctx, post, postedAt)

	return true, nil
}

// fanOut runs every adapter independently; a failing platform never aborts
// its siblings.
func (s *publisherService) fanOut(ctx context.Context, post *models.ScheduledPost, connections []*models.PlatformConnection) []publishOutcome {
	outcomes := make([]publishOutcome, len(connections))
	hashtags := post.HashtagList()

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 10)

	for i, conn := range connections {
		adapter, ok := s.adapters[conn.Platform]
		if !ok {
			outcomes[i] = publishOutcome{platform: conn.Platform, err: fmt.Errorf("no adapter for platform %s", conn.Platform)}
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(i int, conn *models.PlatformConnection, adapter PlatformAdapter) {
			defer wg.Done()
			defer func() { <-semaphore }()

			caption := FormatCaption(post.Caption, hashtags, conn.Platform)
			platformPostID, err := adapter.Publish(ctx, conn, post.AssetURL, caption)
			outcomes[i] = publishOutcome{platform: conn.Platform, platformPostID: platformPostID, err: err}
		}(i, conn, adapter)
	}

	wg.Wait()
	return outcomes
}

func (s *publisherService) touchContent(ctx context.Context, post *models.ScheduledPost, publishedAt time.Time) {
	ref := post.Content()
	var err error
	switch ref.Kind {
	case models.ContentKindImage:
		err = s.media.TouchPublished(ctx, ref.ID, publishedAt)
	case models.ContentKindReview:
		err = s.reviews.TouchPublished(ctx, ref.ID, publishedAt)
	}
	if err != nil {
		slog.Error("error touching published content", slog.Int64("post_id", post.ID), slog.String("error", err.Error()))
	}
}
