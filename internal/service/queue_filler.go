package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/tradeposthq/tradepost/internal/repository"
)

// QueueFiller tops up a company's pending-post horizon. Fill never reports
// an error: the triggering event (upload, graphic completion, periodic tick)
// succeeds regardless of scheduling outcome. It returns the number of posts
// created, for logging only.
type QueueFiller interface {
	Fill(ctx context.Context, companyID int64) int
}

type queueFiller struct {
	companies repository.CompanyRepository
	posts     repository.ScheduledPostRepository
	composer  PostComposer
	now       func() time.Time

	// Slot allocation must be single-writer per company; concurrent fill
	// tasks for the same company serialize here.
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewQueueFiller(companies repository.CompanyRepository, posts repository.ScheduledPostRepository, composer PostComposer) QueueFiller {
	return &queueFiller{
		companies: companies,
		posts:     posts,
		composer:  composer,
		now:       time.Now,
		locks:     make(map[int64]*sync.Mutex),
	}
}

func (s *queueFiller) companyLock(companyID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[companyID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[companyID] = lock
	}
	return lock
}

func (s *queueFiller) Fill(ctx context.Context, companyID int64) int {
	lock := s.companyLock(companyID)
	lock.Lock()
	defer lock.Unlock()

	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		slog.Error("queue fill: error loading company", slog.Int64("company_id", companyID), slog.String("error", err.Error()))
		return 0
	}
	if company == nil || !company.Active {
		return 0
	}

	pending, err := s.posts.CountPendingFuture(ctx, companyID, s.now())
	if err != nil {
		slog.Error("queue fill: error counting pending posts", slog.Int64("company_id", companyID), slog.String("error", err.Error()))
		return 0
	}

	deficit := company.PostsPerWeek - pending
	if deficit <= 0 {
		return 0
	}

	created := 0
	for i := 0; i < deficit; i++ {
		postID, err := s.composer.Compose(ctx, company)
		if err != nil {
			if errors.Is(err, ErrNoContent) {
				// Pool exhausted; composing again cannot produce
				// anything until new content arrives.
				slog.Info("queue fill stopped early, no eligible content", slog.Int64("company_id", companyID), slog.Int("created", created))
			} else {
				slog.Error("queue fill: composition failed", slog.Int64("company_id", companyID), slog.String("error", err.Error()))
			}
			return created
		}
		created++
		slog.Info("scheduled post composed", slog.Int64("company_id", companyID), slog.Int64("post_id", postID))
	}

	return created
}
