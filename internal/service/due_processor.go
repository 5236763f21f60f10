package service

import (
	"context"
	"log/slog"
	"time"

	config "github.com/tradeposthq/tradepost/configs"
	"github.com/tradeposthq/tradepost/internal/repository"
)

// DueSummary reports one processing run, for operational logging only.
type DueSummary struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// DuePostProcessor publishes every due pending post under the retry ceiling.
// Posts are handled sequentially with a fixed delay between them: the
// platforms rate-limit aggressively and a slow batch beats a banned account.
type DuePostProcessor interface {
	ProcessDuePosts(ctx context.Context) DueSummary
}

type duePostProcessor struct {
	cfg       config.Config
	posts     repository.ScheduledPostRepository
	publisher Publisher
	now       func() time.Time
	sleep     func(time.Duration)
}

func NewDuePostProcessor(cfg config.Config, posts repository.ScheduledPostRepository, publisher Publisher) DuePostProcessor {
	return &duePostProcessor{
		cfg:       cfg,
		posts:     posts,
		publisher: publisher,
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

func (s *duePostProcessor) ProcessDuePosts(ctx context.Context) DueSummary {
	var summary DueSummary

	due, err := s.posts.ListDue(ctx, s.now(), s.cfg.Rotation.DueBatchSize, s.cfg.Rotation.RetryCeiling)
	if err != nil {
		slog.Error("error listing due posts", slog.String("error", err.Error()))
		return summary
	}

	delay := time.Duration(s.cfg.Rotation.PublishDelaySeconds) * time.Second

	for i, post := range due {
		if i > 0 && delay > 0 {
			s.sleep(delay)
		}

		summary.Processed++
		posted, err := s.publisher.PublishPost(ctx, post.ID)
		if err != nil {
			slog.Error("error publishing due post", slog.Int64("post_id", post.ID), slog.String("error", err.Error()))
		}
		if posted {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	return summary
}
