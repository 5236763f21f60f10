package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

func (q *Queue) HandleFillQueueTask(ctx context.Context, task *asynq.Task) error {
	var payload FillQueuePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	created := q.filler.Fill(ctx, payload.CompanyID)
	slog.Info("fill task processed", slog.Int64("company_id", payload.CompanyID), slog.Int("created", created))

	return nil
}

func (q *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	posted, err := q.publisher.PublishPost(ctx, payload.PostID)
	if err != nil {
		slog.Error("publish task failed", slog.Int64("post_id", payload.PostID), slog.String("error", err.Error()))
		return err
	}

	slog.Info("publish task processed", slog.Int64("post_id", payload.PostID), slog.Bool("posted", posted))
	return nil
}
