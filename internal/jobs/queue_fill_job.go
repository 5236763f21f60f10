package job

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/tradeposthq/tradepost/internal/queue"
	"github.com/tradeposthq/tradepost/internal/repository"
)

// QueueFillJob periodically tops up every active company's posting queue by
// fanning one fill task per company onto the worker. Fills for different
// companies are independent; the filler serializes per company.
type QueueFillJob struct {
	cr     repository.CompanyRepository
	client *asynq.Client
}

func NewQueueFillJob(cr repository.CompanyRepository, client *asynq.Client) *QueueFillJob {
	return &QueueFillJob{cr: cr, client: client}
}

func (j *QueueFillJob) Run() {
	ctx := context.Background()

	companies, err := j.cr.ListActive(ctx)
	if err != nil {
		slog.Error("queue fill job: error listing companies", slog.String("error", err.Error()))
		return
	}

	for _, company := range companies {
		if err := queue.EnqueueFill(j.client, queue.FillQueuePayload{CompanyID: company.ID}); err != nil {
			slog.Error("queue fill job: error enqueueing fill task", slog.Int64("company_id", company.ID), slog.String("error", err.Error()))
		}
	}
}
