package job

import (
	"context"
	"log/slog"

	"github.com/tradeposthq/tradepost/internal/service"
)

// DuePostJob is the periodic trigger behind the due-post processor.
type DuePostJob struct {
	processor service.DuePostProcessor
}

func NewDuePostJob(processor service.DuePostProcessor) *DuePostJob {
	return &DuePostJob{processor: processor}
}

func (j *DuePostJob) Run() {
	ctx := context.Background()

	summary := j.processor.ProcessDuePosts(ctx)
	if summary.Processed == 0 {
		return
	}

	slog.Info("due post run complete",
		slog.Int("processed", summary.Processed),
		slog.Int("succeeded", summary.Succeeded),
		slog.Int("failed", summary.Failed))
}
