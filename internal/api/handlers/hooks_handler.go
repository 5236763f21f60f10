package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/tradeposthq/tradepost/internal/queue"
	"github.com/tradeposthq/tradepost/internal/transfer"
)

// HooksHandler receives upload-completion and review-graphic-completion
// events. The triggering operation always succeeds: scheduling problems are
// logged, never returned to the caller.
type HooksHandler struct {
	AsynqClient *asynq.Client
}

func NewHooksHandler(asynqClient *asynq.Client) *HooksHandler {
	return &HooksHandler{AsynqClient: asynqClient}
}

func (h *HooksHandler) MediaUploaded(c *fiber.Ctx) error {
	return h.triggerFill(c)
}

func (h *HooksHandler) ReviewGraphicReady(c *fiber.Ctx) error {
	return h.triggerFill(c)
}

func (h *HooksHandler) triggerFill(c *fiber.Ctx) error {
	var event transfer.HookEvent
	if err := c.BodyParser(&event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}
	if event.CompanyID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "company_id is required",
		})
	}

	if err := queue.EnqueueFill(h.AsynqClient, queue.FillQueuePayload{CompanyID: event.CompanyID}); err != nil {
		slog.Error("error enqueueing fill task", slog.Int64("company_id", event.CompanyID), slog.String("error", err.Error()))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "ok",
	})
}
