package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tradeposthq/tradepost/internal/service"
	"github.com/tradeposthq/tradepost/internal/transfer"
)

type SettingsHandler struct {
	s service.CompanyService
}

func NewSettingsHandler(service service.CompanyService) *SettingsHandler {
	return &SettingsHandler{s: service}
}

func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)

	company, err := h.s.GetSettings(c.Context(), companyID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to find settings for given company",
		})
	}

	return c.JSON(company)
}

func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)

	var update transfer.SettingsUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	if err := h.s.UpdateSettings(c.Context(), companyID, &update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
