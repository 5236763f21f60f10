package handlers

import (
	"github.com/gofiber/fiber/v2"
)

func GetCompanyID(c *fiber.Ctx) int64 {
	return int64(c.QueryInt("company_id", 0))
}
