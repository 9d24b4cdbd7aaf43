package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stockyard/internal/services"
)

type CodesHandler struct {
	Codes *services.CodeService
}

// GET /api/v1/codes/next
// Preview only; nothing is reserved. The code actually assigned at create
// time can differ if another auction lands first.
func (h *CodesHandler) Next(c *fiber.Ctx) error {
	code, err := h.Codes.PeekInternalCode()
	if err != nil {
		return fail(c, "codes.next.fail", err)
	}
	return c.JSON(fiber.Map{"code": code})
}
