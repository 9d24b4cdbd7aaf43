package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stockyard/internal/domain"
	applog "stockyard/internal/log"
	"stockyard/internal/services"
)

type ShelfHandler struct {
	Shelves *services.ShelfService
}

type createShelfRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// GET /api/v1/shelves
// Canonical shelves are provisioned before listing, so the first call on a
// fresh store returns the full 64-shelf layout.
func (h *ShelfHandler) List(c *fiber.Ctx) error {
	shelves, err := h.Shelves.List()
	if err != nil {
		return fail(c, "shelves.list.fail", err)
	}
	if shelves == nil {
		shelves = []domain.Shelf{}
	}
	return c.JSON(shelves)
}

// POST /api/v1/shelves
func (h *ShelfHandler) Create(c *fiber.Ctx) error {
	var req createShelfRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	shelf, err := h.Shelves.Create(req.Name, req.Code)
	if err != nil {
		return fail(c, "shelves.create.fail", err)
	}
	applog.Audit(c, "shelves.create", map[string]any{"shelf_id": shelf.ID, "code": shelf.Code})
	return c.Status(fiber.StatusCreated).JSON(shelf)
}
