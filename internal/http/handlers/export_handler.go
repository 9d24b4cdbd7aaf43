package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "stockyard/internal/log"
	"stockyard/internal/services"
)

type ExportHandler struct {
	Export *services.ExportService
}

type markExportedRequest struct {
	IDs []int64 `json:"ids"`
}

// POST /api/v1/export/mark
func (h *ExportHandler) Mark(c *fiber.Ctx) error {
	var req markExportedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	count, err := h.Export.MarkExported(req.IDs)
	if err != nil {
		return fail(c, "export.mark.fail", err)
	}
	applog.Audit(c, "export.mark", map[string]any{"requested": len(req.IDs), "count": count})
	return c.JSON(fiber.Map{"success": true, "count": count})
}

// GET /api/v1/export/snapshot
func (h *ExportHandler) Snapshot(c *fiber.Ctx) error {
	snap, err := h.Export.TakeSnapshot()
	if err != nil {
		return fail(c, "export.snapshot.fail", err)
	}
	applog.Info(c, "export.snapshot", map[string]any{"auctions": len(snap.Data.Auctions)})
	return c.JSON(snap)
}
