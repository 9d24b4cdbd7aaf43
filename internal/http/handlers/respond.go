package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "stockyard/internal/log"
	"stockyard/internal/services"
)

// fail maps service error kinds onto status codes. Everything unexpected
// is a 500 and gets logged with its cause.
func fail(c *fiber.Ctx, action string, err error) error {
	var (
		ve *services.ValidationError
		nf *services.NotFoundError
		ce *services.ConflictError
		te *services.TransactionError
	)
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Error()})
	case errors.As(err, &nf):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": nf.Error()})
	case errors.As(err, &ce):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": ce.Error()})
	case errors.As(err, &te):
		applog.Error(c, action, te.Cause, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": te.Error()})
	default:
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
