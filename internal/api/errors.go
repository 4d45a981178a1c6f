package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Sternrassler/eve-attrengine/internal/affection"
	"github.com/Sternrassler/eve-attrengine/internal/fit"
)

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// writeEngineError maps the engine's typed errors onto HTTP status
// codes; anything unrecognized is a 500.
func writeEngineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, affection.ErrBadContainer),
		errors.Is(err, fit.ErrNotTargeted),
		errors.Is(err, fit.ErrChargeAlreadyBound),
		errors.Is(err, fit.ErrStateNotAllowed):
		return jsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	default:
		return jsonError(c, fiber.StatusInternalServerError, err.Error())
	}
}
