package api

import (
	"github.com/gofiber/fiber/v2"
)

// FitsHandler handles the top-level fit lifecycle routes.
type FitsHandler struct {
	fits *FitStore
}

// NewFitsHandler returns a handler backed by fits.
func NewFitsHandler(fits *FitStore) *FitsHandler {
	return &FitsHandler{fits: fits}
}

// CreateFit handles POST /fits
//
// @Summary Create a fit
// @Description Starts a new, empty fit and returns its id
// @Tags Fits
// @Produce json
// @Success 201 {object} map[string]string
// @Router /fits [post]
func (h *FitsHandler) CreateFit(c *fiber.Ctx) error {
	id := h.fits.Create()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// DeleteFit handles DELETE /fits/{id}
//
// @Summary Delete a fit
// @Tags Fits
// @Param id path string true "Fit id"
// @Success 204
// @Router /fits/{id} [delete]
func (h *FitsHandler) DeleteFit(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, ok := h.fits.Get(id); !ok {
		return jsonError(c, fiber.StatusNotFound, "fit not found")
	}
	h.fits.Delete(id)
	return c.SendStatus(fiber.StatusNoContent)
}
