package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Sternrassler/eve-attrengine/internal/restrictions"
)

// RestrictionsHandler exposes the read-only restriction validators
// against a fit.
type RestrictionsHandler struct {
	fits *FitStore
}

// NewRestrictionsHandler returns a handler backed by fits.
func NewRestrictionsHandler(fits *FitStore) *RestrictionsHandler {
	return &RestrictionsHandler{fits: fits}
}

// GetRestrictions handles GET /fits/{id}/restrictions
//
// @Summary Validate a fit
// @Description Runs slot count, rig size, and capital-item restrictions against the fit
// @Tags Restrictions
// @Param id path string true "Fit id"
// @Produce json
// @Success 200 {object} map[string][]restrictions.Violation
// @Router /fits/{id}/restrictions [get]
func (h *RestrictionsHandler) GetRestrictions(c *fiber.Ctx) error {
	fitID := c.Params("id")
	f, ok, unlock := h.fits.Lock(fitID)
	defer unlock()
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "fit not found")
	}

	violations, err := restrictions.ValidateAll(c.Context(), f, restrictions.Standard)
	if err != nil {
		return writeEngineError(c, err)
	}
	if violations == nil {
		violations = []restrictions.Violation{}
	}
	return c.JSON(fiber.Map{"violations": violations})
}
