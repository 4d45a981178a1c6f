package api

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/Sternrassler/eve-attrengine/internal/metrics"
)

// RecomputeHandler forces a full cache eviction and link-tracker
// rebuild on a fit — the one façade route expensive enough to rate
// limit, since it touches every holder regardless of what actually
// changed.
type RecomputeHandler struct {
	fits    *FitStore
	limiter *rate.Limiter
}

// NewRecomputeHandler returns a handler backed by fits, allowing rps
// requests per second with the given burst capacity.
func NewRecomputeHandler(fits *FitStore, rps float64, burst int) *RecomputeHandler {
	return &RecomputeHandler{fits: fits, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Recompute handles POST /fits/{id}/recompute
//
// @Summary Force a full recompute
// @Description Evicts every cached attribute on the fit and rebuilds the link tracker from scratch
// @Tags Fits
// @Param id path string true "Fit id"
// @Success 200
// @Failure 429 {object} map[string]string
// @Router /fits/{id}/recompute [post]
func (h *RecomputeHandler) Recompute(c *fiber.Ctx) error {
	if !h.limiter.Allow() {
		metrics.APIRateLimitRejectionsTotal.Inc()
		return jsonError(c, fiber.StatusTooManyRequests, "recompute rate limit exceeded")
	}

	fitID := c.Params("id")
	f, ok, unlock := h.fits.Lock(fitID)
	defer unlock()
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "fit not found")
	}
	f.Recompute()
	return c.SendStatus(fiber.StatusOK)
}
