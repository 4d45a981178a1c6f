package api

import (
	"github.com/gofiber/fiber/v2"
)

// AttributesHandler handles effective-attribute reads and manual
// overrides within one fit.
type AttributesHandler struct {
	fits *FitStore
}

// NewAttributesHandler returns a handler backed by fits.
func NewAttributesHandler(fits *FitStore) *AttributesHandler {
	return &AttributesHandler{fits: fits}
}

// GetAttribute handles GET /fits/{id}/holders/{holderID}/attributes/{attrID}
//
// @Summary Read a holder's effective attribute value
// @Tags Attributes
// @Param id path string true "Fit id"
// @Param holderID path int true "Holder id"
// @Param attrID path int true "Attribute id"
// @Produce json
// @Success 200 {object} map[string]float64
// @Router /fits/{id}/holders/{holderID}/attributes/{attrID} [get]
func (h *AttributesHandler) GetAttribute(c *fiber.Ctx) error {
	f, holderID, ok, unlock, errResp := (&HoldersHandler{fits: h.fits}).lockAndFindHolder(c)
	defer unlock()
	if !ok {
		return errResp
	}
	hd, _ := findHolder(f, holderID)

	attrID, err := c.ParamsInt("attrID")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid attribute id")
	}
	value, err := hd.Attribute(c.Context(), int64(attrID))
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(fiber.Map{"value": value})
}

type setAttributeRequest struct {
	Value float64 `json:"value"`
}

// SetAttribute handles PUT /fits/{id}/holders/{holderID}/attributes/{attrID}
//
// @Summary Manually override a holder's cached attribute value
// @Description Overrides the cached value and evicts every cached value elsewhere that depended on it
// @Tags Attributes
// @Param id path string true "Fit id"
// @Param holderID path int true "Holder id"
// @Param attrID path int true "Attribute id"
// @Param body body setAttributeRequest true "Override value"
// @Success 200
// @Router /fits/{id}/holders/{holderID}/attributes/{attrID} [put]
func (h *AttributesHandler) SetAttribute(c *fiber.Ctx) error {
	f, holderID, ok, unlock, errResp := (&HoldersHandler{fits: h.fits}).lockAndFindHolder(c)
	defer unlock()
	if !ok {
		return errResp
	}
	hd, _ := findHolder(f, holderID)

	attrID, err := c.ParamsInt("attrID")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid attribute id")
	}
	var req setAttributeRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	hd.Attributes().Set(int64(attrID), req.Value)
	return c.SendStatus(fiber.StatusOK)
}
