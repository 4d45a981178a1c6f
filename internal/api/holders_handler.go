package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Sternrassler/eve-attrengine/internal/fit"
	"github.com/Sternrassler/eve-attrengine/internal/holder"
	"github.com/Sternrassler/eve-attrengine/internal/sde"
)

// HoldersHandler handles holder attach/detach/state routes within one fit.
type HoldersHandler struct {
	fits *FitStore
}

// NewHoldersHandler returns a handler backed by fits.
func NewHoldersHandler(fits *FitStore) *HoldersHandler {
	return &HoldersHandler{fits: fits}
}

type createHolderRequest struct {
	Kind       string `json:"kind"`
	ItemTypeID int64  `json:"itemTypeId"`
	Level      int    `json:"level,omitempty"`
}

func parseKind(s string) (holder.Kind, bool) {
	switch s {
	case "ship":
		return holder.KindShip, true
	case "character":
		return holder.KindCharacter, true
	case "module":
		return holder.KindModule, true
	case "drone":
		return holder.KindDrone, true
	case "implant":
		return holder.KindImplant, true
	case "booster":
		return holder.KindBooster, true
	case "skill":
		return holder.KindSkill, true
	default:
		return 0, false
	}
}

func findHolder(f *fit.Fit, holderID int64) (*holder.Holder, bool) {
	for _, h := range f.Holders() {
		if h.HolderID() == holderID {
			return h, true
		}
	}
	return nil, false
}

// AddHolder handles POST /fits/{id}/holders
//
// @Summary Fit a holder
// @Description Attaches a ship, character, module, drone, implant, booster, or skill to the fit
// @Tags Holders
// @Param id path string true "Fit id"
// @Param body body createHolderRequest true "Holder to add"
// @Produce json
// @Success 201 {object} map[string]int64
// @Router /fits/{id}/holders [post]
func (h *HoldersHandler) AddHolder(c *fiber.Ctx) error {
	fitID := c.Params("id")
	f, ok, unlock := h.fits.Lock(fitID)
	defer unlock()
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "fit not found")
	}

	var req createHolderRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	kind, ok := parseKind(req.Kind)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, fmt.Sprintf("unknown holder kind %q", req.Kind))
	}

	it, err := h.fits.Store().ItemType(c.Context(), req.ItemTypeID)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, fmt.Sprintf("item type %d: %v", req.ItemTypeID, err))
	}

	var holderHandle *holder.Holder
	switch kind {
	case holder.KindShip:
		holderHandle, err = f.SetShip(it)
	case holder.KindCharacter:
		holderHandle, err = f.SetCharacter(it)
	case holder.KindModule:
		holderHandle, err = f.AddModule(it)
	case holder.KindDrone:
		holderHandle, err = f.AddDrone(it)
	case holder.KindImplant:
		holderHandle, err = f.AddImplant(it)
	case holder.KindBooster:
		holderHandle, err = f.AddBooster(it)
	case holder.KindSkill:
		holderHandle, err = f.AddSkill(it, req.Level)
	}
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"holderId": holderHandle.HolderID()})
}

// RemoveHolder handles DELETE /fits/{id}/holders/{holderID}
//
// @Summary Remove a holder
// @Tags Holders
// @Param id path string true "Fit id"
// @Param holderID path int true "Holder id"
// @Success 204
// @Router /fits/{id}/holders/{holderID} [delete]
func (h *HoldersHandler) RemoveHolder(c *fiber.Ctx) error {
	f, holderID, ok, unlock, errResp := h.lockAndFindHolder(c)
	defer unlock()
	if !ok {
		return errResp
	}
	hd, _ := findHolder(f, holderID)
	f.RemoveHolder(hd)
	return c.SendStatus(fiber.StatusNoContent)
}

type setStateRequest struct {
	State string `json:"state"`
}

var stateNames = map[string]sde.State{
	"offline":  sde.StateOffline,
	"online":   sde.StateOnline,
	"active":   sde.StateActive,
	"overload": sde.StateOverload,
}

// SetHolderState handles PATCH /fits/{id}/holders/{holderID}/state
//
// @Summary Change a holder's state
// @Tags Holders
// @Param id path string true "Fit id"
// @Param holderID path int true "Holder id"
// @Param body body setStateRequest true "New state"
// @Success 200
// @Router /fits/{id}/holders/{holderID}/state [patch]
func (h *HoldersHandler) SetHolderState(c *fiber.Ctx) error {
	f, holderID, ok, unlock, errResp := h.lockAndFindHolder(c)
	defer unlock()
	if !ok {
		return errResp
	}
	hd, _ := findHolder(f, holderID)

	var req setStateRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	state, ok := stateNames[req.State]
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, fmt.Sprintf("unknown state %q", req.State))
	}
	if err := f.SetState(hd, state); err != nil {
		return writeEngineError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// lockAndFindHolder locks the fit named by the id path param and
// resolves the holderID path param against it, returning a ready-to-use
// error response when either lookup fails.
func (h *HoldersHandler) lockAndFindHolder(c *fiber.Ctx) (f *fit.Fit, holderID int64, ok bool, unlock func(), errResp error) {
	fitID := c.Params("id")
	f, ok, unlock = h.fits.Lock(fitID)
	if !ok {
		return nil, 0, false, unlock, jsonError(c, fiber.StatusNotFound, "fit not found")
	}
	id, err := c.ParamsInt("holderID")
	if err != nil {
		return nil, 0, false, unlock, jsonError(c, fiber.StatusBadRequest, "invalid holder id")
	}
	holderID = int64(id)
	if _, found := findHolder(f, holderID); !found {
		return nil, 0, false, unlock, jsonError(c, fiber.StatusNotFound, "holder not found")
	}
	return f, holderID, true, unlock, nil
}
