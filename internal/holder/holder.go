// Package holder is the runtime wrapper around one static item
// instantiated in a fit (spec §3's "Holder"). Holder implements
// attrmap.Holder so every holder owns its own attribute cache; the
// package sits just above attrmap and sde in the dependency graph, so
// it is free to depend on both concretely.
package holder

import (
	"context"

	"github.com/Sternrassler/eve-attrengine/internal/attrmap"
	"github.com/Sternrassler/eve-attrengine/internal/sde"
	"github.com/Sternrassler/eve-attrengine/pkg/logger"
)

// Kind distinguishes the specialised holder kinds spec §3 names. Kinds
// differ only in which fit slot they occupy and whether they expose a
// skill level (spec §9's "dynamic dispatch over holder kinds").
type Kind int

const (
	KindShip Kind = iota
	KindCharacter
	KindModule
	KindDrone
	KindCharge
	KindSkill
	KindImplant
	KindBooster
)

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindCharacter:
		return "character"
	case KindModule:
		return "module"
	case KindDrone:
		return "drone"
	case KindCharge:
		return "charge"
	case KindSkill:
		return "skill"
	case KindImplant:
		return "implant"
	case KindBooster:
		return "booster"
	default:
		return "unknown"
	}
}

// Holder is a runtime instance of an ItemType inside a fit.
type Holder struct {
	id       int64
	kind     Kind
	itemType *sde.ItemType
	state    sde.State
	attached bool
	level    int // skill level, meaningful only for KindSkill

	module  *Holder // for KindCharge: the module it's loaded into
	charge  *Holder // for KindModule: the charge currently loaded

	projectionTarget *Holder // optional; only settable if itemType.Targeted

	attrs *attrmap.Map
	log   *logger.Logger
}

// New constructs a detached holder for the given item type.
func New(id int64, kind Kind, itemType *sde.ItemType, store sde.Store, log *logger.Logger) *Holder {
	h := &Holder{id: id, kind: kind, itemType: itemType, log: log}
	h.attrs = attrmap.New(h, store, log)
	return h
}

// --- attrmap.Holder ---

func (h *Holder) HolderID() int64         { return h.id }
func (h *Holder) ItemType() *sde.ItemType { return h.itemType }
func (h *Holder) IsAttached() bool        { return h.attached }

func (h *Holder) Level() (int, bool) {
	if h.kind != KindSkill {
		return 0, false
	}
	return h.level, true
}

func (h *Holder) Attribute(ctx context.Context, attrID int64) (float64, error) {
	return h.attrs.Get(ctx, attrID)
}

// --- accessors ---

// Attributes returns this holder's attribute map, for direct use by
// callers that aren't going through the attrmap.Holder interface
// (tests, restriction validators reading via the typed holder).
func (h *Holder) Attributes() *attrmap.Map { return h.attrs }

func (h *Holder) Kind() Kind       { return h.kind }
func (h *Holder) State() sde.State { return h.state }

// SetLevel sets a skill holder's trained level. No-op on non-skill kinds.
func (h *Holder) SetLevel(level int) {
	if h.kind == KindSkill {
		h.level = level
	}
}

// Module returns the module this charge is loaded into, if any.
func (h *Holder) Module() *Holder { return h.module }

// Charge returns the charge currently loaded into this module, if any.
func (h *Holder) Charge() *Holder { return h.charge }

// Other returns this holder's paired holder via the container/charge
// link (spec §4.3's location=other / spec §9's "other" pseudo-location):
// a module's charge, or a charge's module.
func (h *Holder) Other() (*Holder, bool) {
	switch h.kind {
	case KindModule:
		if h.charge != nil {
			return h.charge, true
		}
	case KindCharge:
		if h.module != nil {
			return h.module, true
		}
	}
	return nil, false
}

// BindCharge links charge into this module's charge slot, and this
// module as the charge's container, atomically on both sides.
func (h *Holder) BindCharge(charge *Holder) {
	if old := h.charge; old != nil {
		old.module = nil
	}
	h.charge = charge
	if charge != nil {
		charge.module = h
	}
}

// ProjectionTarget returns the current projection target, if any.
func (h *Holder) ProjectionTarget() (*Holder, bool) {
	if h.projectionTarget == nil {
		return nil, false
	}
	return h.projectionTarget, true
}

// SetProjectionTarget sets the target this holder's projected
// modifiers are anchored onto. Per spec §9's open question, this is
// only valid when the holder's item is Targeted.
func (h *Holder) SetProjectionTarget(target *Holder) error {
	if !h.itemType.Targeted {
		return ErrNotTargeted
	}
	h.projectionTarget = target
	return nil
}

// --- lifecycle, called by internal/fit ---

// Attach marks the holder as attached and binds it to tracker. The
// attribute cache is cleared, per spec §3's lifecycle rule.
func (h *Holder) Attach(tracker attrmap.Tracker) {
	h.attached = true
	h.attrs.SetTracker(tracker)
}

// Detach marks the holder as no longer belonging to any fit.
func (h *Holder) Detach() {
	h.attached = false
	h.attrs.SetTracker(nil)
}

// CommitState sets the holder's current state and clears its
// attribute cache (spec §3's lifecycle rule). Callers (internal/fit)
// are responsible for validating the requested state against
// MaxAllowedState and reconciling link-tracker edges beforehand.
func (h *Holder) CommitState(s sde.State) {
	h.state = s
	h.attrs.Clear()
}

// MaxAllowedState is the highest state this holder's item permits.
func (h *Holder) MaxAllowedState() sde.State {
	return h.itemType.HighestAllowedState
}
