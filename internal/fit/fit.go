// Package fit is the runtime aggregate spec §3 names: a ship slot, a
// character slot, and sets of modules/drones/implants/skills/boosters,
// all sharing one link tracker. Fit is the "fit containers" external
// collaborator spec §1c describes — it is the only caller that
// attaches/detaches holders and drives state, charge, and projection
// changes, and it implements affection.FitView so the resolver can
// anchor location lookups against it without importing this package.
package fit

import (
	"github.com/Sternrassler/eve-attrengine/internal/holder"
	"github.com/Sternrassler/eve-attrengine/internal/linktracker"
	"github.com/Sternrassler/eve-attrengine/internal/sde"
	"github.com/Sternrassler/eve-attrengine/pkg/logger"
)

// Fit is one ship fitting: a ship, an optional character, and the
// holders fitted to each.
type Fit struct {
	store sde.Store
	log   *logger.Logger

	tracker *linktracker.Tracker
	nextID  int64

	ship      *holder.Holder
	character *holder.Holder
	modules   []*holder.Holder
	drones    []*holder.Holder
	implants  []*holder.Holder
	boosters  []*holder.Holder
	skills    map[int64]*holder.Holder // keyed by skill item type id
}

// New returns an empty fit backed by store for item/attribute lookups.
func New(store sde.Store, log *logger.Logger) *Fit {
	f := &Fit{store: store, log: log, skills: make(map[int64]*holder.Holder)}
	f.tracker = linktracker.New(f, log)
	return f
}

func (f *Fit) newHolder(kind holder.Kind, it *sde.ItemType) *holder.Holder {
	f.nextID++
	return holder.New(f.nextID, kind, it, f.store, f.log)
}

// --- affection.FitView ---

// Ship returns the fit's ship holder, if set.
func (f *Fit) Ship() (*holder.Holder, bool) {
	if f.ship == nil {
		return nil, false
	}
	return f.ship, true
}

// Character returns the fit's character holder, if set.
func (f *Fit) Character() (*holder.Holder, bool) {
	if f.character == nil {
		return nil, false
	}
	return f.character, true
}

// ShipMembers are the holders belonging to the ship container:
// modules, drones, and any charges currently loaded into a module.
func (f *Fit) ShipMembers() []*holder.Holder {
	out := make([]*holder.Holder, 0, len(f.modules)+len(f.drones))
	out = append(out, f.modules...)
	out = append(out, f.drones...)
	for _, m := range f.modules {
		if c := m.Charge(); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// CharacterMembers are the holders belonging to the character
// container: skills, implants, and boosters.
func (f *Fit) CharacterMembers() []*holder.Holder {
	out := make([]*holder.Holder, 0, len(f.skills)+len(f.implants)+len(f.boosters))
	for _, s := range f.skills {
		out = append(out, s)
	}
	out = append(out, f.implants...)
	out = append(out, f.boosters...)
	return out
}

// Modules returns the fit's modules, for callers (restriction
// validators) that need the typed set rather than ShipMembers' mixed
// modules+drones+charges view.
func (f *Fit) Modules() []*holder.Holder { return append([]*holder.Holder(nil), f.modules...) }

// Drones returns the fit's drones.
func (f *Fit) Drones() []*holder.Holder { return append([]*holder.Holder(nil), f.drones...) }

// Implants returns the fit's implants.
func (f *Fit) Implants() []*holder.Holder { return append([]*holder.Holder(nil), f.implants...) }

// Boosters returns the fit's boosters.
func (f *Fit) Boosters() []*holder.Holder { return append([]*holder.Holder(nil), f.boosters...) }

// Skills returns the fit's trained skills.
func (f *Fit) Skills() []*holder.Holder {
	out := make([]*holder.Holder, 0, len(f.skills))
	for _, s := range f.skills {
		out = append(out, s)
	}
	return out
}

// Holders returns every holder currently in the fit: the ship, the
// character, and every container member (spec.md's "holderContainer
// direct-access" supplemented feature, alongside the typed accessors
// above).
func (f *Fit) Holders() []*holder.Holder {
	var out []*holder.Holder
	if f.ship != nil {
		out = append(out, f.ship)
	}
	if f.character != nil {
		out = append(out, f.character)
	}
	out = append(out, f.ShipMembers()...)
	out = append(out, f.CharacterMembers()...)
	return out
}

// --- structural mutation ---

// SetShip replaces the fit's ship, unregistering and detaching any
// previous one first.
func (f *Fit) SetShip(it *sde.ItemType) (*holder.Holder, error) {
	if f.ship != nil {
		f.tracker.UnregisterHolder(f.ship)
		f.ship.Detach()
		f.ship = nil
	}
	h := f.newHolder(holder.KindShip, it)
	h.Attach(f.tracker)
	f.ship = h
	if err := f.tracker.RegisterHolder(h); err != nil {
		h.Detach()
		f.ship = nil
		return nil, err
	}
	return h, nil
}

// SetCharacter replaces the fit's character, unregistering and
// detaching any previous one first.
func (f *Fit) SetCharacter(it *sde.ItemType) (*holder.Holder, error) {
	if f.character != nil {
		f.tracker.UnregisterHolder(f.character)
		f.character.Detach()
		f.character = nil
	}
	h := f.newHolder(holder.KindCharacter, it)
	h.Attach(f.tracker)
	f.character = h
	if err := f.tracker.RegisterHolder(h); err != nil {
		h.Detach()
		f.character = nil
		return nil, err
	}
	return h, nil
}

// AddModule fits a new module, attaching it to the link tracker.
func (f *Fit) AddModule(it *sde.ItemType) (*holder.Holder, error) {
	h := f.newHolder(holder.KindModule, it)
	if err := f.attachAndRegister(h); err != nil {
		return nil, err
	}
	f.modules = append(f.modules, h)
	return h, nil
}

// AddDrone fits a new drone.
func (f *Fit) AddDrone(it *sde.ItemType) (*holder.Holder, error) {
	h := f.newHolder(holder.KindDrone, it)
	if err := f.attachAndRegister(h); err != nil {
		return nil, err
	}
	f.drones = append(f.drones, h)
	return h, nil
}

// AddImplant fits a new implant.
func (f *Fit) AddImplant(it *sde.ItemType) (*holder.Holder, error) {
	h := f.newHolder(holder.KindImplant, it)
	if err := f.attachAndRegister(h); err != nil {
		return nil, err
	}
	f.implants = append(f.implants, h)
	return h, nil
}

// AddBooster fits a new booster.
func (f *Fit) AddBooster(it *sde.ItemType) (*holder.Holder, error) {
	h := f.newHolder(holder.KindBooster, it)
	if err := f.attachAndRegister(h); err != nil {
		return nil, err
	}
	f.boosters = append(f.boosters, h)
	return h, nil
}

// AddSkill trains a skill onto the character at the given level,
// replacing any holder already registered for the same skill type.
func (f *Fit) AddSkill(it *sde.ItemType, level int) (*holder.Holder, error) {
	if existing, ok := f.skills[it.ID]; ok {
		f.tracker.UnregisterHolder(existing)
		existing.Detach()
		delete(f.skills, it.ID)
	}
	h := f.newHolder(holder.KindSkill, it)
	h.SetLevel(level)
	if err := f.attachAndRegister(h); err != nil {
		return nil, err
	}
	f.skills[it.ID] = h
	return h, nil
}

func (f *Fit) attachAndRegister(h *holder.Holder) error {
	h.Attach(f.tracker)
	if err := f.tracker.RegisterHolder(h); err != nil {
		h.Detach()
		return err
	}
	return nil
}

// RemoveHolder detaches h and drops it from whichever set it belongs
// to, cascading eviction to every cached attribute that depended on it.
func (f *Fit) RemoveHolder(h *holder.Holder) {
	switch h.Kind() {
	case holder.KindShip:
		if f.ship == h {
			f.ship = nil
		}
	case holder.KindCharacter:
		if f.character == h {
			f.character = nil
		}
	case holder.KindModule:
		f.modules = removeHolder(f.modules, h)
		if c := h.Charge(); c != nil {
			f.tracker.UnregisterHolder(c)
			c.Detach()
			h.BindCharge(nil)
		}
	case holder.KindDrone:
		f.drones = removeHolder(f.drones, h)
	case holder.KindImplant:
		f.implants = removeHolder(f.implants, h)
	case holder.KindBooster:
		f.boosters = removeHolder(f.boosters, h)
	case holder.KindSkill:
		delete(f.skills, h.ItemType().ID)
	case holder.KindCharge:
		if m := h.Module(); m != nil {
			m.BindCharge(nil)
		}
	}
	f.tracker.UnregisterHolder(h)
	h.Detach()
}

func removeHolder(list []*holder.Holder, target *holder.Holder) []*holder.Holder {
	out := list[:0]
	for _, h := range list {
		if h != target {
			out = append(out, h)
		}
	}
	return out
}

// --- state, charge, projection ---

// SetState moves h to newState, reconciling link-tracker edges and
// clearing the holder's own cache. Rejects states beyond the item's
// highest allowed state.
func (f *Fit) SetState(h *holder.Holder, newState sde.State) error {
	if newState > h.MaxAllowedState() {
		return ErrStateNotAllowed
	}
	h.CommitState(newState)
	f.tracker.Rebuild()
	return nil
}

// LoadCharge binds charge into module's charge slot. charge must not
// already be loaded into a different module.
func (f *Fit) LoadCharge(module, charge *holder.Holder) error {
	if m := charge.Module(); m != nil && m != module {
		return ErrChargeAlreadyBound
	}
	if old := module.Charge(); old != nil && old != charge {
		f.tracker.UnregisterHolder(old)
		old.Detach()
	}
	module.BindCharge(charge)
	if !charge.IsAttached() {
		charge.Attach(f.tracker)
		if err := f.tracker.RegisterHolder(charge); err != nil {
			module.BindCharge(nil)
			charge.Detach()
			return err
		}
	}
	f.tracker.Rebuild()
	return nil
}

// UnloadCharge removes whatever charge is loaded into module, if any.
func (f *Fit) UnloadCharge(module *holder.Holder) {
	charge := module.Charge()
	if charge == nil {
		return
	}
	f.tracker.UnregisterHolder(charge)
	charge.Detach()
	module.BindCharge(nil)
	f.tracker.Rebuild()
}

// Recompute clears every holder's cached attribute values and
// rebuilds the link tracker's edge set from scratch, forcing the next
// read of any attribute to recompute from its live affectors. Intended
// for the façade's recompute route, not for routine use — every
// mutating method above already evicts exactly what changed.
func (f *Fit) Recompute() {
	for _, h := range f.Holders() {
		h.Attributes().Clear()
	}
	f.tracker.Rebuild()
}

// SetProjectionTarget anchors h's projected modifiers onto target,
// reconciling edges. Returns ErrNotTargeted if h's item isn't targeted.
func (f *Fit) SetProjectionTarget(h, target *holder.Holder) error {
	if err := h.SetProjectionTarget(target); err != nil {
		return err
	}
	f.tracker.Rebuild()
	return nil
}
