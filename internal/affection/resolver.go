// Package affection resolves a modifier anchored at a source holder
// into the concrete target holders it currently affects (spec §4.3).
// It sits above internal/holder in the dependency graph and depends
// on it concretely; it defines its own FitView rather than importing
// internal/fit, since fit depends on affection (not the reverse).
package affection

import (
	"github.com/Sternrassler/eve-attrengine/internal/holder"
	"github.com/Sternrassler/eve-attrengine/internal/sde"
)

// FitView is the narrow view of a fit the resolver needs to anchor
// location lookups. internal/fit.Fit implements this.
type FitView interface {
	Ship() (*holder.Holder, bool)
	Character() (*holder.Holder, bool)
	// ShipMembers are the holders belonging to the ship container:
	// modules, drones, and charges.
	ShipMembers() []*holder.Holder
	// CharacterMembers are the holders belonging to the character
	// container: skills, implants, and boosters.
	CharacterMembers() []*holder.Holder
}

// Resolve returns the concrete targets a modifier anchored at source
// currently affects within fit. An empty, non-error result means the
// modifier currently has no targets (e.g. gang context, unresolved
// projection, area/space locations) — not an error condition.
func Resolve(source *holder.Holder, mod sde.Modifier, fit FitView) ([]*holder.Holder, error) {
	switch mod.Context {
	case sde.ContextGang:
		// Gang-mate propagation is a schema-only extension point
		// (spec §9's open question); no live target set is wired.
		return nil, nil
	case sde.ContextProjected:
		target, ok := source.ProjectionTarget()
		if !ok {
			return nil, nil
		}
		return resolveLocation(source, mod, fit, target)
	default: // ContextLocal
		return resolveLocation(source, mod, fit, nil)
	}
}

// resolveLocation implements the location table in spec §4.3.
// projectionTarget is non-nil only when mod.Context is projected.
func resolveLocation(source *holder.Holder, mod sde.Modifier, fit FitView, projectionTarget *holder.Holder) ([]*holder.Holder, error) {
	switch mod.Location {
	case sde.LocationSelf:
		if mod.FilterType == sde.FilterNone {
			return []*holder.Holder{source}, nil
		}
		// A filtered self names the container the source occupies,
		// which exists only when the source is the ship or character.
		if ship, ok := fit.Ship(); ok && ship == source {
			return applyFilter(fit.ShipMembers(), mod, source), nil
		}
		if character, ok := fit.Character(); ok && character == source {
			return applyFilter(fit.CharacterMembers(), mod, source), nil
		}
		return nil, ErrBadContainer

	case sde.LocationCharacter:
		character, ok := fit.Character()
		if !ok {
			return nil, nil
		}
		if mod.FilterType == sde.FilterNone {
			return []*holder.Holder{character}, nil
		}
		return applyFilter(fit.CharacterMembers(), mod, source), nil

	case sde.LocationShip:
		ship, ok := fit.Ship()
		if !ok {
			return nil, nil
		}
		if mod.FilterType == sde.FilterNone {
			return []*holder.Holder{ship}, nil
		}
		return applyFilter(fit.ShipMembers(), mod, source), nil

	case sde.LocationTarget:
		if projectionTarget == nil {
			return nil, nil
		}
		if mod.FilterType != sde.FilterNone {
			return nil, nil
		}
		return []*holder.Holder{projectionTarget}, nil

	case sde.LocationOther:
		other, ok := source.Other()
		if !ok {
			return nil, nil
		}
		return []*holder.Holder{other}, nil

	case sde.LocationArea, sde.LocationSpace:
		return nil, nil

	default:
		return nil, nil
	}
}

// applyFilter narrows a container's members per spec §4.3's
// group/skill filter rules. members must already exclude the
// container holder itself.
func applyFilter(members []*holder.Holder, mod sde.Modifier, source *holder.Holder) []*holder.Holder {
	switch mod.FilterType {
	case sde.FilterAll:
		return members

	case sde.FilterGroup:
		var out []*holder.Holder
		for _, m := range members {
			if m.ItemType().GroupID == mod.FilterValue {
				out = append(out, m)
			}
		}
		return out

	case sde.FilterSkill:
		requiredSkillID := mod.FilterValue
		if requiredSkillID == sde.SelfTypeFilterValue {
			requiredSkillID = source.ItemType().ID
		}
		var out []*holder.Holder
		for _, m := range members {
			if _, ok := m.ItemType().RequiredSkills[requiredSkillID]; ok {
				out = append(out, m)
			}
		}
		return out

	default:
		return nil
	}
}
