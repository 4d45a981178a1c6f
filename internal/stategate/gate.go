// Package stategate decides which of a holder's modifiers are "live"
// given its current state and context (spec §4.4). It is pure: no
// holder or tracker types, just functions over sde.Modifier values, so
// internal/linktracker can reconcile edges without this package
// needing to know anything about the fit graph.
package stategate

import "github.com/Sternrassler/eve-attrengine/internal/sde"

// IsLive reports whether mod is currently active, given its source
// holder's state and fit/projection/gang status.
func IsLive(mod sde.Modifier, sourceState sde.State, attached, hasProjectionTarget, gangEnabled bool) bool {
	if sourceState < mod.State {
		return false
	}
	switch mod.Context {
	case sde.ContextLocal:
		return attached
	case sde.ContextProjected:
		return hasProjectionTarget
	case sde.ContextGang:
		return gangEnabled
	default:
		return false
	}
}

// LiveIndices returns the indices into mods that are currently live.
func LiveIndices(mods []sde.Modifier, state sde.State, attached, hasProjectionTarget, gangEnabled bool) []int {
	var live []int
	for i, m := range mods {
		if IsLive(m, state, attached, hasProjectionTarget, gangEnabled) {
			live = append(live, i)
		}
	}
	return live
}

// Diff is the symmetric difference between the live modifier sets of
// two states (spec §4.4 step 2). internal/linktracker does not use it:
// it rebuilds its whole edge set on a state switch instead.
type Diff struct {
	Added   []int
	Removed []int
}

// DiffStates computes which modifier indices became live and which
// stopped being live moving from oldState to newState, holding every
// other liveness factor fixed.
func DiffStates(mods []sde.Modifier, oldState, newState sde.State, attached, hasProjectionTarget, gangEnabled bool) Diff {
	oldLive := liveSet(mods, oldState, attached, hasProjectionTarget, gangEnabled)
	newLive := liveSet(mods, newState, attached, hasProjectionTarget, gangEnabled)

	var d Diff
	for i := range mods {
		was, is := oldLive[i], newLive[i]
		switch {
		case is && !was:
			d.Added = append(d.Added, i)
		case was && !is:
			d.Removed = append(d.Removed, i)
		}
	}
	return d
}

func liveSet(mods []sde.Modifier, state sde.State, attached, hasProjectionTarget, gangEnabled bool) map[int]bool {
	set := make(map[int]bool, len(mods))
	for i, m := range mods {
		if IsLive(m, state, attached, hasProjectionTarget, gangEnabled) {
			set[i] = true
		}
	}
	return set
}
