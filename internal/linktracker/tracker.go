// Package linktracker is the fit-wide registry of live modifier edges
// (spec §4.2): for each (target holder, target attribute) it tracks
// the set of (source holder, modifier) affectors currently applying.
// It implements attrmap.Tracker so every holder's attribute map routes
// its compute-time affector lookups and dependency bookkeeping through
// one shared Tracker per fit.
package linktracker

import (
	"context"
	"fmt"

	"github.com/Sternrassler/eve-attrengine/internal/affection"
	"github.com/Sternrassler/eve-attrengine/internal/attrmap"
	"github.com/Sternrassler/eve-attrengine/internal/dependency"
	"github.com/Sternrassler/eve-attrengine/internal/holder"
	"github.com/Sternrassler/eve-attrengine/internal/metrics"
	"github.com/Sternrassler/eve-attrengine/internal/sde"
	"github.com/Sternrassler/eve-attrengine/internal/stategate"
	"github.com/Sternrassler/eve-attrengine/pkg/logger"
)

// edgeKey identifies one target (holder, attribute) pair.
type edgeKey struct {
	targetID int64
	attrID   int64
}

// edge is one live (source, modifier) -> (target, attribute) link.
type edge struct {
	source *holder.Holder
	mod    sde.Modifier
	target *holder.Holder
	attrID int64
}

// evictor is the narrow capability linktracker needs to clear one
// cached entry on a holder's attribute map. *attrmap.Map satisfies
// this structurally without linktracker importing attrmap's Map type.
type evictor interface {
	EvictAttribute(attrID int64)
}

// gangPathEnabled is always false: gang-mate propagation has no wired
// target set (spec §9's open question).
const gangPathEnabled = false

// Tracker is the single per-fit link tracker.
//
// Edges are recomputed from scratch on every structural change
// (RegisterHolder, UnregisterHolder, Rebuild) rather than diffed
// incrementally. Affection resolution for container-filtered modifiers
// (location=ship/character, filter=all/group/skill) depends on the
// fit's current member list, so adding or removing ANY holder can
// change the live target set of modifiers belonging to OTHER,
// already-registered holders — incremental per-holder diffing would
// still need to re-resolve those modifiers, so a full rebuild is both
// simpler and no less correct at the small, single-fit scale spec §5
// assumes.
type Tracker struct {
	fit affection.FitView
	log *logger.Logger

	holders  map[int64]*holder.Holder
	evictors map[int64]evictor

	edges         []edge
	edgesByTarget map[edgeKey][]edge

	graph *dependency.Graph

	metricsLabel string
}

// New returns an empty Tracker anchored at fit.
func New(fit affection.FitView, log *logger.Logger) *Tracker {
	t := &Tracker{
		fit:           fit,
		log:           log,
		holders:       make(map[int64]*holder.Holder),
		evictors:      make(map[int64]evictor),
		edgesByTarget: make(map[edgeKey][]edge),
		graph:         dependency.NewGraph(),
	}
	t.metricsLabel = fmt.Sprintf("%p", t)
	return t
}

// RegisterHolder validates h's own live modifiers resolve cleanly
// (spec §7's bad-container error, raised at insertion time), then adds
// h and rebuilds the fit-wide edge set.
func (t *Tracker) RegisterHolder(h *holder.Holder) error {
	mods := flattenModifiers(h)
	live := stategate.LiveIndices(mods, h.State(), h.IsAttached(), hasProjectionTarget(h), gangPathEnabled)
	for _, idx := range live {
		if _, err := affection.Resolve(h, mods[idx], t.fit); err != nil {
			return err
		}
	}

	t.holders[h.HolderID()] = h
	t.evictors[h.HolderID()] = h.Attributes()
	t.rebuild()
	return nil
}

// UnregisterHolder removes h and rebuilds the fit-wide edge set.
func (t *Tracker) UnregisterHolder(h *holder.Holder) {
	delete(t.holders, h.HolderID())
	delete(t.evictors, h.HolderID())
	t.graph.RemoveHolder(h.HolderID())
	t.rebuild()
}

// Rebuild recomputes the fit-wide edge set after a structural change
// that doesn't add or remove a holder outright — a state change, a
// charge bind/unbind, or a projection target change. Callers
// (internal/fit) commit the underlying change to the holder(s)
// themselves before calling Rebuild.
func (t *Tracker) Rebuild() {
	t.rebuild()
}

// --- attrmap.Tracker ---

// GetAffectors implements attrmap.Tracker.
func (t *Tracker) GetAffectors(ctx context.Context, h attrmap.Holder, attrID int64) ([]attrmap.Affector, error) {
	edges := t.edgesByTarget[edgeKey{targetID: h.HolderID(), attrID: attrID}]
	out := make([]attrmap.Affector, 0, len(edges))
	for _, e := range edges {
		out = append(out, attrmap.Affector{Source: e.source, Modifier: e.mod})
	}
	return out, nil
}

// RecordAffectorDependency implements attrmap.Tracker.
func (t *Tracker) RecordAffectorDependency(target attrmap.Holder, targetAttrID int64, source attrmap.Holder, sourceAttrID int64) {
	t.graph.AddDependency(
		dependency.Key{HolderID: source.HolderID(), AttrID: sourceAttrID},
		dependency.Key{HolderID: target.HolderID(), AttrID: targetAttrID},
	)
}

// RecordCapDependency implements attrmap.Tracker.
func (t *Tracker) RecordCapDependency(h attrmap.Holder, attrID int64, capAttrID int64) {
	t.graph.AddDependency(
		dependency.Key{HolderID: h.HolderID(), AttrID: capAttrID},
		dependency.Key{HolderID: h.HolderID(), AttrID: attrID},
	)
}

// ClearDependents implements attrmap.Tracker: cascades eviction to
// every cached attribute that depended on (h, attrID), not including
// (h, attrID) itself — the caller already holds its fresh value.
func (t *Tracker) ClearDependents(h attrmap.Holder, attrID int64) {
	root := dependency.Key{HolderID: h.HolderID(), AttrID: attrID}
	first := true
	t.graph.Evict(root, func(k dependency.Key) {
		if first {
			first = false
			return
		}
		t.evict(k)
	})
}

// --- internals ---

func hasProjectionTarget(h *holder.Holder) bool {
	_, ok := h.ProjectionTarget()
	return ok
}

// flattenModifiers returns h's item's modifiers across all effects, in
// a stable order matching the item type's effect/modifier ordering.
func flattenModifiers(h *holder.Holder) []sde.Modifier {
	var mods []sde.Modifier
	for _, eff := range h.ItemType().Effects {
		mods = append(mods, eff.Modifiers...)
	}
	return mods
}

func (t *Tracker) evict(k dependency.Key) {
	if ev, ok := t.evictors[k.HolderID]; ok {
		ev.EvictAttribute(k.AttrID)
	}
}

// evictCascade evicts key itself and everything transitively
// depending on it, used when a structural rebuild changes an edge's
// target attribute directly (unlike ClearDependents, which is called
// on a manual Set/Delete that already holds the fresh root value). It
// returns the number of cache entries evicted, for the invalidation
// cascade size metric.
func (t *Tracker) evictCascade(key dependency.Key) int {
	count := 0
	t.graph.Evict(key, func(k dependency.Key) {
		count++
		t.evict(k)
	})
	return count
}

// rebuild recomputes every live edge across every registered holder
// and evicts exactly the target keys whose affector set changed.
func (t *Tracker) rebuild() {
	newEdges := make([]edge, 0, len(t.edges))
	newIndex := make(map[edgeKey][]edge, len(t.edgesByTarget))

	for _, h := range t.holders {
		mods := flattenModifiers(h)
		live := stategate.LiveIndices(mods, h.State(), h.IsAttached(), hasProjectionTarget(h), gangPathEnabled)
		for _, idx := range live {
			mod := mods[idx]
			targets, err := affection.Resolve(h, mod, t.fit)
			if err != nil {
				// Already validated at RegisterHolder time for this
				// holder's own modifiers; unexpected here, so degrade
				// by skipping rather than failing the whole rebuild.
				continue
			}
			for _, target := range targets {
				e := edge{source: h, mod: mod, target: target, attrID: mod.TargetAttributeID}
				newEdges = append(newEdges, e)
				k := edgeKey{targetID: target.HolderID(), attrID: mod.TargetAttributeID}
				newIndex[k] = append(newIndex[k], e)
			}
		}
	}

	changed := changedTargets(t.edgesByTarget, newIndex)
	t.edges = newEdges
	t.edgesByTarget = newIndex
	metrics.LinkTrackerEdgesTotal.WithLabelValues(t.metricsLabel).Set(float64(len(newEdges)))

	evicted := 0
	for _, k := range changed {
		evicted += t.evictCascade(dependency.Key{HolderID: k.targetID, AttrID: k.attrID})
	}
	if len(changed) > 0 {
		metrics.InvalidationCascadeSize.Observe(float64(evicted))
	}
}

// changedTargets returns every edgeKey whose affector set differs
// between old and new (added, removed, or reshuffled).
func changedTargets(old, new map[edgeKey][]edge) []edgeKey {
	seen := make(map[edgeKey]bool)
	var out []edgeKey
	for k := range old {
		if !seen[k] {
			seen[k] = true
			if !sameEdgeSet(old[k], new[k]) {
				out = append(out, k)
			}
		}
	}
	for k := range new {
		if !seen[k] {
			seen[k] = true
			if !sameEdgeSet(old[k], new[k]) {
				out = append(out, k)
			}
		}
	}
	return out
}

func sameEdgeSet(a, b []edge) bool {
	if len(a) != len(b) {
		return false
	}
	for _, ea := range a {
		found := false
		for _, eb := range b {
			if ea.source.HolderID() == eb.source.HolderID() && ea.mod == eb.mod {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
