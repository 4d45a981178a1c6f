// Package attrmap implements the per-holder attribute cache: the
// entry point for attribute reads and the on-miss calculation
// described in spec §4.1. It defines the Holder and Tracker
// interfaces it needs from its collaborators rather than importing
// their concrete packages, keeping the dependency graph acyclic —
// internal/holder and internal/linktracker depend on attrmap, not the
// reverse.
package attrmap

import (
	"context"
	"fmt"
	"time"

	"github.com/Sternrassler/eve-attrengine/internal/metrics"
	"github.com/Sternrassler/eve-attrengine/internal/sde"
	"github.com/Sternrassler/eve-attrengine/pkg/logger"
)

// Holder is the narrow view of a fit holder that attrmap needs.
// internal/holder.Holder implements this.
type Holder interface {
	HolderID() int64
	ItemType() *sde.ItemType
	IsAttached() bool
	Level() (int, bool)
	Attribute(ctx context.Context, attrID int64) (float64, error)
}

// Affector is one live (source holder, modifier) pair currently
// affecting a target attribute, as returned by Tracker.GetAffectors.
type Affector struct {
	Source   Holder
	Modifier sde.Modifier
}

// Tracker is the narrow view of the fit-wide link tracker that
// attrmap needs. internal/linktracker.Tracker implements this.
type Tracker interface {
	GetAffectors(ctx context.Context, h Holder, attrID int64) ([]Affector, error)
	RecordAffectorDependency(target Holder, targetAttrID int64, source Holder, sourceAttrID int64)
	RecordCapDependency(h Holder, attrID int64, capAttrID int64)
	ClearDependents(h Holder, attrID int64)
}

// Map is one holder's attribute cache.
type Map struct {
	holder  Holder
	store   sde.Store
	tracker Tracker
	log     *logger.Logger
	cache   map[int64]float64
}

// New returns an attribute map for holder. tracker is nil until the
// holder is attached to a fit.
func New(holder Holder, store sde.Store, log *logger.Logger) *Map {
	return &Map{holder: holder, store: store, log: log, cache: make(map[int64]float64)}
}

// SetTracker binds or clears the tracker backing this map and clears
// the cache — spec §3's "cache is cleared on any attach/detach."
func (m *Map) SetTracker(tracker Tracker) {
	m.tracker = tracker
	m.Clear()
}

// Has reports whether attrID currently reads successfully.
func (m *Map) Has(ctx context.Context, attrID int64) bool {
	_, err := m.Get(ctx, attrID)
	return err == nil
}

// Get reads attrID per the contract in spec §4.1.
func (m *Map) Get(ctx context.Context, attrID int64) (float64, error) {
	if lvl, ok := m.holder.Level(); ok && attrID == sde.SkillLevelAttributeID {
		return float64(lvl), nil
	}

	if !m.holder.IsAttached() {
		if v, ok := m.holder.ItemType().Attributes[attrID]; ok {
			return v, nil
		}
		return 0, fmt.Errorf("%w: attribute %d on detached holder %d", ErrNotFound, attrID, m.holder.HolderID())
	}

	if v, ok := m.cache[attrID]; ok {
		metrics.AttributeCacheHitsTotal.Inc()
		return v, nil
	}

	metrics.AttributeCacheMissesTotal.Inc()
	start := time.Now()
	v, err := m.compute(ctx, attrID)
	metrics.AttributeComputeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return 0, err
	}
	m.cache[attrID] = v
	return v, nil
}

// Set overrides attrID's cached value and evicts every cached value
// elsewhere that depended on the previous one.
func (m *Map) Set(attrID int64, value float64) {
	m.cache[attrID] = value
	if m.tracker != nil {
		m.tracker.ClearDependents(m.holder, attrID)
	}
}

// Delete evicts attrID's cached value, if any, and its dependents.
func (m *Map) Delete(attrID int64) {
	delete(m.cache, attrID)
	if m.tracker != nil {
		m.tracker.ClearDependents(m.holder, attrID)
	}
}

// Clear evicts every cached entry on this holder without cascading to
// dependents elsewhere.
func (m *Map) Clear() {
	m.cache = make(map[int64]float64)
}

// Keys returns the attribute ids currently cached.
func (m *Map) Keys() []int64 {
	keys := make([]int64, 0, len(m.cache))
	for k := range m.cache {
		keys = append(keys, k)
	}
	return keys
}

// EvictAttribute removes one cached entry without cascading further.
// Exported so a Tracker implementation can reach into this holder's
// map during a dependency cascade (linktracker's local Holder
// interface requires this method, matching it structurally rather
// than importing attrmap).
func (m *Map) EvictAttribute(attrID int64) {
	delete(m.cache, attrID)
}
