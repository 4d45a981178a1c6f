// Package api is the HTTP façade spec.md §1 permits as "any programmatic
// entry point beyond unit tests": JSON in/out over internal/fit and
// internal/restrictions, no rendering, no session/auth, following the
// teacher's cmd/api/internal/handlers shape.
package api

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Sternrassler/eve-attrengine/internal/fit"
	"github.com/Sternrassler/eve-attrengine/internal/metrics"
	"github.com/Sternrassler/eve-attrengine/internal/sde"
	"github.com/Sternrassler/eve-attrengine/pkg/logger"
)

// FitStore holds every fit the façade currently knows about. fit.Fit
// isn't safe for concurrent use on its own (spec §5 assumes a single
// caller serializes its own access); the store's mutex is that
// serialization, applied fit-wide rather than per-field.
type FitStore struct {
	mu    sync.Mutex
	store sde.Store
	log   *logger.Logger
	fits  map[string]*fit.Fit
}

// NewFitStore returns an empty store backed by store for item lookups.
func NewFitStore(store sde.Store, log *logger.Logger) *FitStore {
	return &FitStore{store: store, log: log, fits: make(map[string]*fit.Fit)}
}

// Create starts a new, empty fit and returns its id.
func (s *FitStore) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.fits[id] = fit.New(s.store, s.log)
	metrics.FitsActive.Set(float64(len(s.fits)))
	return id
}

// Get returns the fit registered under id, if any.
func (s *FitStore) Get(id string) (*fit.Fit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.fits[id]
	return f, ok
}

// Delete removes the fit registered under id.
func (s *FitStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fits, id)
	metrics.FitsActive.Set(float64(len(s.fits)))
}

// Store returns the static data store backing every fit in this set,
// for handlers that need to resolve a type id before adding a holder.
func (s *FitStore) Store() sde.Store { return s.store }

// Lock acquires the store-wide serialization mutex for the duration of
// one request against a single fit, and returns the fit plus whether
// it exists. Callers must call the returned unlock func exactly once.
func (s *FitStore) Lock(id string) (f *fit.Fit, ok bool, unlock func()) {
	s.mu.Lock()
	f, ok = s.fits[id]
	if !ok {
		s.mu.Unlock()
		return nil, false, func() {}
	}
	return f, true, s.mu.Unlock
}
