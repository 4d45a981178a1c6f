// Package sde is the static data cache: numeric-id lookups for item
// types, attribute metadata, and effects. It is read-only after load
// and may be shared across fits (spec §5).
package sde

import "context"

// Modifier is a compiled modifier record, as produced by the
// effect→modifier compiler this engine treats as an external,
// out-of-scope collaborator (spec §1b). Decoding the already-compiled
// JSON the SDE ships (see decode.go) is not "parsing an expression
// tree" — the expression tree was already reduced to this shape
// upstream.
type Modifier struct {
	State              State
	Context            Context
	Location           Location
	FilterType         FilterType
	FilterValue        int64
	Operator           Operator
	SourceAttributeID  int64
	TargetAttributeID  int64
}

// Effect is a static, ordered list of modifiers sharing one category.
type Effect struct {
	ID        int64
	Category  EffectCategory
	Modifiers []Modifier
}

// ItemType is static, shared, immutable item data. Identity is by ID.
type ItemType struct {
	ID         int64
	GroupID    int64
	CategoryID int64
	Attributes map[int64]float64 // attribute id -> default base value
	Effects    []Effect

	// Derived fields, computed once at load time (see deriveItemType in decode.go).
	RequiredSkills      map[int64]int // skill type id -> required level
	HighestAllowedState State
	Targeted            bool
	IsCapitalSize       bool
	SlotKind            SlotKind
}

// AttributeMeta is static attribute metadata.
type AttributeMeta struct {
	ID             int64
	DefaultValue   *float64 // nil => base value missing fails a read with no base
	Stackable      bool
	HighIsGood     bool
	MaxAttributeID *int64 // capping attribute id, if any
}

// Store resolves numeric ids to static data. Implementations are pure
// reads against immutable data; see SQLiteStore, PostgresStore, and
// the CachingStore decorator.
type Store interface {
	ItemType(ctx context.Context, typeID int64) (*ItemType, error)
	Attribute(ctx context.Context, attrID int64) (*AttributeMeta, error)
	Effect(ctx context.Context, effectID int64) (*Effect, error)
}
