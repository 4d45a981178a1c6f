package sde

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dbPool is the narrow slice of pgxpool.Pool this store needs, so
// tests can substitute pgxmock instead of a live connection.
type dbPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore serves static data from a Postgres mirror of the SDE,
// for deployments that keep their static tables alongside application
// data instead of shipping a separate SQLite file. Implements the same
// Store contract as SQLiteStore against an equivalent schema.
type PostgresStore struct {
	pool dbPool
}

// OpenPostgresStore connects to Postgres using the given DSN.
func OpenPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("sde: open postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("sde: ping postgres: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresStoreFromPool wraps an already-configured pool, letting
// callers share one pool across this store and other subsystems.
func NewPostgresStoreFromPool(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// newPostgresStoreFromDBPool wraps any dbPool, letting tests substitute
// pgxmock for a live connection.
func newPostgresStoreFromDBPool(pool dbPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Close closes the underlying pool unconditionally, including a pool
// passed in through NewPostgresStoreFromPool.
func (s *PostgresStore) Close() { s.pool.Close() }

func (s *PostgresStore) ItemType(ctx context.Context, typeID int64) (*ItemType, error) {
	const query = `
		SELECT t.group_id, t.category_id, t.required_skills,
		       td.dogma_attributes, td.dogma_effects
		FROM types t
		LEFT JOIN type_dogma td ON t.id = td.id
		WHERE t.id = $1`

	var groupID, categoryID int64
	var requiredSkillsJSON, dogmaAttribsJSON, dogmaEffectsJSON []byte

	row := s.pool.QueryRow(ctx, query, typeID)
	err := row.Scan(&groupID, &categoryID, &requiredSkillsJSON, &dogmaAttribsJSON, &dogmaEffectsJSON)
	if err == pgx.ErrNoRows {
		return nil, ErrTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sde: query type %d: %w", typeID, err)
	}

	it := &ItemType{ID: typeID, GroupID: groupID, CategoryID: categoryID}

	it.Attributes, err = decodeDogmaAttributes(dogmaAttribsJSON)
	if err != nil {
		return nil, fmt.Errorf("sde: decode dogma attributes for type %d: %w", typeID, err)
	}

	it.RequiredSkills, err = decodeRequiredSkills(requiredSkillsJSON)
	if err != nil {
		return nil, fmt.Errorf("sde: decode required skills for type %d: %w", typeID, err)
	}

	refs, err := decodeEffectRefs(dogmaEffectsJSON)
	if err != nil {
		return nil, fmt.Errorf("sde: decode effect refs for type %d: %w", typeID, err)
	}
	for _, ref := range refs {
		eff, err := s.Effect(ctx, ref.EffectID)
		if err != nil {
			continue
		}
		it.Effects = append(it.Effects, *eff)
	}

	deriveItemType(it)
	return it, nil
}

func (s *PostgresStore) Attribute(ctx context.Context, attrID int64) (*AttributeMeta, error) {
	const query = `
		SELECT default_value, stackable, high_is_good, max_attribute_id
		FROM dogma_attributes
		WHERE id = $1`

	var defaultValue *float64
	var stackable, highIsGood bool
	var maxAttributeID *int64

	row := s.pool.QueryRow(ctx, query, attrID)
	err := row.Scan(&defaultValue, &stackable, &highIsGood, &maxAttributeID)
	if err == pgx.ErrNoRows {
		return nil, ErrAttributeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sde: query attribute %d: %w", attrID, err)
	}

	return &AttributeMeta{
		ID:             attrID,
		DefaultValue:   defaultValue,
		Stackable:      stackable,
		HighIsGood:     highIsGood,
		MaxAttributeID: maxAttributeID,
	}, nil
}

func (s *PostgresStore) Effect(ctx context.Context, effectID int64) (*Effect, error) {
	const query = `
		SELECT category_id, modifier_info
		FROM dogma_effects
		WHERE id = $1`

	var categoryID int
	var modifierInfoJSON []byte

	row := s.pool.QueryRow(ctx, query, effectID)
	err := row.Scan(&categoryID, &modifierInfoJSON)
	if err == pgx.ErrNoRows {
		return nil, ErrEffectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sde: query effect %d: %w", effectID, err)
	}

	mods, err := decodeModifiers(modifierInfoJSON)
	if err != nil {
		return nil, fmt.Errorf("sde: decode modifier_info for effect %d: %w", effectID, err)
	}

	return &Effect{ID: effectID, Category: EffectCategory(categoryID), Modifiers: mods}, nil
}
