package sde

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore serves static data from a read-only SQLite mirror of
// CCP's Static Data Export, following the teacher's evedb.Open /
// dogma.GetModuleEffects conventions.
type SQLiteStore struct {
	conn *sql.DB
	path string
}

// OpenSQLiteStore opens a read-only connection to the SDE database.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("sde: open sqlite: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sde: ping sqlite: %w", err)
	}
	return &SQLiteStore{conn: conn, path: path}, nil
}

// Close closes the underlying connection.
func (s *SQLiteStore) Close() error { return s.conn.Close() }

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

// ItemType resolves a type id to its static item data, decoding the
// typeDogma.dogmaAttributes/dogmaEffects JSON columns and recursively
// resolving each referenced effect.
func (s *SQLiteStore) ItemType(ctx context.Context, typeID int64) (*ItemType, error) {
	const query = `
		SELECT t.groupID, t.categoryID, t.requiredSkills,
		       td.dogmaAttributes, td.dogmaEffects
		FROM types t
		LEFT JOIN typeDogma td ON t._key = td._key
		WHERE t._key = ?`

	var groupID, categoryID int64
	var requiredSkillsJSON, dogmaAttribsJSON, dogmaEffectsJSON sql.NullString

	row := s.conn.QueryRowContext(ctx, query, typeID)
	err := row.Scan(&groupID, &categoryID, &requiredSkillsJSON, &dogmaAttribsJSON, &dogmaEffectsJSON)
	if err == sql.ErrNoRows {
		return nil, ErrTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sde: query type %d: %w", typeID, err)
	}

	it := &ItemType{ID: typeID, GroupID: groupID, CategoryID: categoryID}

	it.Attributes, err = decodeDogmaAttributes([]byte(dogmaAttribsJSON.String))
	if err != nil {
		return nil, fmt.Errorf("sde: decode dogma attributes for type %d: %w", typeID, err)
	}

	it.RequiredSkills, err = decodeRequiredSkills([]byte(requiredSkillsJSON.String))
	if err != nil {
		return nil, fmt.Errorf("sde: decode required skills for type %d: %w", typeID, err)
	}

	refs, err := decodeEffectRefs([]byte(dogmaEffectsJSON.String))
	if err != nil {
		return nil, fmt.Errorf("sde: decode effect refs for type %d: %w", typeID, err)
	}
	for _, ref := range refs {
		eff, err := s.Effect(ctx, ref.EffectID)
		if err != nil {
			// An individual unloadable effect shouldn't fail the whole
			// type; the attribute calculator already degrades gracefully
			// around missing pieces.
			continue
		}
		it.Effects = append(it.Effects, *eff)
	}

	deriveItemType(it)
	return it, nil
}

// Attribute resolves an attribute id to its static metadata.
func (s *SQLiteStore) Attribute(ctx context.Context, attrID int64) (*AttributeMeta, error) {
	const query = `
		SELECT defaultValue, stackable, highIsGood, maxAttributeID
		FROM dogmaAttributes
		WHERE _key = ?`

	var defaultValue sql.NullFloat64
	var stackable, highIsGood int
	var maxAttributeID sql.NullInt64

	row := s.conn.QueryRowContext(ctx, query, attrID)
	err := row.Scan(&defaultValue, &stackable, &highIsGood, &maxAttributeID)
	if err == sql.ErrNoRows {
		return nil, ErrAttributeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sde: query attribute %d: %w", attrID, err)
	}

	meta := &AttributeMeta{
		ID:         attrID,
		Stackable:  stackable != 0,
		HighIsGood: highIsGood != 0,
	}
	if defaultValue.Valid {
		v := defaultValue.Float64
		meta.DefaultValue = &v
	}
	if maxAttributeID.Valid {
		v := maxAttributeID.Int64
		meta.MaxAttributeID = &v
	}
	return meta, nil
}

// Effect resolves an effect id to its category and compiled modifiers.
func (s *SQLiteStore) Effect(ctx context.Context, effectID int64) (*Effect, error) {
	const query = `
		SELECT categoryID, modifierInfo
		FROM dogmaEffects
		WHERE _key = ?`

	var categoryID int
	var modifierInfoJSON sql.NullString

	row := s.conn.QueryRowContext(ctx, query, effectID)
	err := row.Scan(&categoryID, &modifierInfoJSON)
	if err == sql.ErrNoRows {
		return nil, ErrEffectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sde: query effect %d: %w", effectID, err)
	}

	mods, err := decodeModifiers([]byte(modifierInfoJSON.String))
	if err != nil {
		return nil, fmt.Errorf("sde: decode modifierInfo for effect %d: %w", effectID, err)
	}

	return &Effect{ID: effectID, Category: EffectCategory(categoryID), Modifiers: mods}, nil
}
