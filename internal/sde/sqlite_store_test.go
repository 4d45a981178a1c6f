package sde

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	const schema = `
		CREATE TABLE types (
			_key INTEGER PRIMARY KEY,
			groupID INTEGER,
			categoryID INTEGER,
			requiredSkills TEXT
		);
		CREATE TABLE typeDogma (
			_key INTEGER PRIMARY KEY,
			dogmaAttributes TEXT,
			dogmaEffects TEXT
		);
		CREATE TABLE dogmaEffects (
			_key INTEGER PRIMARY KEY,
			categoryID INTEGER,
			modifierInfo TEXT
		);
		CREATE TABLE dogmaAttributes (
			_key INTEGER PRIMARY KEY,
			defaultValue REAL,
			stackable INTEGER,
			highIsGood INTEGER,
			maxAttributeID INTEGER
		);`
	_, err = conn.Exec(schema)
	require.NoError(t, err)

	_, err = conn.Exec(`INSERT INTO types (_key, groupID, categoryID, requiredSkills) VALUES
		(587, 419, ?, '{}')`, CategoryShip)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO typeDogma (_key, dogmaAttributes, dogmaEffects) VALUES
		(587, '[{"attributeID":38,"value":400}]', '[{"effectID":1,"isDefault":true}]')`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO dogmaEffects (_key, categoryID, modifierInfo) VALUES
		(1, 0, '[{"state":0,"context":0,"location":1,"filterType":0,"filterValue":0,"operator":6,"sourceAttributeId":50,"targetAttributeId":38}]')`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO dogmaAttributes (_key, defaultValue, stackable, highIsGood, maxAttributeID) VALUES
		(38, 400, 0, 1, NULL)`)
	require.NoError(t, err)

	return &SQLiteStore{conn: conn, path: ":memory:"}
}

func TestSQLiteStoreItemType(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	it, err := store.ItemType(ctx, 587)
	require.NoError(t, err)
	require.Equal(t, int64(419), it.GroupID)
	require.Equal(t, CategoryShip, it.CategoryID)
	require.Equal(t, 400.0, it.Attributes[38])
	require.Len(t, it.Effects, 1)
	require.Equal(t, EffectPassive, it.Effects[0].Category)
	require.Equal(t, StateOffline, it.HighestAllowedState)
}

func TestSQLiteStoreItemTypeNotFound(t *testing.T) {
	store := newTestSQLiteStore(t)
	_, err := store.ItemType(context.Background(), 99999)
	require.ErrorIs(t, err, ErrTypeNotFound)
}

func TestSQLiteStoreAttribute(t *testing.T) {
	store := newTestSQLiteStore(t)
	meta, err := store.Attribute(context.Background(), 38)
	require.NoError(t, err)
	require.NotNil(t, meta.DefaultValue)
	require.Equal(t, 400.0, *meta.DefaultValue)
	require.False(t, meta.Stackable)
	require.True(t, meta.HighIsGood)
	require.Nil(t, meta.MaxAttributeID)
}

func TestSQLiteStoreAttributeNotFound(t *testing.T) {
	store := newTestSQLiteStore(t)
	_, err := store.Attribute(context.Background(), 99999)
	require.ErrorIs(t, err, ErrAttributeNotFound)
}

func TestSQLiteStoreEffect(t *testing.T) {
	store := newTestSQLiteStore(t)
	eff, err := store.Effect(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, EffectPassive, eff.Category)
	require.Len(t, eff.Modifiers, 1)
	require.Equal(t, OpPostMul, eff.Modifiers[0].Operator)
}

func TestSQLiteStoreEffectNotFound(t *testing.T) {
	store := newTestSQLiteStore(t)
	_, err := store.Effect(context.Background(), 99999)
	require.ErrorIs(t, err, ErrEffectNotFound)
}
