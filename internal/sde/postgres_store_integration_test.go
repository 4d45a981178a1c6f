//go:build integration || !unit

package sde

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPostgresStoreIntegration exercises PostgresStore against a real
// Postgres instance. Gated behind an explicit opt-in so ordinary `go
// test` runs stay hermetic; set EVE_ATTRENGINE_PG_INTEGRATION=1 to run
// it against a local Docker daemon.
func TestPostgresStoreIntegration(t *testing.T) {
	if os.Getenv("EVE_ATTRENGINE_PG_INTEGRATION") != "1" {
		t.Skip("set EVE_ATTRENGINE_PG_INTEGRATION=1 to run against a real Postgres container")
	}

	tc := setupPostgresContainer(t)
	tc.createSchema(t)

	ctx := context.Background()
	_, err := tc.pool.Exec(ctx, `
		INSERT INTO types (id, group_id, category_id, required_skills) VALUES
			(648, 419, 6, '{}');
		INSERT INTO type_dogma (id, dogma_attributes, dogma_effects) VALUES
			(648, '[{"attributeID":38,"value":2500}]', '[]');
		INSERT INTO dogma_attributes (id, default_value, stackable, high_is_good, max_attribute_id) VALUES
			(38, 2500, false, true, NULL);
		INSERT INTO dogma_effects (id, category_id, modifier_info) VALUES
			(12, 0, '[]');
	`)
	require.NoError(t, err)

	store := NewPostgresStoreFromPool(tc.pool)

	it, err := store.ItemType(ctx, 648)
	require.NoError(t, err)
	assert.Equal(t, int64(419), it.GroupID)
	assert.Equal(t, 2500.0, it.Attributes[38])

	meta, err := store.Attribute(ctx, 38)
	require.NoError(t, err)
	assert.True(t, meta.HighIsGood)
	require.NotNil(t, meta.DefaultValue)
	assert.Equal(t, 2500.0, *meta.DefaultValue)

	eff, err := store.Effect(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, EffectPassive, eff.Category)

	_, err = store.ItemType(ctx, 999999)
	assert.ErrorIs(t, err, ErrTypeNotFound)
}
