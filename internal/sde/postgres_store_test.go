package sde

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStoreAttributeDecodesMetadata(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	maxAttr := int64(500)
	rows := pgxmock.NewRows([]string{"default_value", "stackable", "high_is_good", "max_attribute_id"}).
		AddRow(nil, true, true, &maxAttr)
	mock.ExpectQuery("SELECT default_value, stackable, high_is_good, max_attribute_id").
		WithArgs(int64(20)).
		WillReturnRows(rows)

	s := newPostgresStoreFromDBPool(mock)
	meta, err := s.Attribute(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, int64(20), meta.ID)
	assert.True(t, meta.Stackable)
	assert.True(t, meta.HighIsGood)
	require.NotNil(t, meta.MaxAttributeID)
	assert.Equal(t, maxAttr, *meta.MaxAttributeID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreAttributeNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"default_value", "stackable", "high_is_good", "max_attribute_id"})
	mock.ExpectQuery("SELECT default_value, stackable, high_is_good, max_attribute_id").
		WithArgs(int64(999)).
		WillReturnRows(rows)

	s := newPostgresStoreFromDBPool(mock)
	_, err = s.Attribute(context.Background(), 999)
	assert.ErrorIs(t, err, ErrAttributeNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreEffectDecodesModifiers(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	modifierJSON := []byte(`[{"state":0,"context":0,"location":3,"filterType":1,"filterValue":0,"operator":6,"sourceAttributeId":20,"targetAttributeId":38}]`)
	rows := pgxmock.NewRows([]string{"category_id", "modifier_info"}).
		AddRow(0, modifierJSON)
	mock.ExpectQuery("SELECT category_id, modifier_info").
		WithArgs(int64(12)).
		WillReturnRows(rows)

	s := newPostgresStoreFromDBPool(mock)
	eff, err := s.Effect(context.Background(), 12)
	require.NoError(t, err)
	require.Len(t, eff.Modifiers, 1)
	assert.Equal(t, OpPostMul, eff.Modifiers[0].Operator)
	assert.Equal(t, int64(38), eff.Modifiers[0].TargetAttributeID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreItemTypeJoinsEffects(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	typeRows := pgxmock.NewRows([]string{"group_id", "category_id", "required_skills", "dogma_attributes", "dogma_effects"}).
		AddRow(int64(100), CategoryModule, []byte(`{}`), []byte(`[{"attributeID":20,"value":10}]`), []byte(`[{"effectID":12,"isDefault":true}]`))
	mock.ExpectQuery("SELECT t.group_id, t.category_id, t.required_skills").
		WithArgs(int64(1)).
		WillReturnRows(typeRows)

	effectRows := pgxmock.NewRows([]string{"category_id", "modifier_info"}).
		AddRow(0, []byte(`[]`))
	mock.ExpectQuery("SELECT category_id, modifier_info").
		WithArgs(int64(12)).
		WillReturnRows(effectRows)

	s := newPostgresStoreFromDBPool(mock)
	it, err := s.ItemType(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), it.GroupID)
	assert.Equal(t, CategoryModule, it.CategoryID)
	assert.Equal(t, 10.0, it.Attributes[20])
	require.Len(t, it.Effects, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
