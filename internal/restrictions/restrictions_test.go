package restrictions

import (
	"context"
	"testing"

	"github.com/Sternrassler/eve-attrengine/internal/fit"
	"github.com/Sternrassler/eve-attrengine/internal/sde"
	"github.com/Sternrassler/eve-attrengine/pkg/logger"
)

type fakeStore struct {
	attrs map[int64]*sde.AttributeMeta
}

func newFakeStore() *fakeStore {
	return &fakeStore{attrs: make(map[int64]*sde.AttributeMeta)}
}

func (s *fakeStore) withAttr(id int64, meta *sde.AttributeMeta) *fakeStore {
	s.attrs[id] = meta
	return s
}

func (s *fakeStore) ItemType(ctx context.Context, typeID int64) (*sde.ItemType, error) {
	return nil, nil
}

func (s *fakeStore) Attribute(ctx context.Context, attrID int64) (*sde.AttributeMeta, error) {
	if m, ok := s.attrs[attrID]; ok {
		return m, nil
	}
	return nil, sde.ErrAttributeNotFound
}

func (s *fakeStore) Effect(ctx context.Context, effectID int64) (*sde.Effect, error) {
	return nil, nil
}

func TestSlotCountRestrictionFlagsOverfittedHighSlots(t *testing.T) {
	store := newFakeStore().withAttr(sde.AttributeHighSlots, &sde.AttributeMeta{ID: sde.AttributeHighSlots})
	f := fit.New(store, logger.NewNoop())
	if _, err := f.SetShip(&sde.ItemType{ID: 1, CategoryID: sde.CategoryShip, Attributes: map[int64]float64{sde.AttributeHighSlots: 1}}); err != nil {
		t.Fatalf("SetShip: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := f.AddModule(&sde.ItemType{ID: int64(10 + i), CategoryID: sde.CategoryModule, SlotKind: sde.SlotHigh}); err != nil {
			t.Fatalf("AddModule: %v", err)
		}
	}

	violations, err := SlotCountRestriction{}.Validate(context.Background(), f)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(violations) != 1 {
		t.Fatalf("want 1 violation, got %d: %+v", len(violations), violations)
	}
	if violations[0].Restriction != "slotCount" {
		t.Errorf("Restriction = %q, want slotCount", violations[0].Restriction)
	}
}

func TestSlotCountRestrictionPassesWithinCapacity(t *testing.T) {
	store := newFakeStore().withAttr(sde.AttributeHighSlots, &sde.AttributeMeta{ID: sde.AttributeHighSlots})
	f := fit.New(store, logger.NewNoop())
	if _, err := f.SetShip(&sde.ItemType{ID: 1, CategoryID: sde.CategoryShip, Attributes: map[int64]float64{sde.AttributeHighSlots: 4}}); err != nil {
		t.Fatalf("SetShip: %v", err)
	}
	if _, err := f.AddModule(&sde.ItemType{ID: 10, CategoryID: sde.CategoryModule, SlotKind: sde.SlotHigh}); err != nil {
		t.Fatalf("AddModule: %v", err)
	}

	violations, err := SlotCountRestriction{}.Validate(context.Background(), f)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("want no violations, got %+v", violations)
	}
}

func TestSlotCountRestrictionNoShipIsNoOp(t *testing.T) {
	f := fit.New(newFakeStore(), logger.NewNoop())
	violations, err := SlotCountRestriction{}.Validate(context.Background(), f)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if violations != nil {
		t.Fatalf("want nil violations, got %+v", violations)
	}
}

func TestRigSizeRestrictionFlagsMismatchedRig(t *testing.T) {
	store := newFakeStore().withAttr(sde.AttributeRigSize, &sde.AttributeMeta{ID: sde.AttributeRigSize})
	f := fit.New(store, logger.NewNoop())
	if _, err := f.SetShip(&sde.ItemType{ID: 1, CategoryID: sde.CategoryShip, Attributes: map[int64]float64{sde.AttributeRigSize: 1}}); err != nil {
		t.Fatalf("SetShip: %v", err)
	}
	if _, err := f.AddModule(&sde.ItemType{ID: 20, CategoryID: sde.CategoryModule, SlotKind: sde.SlotRig, Attributes: map[int64]float64{sde.AttributeRigSize: 2}}); err != nil {
		t.Fatalf("AddModule: %v", err)
	}

	violations, err := RigSizeRestriction{}.Validate(context.Background(), f)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(violations) != 1 {
		t.Fatalf("want 1 violation, got %d: %+v", len(violations), violations)
	}
	if violations[0].Restriction != "rigSize" {
		t.Errorf("Restriction = %q, want rigSize", violations[0].Restriction)
	}
}

func TestRigSizeRestrictionPassesOnMatchingSize(t *testing.T) {
	store := newFakeStore().withAttr(sde.AttributeRigSize, &sde.AttributeMeta{ID: sde.AttributeRigSize})
	f := fit.New(store, logger.NewNoop())
	if _, err := f.SetShip(&sde.ItemType{ID: 1, CategoryID: sde.CategoryShip, Attributes: map[int64]float64{sde.AttributeRigSize: 1}}); err != nil {
		t.Fatalf("SetShip: %v", err)
	}
	if _, err := f.AddModule(&sde.ItemType{ID: 20, CategoryID: sde.CategoryModule, SlotKind: sde.SlotRig, Attributes: map[int64]float64{sde.AttributeRigSize: 1}}); err != nil {
		t.Fatalf("AddModule: %v", err)
	}

	violations, err := RigSizeRestriction{}.Validate(context.Background(), f)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("want no violations, got %+v", violations)
	}
}

func TestCapitalItemRestrictionFlagsCapitalModuleOnSubcapShip(t *testing.T) {
	f := fit.New(newFakeStore(), logger.NewNoop())
	if _, err := f.SetShip(&sde.ItemType{ID: 1, CategoryID: sde.CategoryShip, IsCapitalSize: false}); err != nil {
		t.Fatalf("SetShip: %v", err)
	}
	if _, err := f.AddModule(&sde.ItemType{ID: 30, CategoryID: sde.CategoryModule, IsCapitalSize: true}); err != nil {
		t.Fatalf("AddModule: %v", err)
	}

	violations, err := CapitalItemRestriction{}.Validate(context.Background(), f)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(violations) != 1 {
		t.Fatalf("want 1 violation, got %d: %+v", len(violations), violations)
	}
	if violations[0].Restriction != "capitalItem" {
		t.Errorf("Restriction = %q, want capitalItem", violations[0].Restriction)
	}
}

func TestCapitalItemRestrictionAllowsCapitalModuleOnCapitalShip(t *testing.T) {
	f := fit.New(newFakeStore(), logger.NewNoop())
	if _, err := f.SetShip(&sde.ItemType{ID: 1, CategoryID: sde.CategoryShip, IsCapitalSize: true}); err != nil {
		t.Fatalf("SetShip: %v", err)
	}
	if _, err := f.AddModule(&sde.ItemType{ID: 30, CategoryID: sde.CategoryModule, IsCapitalSize: true}); err != nil {
		t.Fatalf("AddModule: %v", err)
	}

	violations, err := CapitalItemRestriction{}.Validate(context.Background(), f)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("want no violations, got %+v", violations)
	}
}

func TestValidateAllConcatenatesAcrossRestrictions(t *testing.T) {
	store := newFakeStore().
		withAttr(sde.AttributeHighSlots, &sde.AttributeMeta{ID: sde.AttributeHighSlots}).
		withAttr(sde.AttributeRigSize, &sde.AttributeMeta{ID: sde.AttributeRigSize})
	f := fit.New(store, logger.NewNoop())
	if _, err := f.SetShip(&sde.ItemType{
		ID: 1, CategoryID: sde.CategoryShip, IsCapitalSize: false,
		Attributes: map[int64]float64{sde.AttributeHighSlots: 0, sde.AttributeRigSize: 1},
	}); err != nil {
		t.Fatalf("SetShip: %v", err)
	}
	if _, err := f.AddModule(&sde.ItemType{ID: 10, CategoryID: sde.CategoryModule, SlotKind: sde.SlotHigh}); err != nil {
		t.Fatalf("AddModule high: %v", err)
	}
	if _, err := f.AddModule(&sde.ItemType{ID: 20, CategoryID: sde.CategoryModule, SlotKind: sde.SlotRig, Attributes: map[int64]float64{sde.AttributeRigSize: 2}}); err != nil {
		t.Fatalf("AddModule rig: %v", err)
	}
	if _, err := f.AddModule(&sde.ItemType{ID: 30, CategoryID: sde.CategoryModule, IsCapitalSize: true}); err != nil {
		t.Fatalf("AddModule capital: %v", err)
	}

	violations, err := ValidateAll(context.Background(), f, Standard)
	if err != nil {
		t.Fatalf("ValidateAll: %v", err)
	}
	if len(violations) != 3 {
		t.Fatalf("want 3 violations, got %d: %+v", len(violations), violations)
	}
}
