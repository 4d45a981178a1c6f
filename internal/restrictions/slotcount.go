package restrictions

import (
	"context"
	"fmt"

	"github.com/Sternrassler/eve-attrengine/internal/fit"
	"github.com/Sternrassler/eve-attrengine/internal/holder"
	"github.com/Sternrassler/eve-attrengine/internal/sde"
)

// SlotCountRestriction flags a fit whose module count in a slot kind
// (high/med/low) exceeds the ship's capping attribute for that kind —
// read live through attrmap, so a module that boosts slot count is
// reflected automatically.
type SlotCountRestriction struct{}

var slotCountAttributes = map[sde.SlotKind]int64{
	sde.SlotHigh: sde.AttributeHighSlots,
	sde.SlotMed:  sde.AttributeMedSlots,
	sde.SlotLow:  sde.AttributeLowSlots,
}

// Validate implements Restriction.
func (SlotCountRestriction) Validate(ctx context.Context, f *fit.Fit) ([]Violation, error) {
	ship, ok := f.Ship()
	if !ok {
		return nil, nil
	}

	counts := make(map[sde.SlotKind]int)
	lastHolder := make(map[sde.SlotKind]*holder.Holder)
	for _, m := range f.Modules() {
		kind := m.ItemType().SlotKind
		counts[kind]++
		lastHolder[kind] = m
	}

	var violations []Violation
	for kind, attrID := range slotCountAttributes {
		used := counts[kind]
		if used == 0 {
			continue
		}
		allowed, err := ship.Attribute(ctx, attrID)
		if err != nil {
			return nil, fmt.Errorf("restrictions: ship slot capacity for %v: %w", kind, err)
		}
		if float64(used) > allowed {
			violations = append(violations, Violation{
				Restriction: "slotCount",
				HolderID:    lastHolder[kind].HolderID(),
				Message:     fmt.Sprintf("%d modules fitted in slot kind %v, ship allows %v", used, kind, allowed),
			})
		}
	}
	return violations, nil
}
