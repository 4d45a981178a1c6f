package restrictions

import (
	"context"
	"fmt"

	"github.com/Sternrassler/eve-attrengine/internal/fit"
	"github.com/Sternrassler/eve-attrengine/internal/sde"
)

// RigSizeRestriction flags a rig whose rigSize attribute doesn't match
// the ship's own rigSize — EVE rigs are built for a specific hull size
// class and don't fit a ship of a different one.
type RigSizeRestriction struct{}

// Validate implements Restriction.
func (RigSizeRestriction) Validate(ctx context.Context, f *fit.Fit) ([]Violation, error) {
	ship, ok := f.Ship()
	if !ok {
		return nil, nil
	}
	shipSize, err := ship.Attribute(ctx, sde.AttributeRigSize)
	if err != nil {
		return nil, fmt.Errorf("restrictions: ship rig size: %w", err)
	}

	var violations []Violation
	for _, m := range f.Modules() {
		if m.ItemType().SlotKind != sde.SlotRig {
			continue
		}
		rigSize, err := m.Attribute(ctx, sde.AttributeRigSize)
		if err != nil {
			return nil, fmt.Errorf("restrictions: rig size for holder %d: %w", m.HolderID(), err)
		}
		if rigSize != shipSize {
			violations = append(violations, Violation{
				Restriction: "rigSize",
				HolderID:    m.HolderID(),
				Message:     fmt.Sprintf("rig size %v doesn't match ship rig size %v", rigSize, shipSize),
			})
		}
	}
	return violations, nil
}
