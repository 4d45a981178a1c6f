package restrictions

import (
	"context"
	"fmt"

	"github.com/Sternrassler/eve-attrengine/internal/fit"
)

// CapitalItemRestriction flags a fitted module sized for capital hulls
// when the fit's own ship isn't one; loaded charges are not checked.
// Capital modules
// require the isCapitalSize flag (spec §3's derived ItemType field) to
// match on both sides.
type CapitalItemRestriction struct{}

// Validate implements Restriction.
func (CapitalItemRestriction) Validate(ctx context.Context, f *fit.Fit) ([]Violation, error) {
	ship, ok := f.Ship()
	if !ok {
		return nil, nil
	}
	if ship.ItemType().IsCapitalSize {
		return nil, nil
	}

	var violations []Violation
	for _, m := range f.Modules() {
		if !m.ItemType().IsCapitalSize {
			continue
		}
		violations = append(violations, Violation{
			Restriction: "capitalItem",
			HolderID:    m.HolderID(),
			Message:     fmt.Sprintf("capital module %d cannot fit a non-capital ship", m.ItemType().ID),
		})
	}
	return violations, nil
}
