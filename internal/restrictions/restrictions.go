// Package restrictions implements the fit validators spec.md §1d names
// as an external collaborator: "restriction validators (slot counts,
// rig size, capital-item checks) that read effective attribute values
// through the engine." They are read-only — every check reads through
// holder.Holder.Attribute or the holder's static ItemType, and never
// writes to the fit or its caches.
package restrictions

import (
	"context"

	"github.com/Sternrassler/eve-attrengine/internal/fit"
	"github.com/Sternrassler/eve-attrengine/internal/metrics"
)

// Violation is one rule broken by the current fit.
type Violation struct {
	Restriction string
	HolderID    int64
	Message     string
}

// Restriction validates one rule against a fit, returning every
// holder currently violating it.
type Restriction interface {
	Validate(ctx context.Context, f *fit.Fit) ([]Violation, error)
}

// Standard is the fixed set of restrictions Eos ships (spec.md §3.3):
// slot counts, rig size, and capital-item placement.
var Standard = []Restriction{
	SlotCountRestriction{},
	RigSizeRestriction{},
	CapitalItemRestriction{},
}

// ValidateAll runs every restriction in rs against f and concatenates
// their violations.
func ValidateAll(ctx context.Context, f *fit.Fit, rs []Restriction) ([]Violation, error) {
	var out []Violation
	for _, r := range rs {
		vs, err := r.Validate(ctx, f)
		if err != nil {
			return nil, err
		}
		for _, v := range vs {
			metrics.RestrictionViolationsTotal.WithLabelValues(v.Restriction).Inc()
		}
		out = append(out, vs...)
	}
	return out, nil
}
