package fit

import (
	"errors"

	"github.com/Sternrassler/eve-attrengine/internal/affection"
	"github.com/Sternrassler/eve-attrengine/internal/holder"
)

// ErrBadContainer re-exports the affection resolver's bad-container
// sentinel: a modifier fails to resolve against the fit it was just
// inserted into (spec §7).
var ErrBadContainer = affection.ErrBadContainer

// ErrNotTargeted re-exports the holder package's sentinel for setting
// a projection target on a non-targeted item.
var ErrNotTargeted = holder.ErrNotTargeted

// ErrChargeAlreadyBound is the target-attribute error (spec §7):
// assigning a charge that is already loaded into a different module.
var ErrChargeAlreadyBound = errors.New("fit: charge is already loaded into another module")

// ErrStateNotAllowed is returned when a requested state exceeds a
// holder's highest allowed state (spec §3's derived field).
var ErrStateNotAllowed = errors.New("fit: requested state exceeds the holder's highest allowed state")
