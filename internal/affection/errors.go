package affection

import "errors"

// ErrBadContainer is returned when a modifier anchors at location=self
// with a filter beyond "none" but its source is neither the fit's ship
// nor its character, so self names no container a filter could narrow
// (spec §4.3).
var ErrBadContainer = errors.New("affection: location=self with a filter needs a ship or character source")
