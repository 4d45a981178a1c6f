package attrmap

import "errors"

// ErrNotFound is returned when an attribute read cannot produce a
// value — a missing base value, missing metadata, or a missing
// attribute on a detached holder (spec §7's base-value and
// attribute-meta errors both surface this way to the caller).
var ErrNotFound = errors.New("attrmap: attribute not found")
