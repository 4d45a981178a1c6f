package sde

import "errors"

// ErrTypeNotFound is returned when getType cannot resolve a type id.
var ErrTypeNotFound = errors.New("sde: item type not found")

// ErrAttributeNotFound is returned when getAttribute cannot resolve an
// attribute id.
var ErrAttributeNotFound = errors.New("sde: attribute metadata not found")

// ErrEffectNotFound is returned when an effect id referenced by a
// type's dogmaEffects cannot be resolved.
var ErrEffectNotFound = errors.New("sde: effect not found")
