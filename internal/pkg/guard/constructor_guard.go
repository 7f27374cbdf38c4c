// Package guard provides a defensive construction marker for domain objects.
// Embedding a ConstructorGuard in a value object or entity makes the zero
// value detectable, so objects that bypassed their constructor fail validation
// instead of carrying unchecked state through the system.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes objects built through their constructor from
// zero values. The zero guard reports the object as unconstructed.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed. Call it inside
// the object's constructor and store the result in the guard field.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed object. For a zero-value guard it
// returns validationError, or ErrDefaultConstructorGuard when validationError
// is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
