// Package guard detects values that bypassed their constructor.
//
// Commands, queries and aggregates embed a ConstructorGuard set by their
// constructor; a zero-value struct carries a zero-value guard and fails
// Validate. Handlers call Validate before doing any work so that a
// hand-assembled command can never reach the storage layer.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller supplies
// no specific error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built by its constructor.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
