// Package guard provides ConstructorGuard, a marker embedded in value objects,
// commands and queries so that zero-value instances can be told apart from
// instances built through their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the object was not
// constructed and the caller did not supply a more specific error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing struct was built by its
// constructor. Embed it as a private field and call Validate from the
// enclosing type's Validate method.
//
// Example usage:
//
//	var ErrDelayEventCommandIsNotConstructed = errors.New("DelayEventCommand must be created via NewDelayEventCommand")
//
//	type DelayEventCommand struct {
//	    eventID string
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c DelayEventCommand) Validate() error {
//	    return c.guard.Validate(ErrDelayEventCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
