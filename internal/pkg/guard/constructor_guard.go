// Package guard lets value objects, commands and queries detect whether they
// were built through their constructor or left as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller supplies
// no error of its own.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types whose zero value is invalid.
// Only NewConstructorGuard produces a guard that passes Validate.
//
// Example:
//
//	type AcceptRequestCommand struct {
//	    requestID kernel.UUID
//	    guard     guard.ConstructorGuard
//	}
//
//	func (c AcceptRequestCommand) Validate() error {
//	    return c.guard.Validate(ErrAcceptRequestCommandIsNotConstructed)
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
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
