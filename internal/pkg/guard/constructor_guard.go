// Package guard detects domain values that bypassed their constructor.
//
// Go cannot forbid zero-value struct literals, so entities embed a ConstructorGuard
// set only by their constructor and check it before every mutating method.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller supplies no specific error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is a marker value. Its zero value means "not constructed".
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil for a constructed guard. For the zero value it returns notConstructed,
// or ErrDefaultConstructorGuard when notConstructed is nil.
func (g ConstructorGuard) Validate(notConstructed error) error {
	if g.constructed {
		return nil
	}
	if notConstructed == nil {
		return ErrDefaultConstructorGuard
	}
	return notConstructed
}
