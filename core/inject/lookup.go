package inject

import (
	"errors"
	"fmt"
)

// Lookup is the external service injection points are resolved from.
// Implementations report ok=false when the key has no binding and may return
// an error for ambiguous keys. The engine queries a Lookup at most once per
// instance per point; retry policy, if any, belongs to the implementation.
type Lookup interface {
	Resolve(key string) (val any, ok bool, err error)
}

var (
	// ErrNoLookup is returned when an unresolved point is read and no
	// lookup service was configured.
	ErrNoLookup = errors.New("no lookup service configured")

	// ErrNoSetter is returned on explicit assignment to a point whose base
	// type declares no paired setter.
	ErrNoSetter = errors.New("injection point has no declared setter")

	// ErrUnknownPoint is returned when the named point is not declared by
	// the base type.
	ErrUnknownPoint = errors.New("unknown injection point")
)

// UnresolvedDependencyError reports that an injection point's lookup failed.
// It names the point and the lookup key; Reason carries the lookup service's
// own error for ambiguous keys, or nil when the key was simply not found.
type UnresolvedDependencyError struct {
	Point  string
	Key    string
	Reason error
}

func (e *UnresolvedDependencyError) Error() string {
	if e.Reason == nil {
		return fmt.Sprintf("unresolved dependency: point '%s', key '%s'", e.Point, e.Key)
	}
	return fmt.Sprintf("unresolved dependency: point '%s', key '%s': %v", e.Point, e.Key, e.Reason)
}

func (e *UnresolvedDependencyError) Unwrap() error { return e.Reason }
