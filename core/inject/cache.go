package inject

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// State describes an injection slot's lifecycle position. A slot transitions
// at most once from Unresolved to Resolved or Explicit, and never back to
// Unresolved.
type State int

const (
	Unresolved State = iota
	Resolved
	Explicit
)

func (s State) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case Explicit:
		return "explicitly set"
	default:
		return "unresolved"
	}
}

// binding is the value bound to a slot once it leaves the unresolved state.
type binding struct {
	value    any
	explicit bool
}

// slot holds one injection point's per-instance state. Reads of a bound slot
// are a single atomic load; only the unresolved-to-resolved transition takes
// the mutex, and no lock is ever held across a dispatched call.
type slot struct {
	mu    sync.Mutex
	bound atomic.Pointer[binding]
}

// Slots is the per-instance injection cache. The slot set is fixed at
// construction from the entry's declared points, so lookups never mutate the
// map.
type Slots struct {
	slots map[string]*slot
}

// NewSlots creates a cache with one unresolved slot per named point.
func NewSlots(points ...string) *Slots {
	s := &Slots{slots: make(map[string]*slot, len(points))}
	for _, name := range points {
		s.slots[name] = &slot{}
	}
	return s
}

// Get returns the point's value, resolving it from the lookup service on
// first access. The lookup service observes at most one query per point for
// the lifetime of the cache, regardless of concurrent readers. apply, when
// non-nil, runs inside the resolving critical section with the freshly
// resolved value, before the slot is published; it is how the owning
// instance mirrors the value into its backing field.
func (s *Slots) Get(point, key string, lk Lookup, apply func(any) error) (any, error) {
	sl, ok := s.slots[point]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownPoint, point)
	}

	if b := sl.bound.Load(); b != nil {
		return b.value, nil
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	// Another reader may have won the race while we waited.
	if b := sl.bound.Load(); b != nil {
		return b.value, nil
	}

	if lk == nil {
		return nil, fmt.Errorf("%w: point '%s'", ErrNoLookup, point)
	}

	val, found, err := lk.Resolve(key)
	if err != nil || !found {
		return nil, &UnresolvedDependencyError{Point: point, Key: key, Reason: err}
	}

	if apply != nil {
		if err := apply(val); err != nil {
			return nil, err
		}
	}

	sl.bound.Store(&binding{value: val})

	return val, nil
}

// SetExplicit binds the point to the given value unconditionally,
// overwriting any prior resolution and permanently disabling lookups for the
// point. Legality of explicit assignment (a declared paired setter) is the
// caller's contract; the cache itself accepts any declared point.
func (s *Slots) SetExplicit(point string, value any, apply func(any) error) error {
	sl, ok := s.slots[point]
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrUnknownPoint, point)
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	if apply != nil {
		if err := apply(value); err != nil {
			return err
		}
	}

	sl.bound.Store(&binding{value: value, explicit: true})

	return nil
}

// State reports the slot's current lifecycle state.
func (s *Slots) State(point string) State {
	sl, ok := s.slots[point]
	if !ok {
		return Unresolved
	}

	b := sl.bound.Load()
	switch {
	case b == nil:
		return Unresolved
	case b.explicit:
		return Explicit
	default:
		return Resolved
	}
}
