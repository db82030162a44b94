// Package mock provides test doubles for the engine's external
// collaborators.
package mock

import "sync"

// Lookup is an in-memory, call-counting lookup service. Tests use the
// per-key counters to verify the at-most-once resolution contract.
type Lookup struct {
	mu     sync.Mutex
	values map[string]any
	calls  map[string]int
	err    error
}

// NewLookup creates an empty lookup service.
func NewLookup() *Lookup {
	return &Lookup{
		values: make(map[string]any),
		calls:  make(map[string]int),
	}
}

// Provide stores a value under a key and returns the lookup for chaining.
func (l *Lookup) Provide(key string, val any) *Lookup {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.values[key] = val
	return l
}

// FailWith makes every Resolve report the given error, simulating an
// ambiguous key.
func (l *Lookup) FailWith(err error) *Lookup {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.err = err
	return l
}

// Resolve implements inject.Lookup, counting every query.
func (l *Lookup) Resolve(key string) (any, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls[key]++

	if l.err != nil {
		return nil, false, l.err
	}

	v, ok := l.values[key]
	return v, ok, nil
}

// Calls returns how many times the key has been queried.
func (l *Lookup) Calls(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.calls[key]
}

// TotalCalls returns how many queries the service has observed in total.
func (l *Lookup) TotalCalls() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := 0
	for _, n := range l.calls {
		total += n
	}
	return total
}
