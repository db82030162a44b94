package core

import "sync"

// ExtensionBag is the per-instance ordered name/value store reached through
// the conventional "ext" property. It is created lazily on first access and
// never exists on non-extensible types.
type ExtensionBag struct {
	mu     sync.RWMutex
	order  []string
	values map[string]any
}

func newExtensionBag() *ExtensionBag {
	return &ExtensionBag{values: make(map[string]any)}
}

// Set stores a value under the name, preserving first-insertion order.
func (b *ExtensionBag) Set(name string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.values[name]; !ok {
		b.order = append(b.order, name)
	}
	b.values[name] = value
}

// Get returns the value stored under the name.
func (b *ExtensionBag) Get(name string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.values[name]
	return v, ok
}

// Has reports whether a value is stored under the name.
func (b *ExtensionBag) Has(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.values[name]
	return ok
}

// Names returns the stored names in insertion order.
func (b *ExtensionBag) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, len(b.order))
	copy(names, b.order)
	return names
}

// Len returns the number of stored values.
func (b *ExtensionBag) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.order)
}
