// Package inject tracks, per decorated instance, which declared injection
// points have been resolved. Unresolved points are resolved from a pluggable
// lookup service on first access; each point resolves at most once per
// instance, even when multiple goroutines race for the same slot. Explicit
// assignment wins over resolution and permanently disables further lookups
// for that point.
package inject
