// Package missing defines the fallback chain invoked when a decorated
// instance's registry has no match for a call or property access: three
// independently configurable handler slots for missing methods, missing
// property reads, and missing property writes. An absent slot is the
// "no fallback configured" state, in which dispatch fails with a typed
// UnknownMethodError or UnknownPropertyError.
package missing
