// Package member reflects a base type once and builds an index of its
// declared methods and field-backed properties, keyed by dispatch name.
//
// Methods sharing a dispatch name form an overload set; a method name may
// carry a variant suffix after an underscore ("Format_Int", "Format_String")
// which is stripped for dispatch. Fields carrying a configured injection tag
// are recorded as injection points together with their lookup key and an
// optional paired setter method.
//
// Entries are built at most once per base type and shared read-only by all
// instances of that type. Overload selection over an entry is a pure
// function of the entry and the runtime argument list (see Resolve).
package member
