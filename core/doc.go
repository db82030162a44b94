// Package core synthesizes decorated variants of plain struct types: object
// instances whose member dispatch passes through an interception and
// injection layer.
//
// Decorate reflects a base type once and returns a Factory; Instantiate
// creates decorated instances exposing a single dispatch surface
// (Call, Get, Set). Calls to members the base type does not declare route to
// configurable missing-member handlers, bare funcs coerce onto
// callback-shaped parameters, declared injection points resolve lazily from
// a lookup service with at-most-once caching, and same-name overloads are
// selected by the runtime types of the supplied arguments.
//
// Dispatch is synchronous and reentrant: no lock is held across a forwarded
// call, so a coerced callback may call back into the same or another
// decorated instance.
package core
