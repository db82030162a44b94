// Package callback coerces bare funcs into the callback-shaped parameters a
// target method actually declares.
//
// A capability is either a func-typed parameter or a single-method interface.
// Func parameters are bridged directly with reflect.MakeFunc; single-method
// interfaces are satisfied through a registered named func adapter type, the
// way net/http pairs Handler with HandlerFunc. The bridge forwards arguments
// to the raw func and translates its results to the declared signature: a
// void capability discards the raw func's results. Errors returned and panics
// raised inside the raw func propagate to the caller with their original
// identity; nothing is wrapped or swallowed.
package callback
