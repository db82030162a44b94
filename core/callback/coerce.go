package callback

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	// ErrNotCallable is returned when the supplied value is not a func and
	// does not already satisfy the capability type.
	ErrNotCallable = errors.New("value is not callable")

	// ErrNotCapability is returned when the target parameter type is neither
	// a func type nor a single-method interface.
	ErrNotCapability = errors.New("target type is not a capability")

	// ErrNoAdapter is returned when a single-method interface has no
	// registered func adapter type.
	ErrNoAdapter = errors.New("no adapter registered for capability")

	// ErrSignatureMismatch is returned when the raw func cannot accept the
	// capability's arguments or its results cannot be translated to the
	// capability's results.
	ErrSignatureMismatch = errors.New("incompatible callback signature")

	// ErrBadAdapter is returned when Register is given a malformed
	// interface/adapter pair.
	ErrBadAdapter = errors.New("malformed capability adapter")
)

// Adapters maps single-method capability interfaces to named func adapter
// types implementing them, and performs coercion against that table.
// The zero value is unusable; create one with NewAdapters.
type Adapters struct {
	mu    sync.RWMutex
	funcs map[reflect.Type]reflect.Type
}

// NewAdapters creates an empty adapter table.
func NewAdapters() *Adapters {
	return &Adapters{funcs: make(map[reflect.Type]reflect.Type)}
}

// Register pairs a single-method interface with a named func type that
// implements it, enabling coercion of bare funcs onto that interface.
//
// The interface is given as a nil interface pointer, the adapter as any
// value of the func type:
//
//	adapters.Register((*Listener)(nil), ListenerFunc(nil))
func (a *Adapters) Register(iface, adapter any) error {
	it := reflect.TypeOf(iface)
	if it == nil || it.Kind() != reflect.Pointer || it.Elem().Kind() != reflect.Interface {
		return fmt.Errorf("%w: interface must be a nil interface pointer", ErrBadAdapter)
	}

	it = it.Elem()
	if it.NumMethod() != 1 {
		return fmt.Errorf("%w: %v does not declare exactly one method", ErrBadAdapter, it)
	}

	at := reflect.TypeOf(adapter)
	if at == nil || at.Kind() != reflect.Func {
		return fmt.Errorf("%w: adapter for %v is not a func type", ErrBadAdapter, it)
	}
	if !at.Implements(it) {
		return fmt.Errorf("%w: %v does not implement %v", ErrBadAdapter, at, it)
	}

	a.mu.Lock()
	a.funcs[it] = at
	a.mu.Unlock()

	return nil
}

// IsCapability reports whether t is callback-shaped: a func type, or a
// single-method interface with a registered adapter.
func (a *Adapters) IsCapability(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Func:
		return true
	case reflect.Interface:
		if t.NumMethod() != 1 {
			return false
		}
		_, ok := a.adapterFor(t)
		return ok
	default:
		return false
	}
}

func (a *Adapters) adapterFor(t reflect.Type) (reflect.Type, bool) {
	a.mu.RLock()
	at, ok := a.funcs[t]
	a.mu.RUnlock()
	return at, ok
}

// Coerce produces a value of the target capability type from the raw
// callable. Values already satisfying the target keep their identity, so call
// sites that construct the capability object manually observe identical
// behavior to those passing a bare func. The returned value satisfies the
// target: typed as the target for func targets, implementing it for
// interface targets.
func (a *Adapters) Coerce(target reflect.Type, raw any) (reflect.Value, error) {
	if raw == nil {
		return reflect.Zero(target), nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Type() == target {
		return rv, nil
	}
	if rv.Type().AssignableTo(target) {
		return rv.Convert(target), nil
	}

	if rv.Kind() != reflect.Func {
		return reflect.Value{}, fmt.Errorf("%w: %v", ErrNotCallable, rv.Type())
	}

	switch target.Kind() {
	case reflect.Func:
		return bridge(target, rv)
	case reflect.Interface:
		if target.NumMethod() != 1 {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrNotCapability, target)
		}
		at, ok := a.adapterFor(target)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrNoAdapter, target)
		}
		return bridge(at, rv)
	default:
		return reflect.Value{}, fmt.Errorf("%w: %v", ErrNotCapability, target)
	}
}

// bridge builds the wrapper func of the exact target type forwarding to raw.
// Identical and directly convertible signatures avoid the MakeFunc hop.
func bridge(target reflect.Type, raw reflect.Value) (reflect.Value, error) {
	rt := raw.Type()

	if rt == target {
		return raw, nil
	}
	if rt.ConvertibleTo(target) {
		return raw.Convert(target), nil
	}

	if rt.IsVariadic() || target.IsVariadic() {
		return reflect.Value{}, fmt.Errorf("%w: variadic callback %v for %v", ErrSignatureMismatch, rt, target)
	}

	if rt.NumIn() != target.NumIn() {
		return reflect.Value{}, fmt.Errorf(
			"%w: %v accepts %d argument(s) but %v declares %d",
			ErrSignatureMismatch, rt, rt.NumIn(), target, target.NumIn(),
		)
	}
	for i := 0; i < target.NumIn(); i++ {
		if !transferable(target.In(i), rt.In(i)) {
			return reflect.Value{}, fmt.Errorf(
				"%w: argument %d: cannot pass %v as %v",
				ErrSignatureMismatch, i, target.In(i), rt.In(i),
			)
		}
	}

	// A void capability discards whatever the raw func returns; otherwise
	// results must map one to one.
	if target.NumOut() > 0 {
		if rt.NumOut() != target.NumOut() {
			return reflect.Value{}, fmt.Errorf(
				"%w: %v returns %d value(s) but %v declares %d",
				ErrSignatureMismatch, rt, rt.NumOut(), target, target.NumOut(),
			)
		}
		for i := 0; i < target.NumOut(); i++ {
			if !transferable(rt.Out(i), target.Out(i)) {
				return reflect.Value{}, fmt.Errorf(
					"%w: result %d: cannot return %v as %v",
					ErrSignatureMismatch, i, rt.Out(i), target.Out(i),
				)
			}
		}
	}

	wrapper := reflect.MakeFunc(target, func(in []reflect.Value) []reflect.Value {
		fwd := make([]reflect.Value, len(in))
		for i, v := range in {
			fwd[i] = transfer(v, rt.In(i))
		}

		// Panics inside the raw func propagate unchanged.
		res := raw.Call(fwd)

		if target.NumOut() == 0 {
			return nil
		}

		out := make([]reflect.Value, target.NumOut())
		for i := range out {
			out[i] = transfer(res[i], target.Out(i))
		}
		return out
	})

	return wrapper, nil
}

// transferable reports whether a value of type from can be handed over as
// type to, either directly or by conversion.
func transferable(from, to reflect.Type) bool {
	return from.AssignableTo(to) || from.ConvertibleTo(to)
}

func transfer(v reflect.Value, to reflect.Type) reflect.Value {
	if v.Type().AssignableTo(to) {
		if v.Type() == to {
			return v
		}
		// Assignable but not identical: box into the destination type so
		// interface parameters receive a properly typed value.
		dst := reflect.New(to).Elem()
		dst.Set(v)
		return dst
	}
	return v.Convert(to)
}
