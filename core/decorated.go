package core

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/anoideaopen/dynobj/core/inject"
	"github.com/anoideaopen/dynobj/core/logger"
	"github.com/anoideaopen/dynobj/core/member"
	"github.com/anoideaopen/dynobj/core/missing"
	"github.com/anoideaopen/dynobj/core/telemetry"
)

// ErrIncompatibleValue is returned when a value cannot be assigned to a
// declared property or passed as a resolved parameter.
var ErrIncompatibleValue = errors.New("incompatible value type")

// Decorated is a synthesized instance whose member dispatch passes through
// the interception and injection layer. All dynamic access goes through
// Call, Get and Set; the underlying base value remains reachable via Base.
//
// Member entries are shared per type; everything else — injection slots,
// extension bag, handler slots — is exclusive to one instance.
type Decorated struct {
	id      string
	factory *Factory
	base    reflect.Value // pointer to the base struct
	slots   *inject.Slots

	hooks missing.Hooks // instance-level; nil slots fall back to type-level

	extMu sync.Mutex
	ext   *ExtensionBag

	constructed bool
}

// ID returns the instance's unique identifier.
func (d *Decorated) ID() string {
	return d.id
}

// Base returns the underlying base value as a pointer to the base struct.
func (d *Decorated) Base() any {
	return d.base.Interface()
}

// OnMethodMissing sets the instance-level method-missing handler. Set it
// before first use; a nil handler falls back to the type-level hook.
func (d *Decorated) OnMethodMissing(h missing.MethodHandler) {
	d.hooks.Method = h
}

// OnPropertyGetMissing sets the instance-level handler for reads of unknown
// properties.
func (d *Decorated) OnPropertyGetMissing(h missing.PropertyGetHandler) {
	d.hooks.Get = h
}

// OnPropertySetMissing sets the instance-level handler for writes to unknown
// properties.
func (d *Decorated) OnPropertySetMissing(h missing.PropertySetHandler) {
	d.hooks.Set = h
}

func (d *Decorated) hooksInEffect() missing.Hooks {
	return d.hooks.OrElse(d.factory.opts.hooks)
}

// Call dispatches a method call by name. Declared overloads are selected by
// the runtime types of args; with no match, the method-missing handler runs,
// or the call fails with an UnknownMethodError. Errors returned by the base
// method and panics raised inside it reach the caller with their original
// identity.
func (d *Decorated) Call(name string, args ...any) (any, error) {
	return d.call(telemetry.OpCall, name, args)
}

// call is the shared method-dispatch path; op distinguishes plain calls from
// the construction dispatch in spans.
func (d *Decorated) call(op telemetry.OperationKind, name string, args []any) (any, error) {
	_, span := d.factory.opts.telemeter.StartSpan(nil, op, name, d.id)
	defer span.End()

	desc, ok := member.Resolve(d.factory.entry, name, args, d.factory.opts.adapters)
	if ok {
		return d.invoke(desc, args)
	}

	if d.constructed {
		if h := d.hooksInEffect().Method; h != nil {
			logger.Logger().
				WithField("instance", d.id).
				WithField("method", name).
				Debug("routing to method-missing handler")
			return h.HandleMissingMethod(name, args)
		}
	}

	return nil, &missing.UnknownMethodError{Name: name, Arity: len(args)}
}

// Get dispatches a property read by name: injection points first, then
// declared fields, the extension container, bag entries, and finally the
// property-missing handler.
func (d *Decorated) Get(name string) (any, error) {
	_, span := d.factory.opts.telemeter.StartSpan(nil, telemetry.OpGet, name, d.id)
	defer span.End()

	entry := d.factory.entry

	// The container name never reaches the hooks on non-extensible types:
	// it is rejected, not silently absent.
	if name == ExtensionContainer && d.factory.nonExtensible {
		return nil, &missing.UnknownPropertyError{Name: name}
	}

	if point, ok := entry.Points[name]; ok {
		return d.slots.Get(name, point.Key, d.factory.opts.lookup, func(v any) error {
			return d.setField(point.Property, v)
		})
	}

	if prop, ok := entry.Properties[name]; ok {
		return d.base.Elem().FieldByIndex(prop.Field.Index).Interface(), nil
	}

	if d.constructed && !d.factory.nonExtensible {
		if name == ExtensionContainer {
			return d.extension(), nil
		}
		if bag := d.bag(); bag != nil {
			if v, ok := bag.Get(name); ok {
				return v, nil
			}
		}
	}

	if d.constructed {
		if h := d.hooksInEffect().Get; h != nil {
			return h.HandleMissingGet(name)
		}
	}

	return nil, &missing.UnknownPropertyError{Name: name}
}

// Set dispatches a property write by name. Writing an injection point
// requires a declared paired setter and permanently pins the point to the
// given value.
func (d *Decorated) Set(name string, value any) error {
	_, span := d.factory.opts.telemeter.StartSpan(nil, telemetry.OpSet, name, d.id)
	defer span.End()

	entry := d.factory.entry

	if name == ExtensionContainer && d.factory.nonExtensible {
		return &missing.UnknownPropertyError{Name: name}
	}

	if point, ok := entry.Points[name]; ok {
		if point.Setter == nil {
			return fmt.Errorf("%w: point '%s'", inject.ErrNoSetter, name)
		}
		return d.slots.SetExplicit(name, value, func(v any) error {
			return d.setField(point.Property, v)
		})
	}

	if prop, ok := entry.Properties[name]; ok {
		return d.setField(prop, value)
	}

	if d.constructed && !d.factory.nonExtensible {
		if bag := d.bag(); bag != nil && bag.Has(name) {
			bag.Set(name, value)
			return nil
		}
	}

	if d.constructed {
		if h := d.hooksInEffect().Set; h != nil {
			return h.HandleMissingSet(name, value)
		}
	}

	return &missing.UnknownPropertyError{Name: name}
}

// invoke calls the resolved overload with coerced arguments. The trailing
// error result, when declared, is split off and returned verbatim.
func (d *Decorated) invoke(desc *member.Descriptor, args []any) (any, error) {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		v, err := d.prepareArg(desc.In[i], arg, i == len(args)-1)
		if err != nil {
			return nil, fmt.Errorf("%w: call %s, argument %d", err, desc.Name, i)
		}
		in[i] = v
	}

	// Panics inside the base method propagate unchanged; no lock is held
	// here, so reentrant dispatch from within the call cannot deadlock.
	out := d.base.Method(desc.Index).Call(in)

	if desc.ReturnsError {
		if errValue := out[len(out)-1]; !errValue.IsNil() {
			return nil, errValue.Interface().(error) //nolint:forcetypeassert
		}
		out = out[:len(out)-1]
	}

	// Invoking a paired setter counts as explicit assignment of its point.
	// The slot stores the prepared value, so a later read returns exactly
	// what the setter's parameter received.
	if point := d.factory.entry.SetterPoint(desc); point != "" && len(in) == 1 {
		_ = d.slots.SetExplicit(point, in[0].Interface(), nil)
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	default:
		result := make([]any, len(out))
		for i, v := range out {
			result[i] = v.Interface()
		}
		return result, nil
	}
}

// prepareArg mirrors the resolver's ranking: exact or assignable values pass
// through, a bare func on a trailing capability parameter is coerced, and
// numeric arguments widen to the parameter type.
func (d *Decorated) prepareArg(param reflect.Type, arg any, last bool) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(param), nil
	}

	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(param) {
		return v, nil
	}

	if last && v.Kind() == reflect.Func && d.factory.opts.adapters.IsCapability(param) {
		return d.factory.opts.adapters.Coerce(param, arg)
	}

	if v.Type().ConvertibleTo(param) {
		return v.Convert(param), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %v as %v", ErrIncompatibleValue, v.Type(), param)
}

func (d *Decorated) setField(prop member.Property, value any) error {
	field := d.base.Elem().FieldByIndex(prop.Field.Index)

	if value == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}

	v := reflect.ValueOf(value)
	switch {
	case v.Type().AssignableTo(field.Type()):
		field.Set(v)
	case v.Type().ConvertibleTo(field.Type()):
		field.Set(v.Convert(field.Type()))
	default:
		return fmt.Errorf("%w: %v as %v: property '%s'", ErrIncompatibleValue, v.Type(), field.Type(), prop.Name)
	}

	return nil
}

// extension returns the instance's extension bag, creating it on first
// access.
func (d *Decorated) extension() *ExtensionBag {
	d.extMu.Lock()
	defer d.extMu.Unlock()

	if d.ext == nil {
		d.ext = newExtensionBag()
	}
	return d.ext
}

// bag returns the extension bag without creating it.
func (d *Decorated) bag() *ExtensionBag {
	d.extMu.Lock()
	defer d.extMu.Unlock()
	return d.ext
}
