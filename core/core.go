package core

import (
	"reflect"

	"github.com/anoideaopen/dynobj/core/inject"
	"github.com/anoideaopen/dynobj/core/logger"
	"github.com/anoideaopen/dynobj/core/member"
	"github.com/anoideaopen/dynobj/core/missing"
	"github.com/anoideaopen/dynobj/core/telemetry"

	"github.com/google/uuid"
)

// ExtensionContainer is the conventional property name through which the
// per-instance extension bag is reached. Non-extensible types treat it as an
// unknown property.
const ExtensionContainer = "ext"

// constructName is the dispatch name of the declared construction method.
const constructName = "construct"

// NonExtensible marks a base type as carrying no extension bag. Implementing
// this interface (or any marker configured with WithNonExtensibleMarkers)
// makes the wrapper reject the extension container property.
type NonExtensible interface {
	NonExtensible()
}

// SelfBinder receives the wrapper before construction runs, so the base
// value can dispatch through its own decorated surface during and after its
// construction sequence.
type SelfBinder interface {
	BindSelf(d *Decorated)
}

var nonExtensibleType = reflect.TypeOf((*NonExtensible)(nil)).Elem()

// Factory synthesizes decorated instances of one base type. The reflected
// member entry is built once at Decorate time and shared read-only by all
// instances.
type Factory struct {
	entry         *member.Entry
	registry      *member.Registry
	opts          *engineOptions
	nonExtensible bool
}

// Decorate reflects the prototype's type and returns a factory of decorated
// instances. It fails with a member.RegistrationError when the type declares
// malformed injection points.
//
// Example:
//
//	factory, err := core.Decorate(&Task{}, core.WithLookup(services))
//	if err != nil { ... }
//	task, err := factory.Instantiate("build")
func Decorate(prototype any, options ...Option) (*Factory, error) {
	opts := defaultOptions()
	for _, option := range options {
		if err := option(opts); err != nil {
			return nil, err
		}
	}

	registry := member.NewRegistry(member.Config{
		InjectionTags:  opts.injectionTags,
		SetterPrefixes: opts.setterPrefixes,
		Reserved:       reservedMethodNames(opts),
	})

	entry, err := registry.Build(prototype)
	if err != nil {
		return nil, err
	}

	f := &Factory{
		entry:         entry,
		registry:      registry,
		opts:          opts,
		nonExtensible: implementsAny(entry.PtrType, opts.markers),
	}

	logger.Logger().
		WithField("type", entry.Type.String()).
		WithField("methods", len(entry.Methods)).
		WithField("points", len(entry.Points)).
		WithField("extensible", !f.nonExtensible).
		Debug("type decorated")

	return f, nil
}

// reservedMethodNames lists wrapper plumbing excluded from the dispatch
// index: the self-binding hook and every configured marker's methods.
func reservedMethodNames(opts *engineOptions) []string {
	reserved := []string{"BindSelf"}
	for _, marker := range opts.markers {
		for i := 0; i < marker.NumMethod(); i++ {
			reserved = append(reserved, marker.Method(i).Name)
		}
	}
	return reserved
}

func implementsAny(t reflect.Type, markers []reflect.Type) bool {
	for _, marker := range markers {
		if t.Implements(marker) {
			return true
		}
	}
	return false
}

// Methods returns the factory's dispatch index: declared overloads grouped
// by dispatch name.
func (f *Factory) Methods() map[string][]member.Descriptor {
	return f.entry.Methods
}

// Extensible reports whether instances of the base type carry an extension
// bag.
func (f *Factory) Extensible() bool {
	return !f.nonExtensible
}

// Instantiate creates a decorated instance of the base type. When the base
// type declares a Construct method, the overload matching the arguments is
// invoked through the dispatch surface; passing arguments to a type without
// one fails with an UnknownMethodError. Until construction completes, the
// instance dispatches in a degraded-but-safe mode that never consults the
// extension bag or the missing-member handlers.
func (f *Factory) Instantiate(args ...any) (*Decorated, error) {
	d := &Decorated{
		id:      uuid.NewString(),
		factory: f,
		base:    reflect.New(f.entry.Type),
		slots:   inject.NewSlots(f.entry.PointNames()...),
	}

	if binder, ok := d.base.Interface().(SelfBinder); ok {
		binder.BindSelf(d)
	}

	switch {
	case len(f.entry.Methods[constructName]) > 0:
		if _, err := d.call(telemetry.OpConstruct, constructName, args); err != nil {
			return nil, err
		}
	case len(args) > 0:
		return nil, &missing.UnknownMethodError{Name: constructName, Arity: len(args)}
	}

	d.constructed = true

	logger.Logger().
		WithField("type", f.entry.Type.String()).
		WithField("instance", d.id).
		Debug("instance decorated")

	return d, nil
}
