package core

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/anoideaopen/dynobj/core/callback"
	"github.com/anoideaopen/dynobj/core/inject"
	"github.com/anoideaopen/dynobj/core/missing"
	"github.com/anoideaopen/dynobj/core/telemetry"
)

// Option represents a function that applies configuration options to a
// Factory under construction.
type Option func(opts *engineOptions) error

// ErrBadOption is returned when an option is given malformed input.
var ErrBadOption = errors.New("malformed option")

// engineOptions holds the assembled configuration of one Factory.
type engineOptions struct {
	lookup         inject.Lookup
	injectionTags  []string
	setterPrefixes []string
	markers        []reflect.Type
	adapters       *callback.Adapters
	hooks          missing.Hooks
	telemeter      *telemetry.Telemeter
}

func defaultOptions() *engineOptions {
	return &engineOptions{
		markers:   []reflect.Type{nonExtensibleType},
		adapters:  callback.NewAdapters(),
		telemeter: telemetry.New(),
	}
}

// WithLookup sets the lookup service injection points resolve from.
func WithLookup(lk inject.Lookup) Option {
	return func(opts *engineOptions) error {
		if lk == nil {
			return fmt.Errorf("%w: lookup service is nil", ErrBadOption)
		}
		opts.lookup = lk
		return nil
	}
}

// WithInjectionTags replaces the set of struct tags that mark a field as an
// injection point. The default set is {"inject"}.
func WithInjectionTags(tags ...string) Option {
	return func(opts *engineOptions) error {
		if len(tags) == 0 {
			return fmt.Errorf("%w: empty injection tag set", ErrBadOption)
		}
		opts.injectionTags = tags
		return nil
	}
}

// WithSetterPrefixes replaces the method name prefixes recognized as paired
// setters for injection points. The default set is {"Set"}.
func WithSetterPrefixes(prefixes ...string) Option {
	return func(opts *engineOptions) error {
		if len(prefixes) == 0 {
			return fmt.Errorf("%w: empty setter prefix set", ErrBadOption)
		}
		opts.setterPrefixes = prefixes
		return nil
	}
}

// WithNonExtensibleMarkers adds marker interfaces to the non-extensible
// marker set. Each marker is given as a nil interface pointer:
//
//	core.Decorate(&Task{}, core.WithNonExtensibleMarkers((*Sealed)(nil)))
//
// The default core.NonExtensible marker always remains in the set.
func WithNonExtensibleMarkers(markers ...any) Option {
	return func(opts *engineOptions) error {
		for _, marker := range markers {
			t := reflect.TypeOf(marker)
			if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Interface {
				return fmt.Errorf("%w: marker must be a nil interface pointer", ErrBadOption)
			}
			opts.markers = append(opts.markers, t.Elem())
		}
		return nil
	}
}

// WithCallbackAdapter registers a named func adapter type for a
// single-method capability interface, enabling coercion of bare funcs onto
// that interface:
//
//	core.WithCallbackAdapter((*Listener)(nil), ListenerFunc(nil))
func WithCallbackAdapter(iface, adapter any) Option {
	return func(opts *engineOptions) error {
		return opts.adapters.Register(iface, adapter)
	}
}

// WithMethodMissing sets the type-level method-missing handler. Instances
// may override it with OnMethodMissing.
func WithMethodMissing(h missing.MethodHandler) Option {
	return func(opts *engineOptions) error {
		opts.hooks.Method = h
		return nil
	}
}

// WithPropertyGetMissing sets the type-level handler for reads of unknown
// properties.
func WithPropertyGetMissing(h missing.PropertyGetHandler) Option {
	return func(opts *engineOptions) error {
		opts.hooks.Get = h
		return nil
	}
}

// WithPropertySetMissing sets the type-level handler for writes to unknown
// properties.
func WithPropertySetMissing(h missing.PropertySetHandler) Option {
	return func(opts *engineOptions) error {
		opts.hooks.Set = h
		return nil
	}
}

// WithTelemeter replaces the dispatch telemeter.
func WithTelemeter(t *telemetry.Telemeter) Option {
	return func(opts *engineOptions) error {
		if t == nil {
			return fmt.Errorf("%w: telemeter is nil", ErrBadOption)
		}
		opts.telemeter = t
		return nil
	}
}
