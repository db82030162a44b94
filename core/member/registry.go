package member

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/anoideaopen/dynobj/core/stringsx"
)

var (
	// ErrNotStruct is returned when the prototype is not a struct or a
	// pointer to a struct.
	ErrNotStruct = errors.New("base type is not a struct")

	// ErrConflictingTags is returned when a field carries more than one of
	// the configured injection tags.
	ErrConflictingTags = errors.New("conflicting injection tags on one field")

	// ErrSetterIncompatible is returned when a paired setter's parameter
	// type cannot be assigned to the injection point's field type.
	ErrSetterIncompatible = errors.New("setter parameter incompatible with field type")

	// ErrPointNotSettable is returned when an injection tag is placed on an
	// unexported field, which the engine cannot populate.
	ErrPointNotSettable = errors.New("injection point field is not settable")
)

// RegistrationError reports that a base type cannot be decorated because of
// a malformed declaration. It is fatal for the type.
type RegistrationError struct {
	Type   reflect.Type
	Member string
	Reason error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registration of %v failed: member '%s': %v", e.Type, e.Member, e.Reason)
}

func (e *RegistrationError) Unwrap() error { return e.Reason }

// Config controls how a Registry interprets base types.
type Config struct {
	// InjectionTags lists the struct tags that mark a field as an
	// injection point. Defaults to {"inject"}.
	InjectionTags []string

	// SetterPrefixes lists the method name prefixes recognized as paired
	// setters for injection points. Defaults to {"Set"}.
	SetterPrefixes []string

	// Reserved lists declared method names excluded from the dispatch
	// index (wrapper plumbing such as self-binding or marker methods).
	Reserved []string
}

func (c Config) withDefaults() Config {
	if len(c.InjectionTags) == 0 {
		c.InjectionTags = []string{"inject"}
	}
	if len(c.SetterPrefixes) == 0 {
		c.SetterPrefixes = []string{"Set"}
	}
	return c
}

// Registry builds and caches one Entry per base type. The first Build for a
// type pays the reflection cost; subsequent calls return the cached Entry.
type Registry struct {
	cfg Config

	mu      sync.RWMutex
	entries map[reflect.Type]*Entry
}

// NewRegistry creates a Registry with the given configuration.
func NewRegistry(cfg Config) *Registry {
	return &Registry{
		cfg:     cfg.withDefaults(),
		entries: make(map[reflect.Type]*Entry),
	}
}

// Build reflects the prototype's type and returns its Entry. Build is
// idempotent: repeated calls for the same base type return the same Entry.
func (r *Registry) Build(prototype any) (*Entry, error) {
	base, err := baseTypeOf(prototype)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	entry, ok := r.entries[base]
	r.mu.RUnlock()
	if ok {
		return entry, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok = r.entries[base]; ok {
		return entry, nil
	}

	entry, err = r.build(base)
	if err != nil {
		return nil, err
	}

	r.entries[base] = entry

	return entry, nil
}

func baseTypeOf(prototype any) (reflect.Type, error) {
	if prototype == nil {
		return nil, ErrNotStruct
	}

	t := reflect.TypeOf(prototype)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v", ErrNotStruct, t)
	}

	return t, nil
}

func (r *Registry) build(base reflect.Type) (*Entry, error) {
	entry := &Entry{
		Type:         base,
		PtrType:      reflect.PointerTo(base),
		Methods:      make(map[string][]Descriptor),
		Properties:   make(map[string]Property),
		Points:       make(map[string]Point),
		setterPoints: make(map[string]string),
	}

	r.indexMethods(entry)

	if err := r.indexProperties(entry); err != nil {
		return nil, err
	}

	if err := r.indexPoints(entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// indexMethods fills entry.Methods from the pointer type's method set.
// reflect enumerates methods in lexicographic name order, which fixes
// declaration order for overload tie-breaking.
func (r *Registry) indexMethods(entry *Entry) {
	for i := 0; i < entry.PtrType.NumMethod(); i++ {
		m := entry.PtrType.Method(i)

		if stringsx.OneOf(m.Name, r.cfg.Reserved...) {
			continue
		}

		desc := Descriptor{
			Name:       dispatchName(m.Name),
			MethodName: m.Name,
			Index:      i,
			Variadic:   m.Type.IsVariadic(),
		}

		for in := 1; in < m.Type.NumIn(); in++ { // 0 is the receiver
			desc.In = append(desc.In, m.Type.In(in))
		}

		if n := m.Type.NumOut(); n > 0 && m.Type.Out(n-1) == errorType {
			desc.ReturnsError = true
		}

		entry.Methods[desc.Name] = append(entry.Methods[desc.Name], desc)
	}
}

func (r *Registry) indexProperties(entry *Entry) error {
	for i := 0; i < entry.Type.NumField(); i++ {
		field := entry.Type.Field(i)

		if !field.IsExported() {
			if tag, _, err := r.injectionTag(field); err != nil {
				return &RegistrationError{Type: entry.Type, Member: field.Name, Reason: err}
			} else if tag != "" {
				return &RegistrationError{Type: entry.Type, Member: field.Name, Reason: ErrPointNotSettable}
			}
			continue
		}

		prop := Property{
			Name:  stringsx.LowerFirstChar(field.Name),
			Field: field,
		}
		entry.Properties[prop.Name] = prop
	}

	return nil
}

func (r *Registry) indexPoints(entry *Entry) error {
	for _, prop := range entry.Properties {
		tag, key, err := r.injectionTag(prop.Field)
		if err != nil {
			return &RegistrationError{Type: entry.Type, Member: prop.Field.Name, Reason: err}
		}
		if tag == "" {
			continue
		}

		if key == "" {
			key = prop.Field.Type.String()
		}

		point := Point{Property: prop, Key: key}

		setter, err := r.pairedSetter(entry, prop)
		if err != nil {
			return err
		}
		if setter != nil {
			point.Setter = setter
			entry.setterPoints[setter.MethodName] = prop.Name
		}

		entry.Points[prop.Name] = point
	}

	return nil
}

// injectionTag returns the first configured tag present on the field and its
// value. A field carrying more than one configured tag is malformed.
func (r *Registry) injectionTag(field reflect.StructField) (tag, key string, err error) {
	for _, candidate := range r.cfg.InjectionTags {
		value, ok := field.Tag.Lookup(candidate)
		if !ok {
			continue
		}
		if tag != "" {
			return "", "", ErrConflictingTags
		}
		tag, key = candidate, value
	}

	return tag, key, nil
}

// pairedSetter finds a declared "<prefix><Field>" method taking exactly one
// parameter assignable to the field type.
func (r *Registry) pairedSetter(entry *Entry, prop Property) (*Descriptor, error) {
	for _, overloads := range entry.Methods {
		for i := range overloads {
			desc := &overloads[i]
			if !stringsx.HasPrefix(desc.MethodName, r.cfg.SetterPrefixes...) {
				continue
			}
			if stringsx.TrimFirstPrefix(desc.MethodName, r.cfg.SetterPrefixes...) != prop.Field.Name {
				continue
			}
			if len(desc.In) != 1 || desc.Variadic {
				continue
			}
			if !desc.In[0].AssignableTo(prop.Field.Type) {
				return nil, &RegistrationError{
					Type:   entry.Type,
					Member: desc.MethodName,
					Reason: ErrSetterIncompatible,
				}
			}
			return desc, nil
		}
	}

	return nil, nil
}

// dispatchName derives the public dispatch name from a declared method name:
// the variant suffix after the first underscore is stripped, and the first
// character is lowered.
func dispatchName(methodName string) string {
	if idx := strings.Index(methodName, "_"); idx > 0 {
		methodName = methodName[:idx]
	}
	return stringsx.LowerFirstChar(methodName)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()
