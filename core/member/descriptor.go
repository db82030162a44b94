package member

import "reflect"

// Descriptor describes a single declared method overload of a base type.
// Descriptors are immutable once the owning Entry is built.
type Descriptor struct {
	Name         string         // dispatch name, lower-first-char with variant suffix stripped
	MethodName   string         // declared Go method name, including any variant suffix
	Index        int            // reflect method index; defines declaration order
	In           []reflect.Type // parameter types, receiver excluded
	Variadic     bool           // variadic methods are indexed but never matched by Resolve
	ReturnsError bool           // last result is an error to be split off on invocation
}

// Property describes a field-backed property of a base type.
type Property struct {
	Name  string // property name, lower-first-char form of the field name
	Field reflect.StructField
}

// Point is a Property marked as an injection point. Its value is supplied
// by an external lookup service under Key, at most once per instance, unless
// explicitly assigned through the paired setter.
type Point struct {
	Property Property
	Key      string      // tag value if non-empty, otherwise the field type's string form
	Setter   *Descriptor // paired "Set<Field>" method, nil if the type declares none
}

// Entry is the reflected index of one base type. One Entry exists per type,
// shared by every decorated instance of that type, and is read-only after
// Build returns it.
type Entry struct {
	Type    reflect.Type // base struct type
	PtrType reflect.Type // pointer type whose method set is indexed

	// Methods groups declared method overloads by dispatch name,
	// in declaration (method index) order.
	Methods map[string][]Descriptor

	// Properties indexes exported fields by property name.
	// Injection-point fields appear here as well as in Points.
	Properties map[string]Property

	// Points indexes injection points by property name.
	Points map[string]Point

	// setterPoints maps a paired setter's declared method name to the
	// point it assigns, so invocations through dispatch can mark the
	// point's slot as explicitly set.
	setterPoints map[string]string
}

// SetterPoint returns the name of the injection point assigned by the given
// descriptor, or "" if the descriptor is not a paired setter.
func (e *Entry) SetterPoint(desc *Descriptor) string {
	if desc == nil {
		return ""
	}
	return e.setterPoints[desc.MethodName]
}

// PointNames returns the names of all injection points of the entry.
func (e *Entry) PointNames() []string {
	names := make([]string, 0, len(e.Points))
	for name := range e.Points {
		names = append(names, name)
	}
	return names
}
