package missing

// MethodHandler handles calls to methods the base type does not declare.
type MethodHandler interface {
	HandleMissingMethod(name string, args []any) (any, error)
}

// MethodHandlerFunc adapts a bare func to MethodHandler.
type MethodHandlerFunc func(name string, args []any) (any, error)

func (f MethodHandlerFunc) HandleMissingMethod(name string, args []any) (any, error) {
	return f(name, args)
}

// PropertyGetHandler handles reads of properties the base type does not
// declare and the extension bag does not hold.
type PropertyGetHandler interface {
	HandleMissingGet(name string) (any, error)
}

// PropertyGetHandlerFunc adapts a bare func to PropertyGetHandler.
type PropertyGetHandlerFunc func(name string) (any, error)

func (f PropertyGetHandlerFunc) HandleMissingGet(name string) (any, error) {
	return f(name)
}

// PropertySetHandler handles writes to properties the base type does not
// declare and the extension bag does not hold.
type PropertySetHandler interface {
	HandleMissingSet(name string, value any) error
}

// PropertySetHandlerFunc adapts a bare func to PropertySetHandler.
type PropertySetHandlerFunc func(name string, value any) error

func (f PropertySetHandlerFunc) HandleMissingSet(name string, value any) error {
	return f(name, value)
}

// Hooks carries the three optional handler slots. A nil slot means no
// fallback is configured for that shape of access.
type Hooks struct {
	Method MethodHandler
	Get    PropertyGetHandler
	Set    PropertySetHandler
}

// OrElse fills each nil slot of h from the fallback, letting instance-level
// hooks take precedence over type-level ones slot by slot.
func (h Hooks) OrElse(fallback Hooks) Hooks {
	if h.Method == nil {
		h.Method = fallback.Method
	}
	if h.Get == nil {
		h.Get = fallback.Get
	}
	if h.Set == nil {
		h.Set = fallback.Set
	}
	return h
}
