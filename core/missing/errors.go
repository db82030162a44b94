package missing

import "fmt"

// UnknownMethodError reports a call to a method the base type does not
// declare, with no method-missing handler configured. It carries the
// dispatch name and the arity of the attempted call.
type UnknownMethodError struct {
	Name  string
	Arity int
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("unknown method '%s' with %d argument(s)", e.Name, e.Arity)
}

// UnknownPropertyError reports access to a property the base type does not
// declare, with no property-missing handler configured.
type UnknownPropertyError struct {
	Name string
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("unknown property '%s'", e.Name)
}
