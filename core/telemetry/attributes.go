package telemetry

import "go.opentelemetry.io/otel/attribute"

// OperationKind identifies the dispatch operation a span covers.
type OperationKind int

const (
	OpUnknown OperationKind = iota
	OpCall
	OpGet
	OpSet
	OpConstruct
)

func (k OperationKind) String() string {
	switch k {
	case OpCall:
		return "call"
	case OpGet:
		return "get"
	case OpSet:
		return "set"
	case OpConstruct:
		return "construct"
	case OpUnknown:
		fallthrough
	default:
		return "unknown"
	}
}

// Operation returns the span attribute for the dispatch operation kind.
func Operation(k OperationKind) attribute.KeyValue {
	return attribute.String("dispatch_op", k.String())
}

// Member returns the span attribute for the dispatched member name.
func Member(name string) attribute.KeyValue {
	return attribute.String("dispatch_member", name)
}

// InstanceID returns the span attribute for the decorated instance id.
func InstanceID(id string) attribute.KeyValue {
	return attribute.String("dispatch_instance", id)
}
