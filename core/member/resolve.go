package member

import "reflect"

// CapabilityChecker reports whether a parameter type is callback-shaped, so
// the resolver can keep candidates eligible when the caller supplied a bare
// func for a trailing capability parameter.
type CapabilityChecker interface {
	IsCapability(t reflect.Type) bool
}

// Per-argument specificity ranks, most to least specific.
const (
	rankNone  = 0 // candidate ineligible
	rankTop   = 1 // universal top type (empty interface), or nil to a nilable type
	rankWiden = 2 // numeric widening or non-empty interface satisfaction
	rankExact = 3 // runtime type matches exactly; trailing callback bridge ranks here too
)

// Resolve picks the single best-matching overload for the dispatch name and
// runtime argument list, or reports no match. Candidates are the declared
// overloads with matching name and arity. Rank vectors are compared
// parameter by parameter; ties fall to the earliest declared candidate.
//
// Resolve is a pure function over the entry and the argument list. A missing
// match is not an error: callers route it to the missing-member protocol.
func Resolve(entry *Entry, name string, args []any, caps CapabilityChecker) (*Descriptor, bool) {
	overloads, ok := entry.Methods[name]
	if !ok {
		return nil, false
	}

	var (
		best      *Descriptor
		bestRanks []int
	)

	for i := range overloads {
		desc := &overloads[i]
		if desc.Variadic || len(desc.In) != len(args) {
			continue
		}

		ranks, eligible := rankCandidate(desc, args, caps)
		if !eligible {
			continue
		}

		if best == nil || moreSpecific(ranks, bestRanks) {
			best, bestRanks = desc, ranks
		}
	}

	if best == nil {
		return nil, false
	}

	return best, true
}

func rankCandidate(desc *Descriptor, args []any, caps CapabilityChecker) ([]int, bool) {
	ranks := make([]int, len(args))
	for i, arg := range args {
		last := i == len(args)-1
		r := rankArgument(desc.In[i], arg, last, caps)
		if r == rankNone {
			return nil, false
		}
		ranks[i] = r
	}

	return ranks, true
}

func rankArgument(param reflect.Type, arg any, last bool, caps CapabilityChecker) int {
	if arg == nil {
		if nilable(param) {
			return rankTop
		}
		return rankNone
	}

	at := reflect.TypeOf(arg)

	if at == param {
		return rankExact
	}

	// A bare func supplied for a trailing capability parameter keeps the
	// candidate eligible and ranks as an exact match: coercion bridges it.
	if last && at.Kind() == reflect.Func && isCapability(param, caps) && !at.AssignableTo(param) {
		return rankExact
	}

	if numericWidening(param, at) {
		return rankWiden
	}

	if param.Kind() == reflect.Interface {
		if param.NumMethod() == 0 {
			return rankTop
		}
		if at.Implements(param) {
			return rankWiden
		}
		return rankNone
	}

	if at.AssignableTo(param) {
		return rankWiden
	}

	return rankNone
}

func isCapability(param reflect.Type, caps CapabilityChecker) bool {
	if caps != nil {
		return caps.IsCapability(param)
	}
	return param.Kind() == reflect.Func
}

// moreSpecific reports whether ranks a beats ranks b, comparing parameter by
// parameter. Equal vectors report false, keeping the earlier candidate.
func moreSpecific(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	default:
		return false
	}
}

// numericWidening reports whether a value of runtime type arg may be widened
// to the parameter type without truncation: integers widen to same-signedness
// integers of at least the same width, unsigned integers to strictly wider
// signed integers, any integer to a float, and float32 to float64.
func numericWidening(param, arg reflect.Type) bool {
	pk, ak := param.Kind(), arg.Kind()

	switch {
	case isSignedInt(ak) && isSignedInt(pk):
		return intBits(pk) >= intBits(ak)
	case isUnsignedInt(ak) && isUnsignedInt(pk):
		return intBits(pk) >= intBits(ak)
	case isUnsignedInt(ak) && isSignedInt(pk):
		return intBits(pk) > intBits(ak)
	case (isSignedInt(ak) || isUnsignedInt(ak)) && isFloat(pk):
		return true
	case ak == reflect.Float32 && pk == reflect.Float64:
		return true
	default:
		return false
	}
}

func isSignedInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUnsignedInt(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uint64
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func intBits(k reflect.Kind) int {
	switch k {
	case reflect.Int8, reflect.Uint8:
		return 8
	case reflect.Int16, reflect.Uint16:
		return 16
	case reflect.Int32, reflect.Uint32:
		return 32
	default:
		return 64
	}
}
