package callback

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Notifier interface {
	Notify(msg string) string
}

type NotifierFunc func(msg string) string

func (f NotifierFunc) Notify(msg string) string { return f(msg) }

type Failer interface {
	Fail(op string) error
}

type FailerFunc func(op string) error

func (f FailerFunc) Fail(op string) error { return f(op) }

var notifierType = reflect.TypeOf((*Notifier)(nil)).Elem()

func newNotifierAdapters(t *testing.T) *Adapters {
	t.Helper()

	adapters := NewAdapters()
	require.NoError(t, adapters.Register((*Notifier)(nil), NotifierFunc(nil)))
	return adapters
}

func TestRegister(t *testing.T) {
	testCases := []struct {
		name    string
		iface   any
		adapter any
	}{
		{name: "interface not a nil interface pointer", iface: 42, adapter: NotifierFunc(nil)},
		{name: "interface value instead of pointer", iface: Notifier(nil), adapter: NotifierFunc(nil)},
		{name: "interface with two methods", iface: (*io.ReadWriter)(nil), adapter: NotifierFunc(nil)},
		{name: "adapter not a func type", iface: (*Notifier)(nil), adapter: 42},
		{name: "adapter does not implement the interface", iface: (*Notifier)(nil), adapter: FailerFunc(nil)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewAdapters().Register(tc.iface, tc.adapter)
			assert.ErrorIs(t, err, ErrBadAdapter)
		})
	}

	t.Run("valid pair registers", func(t *testing.T) {
		assert.NoError(t, NewAdapters().Register((*Notifier)(nil), NotifierFunc(nil)))
	})
}

func TestIsCapability(t *testing.T) {
	adapters := newNotifierAdapters(t)

	assert.True(t, adapters.IsCapability(reflect.TypeOf(func(string) string { return "" })))
	assert.True(t, adapters.IsCapability(notifierType))

	assert.False(t, NewAdapters().IsCapability(notifierType))
	assert.False(t, adapters.IsCapability(reflect.TypeOf(0)))
	assert.False(t, adapters.IsCapability(reflect.TypeOf((*io.ReadWriter)(nil)).Elem()))
}

func TestCoerceOntoInterface(t *testing.T) {
	adapters := newNotifierAdapters(t)

	t.Run("bare func becomes the capability", func(t *testing.T) {
		v, err := adapters.Coerce(notifierType, func(msg string) string {
			return "note: " + msg
		})
		require.NoError(t, err)

		notifier, ok := v.Interface().(Notifier)
		require.True(t, ok)
		assert.Equal(t, "note: hello", notifier.Notify("hello"))
	})

	t.Run("values already satisfying the capability pass through", func(t *testing.T) {
		raw := NotifierFunc(strings.ToUpper)

		v, err := adapters.Coerce(notifierType, raw)
		require.NoError(t, err)
		assert.Equal(t, "HELLO", v.Interface().(Notifier).Notify("hello"))
	})

	t.Run("unregistered interface has no adapter", func(t *testing.T) {
		_, err := NewAdapters().Coerce(notifierType, func(string) string { return "" })
		assert.ErrorIs(t, err, ErrNoAdapter)
	})
}

func TestCoerceOntoFunc(t *testing.T) {
	adapters := NewAdapters()

	t.Run("identical signature converts directly", func(t *testing.T) {
		target := reflect.TypeOf(NotifierFunc(nil))

		v, err := adapters.Coerce(target, func(msg string) string { return "<" + msg + ">" })
		require.NoError(t, err)
		assert.Equal(t, "<x>", v.Interface().(NotifierFunc)("x"))
	})

	t.Run("assignable raw comes back typed as the target", func(t *testing.T) {
		target := reflect.TypeOf(NotifierFunc(nil))

		// A bare func is assignable to the named func type; the result must
		// carry the target type, not the raw one.
		v, err := adapters.Coerce(target, func(msg string) string { return msg })
		require.NoError(t, err)
		assert.Equal(t, target, v.Type())
	})

	t.Run("void target discards the raw results", func(t *testing.T) {
		var recorded string
		target := reflect.TypeOf((func(string))(nil))

		v, err := adapters.Coerce(target, func(msg string) string {
			recorded = msg
			return "ignored"
		})
		require.NoError(t, err)

		out := v.Call([]reflect.Value{reflect.ValueOf("ping")})
		assert.Empty(t, out)
		assert.Equal(t, "ping", recorded)
	})

	t.Run("results box into interface declarations", func(t *testing.T) {
		target := reflect.TypeOf((func(string) any)(nil))

		v, err := adapters.Coerce(target, func(msg string) string { return msg + "!" })
		require.NoError(t, err)

		out := v.Call([]reflect.Value{reflect.ValueOf("go")})
		require.Len(t, out, 1)
		assert.Equal(t, "go!", out[0].Interface())
	})

	t.Run("nil raw yields the zero capability", func(t *testing.T) {
		v, err := adapters.Coerce(reflect.TypeOf(NotifierFunc(nil)), nil)
		require.NoError(t, err)
		assert.True(t, v.IsNil())
	})
}

func TestCoerceRejections(t *testing.T) {
	adapters := newNotifierAdapters(t)

	testCases := []struct {
		name     string
		target   reflect.Type
		raw      any
		expected error
	}{
		{
			name:     "non-callable value",
			target:   reflect.TypeOf(NotifierFunc(nil)),
			raw:      42,
			expected: ErrNotCallable,
		},
		{
			name:     "target is not a capability shape",
			target:   reflect.TypeOf(0),
			raw:      func() {},
			expected: ErrNotCapability,
		},
		{
			name:     "argument count mismatch",
			target:   reflect.TypeOf((func(string, string) string)(nil)),
			raw:      func(string) string { return "" },
			expected: ErrSignatureMismatch,
		},
		{
			name:     "argument type mismatch",
			target:   reflect.TypeOf((func(chan int))(nil)),
			raw:      func(string) {},
			expected: ErrSignatureMismatch,
		},
		{
			name:     "result count mismatch",
			target:   reflect.TypeOf((func() (string, string))(nil)),
			raw:      func() string { return "" },
			expected: ErrSignatureMismatch,
		},
		{
			name:     "variadic callbacks are not bridged",
			target:   reflect.TypeOf((func(...string))(nil)),
			raw:      func(string) {},
			expected: ErrSignatureMismatch,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := adapters.Coerce(tc.target, tc.raw)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestBridgePreservesErrorIdentity(t *testing.T) {
	adapters := NewAdapters()
	require.NoError(t, adapters.Register((*Failer)(nil), FailerFunc(nil)))

	errDown := errors.New("backend down")

	v, err := adapters.Coerce(reflect.TypeOf((*Failer)(nil)).Elem(), func(string) error {
		return errDown
	})
	require.NoError(t, err)

	assert.Same(t, errDown, v.Interface().(Failer).Fail("sync"))
}

func TestBridgePropagatesPanics(t *testing.T) {
	adapters := newNotifierAdapters(t)

	sentinel := errors.New("listener blew up")

	// The wider parameter forces the MakeFunc path instead of a direct
	// conversion.
	v, err := adapters.Coerce(notifierType, func(any) string {
		panic(sentinel)
	})
	require.NoError(t, err)

	defer func() {
		assert.Same(t, sentinel, recover())
	}()
	v.Interface().(Notifier).Notify("boom")
}
