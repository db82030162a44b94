package inject_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/anoideaopen/dynobj/core/inject"
	"github.com/anoideaopen/dynobj/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetResolvesOnce(t *testing.T) {
	service := &struct{ name string }{name: "db"}
	lk := mock.NewLookup().Provide("svc.db", service)
	slots := inject.NewSlots("db")

	first, err := slots.Get("db", "svc.db", lk, nil)
	require.NoError(t, err)
	assert.Same(t, service, first)
	assert.Equal(t, inject.Resolved, slots.State("db"))

	second, err := slots.Get("db", "svc.db", lk, nil)
	require.NoError(t, err)
	assert.Same(t, service, second)

	assert.Equal(t, 1, lk.Calls("svc.db"))
}

func TestGetResolvesOnceUnderContention(t *testing.T) {
	service := &struct{ name string }{name: "db"}
	lk := mock.NewLookup().Provide("svc.db", service)
	slots := inject.NewSlots("db")

	const readers = 32

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		values []any
	)

	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()

			v, err := slots.Get("db", "svc.db", lk, nil)
			assert.NoError(t, err)

			mu.Lock()
			values = append(values, v)
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, lk.TotalCalls())
	require.Len(t, values, readers)
	for _, v := range values {
		assert.Same(t, service, v)
	}
}

func TestSetExplicitDisablesLookup(t *testing.T) {
	lk := mock.NewLookup().Provide("svc.db", "from lookup")
	slots := inject.NewSlots("db")

	require.NoError(t, slots.SetExplicit("db", "pinned", nil))
	assert.Equal(t, inject.Explicit, slots.State("db"))

	v, err := slots.Get("db", "svc.db", lk, nil)
	require.NoError(t, err)
	assert.Equal(t, "pinned", v)
	assert.Zero(t, lk.TotalCalls())
}

func TestSetExplicitOverwritesResolution(t *testing.T) {
	lk := mock.NewLookup().Provide("svc.db", "from lookup")
	slots := inject.NewSlots("db")

	v, err := slots.Get("db", "svc.db", lk, nil)
	require.NoError(t, err)
	assert.Equal(t, "from lookup", v)

	require.NoError(t, slots.SetExplicit("db", "pinned", nil))

	v, err = slots.Get("db", "svc.db", lk, nil)
	require.NoError(t, err)
	assert.Equal(t, "pinned", v)
	assert.Equal(t, inject.Explicit, slots.State("db"))
	assert.Equal(t, 1, lk.Calls("svc.db"))
}

func TestGetReportsUnresolvedDependencies(t *testing.T) {
	t.Run("key not bound", func(t *testing.T) {
		slots := inject.NewSlots("db")

		_, err := slots.Get("db", "svc.db", mock.NewLookup(), nil)
		require.Error(t, err)

		var unresolved *inject.UnresolvedDependencyError
		require.ErrorAs(t, err, &unresolved)
		assert.Equal(t, "db", unresolved.Point)
		assert.Equal(t, "svc.db", unresolved.Key)
		assert.NoError(t, unresolved.Reason)
	})

	t.Run("ambiguous key carries the lookup error", func(t *testing.T) {
		errAmbiguous := errors.New("two candidates for key")
		lk := mock.NewLookup().FailWith(errAmbiguous)
		slots := inject.NewSlots("db")

		_, err := slots.Get("db", "svc.db", lk, nil)
		assert.ErrorIs(t, err, errAmbiguous)

		var unresolved *inject.UnresolvedDependencyError
		assert.ErrorAs(t, err, &unresolved)
	})

	t.Run("no lookup service configured", func(t *testing.T) {
		slots := inject.NewSlots("db")

		_, err := slots.Get("db", "svc.db", nil, nil)
		assert.ErrorIs(t, err, inject.ErrNoLookup)
	})
}

func TestUndeclaredPoint(t *testing.T) {
	slots := inject.NewSlots("db")

	_, err := slots.Get("cache", "svc.cache", mock.NewLookup(), nil)
	assert.ErrorIs(t, err, inject.ErrUnknownPoint)

	err = slots.SetExplicit("cache", "x", nil)
	assert.ErrorIs(t, err, inject.ErrUnknownPoint)

	assert.Equal(t, inject.Unresolved, slots.State("cache"))
}

func TestApplyRunsBeforePublication(t *testing.T) {
	t.Run("apply mirrors the resolved value", func(t *testing.T) {
		lk := mock.NewLookup().Provide("svc.db", "resolved")
		slots := inject.NewSlots("db")

		var mirrored any
		v, err := slots.Get("db", "svc.db", lk, func(val any) error {
			mirrored = val
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "resolved", v)
		assert.Equal(t, "resolved", mirrored)
	})

	t.Run("apply failure leaves the slot unresolved", func(t *testing.T) {
		errApply := errors.New("field write failed")
		lk := mock.NewLookup().Provide("svc.db", "resolved")
		slots := inject.NewSlots("db")

		_, err := slots.Get("db", "svc.db", lk, func(any) error { return errApply })
		assert.ErrorIs(t, err, errApply)
		assert.Equal(t, inject.Unresolved, slots.State("db"))

		// The failed attempt does not count as the slot's one resolution.
		v, err := slots.Get("db", "svc.db", lk, nil)
		require.NoError(t, err)
		assert.Equal(t, "resolved", v)
		assert.Equal(t, 2, lk.Calls("svc.db"))
	})

	t.Run("apply failure aborts explicit assignment", func(t *testing.T) {
		errApply := errors.New("field write failed")
		slots := inject.NewSlots("db")

		err := slots.SetExplicit("db", "pinned", func(any) error { return errApply })
		assert.ErrorIs(t, err, errApply)
		assert.Equal(t, inject.Unresolved, slots.State("db"))
	})
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unresolved", inject.Unresolved.String())
	assert.Equal(t, "resolved", inject.Resolved.String())
	assert.Equal(t, "explicitly set", inject.Explicit.String())
}
