package missing

import (
	"errors"
	"testing"
)

func TestHandlerFuncsForward(t *testing.T) {
	errSet := errors.New("read-only")

	method := MethodHandlerFunc(func(name string, args []any) (any, error) {
		return name + "/2", nil
	})
	if v, err := method.HandleMissingMethod("m", []any{1, 2}); err != nil || v != "m/2" {
		t.Errorf("expected 'm/2', got %v (err %v)", v, err)
	}

	get := PropertyGetHandlerFunc(func(name string) (any, error) {
		return "value of " + name, nil
	})
	if v, err := get.HandleMissingGet("p"); err != nil || v != "value of p" {
		t.Errorf("expected 'value of p', got %v (err %v)", v, err)
	}

	set := PropertySetHandlerFunc(func(name string, value any) error {
		return errSet
	})
	if err := set.HandleMissingSet("p", 1); !errors.Is(err, errSet) {
		t.Errorf("expected errSet, got %v", err)
	}
}

func TestHooksOrElse(t *testing.T) {
	typeLevel := Hooks{
		Method: MethodHandlerFunc(func(string, []any) (any, error) { return "type", nil }),
		Get:    PropertyGetHandlerFunc(func(string) (any, error) { return "type", nil }),
		Set:    PropertySetHandlerFunc(func(string, any) error { return nil }),
	}

	t.Run("empty hooks take every fallback slot", func(t *testing.T) {
		merged := Hooks{}.OrElse(typeLevel)
		if v, _ := merged.Method.HandleMissingMethod("m", nil); v != "type" {
			t.Errorf("expected type-level method handler, got %v", v)
		}
		if merged.Get == nil || merged.Set == nil {
			t.Error("expected every slot filled from the fallback")
		}
	})

	t.Run("instance slots win slot by slot", func(t *testing.T) {
		instance := Hooks{
			Get: PropertyGetHandlerFunc(func(string) (any, error) { return "instance", nil }),
		}

		merged := instance.OrElse(typeLevel)
		if v, _ := merged.Get.HandleMissingGet("p"); v != "instance" {
			t.Errorf("expected instance-level get handler, got %v", v)
		}
		if v, _ := merged.Method.HandleMissingMethod("m", nil); v != "type" {
			t.Errorf("expected type-level method handler, got %v", v)
		}
	})
}
