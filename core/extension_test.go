package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtensionBag(t *testing.T) {
	bag := newExtensionBag()

	_, ok := bag.Get("color")
	assert.False(t, ok)
	assert.False(t, bag.Has("color"))
	assert.Zero(t, bag.Len())

	bag.Set("color", "red")
	bag.Set("size", 10)
	bag.Set("color", "blue") // overwrite keeps the original position

	v, ok := bag.Get("color")
	assert.True(t, ok)
	assert.Equal(t, "blue", v)

	assert.True(t, bag.Has("size"))
	assert.Equal(t, []string{"color", "size"}, bag.Names())
	assert.Equal(t, 2, bag.Len())
}

func TestExtensionBagNamesIsACopy(t *testing.T) {
	bag := newExtensionBag()
	bag.Set("a", 1)

	names := bag.Names()
	names[0] = "mutated"

	assert.Equal(t, []string{"a"}, bag.Names())
}
