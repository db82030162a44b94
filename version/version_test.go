package version_test

import (
	"testing"

	"github.com/anoideaopen/dynobj/version"
	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	// Working-tree builds report either the fallback or the toolchain's
	// devel placeholder; either way the value is usable as a span attribute.
	assert.NotEmpty(t, version.Version())
}
