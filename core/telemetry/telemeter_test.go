package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSpan(t *testing.T) {
	tm := New()

	ctx, span := tm.StartSpan(context.Background(), OpCall, "greet", "id-1")
	require.NotNil(t, span)
	assert.NotNil(t, ctx)
	span.End()

	// A nil context must not panic; dispatch sites have no caller context.
	ctx, span = tm.StartSpan(nil, OpGet, "name", "id-1") //nolint:staticcheck
	require.NotNil(t, span)
	assert.NotNil(t, ctx)
	span.End()
}

func TestOperationKindString(t *testing.T) {
	testCases := []struct {
		op       OperationKind
		expected string
	}{
		{op: OpCall, expected: "call"},
		{op: OpGet, expected: "get"},
		{op: OpSet, expected: "set"},
		{op: OpConstruct, expected: "construct"},
		{op: OpUnknown, expected: "unknown"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, tc.op.String())
	}
}
