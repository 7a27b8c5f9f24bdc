package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextRoundTrip(t *testing.T) {
	run := &Run{NoColor: true, Snapshot: true}
	ctx := IntoContext(context.Background(), run)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, run, got)
}

func TestFromContextMissing(t *testing.T) {
	got, ok := FromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestFromContextWrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), settingsContextKey, "not settings")
	_, ok := FromContext(ctx)
	assert.False(t, ok)
}
