package revocation

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("apply inserts and deletes", func(t *testing.T) {
		s := NewInMemoryStore()
		require.NoError(t, s.Apply(ctx, []string{"URN:UVCI:01:IT:A", "URN:UVCI:01:IT:B"}, nil))
		require.NoError(t, s.Apply(ctx, nil, []string{"URN:UVCI:01:IT:A"}))

		revoked, err := s.IsRevoked(ctx, "URN:UVCI:01:IT:A")
		require.NoError(t, err)
		assert.False(t, revoked)

		revoked, err = s.IsRevoked(ctx, "URN:UVCI:01:IT:B")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("duplicate inserts are ignored", func(t *testing.T) {
		s := NewInMemoryStore()
		require.NoError(t, s.Apply(ctx, []string{"X", "X", " X "}, nil))
		require.NoError(t, s.Apply(ctx, []string{"X"}, nil))
		assert.Equal(t, 1, s.Len())
	})

	t.Run("empty identifier is never revoked", func(t *testing.T) {
		s := NewInMemoryStore()
		require.NoError(t, s.Apply(ctx, []string{"", "  "}, nil))
		revoked, err := s.IsRevoked(ctx, "")
		require.NoError(t, err)
		assert.False(t, revoked)
		assert.Zero(t, s.Len())
	})

	t.Run("clean empties the set", func(t *testing.T) {
		s := NewInMemoryStore()
		require.NoError(t, s.Apply(ctx, []string{"A", "B"}, nil))
		before := testutil.ToFloat64(crlUpdates.WithLabelValues("clean"))
		require.NoError(t, s.Clean(ctx))
		assert.Zero(t, s.Len())
		assert.Equal(t, before+1, testutil.ToFloat64(crlUpdates.WithLabelValues("clean")))
	})
}

func TestNormalize(t *testing.T) {
	assert.Nil(t, normalize(nil))
	assert.Equal(t, []string{"a", "b"}, normalize([]string{" a", "b", "a", ""}))
}
