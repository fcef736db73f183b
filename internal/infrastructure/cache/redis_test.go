package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_UnavailableDegradesQuietly(t *testing.T) {
	var r *Redis
	ctx := context.Background()

	ok, err := r.Lock(ctx, "lock:cleanup", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	var out map[string]string
	found, err := r.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, r.SetJSON(ctx, "k", map[string]string{"a": "b"}, 0))
	require.NoError(t, r.Unlock(ctx, "lock:cleanup"))

	n, err := r.Incr(ctx, "login:a@example.com", time.Minute)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.ErrorIs(t, r.Ping(ctx), ErrUnavailable)
}
