package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metzakaria/vendicore-frontend-sub001/internal/testutil"
)

func TestLoginThrottle_AllowUntilLimit(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	throttle := NewLoginThrottle(client, ThrottleConfig{MaxFailures: 3, Window: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := throttle.Allow(ctx, "victim@example.com")
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d should be allowed", i+1)
		require.NoError(t, throttle.RecordFailure(ctx, "victim@example.com"))
	}

	ok, err := throttle.Allow(ctx, "victim@example.com")
	require.NoError(t, err)
	assert.False(t, ok, "attempts past the limit must be blocked")
}

func TestLoginThrottle_PerIdentifier(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	throttle := NewLoginThrottle(client, ThrottleConfig{MaxFailures: 1, Window: time.Minute})
	ctx := context.Background()

	require.NoError(t, throttle.RecordFailure(ctx, "one@example.com"))

	ok, err := throttle.Allow(ctx, "one@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = throttle.Allow(ctx, "two@example.com")
	require.NoError(t, err)
	assert.True(t, ok, "other identifiers are unaffected")
}

func TestLoginThrottle_IdentifierNormalized(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	throttle := NewLoginThrottle(client, ThrottleConfig{MaxFailures: 1, Window: time.Minute})
	ctx := context.Background()

	require.NoError(t, throttle.RecordFailure(ctx, "  Mixed@Example.COM "))

	ok, err := throttle.Allow(ctx, "mixed@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoginThrottle_Reset(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	throttle := NewLoginThrottle(client, ThrottleConfig{MaxFailures: 1, Window: time.Minute})
	ctx := context.Background()

	require.NoError(t, throttle.RecordFailure(ctx, "victim@example.com"))
	ok, err := throttle.Allow(ctx, "victim@example.com")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, throttle.Reset(ctx, "victim@example.com"))

	ok, err = throttle.Allow(ctx, "victim@example.com")
	require.NoError(t, err)
	assert.True(t, ok, "reset clears the failure window")
}

func TestLoginThrottle_WindowExpires(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	throttle := NewLoginThrottle(client, ThrottleConfig{MaxFailures: 1, Window: time.Second})
	ctx := context.Background()

	require.NoError(t, throttle.RecordFailure(ctx, "victim@example.com"))
	ok, err := throttle.Allow(ctx, "victim@example.com")
	require.NoError(t, err)
	require.False(t, ok)

	time.Sleep(1100 * time.Millisecond)

	ok, err = throttle.Allow(ctx, "victim@example.com")
	require.NoError(t, err)
	assert.True(t, ok, "counter expires with the window")
}

func TestLoginThrottle_FailsOpenWhenRedisDown(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	// Close immediately to simulate an outage.
	require.NoError(t, client.Close())

	throttle := NewLoginThrottle(client, ThrottleConfig{MaxFailures: 1, Window: time.Minute})

	ok, err := throttle.Allow(context.Background(), "victim@example.com")
	assert.Error(t, err)
	assert.True(t, ok, "throttle must fail open, never lock out logins on redis outage")
}

func TestLoginThrottle_Defaults(t *testing.T) {
	throttle := NewLoginThrottle(nil, ThrottleConfig{})
	assert.Equal(t, defaultMaxFailures, throttle.maxFailures)
	assert.Equal(t, defaultWindow, throttle.window)
	assert.Equal(t, "login_fail:", throttle.prefix)
}
