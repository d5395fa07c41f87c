package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := PerMinute(3)
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "request %d within burst", i+1)
	}
	assert.False(t, rl.Allow("10.0.0.1"), "fourth request is limited")
	assert.True(t, rl.Allow("10.0.0.2"), "other keys have their own bucket")

	now = now.Add(25 * time.Second)
	assert.True(t, rl.Allow("10.0.0.1"), "a token refills after twenty seconds")
	assert.False(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiter_Prune(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := PerMinute(10)
	rl.now = func() time.Time { return now }

	rl.Allow("old")
	now = now.Add(10 * time.Minute)
	rl.Allow("fresh")

	assert.Equal(t, 1, rl.Prune(5*time.Minute))
	assert.Len(t, rl.buckets, 1)
	assert.Contains(t, rl.buckets, "fresh")
}

func TestPerMinute_NonPositive(t *testing.T) {
	t.Parallel()

	rl := PerMinute(0)
	assert.True(t, rl.Allow("k"))
	assert.False(t, rl.Allow("k"))
}
