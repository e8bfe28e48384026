package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerMinute_Burst(t *testing.T) {
	l := PerMinute(3)
	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(), "call %d", i)
	}
	assert.False(t, l.Allow())
}

func TestPerMinute_Unlimited(t *testing.T) {
	l := PerMinute(0)
	for i := 0; i < 1000; i++ {
		require.True(t, l.Allow())
	}
}

func TestWait_RespectsContext(t *testing.T) {
	l := PerMinute(1)
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx))
}
