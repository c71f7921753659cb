package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	_, err := New(Options{Grow: 0.5})
	assert.Error(t, err)
	_, err = New(Options{Min: -time.Second})
	assert.Error(t, err)
}

func TestNextLimits(t *testing.T) {
	b, err := New(Options{Min: time.Millisecond, Max: 4 * time.Millisecond, Jitter: 1.0, MaxAttempts: 4})
	require.NoError(t, err)
	var got []time.Duration
	for {
		d, ok := b.Next()
		if !ok {
			break
		}
		got = append(got, d)
	}
	assert.Equal(t, []time.Duration{2 * time.Millisecond, 4 * time.Millisecond, 4 * time.Millisecond}, got)

	b.Reset()
	d, ok := b.Next()
	assert.True(t, ok)
	assert.Equal(t, 2*time.Millisecond, d)
}

func TestRetry(t *testing.T) {
	b, err := New(Options{Min: time.Millisecond, MaxAttempts: 1})
	require.NoError(t, err)
	cause := errors.New("boom")
	err = b.Retry(context.Background(), cause)
	assert.ErrorIs(t, err, cause)

	b, err = New(Options{Min: time.Hour, MaxAttempts: 3})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, b.Retry(ctx, cause), context.Canceled)
}
