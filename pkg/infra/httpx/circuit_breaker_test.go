package httpx

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_PassesThroughSuccess(t *testing.T) {
	cb := NewCircuitBreaker("test", time.Second, 3)

	calls := 0
	err := cb.Execute(func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCircuitBreaker_WrapsFailure(t *testing.T) {
	cb := NewCircuitBreaker("test", time.Second, 3)

	boom := errors.New("backend down")
	err := cb.Execute(func() error { return boom })

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "breaker (test)")
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker("test", time.Minute, 2)

	boom := errors.New("backend down")
	for i := 0; i < 2; i++ {
		_ = cb.Execute(func() error { return boom })
	}

	// The breaker is now open; the function must not run.
	calls := 0
	err := cb.Execute(func() error {
		calls++
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, 0, calls)
}
