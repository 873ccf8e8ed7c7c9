package circuit_breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_circuitBreaker_Call(t *testing.T) {
	t.Parallel()
	errBroker := errors.New("broker down")
	ok := func() error { return nil }
	fail := func() error { return errBroker }

	now := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	cb := newCircuitBreaker(10, time.Second, 0.3, 2, func() time.Time { return now })

	for i := 0; i < 20; i++ {
		require.NoError(t, cb.Call(ok))
	}
	require.Equal(t, Closed, cb.State())

	for i := 0; i < 2; i++ {
		require.ErrorIs(t, cb.Call(fail), errBroker)
	}
	require.Equal(t, Closed, cb.State())
	require.ErrorIs(t, cb.Call(fail), errBroker)
	require.Equal(t, Open, cb.State())

	require.ErrorIs(t, cb.Call(ok), ErrOpenCB)

	now = now.Add(2 * time.Second)
	require.ErrorIs(t, cb.Call(fail), errBroker)
	require.Equal(t, Open, cb.State(), "a failed half-open call reopens the breaker")

	now = now.Add(2 * time.Second)
	require.NoError(t, cb.Call(ok))
	require.Equal(t, HalfOpen, cb.State())
	require.NoError(t, cb.Call(ok))
	require.Equal(t, Closed, cb.State())
}
