//go:build unit

package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gerritforge/internal/domain/engine"
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// advanceThrough releases each wait of the poller by exactly the given delays.
func advanceThrough(ctx context.Context, t *testing.T, clock *clockwork.FakeClock, delays ...time.Duration) {
	t.Helper()
	for _, delay := range delays {
		require.NoError(t, clock.BlockUntilContext(ctx, 1))
		clock.Advance(delay)
	}
}

func TestConsistencyPoller(t *testing.T) {
	t.Parallel()

	t.Run("should make five attempts with linear waits and then give up", func(t *testing.T) {
		t.Parallel()

		// given
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		clock := clockwork.NewFakeClock()
		start := clock.Now()
		poller := engine.NewConsistencyPoller(clock)
		var attempts []time.Duration
		lookup := func(context.Context) (*entities.Change, error) {
			attempts = append(attempts, clock.Since(start))
			return nil, nil
		}

		// when
		type outcome struct {
			change *entities.Change
			err    error
		}
		done := make(chan outcome, 1)
		go func() {
			change, err := poller.Poll(ctx, lookup)
			done <- outcome{change, err}
		}()
		advanceThrough(ctx, t, clock, time.Second, 2*time.Second, 3*time.Second, 4*time.Second)
		result := <-done

		// then
		require.NoError(t, result.err)
		assert.Nil(t, result.change)
		assert.Equal(t, []time.Duration{0, time.Second, 3 * time.Second, 6 * time.Second, 10 * time.Second}, attempts)
	})

	t.Run("should stop as soon as the change is visible", func(t *testing.T) {
		t.Parallel()

		// given
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		clock := clockwork.NewFakeClock()
		poller := engine.NewConsistencyPoller(clock)
		calls := 0
		lookup := func(context.Context) (*entities.Change, error) {
			calls++
			if calls == 3 {
				return &entities.Change{Number: 5}, nil
			}
			return nil, nil
		}

		// when
		done := make(chan *entities.Change, 1)
		go func() {
			change, _ := poller.Poll(ctx, lookup)
			done <- change
		}()
		advanceThrough(ctx, t, clock, time.Second, 2*time.Second)
		change := <-done

		// then
		require.NotNil(t, change)
		assert.Equal(t, 5, change.Number)
		assert.Equal(t, 3, calls)
	})

	t.Run("should return lookup errors immediately", func(t *testing.T) {
		t.Parallel()

		// given
		lookupErr := errors.New("boom")
		poller := engine.NewConsistencyPoller(clockwork.NewFakeClock())
		calls := 0

		// when
		_, err := poller.Poll(context.Background(), func(context.Context) (*entities.Change, error) {
			calls++
			return nil, lookupErr
		})

		// then
		require.ErrorIs(t, err, lookupErr)
		assert.Equal(t, 1, calls)
	})

	t.Run("should stop waiting when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		// given
		ctx, cancel := context.WithCancel(context.Background())
		poller := engine.NewConsistencyPoller(clockwork.NewFakeClock())

		// when
		_, err := poller.Poll(ctx, func(context.Context) (*entities.Change, error) {
			cancel()
			return nil, nil
		})

		// then
		require.ErrorIs(t, err, context.Canceled)
	})
}
