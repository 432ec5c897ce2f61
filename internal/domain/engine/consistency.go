package engine

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

const (
	defaultVisibilityAttempts = 5
	defaultVisibilityStep     = time.Second
)

// ConsistencyPoller re-runs a lookup until the search index shows its result.
// The wait before attempt n+1 is n*step (linear backoff).
type ConsistencyPoller struct {
	clock    clockwork.Clock
	attempts int
	step     time.Duration
}

// NewConsistencyPoller creates a poller making up to five attempts one
// second apart, then two, three and four seconds.
func NewConsistencyPoller(clock clockwork.Clock) *ConsistencyPoller {
	return &ConsistencyPoller{
		clock:    clock,
		attempts: defaultVisibilityAttempts,
		step:     defaultVisibilityStep,
	}
}

// Poll calls lookup until it returns a change, an error, or the attempts are
// exhausted. It returns nil without error when the change never appeared.
func (it *ConsistencyPoller) Poll(
	ctx context.Context,
	lookup func(ctx context.Context) (*entities.Change, error),
) (*entities.Change, error) {
	for attempt := 1; attempt <= it.attempts; attempt++ {
		change, err := lookup(ctx)
		if err != nil {
			return nil, err
		}
		if change != nil {
			return change, nil
		}
		if attempt == it.attempts {
			break
		}

		delay := time.Duration(attempt) * it.step
		logger.Debugf("Change not visible yet (attempt %d/%d), waiting %s", attempt, it.attempts, delay)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-it.clock.After(delay):
		}
	}
	return nil, nil //nolint:nilnil // absence is reported to the caller as nil
}
