//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gerritforge/internal/domain/commands"
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// StubAbandonCommand is a stub implementation of commands.Abandon.
type StubAbandonCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.AbandonOptions
}

var _ commands.Abandon = (*StubAbandonCommand)(nil)

func (s *StubAbandonCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.AbandonOptions,
) error {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.ExecuteErr
}
