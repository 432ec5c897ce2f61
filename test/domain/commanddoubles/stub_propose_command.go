//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gerritforge/internal/domain/commands"
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// StubProposeCommand is a stub implementation of commands.Propose.
type StubProposeCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.ProposeOptions
}

var _ commands.Propose = (*StubProposeCommand)(nil)

func (s *StubProposeCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.ProposeOptions,
) error {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.ExecuteErr
}
