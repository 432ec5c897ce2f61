//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gerritforge/internal/domain/commands"
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// StubReposCommand is a stub implementation of commands.Repos.
type StubReposCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.ReposOptions
}

var _ commands.Repos = (*StubReposCommand)(nil)

func (s *StubReposCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.ReposOptions,
) error {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.ExecuteErr
}
