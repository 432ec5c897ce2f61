//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gerritforge/internal/domain/commands"
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// StubFindCommand is a stub implementation of commands.Find.
type StubFindCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.FindOptions
}

var _ commands.Find = (*StubFindCommand)(nil)

func (s *StubFindCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.FindOptions,
) error {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.ExecuteErr
}
