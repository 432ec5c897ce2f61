//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gerritforge/internal/domain/commands"
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// StubCatCommand is a stub implementation of commands.Cat.
type StubCatCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.CatOptions
}

var _ commands.Cat = (*StubCatCommand)(nil)

func (s *StubCatCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.CatOptions,
) error {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.ExecuteErr
}
