//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gerritforge/internal/domain/commands"
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// StubCommentCommand is a stub implementation of commands.Comment.
type StubCommentCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.CommentOptions
}

var _ commands.Comment = (*StubCommentCommand)(nil)

func (s *StubCommentCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.CommentOptions,
) error {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.ExecuteErr
}
