package commands

import (
	"context"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	infraRepos "github.com/rios0rios0/gerritforge/internal/infrastructure/repositories"
)

// Comment is the interface for the comment command.
type Comment interface {
	Execute(ctx context.Context, settings *entities.Settings, opts CommentOptions) error
}

// CommentOptions holds the message to post on a change.
type CommentOptions struct {
	Number  int
	Message string
}

// CommentCommand posts a message on a change unless it is already there.
type CommentCommand struct {
	factory *infraRepos.PlatformFactory
}

// NewCommentCommand creates a new CommentCommand.
func NewCommentCommand(factory *infraRepos.PlatformFactory) *CommentCommand {
	return &CommentCommand{factory: factory}
}

func (it *CommentCommand) Execute(ctx context.Context, settings *entities.Settings, opts CommentOptions) error {
	platform, err := it.factory.Create(settings)
	if err != nil {
		return err
	}
	_, err = platform.EnsureComment(ctx, opts.Number, opts.Message)
	return err
}
