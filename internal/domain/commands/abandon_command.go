package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	infraRepos "github.com/rios0rios0/gerritforge/internal/infrastructure/repositories"
)

// Abandon is the interface for the abandon command.
type Abandon interface {
	Execute(ctx context.Context, settings *entities.Settings, opts AbandonOptions) error
}

// AbandonOptions identifies the change to close. A non-empty Message is
// posted before the change is abandoned.
type AbandonOptions struct {
	Number  int
	Message string
}

// AbandonCommand closes the pull request backed by a change.
type AbandonCommand struct {
	factory *infraRepos.PlatformFactory
}

// NewAbandonCommand creates a new AbandonCommand.
func NewAbandonCommand(factory *infraRepos.PlatformFactory) *AbandonCommand {
	return &AbandonCommand{factory: factory}
}

func (it *AbandonCommand) Execute(ctx context.Context, settings *entities.Settings, opts AbandonOptions) error {
	platform, err := it.factory.Create(settings)
	if err != nil {
		return err
	}

	pr, err := platform.SubmitPullRequest(ctx, nil, entities.UpdateRequest{
		Number: opts.Number,
		Body:   opts.Message,
		State:  entities.PRStateClosed,
	})
	if err != nil {
		return err
	}
	logger.Infof("Change %d is %s", pr.Number, pr.State)
	return nil
}
