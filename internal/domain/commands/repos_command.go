package commands

import (
	"context"
	"fmt"
	"io"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	infraRepos "github.com/rios0rios0/gerritforge/internal/infrastructure/repositories"
)

// Repos is the interface for the repos command.
type Repos interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ReposOptions) error
}

// ReposOptions holds runtime options for listing repositories.
type ReposOptions struct {
	Output io.Writer
}

// ReposCommand lists the active code projects of the server.
type ReposCommand struct {
	factory *infraRepos.PlatformFactory
}

// NewReposCommand creates a new ReposCommand.
func NewReposCommand(factory *infraRepos.PlatformFactory) *ReposCommand {
	return &ReposCommand{factory: factory}
}

// Execute prints one repository name per line.
func (it *ReposCommand) Execute(ctx context.Context, settings *entities.Settings, opts ReposOptions) error {
	platform, err := it.factory.Create(settings)
	if err != nil {
		return err
	}

	names, err := platform.ListRepositories(ctx)
	if err != nil {
		return err
	}
	logger.Debugf("Found %d repositories", len(names))

	out := writerOrStdout(opts.Output)
	for _, name := range names {
		if _, writeErr := fmt.Fprintln(out, name); writeErr != nil {
			return writeErr
		}
	}
	return nil
}
