package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	infraRepos "github.com/rios0rios0/gerritforge/internal/infrastructure/repositories"
)

// Cat is the interface for the cat command.
type Cat interface {
	Execute(ctx context.Context, settings *entities.Settings, opts CatOptions) error
}

// CatOptions selects the file to print. An empty Branch reads the
// repository's HEAD branch.
type CatOptions struct {
	Repository string
	Branch     string
	Path       string
	Output     io.Writer
}

// CatCommand prints the content of a file on a branch.
type CatCommand struct {
	factory *infraRepos.PlatformFactory
}

// NewCatCommand creates a new CatCommand.
func NewCatCommand(factory *infraRepos.PlatformFactory) *CatCommand {
	return &CatCommand{factory: factory}
}

func (it *CatCommand) Execute(ctx context.Context, settings *entities.Settings, opts CatOptions) error {
	platform, err := it.factory.Create(settings)
	if err != nil {
		return err
	}
	rc, err := platform.OpenRepo(ctx, opts.Repository)
	if err != nil {
		return err
	}

	content, err := platform.GetRawFile(ctx, rc, opts.Path, "", opts.Branch)
	if err != nil {
		return err
	}
	if _, writeErr := fmt.Fprint(writerOrStdout(opts.Output), content); writeErr != nil {
		return fmt.Errorf("failed to write %s: %w", opts.Path, writeErr)
	}
	return nil
}
