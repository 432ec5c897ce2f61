package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	infraRepos "github.com/rios0rios0/gerritforge/internal/infrastructure/repositories"
)

// Find is the interface for the find command.
type Find interface {
	Execute(ctx context.Context, settings *entities.Settings, opts FindOptions) error
}

// FindOptions narrows the pull requests that are listed. An empty Branch
// lists every own change of the repository.
type FindOptions struct {
	Repository string
	Branch     string
	Output     io.Writer
}

// FindCommand lists the pull requests backed by own changes.
type FindCommand struct {
	factory *infraRepos.PlatformFactory
}

// NewFindCommand creates a new FindCommand.
func NewFindCommand(factory *infraRepos.PlatformFactory) *FindCommand {
	return &FindCommand{factory: factory}
}

func (it *FindCommand) Execute(ctx context.Context, settings *entities.Settings, opts FindOptions) error {
	platform, err := it.factory.Create(settings)
	if err != nil {
		return err
	}
	rc, err := platform.OpenRepo(ctx, opts.Repository)
	if err != nil {
		return err
	}

	var prs []entities.PullRequest
	if opts.Branch != "" {
		pr, findErr := platform.GetBranchPR(ctx, rc, opts.Branch)
		if findErr != nil {
			return findErr
		}
		if pr != nil {
			prs = append(prs, *pr)
		}
	} else {
		prs, err = platform.GetPRList(ctx, rc)
		if err != nil {
			return err
		}
	}

	out := writerOrStdout(opts.Output)
	for _, pr := range prs {
		if _, writeErr := fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", pr.Number, pr.State, pr.TargetBranch, pr.Title); writeErr != nil {
			return writeErr
		}
	}
	return nil
}
