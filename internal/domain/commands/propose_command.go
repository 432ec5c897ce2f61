package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	infraRepos "github.com/rios0rios0/gerritforge/internal/infrastructure/repositories"
)

// Propose is the interface for the propose command.
type Propose interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ProposeOptions) error
}

// ProposeOptions describes the content to propose for one logical branch.
type ProposeOptions struct {
	Repository   string
	Branch       string // logical branch, e.g. "main%topic=deps"
	BaseBranch   string
	TargetBranch string
	Title        string
	Body         string
	Files        []entities.FileChange
	Reviewers    []string
	Assignees    []string
}

// ProposeCommand commits file changes for a logical branch and surfaces the
// resulting change as a pull request: commit, discover, post the body and
// approve, then add reviewers and assignees.
type ProposeCommand struct {
	factory *infraRepos.PlatformFactory
}

// NewProposeCommand creates a new ProposeCommand.
func NewProposeCommand(factory *infraRepos.PlatformFactory) *ProposeCommand {
	return &ProposeCommand{factory: factory}
}

func (it *ProposeCommand) Execute(ctx context.Context, settings *entities.Settings, opts ProposeOptions) error {
	platform, err := it.factory.Create(settings)
	if err != nil {
		return err
	}
	logger.Infof("Proposing %d file(s) on %s using the %s strategy", len(opts.Files), opts.Branch, platform.Strategy())

	rc, err := platform.InitRepo(ctx, opts.Repository)
	if err != nil {
		return err
	}

	revision, err := platform.CommitFiles(ctx, rc, entities.CommitFilesRequest{
		BranchName:   opts.Branch,
		BaseBranch:   opts.BaseBranch,
		TargetBranch: opts.TargetBranch,
		Files:        opts.Files,
		Message:      []string{opts.Title},
	})
	if err != nil {
		return err
	}
	if revision == "" {
		logger.Infof("Nothing to propose for %s", opts.Branch)
		return nil
	}

	pr, err := platform.SubmitPullRequest(ctx, rc, entities.CreateRequest{
		SourceBranch: opts.Branch,
		TargetBranch: opts.TargetBranch,
		Title:        opts.Title,
		Body:         platform.MassageMarkdown(opts.Body),
	})
	if err != nil {
		return err
	}

	if reviewErr := platform.AddReviewers(ctx, pr.Number, opts.Reviewers); reviewErr != nil {
		return reviewErr
	}
	if assignErr := platform.AddAssignees(ctx, pr.Number, opts.Assignees); assignErr != nil {
		return assignErr
	}

	logger.Infof("Change %d is at revision %s", pr.Number, revision)
	return nil
}
