package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	infraRepos "github.com/rios0rios0/gerritforge/internal/infrastructure/repositories"
)

// Status is the interface for the status command.
type Status interface {
	Execute(ctx context.Context, settings *entities.Settings, opts StatusOptions) error
}

// StatusOptions selects the logical branch whose status is shown.
type StatusOptions struct {
	Repository string
	Branch     string
	Output     io.Writer
}

// StatusCommand prints the aggregated status of a logical branch.
type StatusCommand struct {
	factory *infraRepos.PlatformFactory
}

// NewStatusCommand creates a new StatusCommand.
func NewStatusCommand(factory *infraRepos.PlatformFactory) *StatusCommand {
	return &StatusCommand{factory: factory}
}

func (it *StatusCommand) Execute(ctx context.Context, settings *entities.Settings, opts StatusOptions) error {
	platform, err := it.factory.Create(settings)
	if err != nil {
		return err
	}
	rc, err := platform.OpenRepo(ctx, opts.Repository)
	if err != nil {
		return err
	}

	status, err := platform.BranchStatus(ctx, rc, opts.Branch)
	if err != nil {
		return err
	}

	_, err = statusColor(status).Fprintf(writerOrStdout(opts.Output), "%s %s\n", opts.Branch, status)
	if err != nil {
		return fmt.Errorf("failed to write status: %w", err)
	}
	return nil
}

func statusColor(status entities.BranchStatus) *color.Color {
	switch status {
	case entities.BranchStatusGreen:
		return color.New(color.FgGreen)
	case entities.BranchStatusRed:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgYellow)
	}
}
