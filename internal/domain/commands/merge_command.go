package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	infraRepos "github.com/rios0rios0/gerritforge/internal/infrastructure/repositories"
)

// ErrChangeNotMerged is returned when a submit did not leave the change merged.
var ErrChangeNotMerged = errors.New("change was submitted but is not merged")

// Merge is the interface for the merge command.
type Merge interface {
	Execute(ctx context.Context, settings *entities.Settings, opts MergeOptions) error
}

// MergeOptions identifies the change to submit.
type MergeOptions struct {
	Number int
}

// MergeCommand submits a change.
type MergeCommand struct {
	factory *infraRepos.PlatformFactory
}

// NewMergeCommand creates a new MergeCommand.
func NewMergeCommand(factory *infraRepos.PlatformFactory) *MergeCommand {
	return &MergeCommand{factory: factory}
}

func (it *MergeCommand) Execute(ctx context.Context, settings *entities.Settings, opts MergeOptions) error {
	platform, err := it.factory.Create(settings)
	if err != nil {
		return err
	}

	merged, err := platform.MergePR(ctx, opts.Number)
	if err != nil {
		return err
	}
	if !merged {
		return fmt.Errorf("%w: %d", ErrChangeNotMerged, opts.Number)
	}
	logger.Infof("Change %d merged", opts.Number)
	return nil
}
