package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gerritforge/internal/domain/commands"
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// MergeController handles the "merge" subcommand.
type MergeController struct {
	command commands.Merge
}

// NewMergeController creates a new MergeController.
func NewMergeController(command commands.Merge) *MergeController {
	return &MergeController{command: command}
}

// GetBind returns the Cobra command metadata for the merge controller.
func (it *MergeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "merge",
		Short: "Submit a change",
	}
}

// Execute submits the change.
func (it *MergeController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	settings, err := loadSettings(ctx, cmd)
	if err != nil {
		logger.Error(err)
		return
	}
	defer flushMetrics(ctx, settings)
	number, _ := cmd.Flags().GetInt("change")

	if runErr := it.command.Execute(ctx, settings, commands.MergeOptions{Number: number}); runErr != nil {
		logger.Errorf("Merge failed: %v", runErr)
	}
}

// AddFlags adds the merge-specific flags to the given Cobra command.
func (it *MergeController) AddFlags(cmd *cobra.Command) {
	addChangeFlag(cmd)
}
