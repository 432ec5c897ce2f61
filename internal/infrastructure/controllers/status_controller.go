package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gerritforge/internal/domain/commands"
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// StatusController handles the "status" subcommand.
type StatusController struct {
	command commands.Status
}

// NewStatusController creates a new StatusController.
func NewStatusController(command commands.Status) *StatusController {
	return &StatusController{command: command}
}

// GetBind returns the Cobra command metadata for the status controller.
func (it *StatusController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "status",
		Short: "Show the status of a logical branch",
		Long: `Aggregate the open changes of a logical branch into one status:
green when every change is submittable, red when any change reports
a problem, yellow otherwise (including when no change is visible yet).`,
	}
}

// Execute prints the branch status.
func (it *StatusController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	settings, err := loadSettings(ctx, cmd)
	if err != nil {
		logger.Error(err)
		return
	}
	defer flushMetrics(ctx, settings)
	repository, _ := cmd.Flags().GetString("repository")
	branch, _ := cmd.Flags().GetString("branch")

	if runErr := it.command.Execute(ctx, settings, commands.StatusOptions{
		Repository: repository,
		Branch:     branch,
		Output:     cmd.OutOrStdout(),
	}); runErr != nil {
		logger.Errorf("Status failed: %v", runErr)
	}
}

// AddFlags adds the status-specific flags to the given Cobra command.
func (it *StatusController) AddFlags(cmd *cobra.Command) {
	addRepositoryFlags(cmd)
	_ = cmd.MarkFlagRequired("branch")
}
