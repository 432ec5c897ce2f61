package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gerritforge/internal/domain/commands"
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// ReposController handles the "repos" subcommand.
type ReposController struct {
	command commands.Repos
}

// NewReposController creates a new ReposController.
func NewReposController(command commands.Repos) *ReposController {
	return &ReposController{command: command}
}

// GetBind returns the Cobra command metadata for the repos controller.
func (it *ReposController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "repos",
		Short: "List the active repositories",
		Long:  `List the active code projects of the Gerrit server, one per line.`,
	}
}

// Execute lists the repositories.
func (it *ReposController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	settings, err := loadSettings(ctx, cmd)
	if err != nil {
		logger.Error(err)
		return
	}
	defer flushMetrics(ctx, settings)

	if runErr := it.command.Execute(ctx, settings, commands.ReposOptions{
		Output: cmd.OutOrStdout(),
	}); runErr != nil {
		logger.Errorf("Listing repositories failed: %v", runErr)
	}
}
