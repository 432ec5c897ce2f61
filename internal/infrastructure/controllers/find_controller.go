package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gerritforge/internal/domain/commands"
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// FindController handles the "find" subcommand.
type FindController struct {
	command commands.Find
}

// NewFindController creates a new FindController.
func NewFindController(command commands.Find) *FindController {
	return &FindController{command: command}
}

// GetBind returns the Cobra command metadata for the find controller.
func (it *FindController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "find",
		Short: "List pull requests backed by own changes",
		Long: `List the pull requests of a repository. With --branch only the open
pull request of that logical branch is shown.`,
	}
}

// Execute lists the matching pull requests.
func (it *FindController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	settings, err := loadSettings(ctx, cmd)
	if err != nil {
		logger.Error(err)
		return
	}
	defer flushMetrics(ctx, settings)
	repository, _ := cmd.Flags().GetString("repository")
	branch, _ := cmd.Flags().GetString("branch")

	if runErr := it.command.Execute(ctx, settings, commands.FindOptions{
		Repository: repository,
		Branch:     branch,
		Output:     cmd.OutOrStdout(),
	}); runErr != nil {
		logger.Errorf("Find failed: %v", runErr)
	}
}

// AddFlags adds the find-specific flags to the given Cobra command.
func (it *FindController) AddFlags(cmd *cobra.Command) {
	addRepositoryFlags(cmd)
}
