package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gerritforge/internal/domain/commands"
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// CatController handles the "cat" subcommand.
type CatController struct {
	command commands.Cat
}

// NewCatController creates a new CatController.
func NewCatController(command commands.Cat) *CatController {
	return &CatController{command: command}
}

// GetBind returns the Cobra command metadata for the cat controller.
func (it *CatController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "cat <path>",
		Short: "Print a file from a branch",
		Long:  `Print a file from a branch of a repository (default: its HEAD branch).`,
	}
}

// Execute prints the file.
func (it *CatController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if len(args) != 1 {
		logger.Error("cat expects exactly one path")
		return
	}
	settings, err := loadSettings(ctx, cmd)
	if err != nil {
		logger.Error(err)
		return
	}
	defer flushMetrics(ctx, settings)
	repository, _ := cmd.Flags().GetString("repository")
	branch, _ := cmd.Flags().GetString("branch")

	if runErr := it.command.Execute(ctx, settings, commands.CatOptions{
		Repository: repository,
		Branch:     branch,
		Path:       args[0],
		Output:     cmd.OutOrStdout(),
	}); runErr != nil {
		logger.Errorf("Cat failed: %v", runErr)
	}
}

// AddFlags adds the cat-specific flags to the given Cobra command.
func (it *CatController) AddFlags(cmd *cobra.Command) {
	addRepositoryFlags(cmd)
}
