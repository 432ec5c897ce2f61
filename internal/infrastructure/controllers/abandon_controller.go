package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gerritforge/internal/domain/commands"
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// AbandonController handles the "abandon" subcommand.
type AbandonController struct {
	command commands.Abandon
}

// NewAbandonController creates a new AbandonController.
func NewAbandonController(command commands.Abandon) *AbandonController {
	return &AbandonController{command: command}
}

// GetBind returns the Cobra command metadata for the abandon controller.
func (it *AbandonController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "abandon",
		Short: "Close the pull request of a change",
		Long:  `Abandon a change, optionally posting a message first.`,
	}
}

// Execute abandons the change.
func (it *AbandonController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	settings, err := loadSettings(ctx, cmd)
	if err != nil {
		logger.Error(err)
		return
	}
	defer flushMetrics(ctx, settings)
	number, _ := cmd.Flags().GetInt("change")
	message, _ := cmd.Flags().GetString("message")

	if runErr := it.command.Execute(ctx, settings, commands.AbandonOptions{
		Number:  number,
		Message: message,
	}); runErr != nil {
		logger.Errorf("Abandon failed: %v", runErr)
	}
}

// AddFlags adds the abandon-specific flags to the given Cobra command.
func (it *AbandonController) AddFlags(cmd *cobra.Command) {
	addChangeFlag(cmd)
	cmd.Flags().StringP("message", "m", "", "Message to post before abandoning")
}
