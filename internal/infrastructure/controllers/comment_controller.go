package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gerritforge/internal/domain/commands"
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// CommentController handles the "comment" subcommand.
type CommentController struct {
	command commands.Comment
}

// NewCommentController creates a new CommentController.
func NewCommentController(command commands.Comment) *CommentController {
	return &CommentController{command: command}
}

// GetBind returns the Cobra command metadata for the comment controller.
func (it *CommentController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "comment",
		Short: "Post a message on a change",
		Long:  `Post a message on a change unless an existing message already contains it.`,
	}
}

// Execute posts the comment.
func (it *CommentController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	settings, err := loadSettings(ctx, cmd)
	if err != nil {
		logger.Error(err)
		return
	}
	defer flushMetrics(ctx, settings)
	number, _ := cmd.Flags().GetInt("change")
	message, _ := cmd.Flags().GetString("message")

	if runErr := it.command.Execute(ctx, settings, commands.CommentOptions{
		Number:  number,
		Message: message,
	}); runErr != nil {
		logger.Errorf("Comment failed: %v", runErr)
	}
}

// AddFlags adds the comment-specific flags to the given Cobra command.
func (it *CommentController) AddFlags(cmd *cobra.Command) {
	addChangeFlag(cmd)
	cmd.Flags().StringP("message", "m", "", "Message to post")
	_ = cmd.MarkFlagRequired("message")
}
