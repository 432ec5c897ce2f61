package controllers

import (
	"context"
	"fmt"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gerritforge/internal/domain/commands"
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// ProposeController handles the "propose" subcommand.
type ProposeController struct {
	command commands.Propose
}

// NewProposeController creates a new ProposeController.
func NewProposeController(command commands.Propose) *ProposeController {
	return &ProposeController{command: command}
}

// GetBind returns the Cobra command metadata for the propose controller.
func (it *ProposeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "propose",
		Short: "Propose file changes as a pull request",
		Long: `Commit file changes on a logical branch and surface the resulting
change as a pull request. Running it again with the same branch updates
the existing change with a new patch-set, or leaves it alone when the
content is unchanged.

Files are given as --file <path>[=<local file>]; without a local file the
path is read relative to the current directory. --delete removes a path.`,
	}
}

// Execute proposes the file changes.
func (it *ProposeController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	settings, err := loadSettings(ctx, cmd)
	if err != nil {
		logger.Error(err)
		return
	}
	defer flushMetrics(ctx, settings)

	repository, _ := cmd.Flags().GetString("repository")
	branch, _ := cmd.Flags().GetString("branch")
	base, _ := cmd.Flags().GetString("base")
	target, _ := cmd.Flags().GetString("target")
	title, _ := cmd.Flags().GetString("title")
	body, _ := cmd.Flags().GetString("body")
	bodyFile, _ := cmd.Flags().GetString("body-file")
	files, _ := cmd.Flags().GetStringArray("file")
	deletes, _ := cmd.Flags().GetStringArray("delete")
	reviewers, _ := cmd.Flags().GetStringSlice("reviewer")
	assignees, _ := cmd.Flags().GetStringSlice("assignee")

	if bodyFile != "" {
		data, readErr := os.ReadFile(bodyFile)
		if readErr != nil {
			logger.Errorf("failed to read body file: %v", readErr)
			return
		}
		body = string(data)
	}

	changes, err := parseFileChanges(files, deletes)
	if err != nil {
		logger.Error(err)
		return
	}

	if runErr := it.command.Execute(ctx, settings, commands.ProposeOptions{
		Repository:   repository,
		Branch:       branch,
		BaseBranch:   base,
		TargetBranch: target,
		Title:        title,
		Body:         body,
		Files:        changes,
		Reviewers:    reviewers,
		Assignees:    assignees,
	}); runErr != nil {
		logger.Errorf("Propose failed: %v", runErr)
	}
}

// AddFlags adds the propose-specific flags to the given Cobra command.
func (it *ProposeController) AddFlags(cmd *cobra.Command) {
	addRepositoryFlags(cmd)
	_ = cmd.MarkFlagRequired("branch")
	cmd.Flags().String("base", "", "Base branch of the commit (default: the branch in --branch, then HEAD)")
	cmd.Flags().String("target", "", "Cherry-pick destination (cherry-pick strategy only)")
	cmd.Flags().StringP("title", "t", "", "Commit subject and pull request title")
	_ = cmd.MarkFlagRequired("title")
	cmd.Flags().String("body", "", "Pull request body")
	cmd.Flags().String("body-file", "", "Read the pull request body from a file")
	cmd.Flags().StringArrayP("file", "f", nil, "File to write, as <path>[=<local file>]")
	cmd.Flags().StringArray("delete", nil, "Path to delete")
	cmd.Flags().StringSlice("reviewer", nil, "Reviewer to add")
	cmd.Flags().StringSlice("assignee", nil, "Assignee to set (only the first is used)")
}

// parseFileChanges reads the local content of every --file and appends
// the --delete paths.
func parseFileChanges(files, deletes []string) ([]entities.FileChange, error) {
	changes := make([]entities.FileChange, 0, len(files)+len(deletes))
	for _, spec := range files {
		path, local, found := strings.Cut(spec, "=")
		if !found {
			local = path
		}
		if path == "" {
			return nil, fmt.Errorf("invalid --file %q", spec)
		}
		contents, err := os.ReadFile(local)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", local, err)
		}
		changes = append(changes, entities.FileChange{Path: path, Contents: contents})
	}
	for _, path := range deletes {
		changes = append(changes, entities.FileChange{Path: path, Delete: true})
	}
	return changes, nil
}
