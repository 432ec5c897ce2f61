package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	constructors := []any{
		NewReposController,
		NewStatusController,
		NewFindController,
		NewProposeController,
		NewCommentController,
		NewMergeController,
		NewAbandonController,
		NewCatController,
		NewControllers,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	reposController *ReposController,
	statusController *StatusController,
	findController *FindController,
	proposeController *ProposeController,
	commentController *CommentController,
	mergeController *MergeController,
	abandonController *AbandonController,
	catController *CatController,
) *[]entities.Controller {
	return &[]entities.Controller{
		reposController,
		statusController,
		findController,
		proposeController,
		commentController,
		mergeController,
		abandonController,
		catController,
	}
}
