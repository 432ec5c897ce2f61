package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	constructors := []any{
		NewReposCommand,
		NewStatusCommand,
		NewFindCommand,
		NewProposeCommand,
		NewCommentCommand,
		NewMergeCommand,
		NewAbandonCommand,
		NewCatCommand,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	bindings := []any{
		func(impl *ReposCommand) Repos { return impl },
		func(impl *StatusCommand) Status { return impl },
		func(impl *FindCommand) Find { return impl },
		func(impl *ProposeCommand) Propose { return impl },
		func(impl *CommentCommand) Comment { return impl },
		func(impl *MergeCommand) Merge { return impl },
		func(impl *AbandonCommand) Abandon { return impl },
		func(impl *CatCommand) Cat { return impl },
	}
	for _, binding := range bindings {
		if err := container.Provide(binding); err != nil {
			return err
		}
	}

	return nil
}
