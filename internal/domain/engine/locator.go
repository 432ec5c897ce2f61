package engine

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	"github.com/rios0rios0/gerritforge/internal/domain/repositories"
)

// ChangeLocator finds the caller's own changes in the context repository.
type ChangeLocator struct {
	gerrit repositories.GerritRepository
}

// NewChangeLocator creates a ChangeLocator backed by the given client.
func NewChangeLocator(gerrit repositories.GerritRepository) *ChangeLocator {
	return &ChangeLocator{gerrit: gerrit}
}

// FindOwnChanges returns every change matching filter, restricted to the
// calling account and the context repository. refresh bypasses the response
// cache and must be set right after a write.
func (it *ChangeLocator) FindOwnChanges(
	ctx context.Context,
	rc *entities.RepoContext,
	filter entities.Filter,
	refresh bool,
) ([]entities.Change, error) {
	filter.Owner = entities.OwnerSelf
	filter.Project = rc.Repository

	query := filter.Query()
	changes, err := it.gerrit.FindChanges(ctx, query, !refresh)
	if err != nil {
		return nil, fmt.Errorf("failed to search changes: %w", err)
	}

	logger.Infof("findOwnChanges(%s) => %d", query, len(changes))
	return changes, nil
}

// FindChange returns the canonical change for filter, or nil when there is
// none. The canonical change is the last element of the search result.
func (it *ChangeLocator) FindChange(
	ctx context.Context,
	rc *entities.RepoContext,
	filter entities.Filter,
	refresh bool,
) (*entities.Change, error) {
	changes, err := it.FindOwnChanges(ctx, rc, filter, refresh)
	if err != nil {
		return nil, err
	}
	return lastChange(changes), nil
}

func lastChange(changes []entities.Change) *entities.Change {
	if len(changes) == 0 {
		return nil
	}
	change := changes[len(changes)-1]
	return &change
}
