package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	"github.com/rios0rios0/gerritforge/internal/domain/repositories"
)

const (
	// fetchedRef holds a change's current revision while it is diffed.
	fetchedRef = "refs/gerritforge/fetched"

	localBranchPrefix = "refs/heads/"
	magicRefPrefix    = "refs/for/"
)

// ErrChangeNotVisible is returned when a change expected to exist after a
// push or cherry-pick cannot be found.
var ErrChangeNotVisible = errors.New("change not visible")

// SyncStrategy turns prepared local content into a change on the server.
// One engine uses exactly one strategy.
type SyncStrategy interface {
	// Name returns the strategy identifier ("push" or "cherry-pick").
	Name() string

	// BranchFilter returns the filter that locates the changes of a logical branch.
	BranchFilter(branchName string, state entities.PRState) entities.Filter

	// Sync commits req locally and makes the server reflect it, reusing the
	// Change-Id of an existing candidate. It returns the revision identifier
	// of the resulting content, or "" when there was nothing to commit and no
	// candidate exists.
	Sync(ctx context.Context, rc *entities.RepoContext, req entities.CommitFilesRequest) (string, error)

	// Discover finds the change produced by a previous Sync for sourceBranch.
	Discover(ctx context.Context, rc *entities.RepoContext, sourceBranch string) (*entities.Change, error)
}

// StrategyDeps are the collaborators shared by all strategies.
type StrategyDeps struct {
	Gerrit  repositories.GerritRepository
	VCS     repositories.VCSRepository
	Locator *ChangeLocator
	Poller  *ConsistencyPoller
}

// withChangeID appends the Change-Id trailer of an existing change so that
// the server records the new commit as a patch-set of that change.
func withChangeID(message []string, change *entities.Change) []string {
	if change == nil || change.ChangeID == "" {
		return message
	}
	result := make([]string, 0, len(message)+1)
	result = append(result, message...)
	return append(result, "Change-Id: "+change.ChangeID)
}

// candidateIsCurrent fetches the change's current revision and reports
// whether the local commit carries the same content and the change needs no
// rebase. A change without a current revision is never current.
func candidateIsCurrent(
	ctx context.Context,
	vcs repositories.VCSRepository,
	rc *entities.RepoContext,
	change *entities.Change,
	commitSHA string,
) (bool, error) {
	revision, ok := change.CurrentRevisionInfo()
	if !ok {
		return false, nil
	}
	if err := vcs.FetchRef(ctx, rc.LocalDir, revision.Ref, fetchedRef); err != nil {
		return false, fmt.Errorf("failed to fetch %s: %w", revision.Ref, err)
	}
	hasChanges, err := vcs.HasChanges(ctx, rc.LocalDir, commitSHA, fetchedRef)
	if err != nil {
		return false, fmt.Errorf("failed to diff against change %d: %w", change.Number, err)
	}
	return !hasChanges && !change.IsMergeableKnownFalse(), nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
