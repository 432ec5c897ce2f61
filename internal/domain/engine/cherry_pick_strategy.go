package engine

import (
	"context"
	"fmt"
	"sync"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	"github.com/rios0rios0/gerritforge/internal/domain/repositories"
)

// CherryPickStrategy commits on a plain update branch, pushes it as a normal
// branch and asks the server to cherry-pick the commit onto the destination.
// The resulting change is tagged with a "sourceBranch-<name>" hashtag so that
// later updates find it without encoding anything in the branch name.
//
// The cherry-pick call returns the change it created, so Sync remembers its
// number per source branch and Discover reads it back without a search.
type CherryPickStrategy struct {
	gerrit  repositories.GerritRepository
	vcs     repositories.VCSRepository
	locator *ChangeLocator

	mu     sync.Mutex
	synced map[string]int
}

// NewCherryPickStrategy creates the cherry-pick based strategy.
func NewCherryPickStrategy(deps StrategyDeps) SyncStrategy {
	return &CherryPickStrategy{
		gerrit:  deps.Gerrit,
		vcs:     deps.VCS,
		locator: deps.Locator,
		synced:  make(map[string]int),
	}
}

func (it *CherryPickStrategy) Name() string { return entities.StrategyCherryPick }

func (it *CherryPickStrategy) BranchFilter(branchName string, state entities.PRState) entities.Filter {
	return entities.Filter{
		State:   state,
		Hashtag: entities.SourceBranchHashtag(branchName),
	}
}

func (it *CherryPickStrategy) Sync(
	ctx context.Context,
	rc *entities.RepoContext,
	req entities.CommitFilesRequest,
) (string, error) {
	change, err := it.locator.FindChange(ctx, rc, it.BranchFilter(req.BranchName, entities.PRStateOpen), false)
	if err != nil {
		return "", err
	}

	result, err := it.vcs.PrepareCommit(ctx, rc.LocalDir, entities.CommitInput{
		BranchName: req.BranchName,
		BaseRef:    firstNonEmpty(req.BaseBranch, rc.Head),
		Files:      req.Files,
		Message:    withChangeID(req.Message, change),
	})
	if err != nil {
		return "", fmt.Errorf("failed to prepare commit for %s: %w", req.BranchName, err)
	}
	if result == nil {
		if change == nil {
			logger.Infof("Nothing to commit for %s", req.BranchName)
			return "", nil
		}
		logger.Infof("No content change for change %d, keeping revision %s", change.Number, change.CurrentRevision)
		it.remember(rc, req.BranchName, change.Number)
		return change.CurrentRevision, nil
	}

	if change != nil {
		current, diffErr := candidateIsCurrent(ctx, it.vcs, rc, change, result.CommitSHA)
		if diffErr != nil {
			return "", diffErr
		}
		if current {
			logger.Infof("Change %d is up to date at revision %s", change.Number, change.CurrentRevision)
			it.remember(rc, req.BranchName, change.Number)
			return change.CurrentRevision, nil
		}
	}

	ref := localBranchPrefix + req.BranchName
	if pushErr := it.vcs.Push(ctx, rc.LocalDir, ref, ref); pushErr != nil {
		return "", fmt.Errorf("failed to push %s: %w", ref, pushErr)
	}

	destination := firstNonEmpty(req.TargetBranch, req.BaseBranch, rc.Head)
	logger.Infof("Cherry-picking %s onto %s", result.CommitSHA, destination)
	picked, err := it.gerrit.CherryPick(ctx, rc.Repository, result.CommitSHA, entities.CherryPickInput{
		Destination: destination,
	})
	if err != nil {
		return "", fmt.Errorf("failed to cherry-pick %s onto %s: %w", result.CommitSHA, destination, err)
	}

	if change == nil {
		hashtag := entities.SourceBranchHashtag(req.BranchName)
		if tagErr := it.gerrit.AddHashtags(ctx, picked.Number, []string{hashtag}); tagErr != nil {
			return "", fmt.Errorf("failed to tag change %d: %w", picked.Number, tagErr)
		}
	}

	if regErr := it.vcs.RegisterBranch(ctx, rc.LocalDir, req.BranchName, result.CommitSHA); regErr != nil {
		return "", fmt.Errorf("failed to register branch %s: %w", req.BranchName, regErr)
	}
	it.remember(rc, req.BranchName, picked.Number)
	return firstNonEmpty(picked.CurrentRevision, result.CommitSHA), nil
}

// Discover reads back the change a previous Sync produced for sourceBranch.
// Without one it searches once, since cherry-picked changes are never
// created asynchronously.
func (it *CherryPickStrategy) Discover(
	ctx context.Context,
	rc *entities.RepoContext,
	sourceBranch string,
) (*entities.Change, error) {
	if number, ok := it.recalled(rc, sourceBranch); ok {
		change, err := it.gerrit.GetChangeDetail(ctx, number, false)
		if err != nil {
			return nil, fmt.Errorf("failed to get change %d: %w", number, err)
		}
		return change, nil
	}

	change, err := it.locator.FindChange(ctx, rc, it.BranchFilter(sourceBranch, entities.PRStateOpen), true)
	if err != nil {
		return nil, err
	}
	if change == nil {
		return nil, fmt.Errorf(
			"%w: the change should have been created by the cherry-pick of %s",
			ErrChangeNotVisible, sourceBranch,
		)
	}
	return change, nil
}

func (it *CherryPickStrategy) remember(rc *entities.RepoContext, branchName string, number int) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.synced[syncedKey(rc, branchName)] = number
}

func (it *CherryPickStrategy) recalled(rc *entities.RepoContext, branchName string) (int, bool) {
	it.mu.Lock()
	defer it.mu.Unlock()
	number, ok := it.synced[syncedKey(rc, branchName)]
	return number, ok
}

func syncedKey(rc *entities.RepoContext, branchName string) string {
	return rc.Repository + ":" + branchName
}
