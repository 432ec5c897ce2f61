package engine

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	"github.com/rios0rios0/gerritforge/internal/domain/repositories"
)

// PushStrategy proposes content by pushing to the magic refs/for/ ref. The
// server creates or updates the change keyed by the commit's Change-Id.
// Logical branch names carry the topic/hashtag ("main%topic=deps"), which the
// magic ref understands as push options.
type PushStrategy struct {
	vcs     repositories.VCSRepository
	locator *ChangeLocator
	poller  *ConsistencyPoller
}

// NewPushStrategy creates the push-based strategy.
func NewPushStrategy(deps StrategyDeps) SyncStrategy {
	return &PushStrategy{
		vcs:     deps.VCS,
		locator: deps.Locator,
		poller:  deps.Poller,
	}
}

func (it *PushStrategy) Name() string { return entities.StrategyPush }

func (it *PushStrategy) BranchFilter(branchName string, state entities.PRState) entities.Filter {
	target, _ := entities.SplitTopicAndBranch(branchName)
	return target.Filter(state)
}

func (it *PushStrategy) Sync(
	ctx context.Context,
	rc *entities.RepoContext,
	req entities.CommitFilesRequest,
) (string, error) {
	target, encoded := entities.SplitTopicAndBranch(req.BranchName)
	base := firstNonEmpty(req.BaseBranch, target.Branch, rc.Head)

	// only topic/hashtag branches can be matched back to an existing change
	if !encoded {
		return it.commitAndPush(ctx, rc, req, base, req.Message)
	}

	change, err := it.locator.FindChange(ctx, rc, target.Filter(entities.PRStateOpen), false)
	if err != nil {
		return "", err
	}
	message := withChangeID(req.Message, change)
	if change == nil {
		return it.commitAndPush(ctx, rc, req, base, message)
	}
	if _, ok := change.CurrentRevisionInfo(); !ok {
		revision, pushErr := it.commitAndPush(ctx, rc, req, base, message)
		if pushErr != nil || revision != "" {
			return revision, pushErr
		}
		if change.CurrentRevision == "" {
			return "", fmt.Errorf("%w: change %d", ErrNoCurrentRevision, change.Number)
		}
		return change.CurrentRevision, nil
	}

	result, err := it.prepare(ctx, rc, req, base, message)
	if err != nil {
		return "", err
	}
	if result == nil {
		logger.Infof("No content change for change %d, keeping revision %s", change.Number, change.CurrentRevision)
		return change.CurrentRevision, nil
	}

	current, err := candidateIsCurrent(ctx, it.vcs, rc, change, result.CommitSHA)
	if err != nil {
		return "", err
	}
	if current {
		logger.Infof("Change %d is up to date at revision %s", change.Number, change.CurrentRevision)
		return change.CurrentRevision, nil
	}

	// a new patch-set is an implicit rebase of the existing change
	if pushErr := it.push(ctx, rc, req.BranchName, result.CommitSHA); pushErr != nil {
		return "", pushErr
	}
	return result.CommitSHA, nil
}

func (it *PushStrategy) Discover(
	ctx context.Context,
	rc *entities.RepoContext,
	sourceBranch string,
) (*entities.Change, error) {
	filter := it.BranchFilter(sourceBranch, entities.PRStateOpen)
	change, err := it.poller.Poll(ctx, func(ctx context.Context) (*entities.Change, error) {
		return it.locator.FindChange(ctx, rc, filter, true)
	})
	if err != nil {
		return nil, err
	}
	if change == nil {
		return nil, fmt.Errorf(
			"%w: the change should be created automatically from previous push to %s%s",
			ErrChangeNotVisible, magicRefPrefix, sourceBranch,
		)
	}
	return change, nil
}

func (it *PushStrategy) commitAndPush(
	ctx context.Context,
	rc *entities.RepoContext,
	req entities.CommitFilesRequest,
	base string,
	message []string,
) (string, error) {
	result, err := it.prepare(ctx, rc, req, base, message)
	if err != nil {
		return "", err
	}
	if result == nil {
		logger.Infof("Nothing to commit for %s", req.BranchName)
		return "", nil
	}
	if pushErr := it.push(ctx, rc, req.BranchName, result.CommitSHA); pushErr != nil {
		return "", pushErr
	}
	return result.CommitSHA, nil
}

func (it *PushStrategy) prepare(
	ctx context.Context,
	rc *entities.RepoContext,
	req entities.CommitFilesRequest,
	base string,
	message []string,
) (*entities.CommitResult, error) {
	result, err := it.vcs.PrepareCommit(ctx, rc.LocalDir, entities.CommitInput{
		BranchName: req.BranchName,
		BaseRef:    base,
		Files:      req.Files,
		Message:    message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare commit for %s: %w", req.BranchName, err)
	}
	return result, nil
}

func (it *PushStrategy) push(ctx context.Context, rc *entities.RepoContext, branchName, commitSHA string) error {
	remoteRef := magicRefPrefix + branchName
	logger.Infof("Pushing %s to %s", commitSHA, remoteRef)
	if err := it.vcs.Push(ctx, rc.LocalDir, localBranchPrefix+branchName, remoteRef); err != nil {
		return fmt.Errorf("failed to push to %s: %w", remoteRef, err)
	}
	if err := it.vcs.RegisterBranch(ctx, rc.LocalDir, branchName, commitSHA); err != nil {
		return fmt.Errorf("failed to register branch %s: %w", branchName, err)
	}
	return nil
}
