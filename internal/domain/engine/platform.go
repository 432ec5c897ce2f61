package engine

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonboulle/clockwork"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	"github.com/rios0rios0/gerritforge/internal/domain/repositories"
)

const (
	headBranch      = "HEAD"
	commitMsgHook   = "commit-msg"
	defaultRepoName = "All-Projects"
)

var (
	// ErrRepositoryArchived is returned when the project is not ACTIVE.
	ErrRepositoryArchived = errors.New("repository is archived or read-only")
	// ErrNoCurrentRevision is returned when a change lacks its current revision.
	ErrNoCurrentRevision = errors.New("change has no current revision")
)

// StrategyFactory builds the sync strategy of a Platform.
type StrategyFactory func(deps StrategyDeps) SyncStrategy

// PlatformOptions are the settings a Platform needs besides its collaborators.
type PlatformOptions struct {
	LocalDir         string // parent directory of the working copies
	MinServerVersion string // empty disables the version check
}

// Platform makes the change-based review server look like a branch and
// pull-request host. Every repository-scoped call takes the RepoContext
// returned by InitRepo.
type Platform struct {
	gerrit   repositories.GerritRepository
	vcs      repositories.VCSRepository
	locator  *ChangeLocator
	review   *ReviewApplier
	strategy SyncStrategy
	options  PlatformOptions
}

// NewPlatform wires a Platform around the given collaborators.
func NewPlatform(
	gerrit repositories.GerritRepository,
	vcs repositories.VCSRepository,
	clock clockwork.Clock,
	newStrategy StrategyFactory,
	options PlatformOptions,
) *Platform {
	locator := NewChangeLocator(gerrit)
	return &Platform{
		gerrit:  gerrit,
		vcs:     vcs,
		locator: locator,
		review:  NewReviewApplier(gerrit),
		strategy: newStrategy(StrategyDeps{
			Gerrit:  gerrit,
			VCS:     vcs,
			Locator: locator,
			Poller:  NewConsistencyPoller(clock),
		}),
		options: options,
	}
}

// Strategy returns the name of the configured sync strategy.
func (it *Platform) Strategy() string {
	return it.strategy.Name()
}

// ListRepositories returns the active code projects, sorted by name.
func (it *Platform) ListRepositories(ctx context.Context) ([]string, error) {
	names, err := it.gerrit.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// OpenRepo validates the project and resolves its HEAD branch without
// touching the working copy. Read-only operations only need this context.
func (it *Platform) OpenRepo(ctx context.Context, repository string) (*entities.RepoContext, error) {
	project, err := it.gerrit.GetProject(ctx, repository)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %q: %w", repository, err)
	}
	if project.State != entities.ProjectStateActive {
		return nil, fmt.Errorf("%w: %s is %s", ErrRepositoryArchived, repository, project.State)
	}

	head, err := it.gerrit.GetBranch(ctx, repository, headBranch)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD of %q: %w", repository, err)
	}

	return &entities.RepoContext{
		Repository: repository,
		Head:       head.Revision,
		Project:    *project,
		LocalDir:   filepath.Join(it.options.LocalDir, repository),
		Remote: entities.NewRepositoryFromProject(
			*project, localBranchPrefix+head.Revision, it.gerrit.CloneURL(repository),
		),
	}, nil
}

// InitRepo opens the project, prepares its working copy and recreates a
// local branch for each open change. Changes rejected in review are abandoned.
func (it *Platform) InitRepo(ctx context.Context, repository string) (*entities.RepoContext, error) {
	logger.Infof("initRepo(%s)", repository)

	rc, err := it.OpenRepo(ctx, repository)
	if err != nil {
		return nil, err
	}

	if syncErr := it.vcs.Sync(ctx, rc.LocalDir, rc.Remote.RemoteURL); syncErr != nil {
		return nil, fmt.Errorf("failed to sync working copy of %q: %w", repository, syncErr)
	}
	hook, err := it.gerrit.GetCommitMsgHook(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to download commit-msg hook: %w", err)
	}
	if hookErr := it.vcs.InstallHook(rc.LocalDir, commitMsgHook, hook); hookErr != nil {
		return nil, fmt.Errorf("failed to install commit-msg hook: %w", hookErr)
	}

	if restoreErr := it.restoreOpenChanges(ctx, rc); restoreErr != nil {
		return nil, restoreErr
	}

	if it.options.MinServerVersion != "" {
		if _, versionErr := it.CheckServerVersion(ctx); versionErr != nil {
			logger.Warnf("Could not check server version: %v", versionErr)
		}
	}
	return rc, nil
}

func (it *Platform) restoreOpenChanges(ctx context.Context, rc *entities.RepoContext) error {
	changes, err := it.locator.FindOwnChanges(ctx, rc, entities.Filter{State: entities.PRStateOpen}, false)
	if err != nil {
		return err
	}

	for _, change := range changes {
		rejected, labelErr := it.review.HasLabelOutcome(ctx, change.Number, LabelRejected)
		if labelErr != nil {
			return labelErr
		}
		if rejected {
			logger.Infof("Abandoning rejected change %d", change.Number)
			if abandonErr := it.gerrit.AbandonChange(ctx, change.Number); abandonErr != nil {
				return fmt.Errorf("failed to abandon change %d: %w", change.Number, abandonErr)
			}
			continue
		}

		revision, ok := change.CurrentRevisionInfo()
		if !ok {
			return fmt.Errorf("%w: change %d", ErrNoCurrentRevision, change.Number)
		}
		branchName := entities.BranchTargetFromChange(change).String()
		if fetchErr := it.vcs.FetchRef(ctx, rc.LocalDir, revision.Ref, localBranchPrefix+branchName); fetchErr != nil {
			return fmt.Errorf("failed to fetch change %d: %w", change.Number, fetchErr)
		}
		if regErr := it.vcs.RegisterBranch(ctx, rc.LocalDir, branchName, change.CurrentRevision); regErr != nil {
			return fmt.Errorf("failed to register branch %s: %w", branchName, regErr)
		}
	}
	return nil
}

// CheckServerVersion compares the server version with the configured minimum.
// An older server is reported with a warning and false, not an error.
func (it *Platform) CheckServerVersion(ctx context.Context) (bool, error) {
	raw, err := it.gerrit.GetServerVersion(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get server version: %w", err)
	}

	version := canonicalVersion(raw)
	minimum := canonicalVersion(it.options.MinServerVersion)
	if !semver.IsValid(version) || !semver.IsValid(minimum) {
		logger.Warnf("Cannot compare server version %q with minimum %q", raw, it.options.MinServerVersion)
		return false, nil
	}
	if semver.Compare(version, minimum) < 0 {
		logger.Warnf("Gerrit %s is older than the supported minimum %s", raw, it.options.MinServerVersion)
		return false, nil
	}
	return true, nil
}

// canonicalVersion turns "3.9.1-12-gabcdef" into "v3.9.1".
func canonicalVersion(raw string) string {
	version, _, _ := strings.Cut(strings.TrimSpace(raw), "-")
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return semver.Canonical(version)
}

// FindPR returns the PR of the canonical change matching filter, or nil.
func (it *Platform) FindPR(
	ctx context.Context,
	rc *entities.RepoContext,
	filter entities.Filter,
	refresh bool,
) (*entities.PullRequest, error) {
	change, err := it.locator.FindChange(ctx, rc, filter, refresh)
	if err != nil || change == nil {
		return nil, err
	}
	pr := entities.NewPullRequestFromChange(*change)
	return &pr, nil
}

// GetBranchPR returns the open PR of a logical branch, or nil.
func (it *Platform) GetBranchPR(
	ctx context.Context,
	rc *entities.RepoContext,
	branchName string,
) (*entities.PullRequest, error) {
	return it.FindPR(ctx, rc, it.strategy.BranchFilter(branchName, entities.PRStateOpen), false)
}

// GetPR returns the PR of a change by number.
func (it *Platform) GetPR(ctx context.Context, number int) (*entities.PullRequest, error) {
	change, err := it.gerrit.GetChange(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get change %d: %w", number, err)
	}
	pr := entities.NewPullRequestFromChange(*change)
	return &pr, nil
}

// GetPRList returns every own change of the repository that is not a work in progress.
func (it *Platform) GetPRList(ctx context.Context, rc *entities.RepoContext) ([]entities.PullRequest, error) {
	changes, err := it.locator.FindOwnChanges(ctx, rc, entities.Filter{}, false)
	if err != nil {
		return nil, err
	}
	prs := make([]entities.PullRequest, 0, len(changes))
	for _, change := range changes {
		prs = append(prs, entities.NewPullRequestFromChange(change))
	}
	return prs, nil
}

// SubmitPullRequest creates or updates a PR depending on the request variant.
func (it *Platform) SubmitPullRequest(
	ctx context.Context,
	rc *entities.RepoContext,
	req entities.PullRequestRequest,
) (*entities.PullRequest, error) {
	switch r := req.(type) {
	case entities.CreateRequest:
		return it.CreatePR(ctx, rc, r)
	case entities.UpdateRequest:
		if err := it.UpdatePR(ctx, r); err != nil {
			return nil, err
		}
		return it.GetPR(ctx, r.Number)
	default:
		return nil, fmt.Errorf("unsupported pull request request %T", req)
	}
}

// CreatePR finds the change produced by the last CommitFiles for the source
// branch and posts the PR body and the default approval on it.
func (it *Platform) CreatePR(
	ctx context.Context,
	rc *entities.RepoContext,
	req entities.CreateRequest,
) (*entities.PullRequest, error) {
	logger.Infof("createPr(%s, %s, %v)", req.SourceBranch, req.Title, req.Labels)

	change, err := it.strategy.Discover(ctx, rc, req.SourceBranch)
	if err != nil {
		return nil, err
	}
	if updateErr := it.applyBody(ctx, change.Number, req.Body); updateErr != nil {
		return nil, updateErr
	}
	pr := entities.NewPullRequestFromChange(*change)
	return &pr, nil
}

// UpdatePR posts a new body and abandons the change when asked to close it.
func (it *Platform) UpdatePR(ctx context.Context, req entities.UpdateRequest) error {
	if req.Body != "" {
		if err := it.applyBody(ctx, req.Number, req.Body); err != nil {
			return err
		}
	}
	if req.State == entities.PRStateClosed {
		if err := it.gerrit.AbandonChange(ctx, req.Number); err != nil {
			return fmt.Errorf("failed to abandon change %d: %w", req.Number, err)
		}
	}
	return nil
}

func (it *Platform) applyBody(ctx context.Context, number int, body string) error {
	if _, err := it.review.EnsureMessage(ctx, number, body); err != nil {
		return err
	}
	if _, err := it.review.EnsureApproval(ctx, number); err != nil {
		return err
	}
	return nil
}

// MergePR submits a change and reports whether it ended up merged.
func (it *Platform) MergePR(ctx context.Context, number int) (bool, error) {
	logger.Infof("mergePr(%d)", number)
	change, err := it.gerrit.SubmitChange(ctx, number)
	if err != nil {
		return false, fmt.Errorf("failed to submit change %d: %w", number, err)
	}
	return change.Status == entities.ChangeStatusMerged, nil
}

// AddReviewers adds each reviewer in turn.
func (it *Platform) AddReviewers(ctx context.Context, number int, reviewers []string) error {
	for _, reviewer := range reviewers {
		if err := it.gerrit.AddReviewer(ctx, number, reviewer); err != nil {
			return fmt.Errorf("failed to add reviewer %q to change %d: %w", reviewer, number, err)
		}
	}
	return nil
}

// AddAssignees sets the first assignee; a change has at most one.
func (it *Platform) AddAssignees(ctx context.Context, number int, assignees []string) error {
	if len(assignees) == 0 {
		return nil
	}
	if len(assignees) > 1 {
		logger.Debugf("Change %d accepts one assignee, ignoring %v", number, assignees[1:])
	}
	if err := it.gerrit.SetAssignee(ctx, number, assignees[0]); err != nil {
		return fmt.Errorf("failed to set assignee of change %d: %w", number, err)
	}
	return nil
}

// EnsureComment posts content on the change unless it is already there.
func (it *Platform) EnsureComment(ctx context.Context, number int, content string) (bool, error) {
	logger.Infof("ensureComment(%d)", number)
	if _, err := it.review.EnsureMessage(ctx, number, content); err != nil {
		return false, err
	}
	return true, nil
}

// BranchStatus aggregates the open changes of a logical branch into one
// status, always reading fresh search results.
func (it *Platform) BranchStatus(
	ctx context.Context,
	rc *entities.RepoContext,
	branchName string,
) (entities.BranchStatus, error) {
	logger.Infof("getBranchStatus(%s)", branchName)
	changes, err := it.locator.FindOwnChanges(ctx, rc, it.strategy.BranchFilter(branchName, entities.PRStateOpen), true)
	if err != nil {
		return "", err
	}
	return entities.AggregateBranchStatus(changes), nil
}

// CommitFiles materializes file changes as a change for the logical branch
// and returns the resulting revision, or "" when there was nothing to commit.
func (it *Platform) CommitFiles(
	ctx context.Context,
	rc *entities.RepoContext,
	req entities.CommitFilesRequest,
) (string, error) {
	logger.Infof("commitFiles(%s)", req.BranchName)
	return it.strategy.Sync(ctx, rc, req)
}

// GetRawFile reads a file from a branch. The repository defaults to the
// context repository, then to All-Projects; only its part before the first
// "/" is used. The branch defaults to the context head.
func (it *Platform) GetRawFile(
	ctx context.Context,
	rc *entities.RepoContext,
	fileName, repository, branch string,
) (string, error) {
	repo, branchName := defaultRepoName, branch
	if rc != nil {
		repo = firstNonEmpty(rc.Repository, repo)
		branchName = firstNonEmpty(branch, rc.Head)
	}
	if repository != "" {
		repo, _, _ = strings.Cut(repository, "/")
	}

	encoded, err := it.gerrit.GetFileContent(ctx, repo, branchName, fileName)
	if err != nil {
		return "", fmt.Errorf("failed to get %s from %s@%s: %w", fileName, repo, branchName, err)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", fileName, err)
	}
	return string(decoded), nil
}

// GetJSONFile reads a file like GetRawFile and decodes it into out.
func (it *Platform) GetJSONFile(
	ctx context.Context,
	rc *entities.RepoContext,
	fileName, repository, branch string,
	out any,
) error {
	raw, err := it.GetRawFile(ctx, rc, fileName, repository, branch)
	if err != nil {
		return err
	}
	if unmarshalErr := json.Unmarshal([]byte(raw), out); unmarshalErr != nil {
		return fmt.Errorf("failed to parse %s: %w", fileName, unmarshalErr)
	}
	return nil
}
