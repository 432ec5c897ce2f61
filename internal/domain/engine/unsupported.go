package engine

import (
	"context"
	"unicode/utf8"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// maxMessageBytes is the largest PR body posted as a change message.
const maxMessageBytes = 16384

// The review server has no issue tracker and no commit statuses. The
// operations below succeed without doing anything so that callers written for
// branch-based hosts keep working.

// GetBranchStatusCheck returns the aggregated status of the branch for any
// status context.
func (it *Platform) GetBranchStatusCheck(
	ctx context.Context,
	rc *entities.RepoContext,
	branchName, _ string,
) (entities.BranchStatus, error) {
	return it.BranchStatus(ctx, rc, branchName)
}

func (it *Platform) SetBranchStatus(context.Context, *entities.RepoContext, string, entities.BranchStatus) error {
	return nil
}

func (it *Platform) DeleteLabel(context.Context, int, string) error {
	return nil
}

func (it *Platform) EnsureCommentRemoval(context.Context, int, string) error {
	return nil
}

func (it *Platform) FindIssue(_ context.Context, title string) (*entities.Issue, error) {
	logger.Warnf("findIssue(%s) is not supported by Gerrit", title)
	return nil, nil //nolint:nilnil // no issue tracker
}

func (it *Platform) EnsureIssue(context.Context, entities.Issue) (*entities.Issue, error) {
	return nil, nil //nolint:nilnil // no issue tracker
}

func (it *Platform) EnsureIssueClosing(context.Context, string) error {
	return nil
}

func (it *Platform) GetIssueList(context.Context) ([]entities.Issue, error) {
	return []entities.Issue{}, nil
}

func (it *Platform) GetVulnerabilityAlerts(context.Context) ([]entities.VulnerabilityAlert, error) {
	return []entities.VulnerabilityAlert{}, nil
}

// GetRepoForceRebase is always true: every new patch-set is rebased onto the
// current base branch.
func (it *Platform) GetRepoForceRebase() bool {
	return true
}

// MassageMarkdown truncates a PR body to the largest message the server
// accepts, without splitting a UTF-8 sequence.
func (it *Platform) MassageMarkdown(body string) string {
	if len(body) <= maxMessageBytes {
		return body
	}
	cut := maxMessageBytes
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut]
}
