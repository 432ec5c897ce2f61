package repositories

import (
	"context"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// GerritRepository abstracts the review server's REST surface.
// Reads that take useCache=false must bypass any response cache, since callers
// rely on observing the effect of a write they just performed.
type GerritRepository interface {
	// ListProjects returns the names of all active code projects.
	ListProjects(ctx context.Context) ([]string, error)

	// GetProject returns the project detail.
	GetProject(ctx context.Context, repository string) (*entities.ProjectInfo, error)

	// GetBranch returns a branch of the project; "HEAD" yields the default branch.
	GetBranch(ctx context.Context, repository, branch string) (*entities.BranchInfo, error)

	// GetServerVersion returns the server's version string.
	GetServerVersion(ctx context.Context) (string, error)

	// FindChanges runs a change search.
	FindChanges(ctx context.Context, query entities.ChangeQuery, useCache bool) ([]entities.Change, error)

	// GetChange returns a single change without extra detail.
	GetChange(ctx context.Context, number int) (*entities.Change, error)

	// GetChangeDetail returns a single change including labels and reviewers.
	GetChangeDetail(ctx context.Context, number int, useCache bool) (*entities.Change, error)

	// GetMessages returns all messages of a change. Never cached.
	GetMessages(ctx context.Context, number int) ([]entities.ChangeMessage, error)

	// PostReview posts a message and/or label votes on the current revision.
	PostReview(ctx context.Context, number int, input entities.ReviewInput) error

	// AbandonChange abandons a change.
	AbandonChange(ctx context.Context, number int) error

	// SubmitChange merges a change and returns its resulting state.
	SubmitChange(ctx context.Context, number int) (*entities.Change, error)

	// AddReviewer adds one reviewer to a change.
	AddReviewer(ctx context.Context, number int, reviewer string) error

	// SetAssignee sets the single assignee of a change.
	SetAssignee(ctx context.Context, number int, assignee string) error

	// CherryPick cherry-picks a commit onto a destination branch.
	CherryPick(
		ctx context.Context, repository, commit string, input entities.CherryPickInput,
	) (*entities.Change, error)

	// AddHashtags adds hashtags to a change.
	AddHashtags(ctx context.Context, number int, hashtags []string) error

	// GetFileContent returns the base64 encoded content of a file on a branch.
	GetFileContent(ctx context.Context, repository, branch, path string) (string, error)

	// GetCommitMsgHook downloads the server's commit-msg hook script.
	GetCommitMsgHook(ctx context.Context) ([]byte, error)

	// CloneURL returns the authenticated git URL of a project.
	CloneURL(repository string) string
}
