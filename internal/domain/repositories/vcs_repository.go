package repositories

import (
	"context"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// VCSRepository abstracts the local working copy. Every method is keyed by the
// working copy directory so that one instance can serve several repositories.
type VCSRepository interface {
	// Sync clones remoteURL into dir, or fetches all branches when dir already
	// holds a clone.
	Sync(ctx context.Context, dir, remoteURL string) error

	// InstallHook writes an executable git hook.
	InstallHook(dir, name string, content []byte) error

	// FetchRef fetches remoteRef from origin into localRef, forcing the update.
	FetchRef(ctx context.Context, dir, remoteRef, localRef string) error

	// PrepareCommit creates a commit with the given file changes on top of
	// input.BaseRef. It returns nil when the files produce no content change.
	PrepareCommit(ctx context.Context, dir string, input entities.CommitInput) (*entities.CommitResult, error)

	// HasChanges reports whether the trees of two revisions differ.
	HasChanges(ctx context.Context, dir, fromRev, toRev string) (bool, error)

	// Push pushes a local ref (or revision) to a remote ref on origin.
	Push(ctx context.Context, dir, localRev, remoteRef string) error

	// RegisterBranch points the local branch at commit.
	RegisterBranch(ctx context.Context, dir, branch, commit string) error
}
