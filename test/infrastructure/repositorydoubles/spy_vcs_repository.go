//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	"github.com/rios0rios0/gerritforge/internal/domain/repositories"
)

// RefUpdate records a fetch, push or branch registration.
type RefUpdate struct {
	Dir string
	Src string
	Dst string
}

// SpyVCSRepository implements repositories.VCSRepository as a configurable spy.
type SpyVCSRepository struct {
	// --- Sync / InstallHook ---
	Synced  []RefUpdate // Src is the remote URL
	SyncErr error
	Hooks   map[string][]byte
	HookErr error

	// --- FetchRef ---
	Fetches  []RefUpdate
	FetchErr error

	// --- PrepareCommit ---
	// PrepareResult is returned by every call; nil means nothing to commit.
	PrepareResult *entities.CommitResult
	PrepareErr    error
	Prepared      []entities.CommitInput

	// --- HasChanges ---
	HasChangesResult bool
	HasChangesErr    error
	Diffs            []RefUpdate

	// --- Push / RegisterBranch ---
	Pushes      []RefUpdate
	PushErr     error
	Registered  []RefUpdate // Src is the branch, Dst the commit
	RegisterErr error
}

var _ repositories.VCSRepository = (*SpyVCSRepository)(nil)

func (s *SpyVCSRepository) Sync(_ context.Context, dir, remoteURL string) error {
	s.Synced = append(s.Synced, RefUpdate{Dir: dir, Src: remoteURL})
	return s.SyncErr
}

func (s *SpyVCSRepository) InstallHook(_, name string, content []byte) error {
	if s.Hooks == nil {
		s.Hooks = make(map[string][]byte)
	}
	s.Hooks[name] = content
	return s.HookErr
}

func (s *SpyVCSRepository) FetchRef(_ context.Context, dir, remoteRef, localRef string) error {
	s.Fetches = append(s.Fetches, RefUpdate{Dir: dir, Src: remoteRef, Dst: localRef})
	return s.FetchErr
}

func (s *SpyVCSRepository) PrepareCommit(
	_ context.Context, _ string, input entities.CommitInput,
) (*entities.CommitResult, error) {
	s.Prepared = append(s.Prepared, input)
	if s.PrepareErr != nil {
		return nil, s.PrepareErr
	}
	return s.PrepareResult, nil
}

func (s *SpyVCSRepository) HasChanges(_ context.Context, dir, fromRev, toRev string) (bool, error) {
	s.Diffs = append(s.Diffs, RefUpdate{Dir: dir, Src: fromRev, Dst: toRev})
	return s.HasChangesResult, s.HasChangesErr
}

func (s *SpyVCSRepository) Push(_ context.Context, dir, localRev, remoteRef string) error {
	s.Pushes = append(s.Pushes, RefUpdate{Dir: dir, Src: localRev, Dst: remoteRef})
	return s.PushErr
}

func (s *SpyVCSRepository) RegisterBranch(_ context.Context, dir, branch, commit string) error {
	s.Registered = append(s.Registered, RefUpdate{Dir: dir, Src: branch, Dst: commit})
	return s.RegisterErr
}
