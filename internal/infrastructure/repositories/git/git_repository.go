package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/jonboulle/clockwork"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

const (
	remoteName    = "origin"
	remotePrefix  = "refs/remotes/" + remoteName + "/"
	hooksDir      = ".git/hooks"
	hookPerm      = 0o700
	filePerm      = 0o644
	dirPerm       = 0o755
	messageJoiner = "\n\n"
)

var changeIDPattern = regexp.MustCompile(`(?m)^Change-Id: I[0-9a-f]{40}\s*$`)

// Repository is the go-git backed working copy layer. It keeps no state
// between calls: every method opens the repository found in dir.
type Repository struct {
	auth   transport.AuthMethod
	author entities.AuthorConfig
	clock  clockwork.Clock
}

// NewRepository creates a working copy layer authenticating with the
// configured Gerrit HTTP credentials.
func NewRepository(settings *entities.Settings, clock clockwork.Clock) *Repository {
	var auth transport.AuthMethod
	if settings.Username != "" {
		auth = &githttp.BasicAuth{Username: settings.Username, Password: settings.Password}
	}
	return &Repository{auth: auth, author: settings.Author, clock: clock}
}

// Sync clones remoteURL into dir, or fetches all branches of an existing clone.
func (it *Repository) Sync(ctx context.Context, dir, remoteURL string) error {
	repo, err := gogit.PlainOpen(dir)
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		logger.Infof("Cloning %s into %s", remoteURL, dir)
		if mkErr := os.MkdirAll(filepath.Dir(dir), dirPerm); mkErr != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(dir), mkErr)
		}
		_, cloneErr := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
			URL:        remoteURL,
			RemoteName: remoteName,
			Auth:       it.authFor(remoteURL),
		})
		if cloneErr != nil {
			return fmt.Errorf("failed to clone: %w", cloneErr)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	logger.Debugf("Fetching all branches into %s", dir)
	return it.fetch(ctx, repo, config.RefSpec("+refs/heads/*:"+remotePrefix+"*"))
}

// InstallHook writes an executable hook into the repository's hook directory.
func (it *Repository) InstallHook(dir, name string, content []byte) error {
	fs := osfs.New(filepath.Join(dir, hooksDir))
	if err := util.WriteFile(fs, name, content, hookPerm); err != nil {
		return fmt.Errorf("failed to write hook %s: %w", name, err)
	}
	// WriteFile only applies the mode when it creates the file
	if err := os.Chmod(filepath.Join(dir, hooksDir, name), hookPerm); err != nil {
		return fmt.Errorf("failed to make hook %s executable: %w", name, err)
	}
	return nil
}

// FetchRef force-fetches remoteRef from origin into localRef.
func (it *Repository) FetchRef(ctx context.Context, dir, remoteRef, localRef string) error {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}
	return it.fetch(ctx, repo, config.RefSpec("+"+remoteRef+":"+localRef))
}

// PrepareCommit resets input.BranchName to input.BaseRef, applies the file
// changes and commits them. It returns nil when the files leave the tree
// untouched.
func (it *Repository) PrepareCommit(
	ctx context.Context,
	dir string,
	input entities.CommitInput,
) (*entities.CommitResult, error) {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	base, err := resolveBase(repo, input.BaseRef)
	if err != nil {
		return nil, err
	}
	branch := plumbing.NewBranchReferenceName(input.BranchName)
	if setErr := repo.Storer.SetReference(plumbing.NewHashReference(branch, base)); setErr != nil {
		return nil, fmt.Errorf("failed to reset %s: %w", branch, setErr)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	if coErr := wt.Checkout(&gogit.CheckoutOptions{Branch: branch, Force: true}); coErr != nil {
		return nil, fmt.Errorf("failed to checkout %s: %w", branch, coErr)
	}

	if applyErr := applyFiles(wt, input.Files); applyErr != nil {
		return nil, applyErr
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	if !touched(status, input.Files) {
		logger.Debugf("No content change on %s", input.BranchName)
		return nil, nil //nolint:nilnil // nothing to commit
	}

	message := it.commitMessage(input.Message, base)
	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{Name: it.author.Name, Email: it.author.Email, When: it.clock.Now()},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	logger.Infof("Committed %s on %s", hash, input.BranchName)
	return &entities.CommitResult{CommitSHA: hash.String(), ParentSHA: base.String()}, nil
}

// HasChanges reports whether the trees of two revisions differ.
func (it *Repository) HasChanges(_ context.Context, dir, fromRev, toRev string) (bool, error) {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return false, fmt.Errorf("failed to open repository: %w", err)
	}

	fromTree, err := treeOf(repo, fromRev)
	if err != nil {
		return false, err
	}
	toTree, err := treeOf(repo, toRev)
	if err != nil {
		return false, err
	}
	return fromTree != toTree, nil
}

// Push force-pushes localRev to remoteRef on origin.
func (it *Repository) Push(ctx context.Context, dir, localRev, remoteRef string) error {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	refSpec := config.RefSpec("+" + localRev + ":" + remoteRef)
	if validateErr := refSpec.Validate(); validateErr != nil {
		return fmt.Errorf("invalid refspec %s: %w", refSpec, validateErr)
	}

	err = repo.PushContext(ctx, &gogit.PushOptions{
		RemoteName: remoteName,
		RefSpecs:   []config.RefSpec{refSpec},
		Auth:       it.authFor(remoteURL(repo)),
	})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to push %s: %w", refSpec, err)
	}
	return nil
}

// RegisterBranch points the local branch at commit.
func (it *Repository) RegisterBranch(_ context.Context, dir, branch, commit string) error {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(commit))
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", commit, err)
	}
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(branch), *hash)
	if setErr := repo.Storer.SetReference(ref); setErr != nil {
		return fmt.Errorf("failed to set %s: %w", ref.Name(), setErr)
	}
	return nil
}

func (it *Repository) fetch(ctx context.Context, repo *gogit.Repository, refSpec config.RefSpec) error {
	err := repo.FetchContext(ctx, &gogit.FetchOptions{
		RemoteName: remoteName,
		RefSpecs:   []config.RefSpec{refSpec},
		Auth:       it.authFor(remoteURL(repo)),
		Force:      true,
	})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to fetch %s: %w", refSpec, err)
	}
	return nil
}

// authFor returns the credentials for HTTP remotes only; local and file
// remotes take none.
func (it *Repository) authFor(url string) transport.AuthMethod {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return it.auth
	}
	return nil
}

// commitMessage joins the paragraphs and appends a Change-Id trailer unless
// one is already present.
func (it *Repository) commitMessage(paragraphs []string, parent plumbing.Hash) string {
	message := strings.Join(paragraphs, messageJoiner)
	if changeIDPattern.MatchString(message) {
		return message
	}
	seed := fmt.Sprintf("%s\n%s\n%s <%s> %d", parent, message, it.author.Name, it.author.Email, it.clock.Now().UnixNano())
	changeID := "I" + plumbing.ComputeHash(plumbing.CommitObject, []byte(seed)).String()
	return message + messageJoiner + "Change-Id: " + changeID
}

func remoteURL(repo *gogit.Repository) string {
	remote, err := repo.Remote(remoteName)
	if err != nil || len(remote.Config().URLs) == 0 {
		return ""
	}
	return remote.Config().URLs[0]
}

// resolveBase prefers the remote-tracking branch over a local one of the same name.
func resolveBase(repo *gogit.Repository, baseRef string) (plumbing.Hash, error) {
	if hash, err := repo.ResolveRevision(plumbing.Revision(remotePrefix + baseRef)); err == nil {
		return *hash, nil
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(baseRef))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve base %s: %w", baseRef, err)
	}
	return *hash, nil
}

func treeOf(repo *gogit.Repository, rev string) (plumbing.Hash, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve %s: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to read commit %s: %w", hash, err)
	}
	return commit.TreeHash, nil
}

func applyFiles(wt *gogit.Worktree, files []entities.FileChange) error {
	for _, file := range files {
		if file.Delete {
			if _, statErr := wt.Filesystem.Stat(file.Path); statErr != nil {
				continue
			}
			if _, err := wt.Remove(file.Path); err != nil {
				return fmt.Errorf("failed to remove %s: %w", file.Path, err)
			}
			continue
		}

		if dir := filepath.Dir(file.Path); dir != "." {
			if err := wt.Filesystem.MkdirAll(dir, dirPerm); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}
		}
		if err := util.WriteFile(wt.Filesystem, file.Path, file.Contents, filePerm); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Path, err)
		}
		if _, err := wt.Add(file.Path); err != nil {
			return fmt.Errorf("failed to stage %s: %w", file.Path, err)
		}
	}
	return nil
}

// touched reports whether any of the given files is staged with a change.
func touched(status gogit.Status, files []entities.FileChange) bool {
	for _, file := range files {
		code := status.File(file.Path).Staging
		if code != gogit.Unmodified && code != gogit.Untracked {
			return true
		}
	}
	return false
}
