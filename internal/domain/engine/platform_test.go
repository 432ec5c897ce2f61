//go:build unit

package engine_test

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gerritforge/internal/domain/engine"
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	builders "github.com/rios0rios0/gerritforge/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/gerritforge/test/infrastructure/repositorydoubles"
)

func newPlatform(
	gerrit *doubles.SpyGerritRepository,
	vcs *doubles.SpyVCSRepository,
	options engine.PlatformOptions,
) *engine.Platform {
	if options.LocalDir == "" {
		options.LocalDir = "/work"
	}
	return engine.NewPlatform(gerrit, vcs, clockwork.NewFakeClock(), engine.NewPushStrategy, options)
}

func TestPlatform_InitRepo(t *testing.T) {
	t.Parallel()

	t.Run("should refuse a project that is not active", func(t *testing.T) {
		t.Parallel()

		// given
		gerrit := &doubles.SpyGerritRepository{
			Project: &entities.ProjectInfo{Name: "app", State: "READ_ONLY"},
		}
		vcs := &doubles.SpyVCSRepository{}
		platform := newPlatform(gerrit, vcs, engine.PlatformOptions{})

		// when
		rc, err := platform.InitRepo(context.Background(), "app")

		// then
		require.ErrorIs(t, err, engine.ErrRepositoryArchived)
		assert.Nil(t, rc)
		assert.Empty(t, vcs.Synced)
	})

	t.Run("should prepare the working copy and restore open changes", func(t *testing.T) {
		t.Parallel()

		// given
		rejected := builders.NewChangeBuilder().
			WithNumber(1).
			WithLabel(entities.CodeReviewLabel, entities.LabelInfo{Rejected: &entities.AccountInfo{AccountID: 9}}).
			BuildPointer()
		open := builders.NewChangeBuilder().
			WithNumber(2).
			WithTopic("deps").
			WithRevision(existingSHA).
			BuildPointer()
		gerrit := &doubles.SpyGerritRepository{
			Endpoint:      "https://review.example.com/",
			Hook:          []byte("#!/bin/sh\n"),
			SearchResults: [][]entities.Change{{*rejected, *open}},
			Changes:       map[int]*entities.Change{1: rejected, 2: open},
		}
		vcs := &doubles.SpyVCSRepository{}
		platform := newPlatform(gerrit, vcs, engine.PlatformOptions{})

		// when
		rc, err := platform.InitRepo(context.Background(), "app")

		// then
		require.NoError(t, err)
		assert.Equal(t, "master", rc.Head)
		assert.Equal(t, "/work/app", rc.LocalDir)
		assert.Equal(t, "https://review.example.com/a/app", rc.Remote.RemoteURL)
		assert.Equal(t, "refs/heads/master", rc.Remote.DefaultBranch)
		assert.Equal(t, entities.ProviderName, rc.Remote.ProviderName)
		assert.Equal(t, []doubles.RefUpdate{{Dir: "/work/app", Src: "https://review.example.com/a/app"}}, vcs.Synced)
		assert.Equal(t, []byte("#!/bin/sh\n"), vcs.Hooks["commit-msg"])
		assert.Equal(t, []int{1}, gerrit.Abandoned)
		assert.Equal(t, []doubles.RefUpdate{
			{Dir: "/work/app", Src: builders.RefFor(2), Dst: "refs/heads/main%topic=deps"},
		}, vcs.Fetches)
		assert.Equal(t, []doubles.RefUpdate{
			{Dir: "/work/app", Src: "main%topic=deps", Dst: existingSHA},
		}, vcs.Registered)
	})

	t.Run("should fail on an open change without a current revision", func(t *testing.T) {
		t.Parallel()

		// given
		broken := builders.NewChangeBuilder().WithNumber(3).WithRevision("").BuildPointer()
		gerrit := &doubles.SpyGerritRepository{
			SearchResults: [][]entities.Change{{*broken}},
			Changes:       map[int]*entities.Change{3: broken},
		}
		platform := newPlatform(gerrit, &doubles.SpyVCSRepository{}, engine.PlatformOptions{})

		// when
		_, err := platform.InitRepo(context.Background(), "app")

		// then
		require.ErrorIs(t, err, engine.ErrNoCurrentRevision)
	})

	t.Run("should not fail when the server version cannot be read", func(t *testing.T) {
		t.Parallel()

		// given
		gerrit := &doubles.SpyGerritRepository{VersionErr: errors.New("forbidden")}
		platform := newPlatform(gerrit, &doubles.SpyVCSRepository{}, engine.PlatformOptions{MinServerVersion: "3.5.0"})

		// when
		rc, err := platform.InitRepo(context.Background(), "app")

		// then
		require.NoError(t, err)
		assert.NotNil(t, rc)
	})
}

func TestPlatform_CheckServerVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		version  string
		minimum  string
		expected bool
	}{
		{name: "should accept a newer build", version: "3.9.1-12-gabcdef", minimum: "3.5", expected: true},
		{name: "should accept the exact minimum", version: "3.5.0", minimum: "3.5.0", expected: true},
		{name: "should reject an older server", version: "3.4.2", minimum: "3.5.0", expected: false},
		{name: "should reject an unparsable version", version: "unknown", minimum: "3.5.0", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			gerrit := &doubles.SpyGerritRepository{ServerVersion: tt.version}
			platform := newPlatform(gerrit, &doubles.SpyVCSRepository{}, engine.PlatformOptions{MinServerVersion: tt.minimum})

			// when
			ok, err := platform.CheckServerVersion(context.Background())

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}
}

func TestPlatform_PullRequests(t *testing.T) {
	t.Parallel()

	t.Run("should post the body and approve the discovered change", func(t *testing.T) {
		t.Parallel()

		// given
		change := builders.NewChangeBuilder().
			WithNumber(7).
			WithTopic("deps").
			WithLabel(entities.CodeReviewLabel, entities.LabelInfo{}).
			BuildPointer()
		gerrit := &doubles.SpyGerritRepository{
			SearchResults: [][]entities.Change{{*change}},
			Changes:       map[int]*entities.Change{7: change},
		}
		platform := newPlatform(gerrit, &doubles.SpyVCSRepository{}, engine.PlatformOptions{})

		// when
		pr, err := platform.SubmitPullRequest(context.Background(), newRepoContext(), entities.CreateRequest{
			SourceBranch: "main%topic=deps",
			Title:        "Update deps",
			Body:         "Bumps every dependency",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, 7, pr.Number)
		assert.Equal(t, entities.PRStateOpen, pr.State)
		require.Len(t, gerrit.Reviews, 2)
		assert.Equal(t, "Bumps every dependency", gerrit.Reviews[0].Input.Message)
		assert.Equal(t, map[string]int{entities.CodeReviewLabel: 2}, gerrit.Reviews[1].Input.Labels)
	})

	t.Run("should abandon the change when closing", func(t *testing.T) {
		t.Parallel()

		// given
		change := builders.NewChangeBuilder().WithNumber(7).WithStatus(entities.ChangeStatusAbandoned).BuildPointer()
		gerrit := &doubles.SpyGerritRepository{Changes: map[int]*entities.Change{7: change}}
		platform := newPlatform(gerrit, &doubles.SpyVCSRepository{}, engine.PlatformOptions{})

		// when
		pr, err := platform.SubmitPullRequest(context.Background(), newRepoContext(), entities.UpdateRequest{
			Number: 7,
			State:  entities.PRStateClosed,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []int{7}, gerrit.Abandoned)
		assert.Empty(t, gerrit.Reviews)
		assert.Equal(t, entities.PRStateClosed, pr.State)
	})

	t.Run("should report whether the submitted change merged", func(t *testing.T) {
		t.Parallel()

		// given
		merged := newPlatform(&doubles.SpyGerritRepository{}, &doubles.SpyVCSRepository{}, engine.PlatformOptions{})
		pending := newPlatform(&doubles.SpyGerritRepository{
			SubmitResult: &entities.Change{Number: 7, Status: entities.ChangeStatusNew},
		}, &doubles.SpyVCSRepository{}, engine.PlatformOptions{})

		// when
		mergedOK, err1 := merged.MergePR(context.Background(), 7)
		pendingOK, err2 := pending.MergePR(context.Background(), 7)

		// then
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.True(t, mergedOK)
		assert.False(t, pendingOK)
	})

	t.Run("should only set the first assignee", func(t *testing.T) {
		t.Parallel()

		// given
		gerrit := &doubles.SpyGerritRepository{}
		platform := newPlatform(gerrit, &doubles.SpyVCSRepository{}, engine.PlatformOptions{})

		// when
		err1 := platform.AddAssignees(context.Background(), 7, []string{"alice", "bob"})
		err2 := platform.AddAssignees(context.Background(), 7, nil)

		// then
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, []string{"alice"}, gerrit.Assignees)
	})

	t.Run("should add every reviewer", func(t *testing.T) {
		t.Parallel()

		// given
		gerrit := &doubles.SpyGerritRepository{}
		platform := newPlatform(gerrit, &doubles.SpyVCSRepository{}, engine.PlatformOptions{})

		// when
		err := platform.AddReviewers(context.Background(), 7, []string{"alice", "bob"})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, gerrit.Reviewers)
	})

	t.Run("should list every own change as a pull request", func(t *testing.T) {
		t.Parallel()

		// given
		gerrit := &doubles.SpyGerritRepository{SearchResults: [][]entities.Change{{
			builders.NewChangeBuilder().WithNumber(1).BuildChange(),
			builders.NewChangeBuilder().WithNumber(2).WithStatus(entities.ChangeStatusMerged).BuildChange(),
		}}}
		platform := newPlatform(gerrit, &doubles.SpyVCSRepository{}, engine.PlatformOptions{})

		// when
		prs, err := platform.GetPRList(context.Background(), newRepoContext())

		// then
		require.NoError(t, err)
		require.Len(t, prs, 2)
		assert.Equal(t, entities.PRStateMerged, prs[1].State)
		assert.Equal(t, []string{"owner:self", "project:app", "-is:wip"}, gerrit.Queries[0].Terms)
	})
}

func TestPlatform_BranchStatus(t *testing.T) {
	t.Parallel()

	t.Run("should aggregate fresh search results", func(t *testing.T) {
		t.Parallel()

		// given
		gerrit := &doubles.SpyGerritRepository{SearchResults: [][]entities.Change{{
			builders.NewChangeBuilder().WithSubmittable(true).BuildChange(),
		}}}
		platform := newPlatform(gerrit, &doubles.SpyVCSRepository{}, engine.PlatformOptions{})

		// when
		status, err := platform.GetBranchStatusCheck(context.Background(), newRepoContext(), "main%topic=deps", "ci")

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.BranchStatusGreen, status)
		assert.Equal(t, []bool{false}, gerrit.SearchCaches)
	})
}

func TestPlatform_GetRawFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rc         *entities.RepoContext
		repository string
		branch     string
		expected   doubles.FileRequest
	}{
		{
			name:     "should default to the context repository and head",
			rc:       newRepoContext(),
			expected: doubles.FileRequest{Repository: "app", Branch: "master", Path: "renovate.json"},
		},
		{
			name:     "should fall back to All-Projects without a context",
			branch:   "refs/meta/config",
			expected: doubles.FileRequest{Repository: "All-Projects", Branch: "refs/meta/config", Path: "renovate.json"},
		},
		{
			name:       "should keep only the first path segment of the repository",
			rc:         newRepoContext(),
			repository: "presets/shared",
			branch:     "main",
			expected:   doubles.FileRequest{Repository: "presets", Branch: "main", Path: "renovate.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			gerrit := &doubles.SpyGerritRepository{
				FileContent: base64.StdEncoding.EncodeToString([]byte(`{"extends":["config:base"]}`)) + "\n",
			}
			platform := newPlatform(gerrit, &doubles.SpyVCSRepository{}, engine.PlatformOptions{})

			// when
			content, err := platform.GetRawFile(context.Background(), tt.rc, "renovate.json", tt.repository, tt.branch)

			// then
			require.NoError(t, err)
			assert.JSONEq(t, `{"extends":["config:base"]}`, content)
			assert.Equal(t, []doubles.FileRequest{tt.expected}, gerrit.FileRequests)
		})
	}

	t.Run("should decode JSON files", func(t *testing.T) {
		t.Parallel()

		// given
		gerrit := &doubles.SpyGerritRepository{
			FileContent: base64.StdEncoding.EncodeToString([]byte(`{"extends":["config:base"]}`)),
		}
		platform := newPlatform(gerrit, &doubles.SpyVCSRepository{}, engine.PlatformOptions{})
		var config struct {
			Extends []string `json:"extends"`
		}

		// when
		err := platform.GetJSONFile(context.Background(), newRepoContext(), "renovate.json", "", "", &config)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"config:base"}, config.Extends)
	})
}

func TestPlatform_Unsupported(t *testing.T) {
	t.Parallel()

	t.Run("should truncate long bodies on a rune boundary", func(t *testing.T) {
		t.Parallel()

		// given
		platform := newPlatform(&doubles.SpyGerritRepository{}, &doubles.SpyVCSRepository{}, engine.PlatformOptions{})
		body := strings.Repeat("a", 16383) + "é" + "tail"

		// when
		result := platform.MassageMarkdown(body)

		// then
		assert.Equal(t, strings.Repeat("a", 16383), result)
		assert.Equal(t, "short", platform.MassageMarkdown("short"))
	})

	t.Run("should answer issue operations without an issue tracker", func(t *testing.T) {
		t.Parallel()

		// given
		platform := newPlatform(&doubles.SpyGerritRepository{}, &doubles.SpyVCSRepository{}, engine.PlatformOptions{})
		ctx := context.Background()

		// when
		issue, findErr := platform.FindIssue(ctx, "Dependency Dashboard")
		issues, listErr := platform.GetIssueList(ctx)
		alerts, alertErr := platform.GetVulnerabilityAlerts(ctx)

		// then
		require.NoError(t, findErr)
		require.NoError(t, listErr)
		require.NoError(t, alertErr)
		assert.Nil(t, issue)
		assert.Empty(t, issues)
		assert.Empty(t, alerts)
		assert.True(t, platform.GetRepoForceRebase())
		assert.NoError(t, platform.SetBranchStatus(ctx, newRepoContext(), "main", entities.BranchStatusGreen))
	})
}

func TestPlatform_CherryPickPullRequest(t *testing.T) {
	t.Parallel()

	t.Run("should surface the cherry-picked change while the search index lags", func(t *testing.T) {
		t.Parallel()

		// given
		picked := builders.NewChangeBuilder().
			WithNumber(40).
			WithBranch("release").
			WithRevision(existingSHA).
			WithLabel(entities.CodeReviewLabel, entities.LabelInfo{}).
			BuildPointer()
		gerrit := &doubles.SpyGerritRepository{
			SearchResults:    [][]entities.Change{{}},
			CherryPickResult: picked,
			Changes:          map[int]*entities.Change{40: picked},
		}
		vcs := &doubles.SpyVCSRepository{PrepareResult: &entities.CommitResult{CommitSHA: localSHA}}
		platform := engine.NewPlatform(
			gerrit, vcs, clockwork.NewFakeClock(), engine.NewCherryPickStrategy,
			engine.PlatformOptions{LocalDir: "/work"},
		)
		rc := newRepoContext()

		// when
		revision, commitErr := platform.CommitFiles(context.Background(), rc, entities.CommitFilesRequest{
			BranchName:   "deps/go",
			TargetBranch: "release",
			Message:      []string{"Update deps"},
		})
		pr, err := platform.SubmitPullRequest(context.Background(), rc, entities.CreateRequest{
			SourceBranch: "deps/go",
			Title:        "Update deps",
			Body:         "Bumps every dependency",
		})

		// then
		require.NoError(t, commitErr)
		require.NoError(t, err)
		assert.Equal(t, existingSHA, revision)
		assert.Equal(t, 40, pr.Number)
		assert.Len(t, gerrit.Queries, 1)
		assert.Equal(t, []int{40, 40}, gerrit.DetailCalls)
		assert.Equal(t, []bool{false, false}, gerrit.DetailCaches)
		require.Len(t, gerrit.Reviews, 2)
		assert.Equal(t, "Bumps every dependency", gerrit.Reviews[0].Input.Message)
	})
}
