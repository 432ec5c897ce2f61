//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	"github.com/rios0rios0/gerritforge/internal/domain/repositories"
)

// PostedReview records one PostReview call.
type PostedReview struct {
	Number int
	Input  entities.ReviewInput
}

// CherryPickCall records one CherryPick call.
type CherryPickCall struct {
	Repository string
	Commit     string
	Input      entities.CherryPickInput
}

// FileRequest records one GetFileContent call.
type FileRequest struct {
	Repository string
	Branch     string
	Path       string
}

// SpyGerritRepository implements repositories.GerritRepository as a configurable
// spy. Posted messages and Code-Review votes are stored on the spy so that
// follow-up reads observe them like the server would.
type SpyGerritRepository struct {
	// --- ListProjects ---
	Projects        []string
	ListProjectsErr error

	// --- GetProject / GetBranch / GetServerVersion ---
	Project       *entities.ProjectInfo
	ProjectErr    error
	Branch        *entities.BranchInfo
	BranchErr     error
	ServerVersion string
	VersionErr    error

	// --- FindChanges ---
	// SearchResults[i] answers the i-th search; the last entry repeats.
	SearchResults [][]entities.Change
	SearchErr     error
	Queries       []entities.ChangeQuery
	SearchCaches  []bool

	// --- GetChange / GetChangeDetail ---
	Changes      map[int]*entities.Change
	GetChangeErr error
	DetailCalls  []int
	DetailCaches []bool

	// --- GetMessages / PostReview ---
	Messages      map[int][]entities.ChangeMessage
	MessagesErr   error
	Reviews       []PostedReview
	PostReviewErr error

	// --- AbandonChange / SubmitChange ---
	Abandoned    []int
	AbandonErr   error
	Submitted    []int
	SubmitResult *entities.Change
	SubmitErr    error

	// --- AddReviewer / SetAssignee ---
	Reviewers      []string
	AddReviewerErr error
	Assignees      []string
	AssigneeErr    error

	// --- CherryPick / AddHashtags ---
	CherryPicks      []CherryPickCall
	CherryPickResult *entities.Change
	CherryPickErr    error
	Hashtags         map[int][]string
	HashtagsErr      error

	// --- GetFileContent / GetCommitMsgHook ---
	FileContent  string
	FileErr      error
	FileRequests []FileRequest
	Hook         []byte
	HookErr      error

	// --- CloneURL ---
	Endpoint string
}

var _ repositories.GerritRepository = (*SpyGerritRepository)(nil)

func (s *SpyGerritRepository) ListProjects(_ context.Context) ([]string, error) {
	return s.Projects, s.ListProjectsErr
}

func (s *SpyGerritRepository) GetProject(_ context.Context, repository string) (*entities.ProjectInfo, error) {
	if s.ProjectErr != nil {
		return nil, s.ProjectErr
	}
	if s.Project != nil {
		return s.Project, nil
	}
	return &entities.ProjectInfo{ID: repository, Name: repository, State: entities.ProjectStateActive}, nil
}

func (s *SpyGerritRepository) GetBranch(_ context.Context, _, branch string) (*entities.BranchInfo, error) {
	if s.BranchErr != nil {
		return nil, s.BranchErr
	}
	if s.Branch != nil {
		return s.Branch, nil
	}
	return &entities.BranchInfo{Ref: branch, Revision: "master"}, nil
}

func (s *SpyGerritRepository) GetServerVersion(_ context.Context) (string, error) {
	return s.ServerVersion, s.VersionErr
}

func (s *SpyGerritRepository) FindChanges(
	_ context.Context, query entities.ChangeQuery, useCache bool,
) ([]entities.Change, error) {
	call := len(s.Queries)
	s.Queries = append(s.Queries, query)
	s.SearchCaches = append(s.SearchCaches, useCache)
	if s.SearchErr != nil {
		return nil, s.SearchErr
	}
	if len(s.SearchResults) == 0 {
		return []entities.Change{}, nil
	}
	return s.SearchResults[min(call, len(s.SearchResults)-1)], nil
}

func (s *SpyGerritRepository) GetChange(_ context.Context, number int) (*entities.Change, error) {
	return s.change(number)
}

func (s *SpyGerritRepository) GetChangeDetail(
	_ context.Context, number int, useCache bool,
) (*entities.Change, error) {
	s.DetailCalls = append(s.DetailCalls, number)
	s.DetailCaches = append(s.DetailCaches, useCache)
	return s.change(number)
}

func (s *SpyGerritRepository) GetMessages(_ context.Context, number int) ([]entities.ChangeMessage, error) {
	if s.MessagesErr != nil {
		return nil, s.MessagesErr
	}
	return s.Messages[number], nil
}

func (s *SpyGerritRepository) PostReview(_ context.Context, number int, input entities.ReviewInput) error {
	s.Reviews = append(s.Reviews, PostedReview{Number: number, Input: input})
	if s.PostReviewErr != nil {
		return s.PostReviewErr
	}

	if input.Message != "" {
		if s.Messages == nil {
			s.Messages = make(map[int][]entities.ChangeMessage)
		}
		s.Messages[number] = append(s.Messages[number], entities.ChangeMessage{
			ID:      fmt.Sprintf("m%d", len(s.Messages[number])+1),
			Message: input.Message,
			Tag:     input.Tag,
		})
	}
	if vote, ok := input.Labels[entities.CodeReviewLabel]; ok && vote > 0 {
		if change := s.Changes[number]; change != nil && change.Labels != nil {
			change.Labels[entities.CodeReviewLabel] = entities.LabelInfo{Approved: &entities.AccountInfo{Username: "bot"}}
		}
	}
	return nil
}

func (s *SpyGerritRepository) AbandonChange(_ context.Context, number int) error {
	s.Abandoned = append(s.Abandoned, number)
	return s.AbandonErr
}

func (s *SpyGerritRepository) SubmitChange(_ context.Context, number int) (*entities.Change, error) {
	s.Submitted = append(s.Submitted, number)
	if s.SubmitErr != nil {
		return nil, s.SubmitErr
	}
	if s.SubmitResult != nil {
		return s.SubmitResult, nil
	}
	return &entities.Change{Number: number, Status: entities.ChangeStatusMerged}, nil
}

func (s *SpyGerritRepository) AddReviewer(_ context.Context, _ int, reviewer string) error {
	s.Reviewers = append(s.Reviewers, reviewer)
	return s.AddReviewerErr
}

func (s *SpyGerritRepository) SetAssignee(_ context.Context, _ int, assignee string) error {
	s.Assignees = append(s.Assignees, assignee)
	return s.AssigneeErr
}

func (s *SpyGerritRepository) CherryPick(
	_ context.Context, repository, commit string, input entities.CherryPickInput,
) (*entities.Change, error) {
	s.CherryPicks = append(s.CherryPicks, CherryPickCall{Repository: repository, Commit: commit, Input: input})
	if s.CherryPickErr != nil {
		return nil, s.CherryPickErr
	}
	if s.CherryPickResult != nil {
		return s.CherryPickResult, nil
	}
	return &entities.Change{Number: 1, Branch: input.Destination, CurrentRevision: commit}, nil
}

func (s *SpyGerritRepository) AddHashtags(_ context.Context, number int, hashtags []string) error {
	if s.Hashtags == nil {
		s.Hashtags = make(map[int][]string)
	}
	s.Hashtags[number] = append(s.Hashtags[number], hashtags...)
	return s.HashtagsErr
}

func (s *SpyGerritRepository) GetFileContent(
	_ context.Context, repository, branch, path string,
) (string, error) {
	s.FileRequests = append(s.FileRequests, FileRequest{Repository: repository, Branch: branch, Path: path})
	return s.FileContent, s.FileErr
}

func (s *SpyGerritRepository) GetCommitMsgHook(_ context.Context) ([]byte, error) {
	return s.Hook, s.HookErr
}

func (s *SpyGerritRepository) CloneURL(repository string) string {
	return s.Endpoint + "a/" + repository
}

func (s *SpyGerritRepository) change(number int) (*entities.Change, error) {
	if s.GetChangeErr != nil {
		return nil, s.GetChangeErr
	}
	change, ok := s.Changes[number]
	if !ok {
		return nil, fmt.Errorf("change %d not found", number)
	}
	return change, nil
}
