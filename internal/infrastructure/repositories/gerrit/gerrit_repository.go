package gerrit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

const commitMsgHookPath = "tools/hooks/commit-msg"

// ListProjects returns the names of all active code projects.
func (c *Client) ListProjects(ctx context.Context) ([]string, error) {
	var projects map[string]projectInfo
	if err := c.getJSON(ctx, "a/projects/?type=CODE&state=ACTIVE", true, &projects); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(projects))
	for name := range projects {
		names = append(names, name)
	}
	return names, nil
}

// GetProject returns the project detail.
func (c *Client) GetProject(ctx context.Context, repository string) (*entities.ProjectInfo, error) {
	var project projectInfo
	if err := c.getJSON(ctx, "a/projects/"+url.PathEscape(repository), true, &project); err != nil {
		return nil, err
	}
	if project.Name == "" {
		project.Name = repository
	}
	return project.toEntity(), nil
}

// GetBranch returns a branch of the project.
func (c *Client) GetBranch(ctx context.Context, repository, branch string) (*entities.BranchInfo, error) {
	path := fmt.Sprintf("a/projects/%s/branches/%s", url.PathEscape(repository), url.PathEscape(branch))
	var info branchInfo
	if err := c.getJSON(ctx, path, true, &info); err != nil {
		return nil, err
	}
	return &entities.BranchInfo{Ref: info.Ref, Revision: info.Revision}, nil
}

// GetServerVersion returns the server's version string.
func (c *Client) GetServerVersion(ctx context.Context) (string, error) {
	var version string
	if err := c.getJSON(ctx, "a/config/server/version", true, &version); err != nil {
		return "", err
	}
	return version, nil
}

// FindChanges runs a change search.
func (c *Client) FindChanges(ctx context.Context, query entities.ChangeQuery, useCache bool) ([]entities.Change, error) {
	var infos []changeInfo
	if err := c.getJSON(ctx, searchPath(query), useCache, &infos); err != nil {
		return nil, err
	}
	return toChanges(infos), nil
}

// searchPath renders a/changes/?q=t1+t2&o=A&o=B, escaping each term on its own
// so that the separators stay literal. Spaces inside a term become %20, since
// a bare "+" would split the term.
func searchPath(query entities.ChangeQuery) string {
	terms := make([]string, 0, len(query.Terms))
	for _, term := range query.Terms {
		terms = append(terms, strings.ReplaceAll(url.QueryEscape(term), "+", "%20"))
	}

	var sb strings.Builder
	sb.WriteString("a/changes/?q=")
	sb.WriteString(strings.Join(terms, "+"))
	for _, option := range query.Options {
		sb.WriteString("&o=")
		sb.WriteString(option)
	}
	return sb.String()
}

// GetChange returns a single change.
func (c *Client) GetChange(ctx context.Context, number int) (*entities.Change, error) {
	var info changeInfo
	if err := c.getJSON(ctx, changePath(number, ""), true, &info); err != nil {
		return nil, err
	}
	change := info.toEntity()
	return &change, nil
}

// GetChangeDetail returns a single change including labels, reviewers and
// the current revision.
func (c *Client) GetChangeDetail(ctx context.Context, number int, useCache bool) (*entities.Change, error) {
	path := changePath(number, "/detail") + "?o=" + strings.Join(entities.DetailOptions(), "&o=")
	var info changeInfo
	if err := c.getJSON(ctx, path, useCache, &info); err != nil {
		return nil, err
	}
	change := info.toEntity()
	return &change, nil
}

// GetMessages returns all messages of a change, always bypassing the cache.
func (c *Client) GetMessages(ctx context.Context, number int) ([]entities.ChangeMessage, error) {
	var infos []changeMessageInfo
	if err := c.getJSON(ctx, changePath(number, "/messages"), false, &infos); err != nil {
		return nil, err
	}

	messages := make([]entities.ChangeMessage, 0, len(infos))
	for _, info := range infos {
		messages = append(messages, entities.ChangeMessage{
			ID:      info.ID,
			Message: info.Message,
			Tag:     info.Tag,
			Author:  info.Author.toEntity(),
		})
	}
	return messages, nil
}

// PostReview posts a message and/or label votes on the current revision.
func (c *Client) PostReview(ctx context.Context, number int, input entities.ReviewInput) error {
	body := reviewInput{Message: input.Message, Tag: input.Tag, Labels: input.Labels}
	return c.send(ctx, http.MethodPost, changePath(number, "/revisions/current/review"), body, nil)
}

// AbandonChange abandons a change.
func (c *Client) AbandonChange(ctx context.Context, number int) error {
	return c.send(ctx, http.MethodPost, changePath(number, "/abandon"), nil, nil)
}

// SubmitChange merges a change and returns its resulting state.
func (c *Client) SubmitChange(ctx context.Context, number int) (*entities.Change, error) {
	var info changeInfo
	if err := c.send(ctx, http.MethodPost, changePath(number, "/submit"), nil, &info); err != nil {
		return nil, err
	}
	change := info.toEntity()
	return &change, nil
}

// AddReviewer adds one reviewer to a change.
func (c *Client) AddReviewer(ctx context.Context, number int, reviewer string) error {
	return c.send(ctx, http.MethodPost, changePath(number, "/reviewers"), reviewerInput{Reviewer: reviewer}, nil)
}

// SetAssignee sets the single assignee of a change.
func (c *Client) SetAssignee(ctx context.Context, number int, assignee string) error {
	return c.send(ctx, http.MethodPut, changePath(number, "/assignee"), assigneeInput{Assignee: assignee}, nil)
}

// CherryPick cherry-picks a commit onto a destination branch.
func (c *Client) CherryPick(
	ctx context.Context,
	repository, commit string,
	input entities.CherryPickInput,
) (*entities.Change, error) {
	path := fmt.Sprintf("a/projects/%s/commits/%s/cherrypick", url.PathEscape(repository), url.PathEscape(commit))
	body := cherryPickInput{Destination: input.Destination, Message: input.Message}

	var info changeInfo
	if err := c.send(ctx, http.MethodPost, path, body, &info); err != nil {
		return nil, err
	}
	change := info.toEntity()
	return &change, nil
}

// AddHashtags adds hashtags to a change.
func (c *Client) AddHashtags(ctx context.Context, number int, hashtags []string) error {
	return c.send(ctx, http.MethodPost, changePath(number, "/hashtags"), hashtagsInput{Add: hashtags}, nil)
}

// GetFileContent returns the base64 encoded content of a file on a branch.
func (c *Client) GetFileContent(ctx context.Context, repository, branch, path string) (string, error) {
	endpoint := fmt.Sprintf("a/projects/%s/branches/%s/files/%s/content",
		url.PathEscape(repository), url.PathEscape(branch), url.PathEscape(path))
	body, err := c.get(ctx, endpoint, true)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetCommitMsgHook downloads the server's commit-msg hook script.
func (c *Client) GetCommitMsgHook(ctx context.Context) ([]byte, error) {
	return c.get(ctx, commitMsgHookPath, true)
}

func changePath(number int, suffix string) string {
	return fmt.Sprintf("a/changes/%d%s", number, suffix)
}
