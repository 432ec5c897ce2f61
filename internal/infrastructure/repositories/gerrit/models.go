package gerrit

import (
	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// projectInfo is the ProjectInfo entity of the REST API.
type projectInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Parent      string `json:"parent"`
	Description string `json:"description"`
	State       string `json:"state"`
}

type branchInfo struct {
	Ref      string `json:"ref"`
	Revision string `json:"revision"`
}

type accountInfo struct {
	AccountID int    `json:"_account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Username  string `json:"username"`
}

type labelInfo struct {
	Approved *accountInfo `json:"approved"`
	Rejected *accountInfo `json:"rejected"`
}

type revisionInfo struct {
	Number int    `json:"_number"`
	Ref    string `json:"ref"`
}

type problemInfo struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Outcome string `json:"outcome"`
}

// changeInfo is the ChangeInfo entity of the REST API.
type changeInfo struct {
	ID              string                   `json:"id"`
	ChangeID        string                   `json:"change_id"`
	Number          int                      `json:"_number"`
	Project         string                   `json:"project"`
	Branch          string                   `json:"branch"`
	Topic           string                   `json:"topic"`
	Hashtags        []string                 `json:"hashtags"`
	Subject         string                   `json:"subject"`
	Status          string                   `json:"status"`
	Submittable     bool                     `json:"submittable"`
	Problems        []problemInfo            `json:"problems"`
	Mergeable       *bool                    `json:"mergeable"`
	CurrentRevision string                   `json:"current_revision"`
	Revisions       map[string]revisionInfo  `json:"revisions"`
	Labels          map[string]labelInfo     `json:"labels"`
	Reviewers       map[string][]accountInfo `json:"reviewers"`
}

type changeMessageInfo struct {
	ID      string       `json:"id"`
	Author  *accountInfo `json:"author"`
	Message string       `json:"message"`
	Tag     string       `json:"tag"`
}

type reviewInput struct {
	Message string         `json:"message,omitempty"`
	Tag     string         `json:"tag,omitempty"`
	Labels  map[string]int `json:"labels,omitempty"`
}

type reviewerInput struct {
	Reviewer string `json:"reviewer"`
}

type assigneeInput struct {
	Assignee string `json:"assignee"`
}

type cherryPickInput struct {
	Destination string `json:"destination"`
	Message     string `json:"message,omitempty"`
}

type hashtagsInput struct {
	Add []string `json:"add"`
}

func (p projectInfo) toEntity() *entities.ProjectInfo {
	return &entities.ProjectInfo{
		ID:          p.ID,
		Name:        p.Name,
		Parent:      p.Parent,
		Description: p.Description,
		State:       p.State,
	}
}

func (a *accountInfo) toEntity() *entities.AccountInfo {
	if a == nil {
		return nil
	}
	return &entities.AccountInfo{
		AccountID: a.AccountID,
		Name:      a.Name,
		Email:     a.Email,
		Username:  a.Username,
	}
}

func (c changeInfo) toEntity() entities.Change {
	change := entities.Change{
		ChangeID:        c.ChangeID,
		Number:          c.Number,
		Project:         c.Project,
		Branch:          c.Branch,
		Topic:           c.Topic,
		Hashtags:        c.Hashtags,
		Subject:         c.Subject,
		Status:          entities.ChangeStatus(c.Status),
		Submittable:     c.Submittable,
		Mergeable:       c.Mergeable,
		CurrentRevision: c.CurrentRevision,
	}

	for _, problem := range c.Problems {
		change.Problems = append(change.Problems, entities.ProblemInfo(problem))
	}
	if c.Revisions != nil {
		change.Revisions = make(map[string]entities.RevisionInfo, len(c.Revisions))
		for sha, revision := range c.Revisions {
			change.Revisions[sha] = entities.RevisionInfo(revision)
		}
	}
	if c.Labels != nil {
		change.Labels = make(map[string]entities.LabelInfo, len(c.Labels))
		for name, label := range c.Labels {
			change.Labels[name] = entities.LabelInfo{
				Approved: label.Approved.toEntity(),
				Rejected: label.Rejected.toEntity(),
			}
		}
	}
	if c.Reviewers != nil {
		change.Reviewers = make(map[string][]entities.AccountInfo, len(c.Reviewers))
		for state, accounts := range c.Reviewers {
			mapped := make([]entities.AccountInfo, 0, len(accounts))
			for i := range accounts {
				mapped = append(mapped, *accounts[i].toEntity())
			}
			change.Reviewers[state] = mapped
		}
	}
	return change
}

func toChanges(infos []changeInfo) []entities.Change {
	changes := make([]entities.Change, 0, len(infos))
	for _, info := range infos {
		changes = append(changes, info.toEntity())
	}
	return changes
}
