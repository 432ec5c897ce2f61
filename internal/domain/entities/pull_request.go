package entities

// PRState is the generic pull-request state vocabulary of the host automation.
type PRState string

const (
	PRStateOpen    PRState = "open"
	PRStateClosed  PRState = "closed"
	PRStateMerged  PRState = "merged"
	PRStateNotOpen PRState = "!open"
	PRStateAll     PRState = "all"
)

// PullRequest is the generic projection of a Change. It is recomputed on
// every read and never cached.
type PullRequest struct {
	Number       int
	State        PRState
	SourceBranch string
	TargetBranch string
	Title        string
	HasReviewers bool
}

// MapChangeStatus converts a change status into the generic PR state.
func MapChangeStatus(status ChangeStatus) PRState {
	switch status {
	case ChangeStatusNew:
		return PRStateOpen
	case ChangeStatusMerged:
		return PRStateMerged
	case ChangeStatusAbandoned:
		return PRStateClosed
	default:
		return PRStateAll
	}
}

// NewPullRequestFromChange projects a change onto the generic PR vocabulary.
// Changes are single-branch, so source and target are the same branch.
func NewPullRequestFromChange(change Change) PullRequest {
	return PullRequest{
		Number:       change.Number,
		State:        MapChangeStatus(change.Status),
		SourceBranch: change.Branch,
		TargetBranch: change.Branch,
		Title:        change.Subject,
		HasReviewers: change.Reviewers != nil,
	}
}

// PullRequestRequest is either a CreateRequest or an UpdateRequest.
type PullRequestRequest interface {
	pullRequestRequest()
}

// CreateRequest asks for the change behind SourceBranch to be surfaced as a PR.
type CreateRequest struct {
	SourceBranch string
	TargetBranch string
	Title        string
	Body         string
	Labels       []string
}

// UpdateRequest updates the PR identified by Number.
type UpdateRequest struct {
	Number int
	Title  string
	Body   string
	State  PRState // PRStateClosed abandons the change; empty leaves it alone
}

func (CreateRequest) pullRequestRequest() {}
func (UpdateRequest) pullRequestRequest() {}
