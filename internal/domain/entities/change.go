package entities

// ChangeStatus is the server-side lifecycle state of a change.
type ChangeStatus string

const (
	ChangeStatusNew       ChangeStatus = "NEW"
	ChangeStatusMerged    ChangeStatus = "MERGED"
	ChangeStatusAbandoned ChangeStatus = "ABANDONED"
)

// CodeReviewLabel is the label used for the default approval action.
const CodeReviewLabel = "Code-Review"

// AccountInfo identifies a user account on the review server.
type AccountInfo struct {
	AccountID int
	Name      string
	Email     string
	Username  string
}

// LabelInfo describes the voting state of a single label on a change.
// A nil Approved means the label has not been approved yet.
type LabelInfo struct {
	Approved *AccountInfo
	Rejected *AccountInfo
}

// RevisionInfo is one immutable patch-set of a change.
type RevisionInfo struct {
	Number int
	Ref    string // fetchable refspec, e.g. refs/changes/34/1234/2
}

// ProblemInfo is a consistency problem reported by the CHECK option.
type ProblemInfo struct {
	Message string
	Status  string
	Outcome string
}

// Change is one logical commit tracked through multiple revisions.
type Change struct {
	ChangeID        string // stable Change-Id trailer value
	Number          int    // server-assigned _number
	Project         string
	Branch          string
	Topic           string
	Hashtags        []string
	Subject         string
	Status          ChangeStatus
	Submittable     bool
	Problems        []ProblemInfo
	Mergeable       *bool // nil when the server did not compute it
	CurrentRevision string
	Revisions       map[string]RevisionInfo
	Labels          map[string]LabelInfo
	Reviewers       map[string][]AccountInfo // nil when the field was absent
}

// CurrentRevisionInfo returns the revision pointed to by CurrentRevision.
func (c Change) CurrentRevisionInfo() (RevisionInfo, bool) {
	if c.CurrentRevision == "" || c.Revisions == nil {
		return RevisionInfo{}, false
	}
	rev, ok := c.Revisions[c.CurrentRevision]
	return rev, ok
}

// Label returns the named label. The second value is false when the label
// is not configured for the change's project.
func (c Change) Label(name string) (LabelInfo, bool) {
	if c.Labels == nil {
		return LabelInfo{}, false
	}
	label, ok := c.Labels[name]
	return label, ok
}

// IsMergeableKnownFalse reports whether the server explicitly flagged the
// change as not mergeable.
func (c Change) IsMergeableKnownFalse() bool {
	return c.Mergeable != nil && !*c.Mergeable
}

// ChangeMessage is a message posted on a change.
type ChangeMessage struct {
	ID      string
	Message string
	Tag     string
	Author  *AccountInfo
}

// ReviewInput is the body of a review post on the current revision.
type ReviewInput struct {
	Message string
	Tag     string
	Labels  map[string]int
}

// CherryPickInput is the body of a cherry-pick request.
type CherryPickInput struct {
	Destination string
	Message     string
}
