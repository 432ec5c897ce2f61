package entities

import "strings"

const (
	// OwnerSelf restricts a search to changes owned by the calling account.
	OwnerSelf = "self"

	termSeparator = "+"
)

// Filter is an ordered set of optional search terms. Empty terms are dropped
// when the query is composed.
type Filter struct {
	Owner   string
	Project string
	State   PRState
	Topic   string
	Hashtag string
	Label   string
	Branch  string
}

// ChangeQuery is a composed search: the query terms plus the detail flags
// requested for each returned change.
type ChangeQuery struct {
	Terms   []string
	Options []string
}

// String renders the query as the server expects it in the q parameter,
// before URL escaping.
func (q ChangeQuery) String() string {
	return strings.Join(q.Terms, termSeparator)
}

// SearchOptions are the detail flags requested on every search.
func SearchOptions() []string {
	return []string{"SUBMITTABLE", "CHECK", "CURRENT_ACTIONS", "CURRENT_REVISION"}
}

// DetailOptions are the detail flags requested on single-change fetches.
func DetailOptions() []string {
	return append(SearchOptions(), "MESSAGES", "DETAILED_ACCOUNTS", "LABELS")
}

// StateTerm maps a generic PR state onto its search predicate.
func StateTerm(state PRState) string {
	switch state {
	case PRStateOpen:
		return "status:open"
	case PRStateClosed:
		return "status:closed"
	case PRStateMerged:
		return "status:merged"
	case PRStateNotOpen:
		return "-status:open"
	case PRStateAll:
		return "-is:wip"
	default:
		return "-is:wip"
	}
}

// Terms returns the non-empty search terms in their fixed order.
func (f Filter) Terms() []string {
	terms := make([]string, 0, 7) //nolint:mnd // one slot per filter field
	terms = appendTerm(terms, "owner:", f.Owner)
	terms = appendTerm(terms, "project:", f.Project)
	terms = append(terms, StateTerm(f.State))
	terms = appendTerm(terms, "topic:", f.Topic)
	terms = appendTerm(terms, "hashtag:", f.Hashtag)
	terms = appendTerm(terms, "label:", f.Label)
	terms = appendTerm(terms, "branch:", f.Branch)
	return terms
}

// Query composes the filter with the standard search options.
func (f Filter) Query() ChangeQuery {
	return ChangeQuery{Terms: f.Terms(), Options: SearchOptions()}
}

func appendTerm(terms []string, prefix, value string) []string {
	if value == "" {
		return terms
	}
	return append(terms, prefix+value)
}
