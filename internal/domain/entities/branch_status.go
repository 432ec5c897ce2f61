package entities

// BranchStatus is the traffic-light summary of all changes behind a branch.
type BranchStatus string

const (
	BranchStatusGreen  BranchStatus = "green"
	BranchStatusYellow BranchStatus = "yellow"
	BranchStatusRed    BranchStatus = "red"
)

// AggregateBranchStatus combines the open changes of one logical branch:
// no changes is yellow (the search index may lag behind a fresh push),
// all submittable is green, any reported problem is red, anything else yellow.
func AggregateBranchStatus(changes []Change) BranchStatus {
	if len(changes) == 0 {
		return BranchStatusYellow
	}

	allSubmittable := true
	hasProblems := false
	for _, change := range changes {
		if !change.Submittable {
			allSubmittable = false
		}
		if len(change.Problems) > 0 {
			hasProblems = true
		}
	}

	if allSubmittable {
		return BranchStatusGreen
	}
	if hasProblems {
		return BranchStatusRed
	}
	return BranchStatusYellow
}
