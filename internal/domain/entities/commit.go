package entities

// FileChange represents a file modification to be included in a commit.
type FileChange struct {
	Path     string
	Contents []byte
	Delete   bool
}

// CommitInput describes the local commit the VCS collaborator prepares.
type CommitInput struct {
	BranchName string   // local branch the commit is created on
	BaseRef    string   // branch or revision the commit is based on
	Files      []FileChange
	Message    []string // paragraphs, joined by a blank line
}

// CommitResult identifies a freshly prepared local commit.
type CommitResult struct {
	CommitSHA string
	ParentSHA string
}

// CommitFilesRequest asks the engine to materialize file changes as a
// change for the logical branch BranchName.
type CommitFilesRequest struct {
	BranchName   string
	BaseBranch   string
	TargetBranch string // cherry-pick destination; defaults to BaseBranch
	Files        []FileChange
	Message      []string
}
