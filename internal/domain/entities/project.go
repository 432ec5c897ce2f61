package entities

import (
	gitforgeEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
)

// ProjectStateActive is the only project state the engine operates on.
const ProjectStateActive = "ACTIVE"

// ProjectInfo describes a project (repository) hosted on the review server.
type ProjectInfo struct {
	ID          string
	Name        string
	Parent      string
	Description string
	State       string
}

// BranchInfo describes a branch of a project.
type BranchInfo struct {
	Ref      string
	Revision string
}

// Repository is re-exported from gitforge.
type Repository = gitforgeEntities.Repository

// ProviderName identifies the review server in the Repository entity.
const ProviderName = "gerrit"

// RepoContext is the per-repository state produced by repository
// initialization and passed explicitly into every engine call.
type RepoContext struct {
	Repository string
	Head       string // revision of the project's HEAD branch
	Project    ProjectInfo
	LocalDir   string
	Remote     Repository
}

// NewRepositoryFromProject describes a project in the provider-neutral
// Repository vocabulary.
func NewRepositoryFromProject(project ProjectInfo, headRef, cloneURL string) Repository {
	return Repository{
		ID:            project.ID,
		Name:          project.Name,
		DefaultBranch: headRef,
		RemoteURL:     cloneURL,
		ProviderName:  ProviderName,
	}
}
