// Package policy holds the stateless authorization predicates consulted by
// the service layer before disclosing or mutating project data. Existence is
// always checked before these run: a missing project is NotFound, an existing
// project the caller fails these checks on is Forbidden.
package policy

import "github.com/ryoptimus/DevStorm-backend/internal/models"

// IsOwner reports whether username owns the project.
func IsOwner(username string, p *models.Project) bool {
	return p.Owner == username
}

// IsCollaborator reports whether username occupies a collaborator slot.
func IsCollaborator(username string, p *models.Project) bool {
	return p.HasCollaborator(username)
}

// CanView grants read access to the owner and listed collaborators.
func CanView(username string, p *models.Project) bool {
	return IsOwner(username, p) || IsCollaborator(username, p)
}

// CanMutate grants write access to the owner only. Collaborators have read
// access and nothing more.
func CanMutate(username string, p *models.Project) bool {
	return IsOwner(username, p)
}
