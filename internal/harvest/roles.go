package harvest

import (
	"slices"

	"github.com/quantmind-br/githarvest-go/internal/domain"
)

// BuildRoleList derives the access-control roles attached to every record of
// one repository. Public repositories get the single guest role. Private
// repositories get the collaborator list with the owner appended, each
// mapped through the resolver; a private repository without collaborator
// data is treated as having none rather than erroring.
func BuildRoleList(repo domain.Repository, resolve domain.RoleResolver) []string {
	if !repo.Private {
		return []string{domain.GuestRole}
	}

	users := slices.Clone(repo.Collaborators)
	users = append(users, repo.Owner)

	roles := make([]string, 0, len(users))
	for _, user := range users {
		roles = append(roles, resolve(user))
	}
	return roles
}
