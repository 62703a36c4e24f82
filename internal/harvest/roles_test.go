package harvest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantmind-br/githarvest-go/internal/domain"
)

func TestBuildRoleList(t *testing.T) {
	t.Parallel()

	identity := func(user string) string { return user }
	prefixed := func(user string) string { return "1" + user }

	tests := []struct {
		name     string
		repo     domain.Repository
		resolve  domain.RoleResolver
		expected []string
	}{
		{
			name:     "public repository gets the guest role only",
			repo:     domain.Repository{Owner: "carol", Private: false, Collaborators: []string{"alice"}},
			resolve:  identity,
			expected: []string{domain.GuestRole},
		},
		{
			name:     "private repository gets collaborators then owner",
			repo:     domain.Repository{Owner: "carol", Private: true, Collaborators: []string{"alice", "bob"}},
			resolve:  identity,
			expected: []string{"alice", "bob", "carol"},
		},
		{
			name:     "private repository without collaborator data gets the owner",
			repo:     domain.Repository{Owner: "carol", Private: true},
			resolve:  identity,
			expected: []string{"carol"},
		},
		{
			name:     "every user goes through the resolver",
			repo:     domain.Repository{Owner: "carol", Private: true, Collaborators: []string{"alice"}},
			resolve:  prefixed,
			expected: []string{"1alice", "1carol"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, BuildRoleList(tt.repo, tt.resolve))
		})
	}
}

func TestBuildRoleListDoesNotMutateRepository(t *testing.T) {
	t.Parallel()

	collaborators := []string{"alice", "bob"}
	repo := domain.Repository{Owner: "carol", Private: true, Collaborators: collaborators}

	BuildRoleList(repo, func(user string) string { return user })

	assert.Equal(t, []string{"alice", "bob"}, collaborators)
}
