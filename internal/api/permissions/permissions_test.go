package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleOrdering(t *testing.T) {
	assert.True(t, RoleAdmin.AtLeast(RoleModerator))
	assert.True(t, RoleModerator.AtLeast(RoleUser))
	assert.False(t, RoleUser.AtLeast(RoleModerator))
	assert.True(t, RoleAdmin.AtLeast(RoleAdmin))

	assert.True(t, RoleAdmin.IsStaff())
	assert.True(t, RoleModerator.IsStaff())
	assert.False(t, RoleUser.IsStaff())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleModerator.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}

func TestResolveCollection(t *testing.T) {
	admin := Actor{ID: "a", Role: RoleAdmin, Authenticated: true}
	moderator := Actor{ID: "m", Role: RoleModerator, Authenticated: true}
	user := Actor{ID: "u", Role: RoleUser, Authenticated: true}

	tests := []struct {
		name   string
		actor  Actor
		method MethodClass
		kind   CollectionKind
		want   bool
	}{
		{"anonymous read catalog", Anonymous, Safe, Catalog, true},
		{"anonymous write catalog", Anonymous, Unsafe, Catalog, false},
		{"user write catalog", user, Unsafe, Catalog, false},
		{"moderator write catalog", moderator, Unsafe, Catalog, false},
		{"admin write catalog", admin, Unsafe, Catalog, true},
		{"anonymous read contribution", Anonymous, Safe, Contribution, true},
		{"anonymous write contribution", Anonymous, Unsafe, Contribution, false},
		{"user write contribution", user, Unsafe, Contribution, true},
		{"moderator write contribution", moderator, Unsafe, Contribution, true},
		{"admin write contribution", admin, Unsafe, Contribution, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveCollection(tt.actor, tt.method, tt.kind))
		})
	}
}

func TestResolveObject(t *testing.T) {
	owner := Actor{ID: "owner-1", Role: RoleUser, Authenticated: true}
	other := Actor{ID: "other-2", Role: RoleUser, Authenticated: true}
	moderator := Actor{ID: "mod-3", Role: RoleModerator, Authenticated: true}
	admin := Actor{ID: "adm-4", Role: RoleAdmin, Authenticated: true}

	tests := []struct {
		name   string
		actor  Actor
		method MethodClass
		want   bool
	}{
		{"owner deletes own", owner, Unsafe, true},
		{"non-owner deletes other's", other, Unsafe, false},
		{"moderator deletes other's", moderator, Unsafe, true},
		{"admin deletes other's", admin, Unsafe, true},
		{"anonymous deletes", Anonymous, Unsafe, false},
		{"anonymous reads", Anonymous, Safe, true},
		{"non-owner reads", other, Safe, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveObject(tt.actor, tt.method, "owner-1"))
		})
	}
}

// The resolver is a pure function: repeated calls with the same inputs
// must never change their answer.
func TestResolveIsDeterministic(t *testing.T) {
	actor := Actor{ID: "u", Role: RoleUser, Authenticated: true}
	first := ResolveCollection(actor, Unsafe, Catalog)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, ResolveCollection(actor, Unsafe, Catalog))
	}
}
