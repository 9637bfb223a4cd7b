// Package policy is the single place where roles are mapped to capabilities.
// Handlers and middlewares ask for an Action; they never compare role strings.
package policy

import "github.com/Marco21c/backend-noticias/internal/domain/user"

type Action string

const (
	ManageUsers      Action = "users:manage"
	ManageCategories Action = "categories:manage"
	WriteNews        Action = "news:write"
)

var grants = map[Action][]user.Role{
	ManageUsers:      {user.RoleSuperadmin, user.RoleAdmin},
	ManageCategories: {user.RoleSuperadmin, user.RoleAdmin},
	WriteNews:        {user.RoleSuperadmin, user.RoleAdmin, user.RoleEditor},
}

// Allowed reports whether role may perform action. Unknown actions are denied.
func Allowed(role user.Role, action Action) bool {
	for _, r := range grants[action] {
		if r == role {
			return true
		}
	}
	return false
}

// Roles returns a copy of the roles granted action.
func Roles(action Action) []user.Role {
	roles := grants[action]
	out := make([]user.Role, len(roles))
	copy(out, roles)
	return out
}

// CanEditUser lets admins edit anyone and everyone else edit only themselves.
func CanEditUser(actor user.User, targetID string) bool {
	return Allowed(actor.Role, ManageUsers) || actor.ID == targetID
}

// CanAssignRole rejects superadmin outright; other roles need ManageUsers unless
// the actor is keeping their current role.
func CanAssignRole(actor user.User, role user.Role) bool {
	if role == user.RoleSuperadmin {
		return false
	}
	return Allowed(actor.Role, ManageUsers) || actor.Role == role
}
