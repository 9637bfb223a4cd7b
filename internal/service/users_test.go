package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marco21c/backend-noticias/internal/apperr"
	"github.com/Marco21c/backend-noticias/internal/domain/user"
	"github.com/Marco21c/backend-noticias/internal/utils"
)

func TestUserService_CreateDefaultsAndSanitizes(t *testing.T) {
	f := newFixture(t)

	u, err := f.userSvc.Create(context.Background(), user.CreateUserRequest{
		Email:    "  Ana@Example.COM ",
		Password: strongPassword,
		Name:     "Ana",
		LastName: "Lopez",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, user.RoleUser, u.Role)
	assert.Empty(t, u.PasswordHash)

	stored, err := f.users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NoError(t, f.hasher.Compare(stored.PasswordHash, strongPassword))
}

func TestUserService_CreateRejectsSuperadmin(t *testing.T) {
	f := newFixture(t)

	_, err := f.userSvc.Create(context.Background(), user.CreateUserRequest{
		Email:    "root@example.com",
		Password: strongPassword,
		Role:     user.RoleSuperadmin,
		Name:     "Root",
		LastName: "User",
	})
	assert.ErrorIs(t, err, user.ErrForbiddenRole)
}

func TestUserService_CreateDuplicateEmailIgnoresCase(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "ana@example.com", user.RoleUser)

	_, err := f.userSvc.Create(context.Background(), user.CreateUserRequest{
		Email:    "ANA@example.com",
		Password: strongPassword,
		Name:     "Ana",
		LastName: "Lopez",
	})
	assert.ErrorIs(t, err, user.ErrEmailDuplicate)
}

func TestUserService_UpdateOwnEmailIsNotDuplicate(t *testing.T) {
	f := newFixture(t)
	admin := f.createUser(t, "admin@example.com", user.RoleAdmin)
	target := f.createUser(t, "ana@example.com", user.RoleUser)

	updated, err := f.userSvc.Update(context.Background(), admin, target.ID, user.UpdateUserRequest{
		Email: ptr("ANA@example.com"),
		Name:  ptr(" Anita "),
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", updated.Email)
	assert.Equal(t, "Anita", updated.Name)
	assert.Equal(t, "User", updated.LastName)
}

func TestUserService_UpdateTakenEmail(t *testing.T) {
	f := newFixture(t)
	admin := f.createUser(t, "admin@example.com", user.RoleAdmin)
	target := f.createUser(t, "ana@example.com", user.RoleUser)

	_, err := f.userSvc.Update(context.Background(), admin, target.ID, user.UpdateUserRequest{
		Email: ptr("Admin@Example.com"),
	})
	assert.ErrorIs(t, err, user.ErrEmailDuplicate)
}

func TestUserService_UpdateRehashesOnlyWhenPasswordGiven(t *testing.T) {
	f := newFixture(t)
	admin := f.createUser(t, "admin@example.com", user.RoleAdmin)
	target := f.createUser(t, "ana@example.com", user.RoleUser)

	before, err := f.users.GetByID(context.Background(), target.ID)
	require.NoError(t, err)

	_, err = f.userSvc.Update(context.Background(), admin, target.ID, user.UpdateUserRequest{Name: ptr("Ana")})
	require.NoError(t, err)
	unchanged, err := f.users.GetByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, unchanged.PasswordHash)

	_, err = f.userSvc.Update(context.Background(), admin, target.ID, user.UpdateUserRequest{Password: ptr("N3w!Password")})
	require.NoError(t, err)
	changed, err := f.users.GetByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.NoError(t, f.hasher.Compare(changed.PasswordHash, "N3w!Password"))
}

func TestUserService_UpdateRoleRules(t *testing.T) {
	f := newFixture(t)
	admin := f.createUser(t, "admin@example.com", user.RoleAdmin)
	editor := f.createUser(t, "editor@example.com", user.RoleEditor)
	other := f.createUser(t, "other@example.com", user.RoleUser)

	_, err := f.userSvc.Update(context.Background(), admin, editor.ID, user.UpdateUserRequest{Role: ptr(user.RoleSuperadmin)})
	assert.ErrorIs(t, err, user.ErrForbiddenRole)

	promoted, err := f.userSvc.Update(context.Background(), admin, other.ID, user.UpdateUserRequest{Role: ptr(user.RoleEditor)})
	require.NoError(t, err)
	assert.Equal(t, user.RoleEditor, promoted.Role)

	_, err = f.userSvc.Update(context.Background(), editor, editor.ID, user.UpdateUserRequest{Role: ptr(user.RoleAdmin)})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.userSvc.Update(context.Background(), editor, admin.ID, user.UpdateUserRequest{Name: ptr("Nope")})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	self, err := f.userSvc.Update(context.Background(), editor, editor.ID, user.UpdateUserRequest{Name: ptr("Edith")})
	require.NoError(t, err)
	assert.Equal(t, "Edith", self.Name)
}

func TestUserService_DeleteUnknownID(t *testing.T) {
	f := newFixture(t)

	_, err := f.userSvc.Delete(context.Background(), utils.NewID())
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestUserService_DeleteReturnsSanitizedRecord(t *testing.T) {
	f := newFixture(t)
	target := f.createUser(t, "ana@example.com", user.RoleUser)

	deleted, err := f.userSvc.Delete(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, target.ID, deleted.ID)
	assert.Empty(t, deleted.PasswordHash)

	_, err = f.userSvc.GetByID(context.Background(), target.ID)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestUserService_GetByEmailNormalizes(t *testing.T) {
	f := newFixture(t)
	target := f.createUser(t, "ana@example.com", user.RoleUser)

	got, err := f.userSvc.GetByEmail(context.Background(), " ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, target.ID, got.ID)
	assert.Empty(t, got.PasswordHash)
}
