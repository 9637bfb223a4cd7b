package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Marco21c/backend-noticias/internal/apperr"
	"github.com/Marco21c/backend-noticias/internal/domain/user"
	"github.com/Marco21c/backend-noticias/internal/policy"
)

type UserService struct {
	store  UserStore
	hasher PasswordHasher
}

func NewUserService(store UserStore, hasher PasswordHasher) *UserService {
	return &UserService{store: store, hasher: hasher}
}

// Create registers a user on behalf of an administrator. The superadmin role is never accepted.
func (s *UserService) Create(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	role := req.Role
	if role == "" {
		role = user.RoleUser
	}
	if role == user.RoleSuperadmin {
		return user.User{}, user.ErrForbiddenRole
	}

	return s.register(ctx, user.User{
		Email:    req.Email,
		Role:     role,
		Name:     req.Name,
		LastName: req.LastName,
	}, req.Password)
}

// SignUp is self-service registration; the role is always user.
func (s *UserService) SignUp(ctx context.Context, req user.SignUpRequest) (user.User, error) {
	return s.register(ctx, user.User{
		Email:    req.Email,
		Role:     user.RoleUser,
		Name:     req.Name,
		LastName: req.LastName,
	}, req.Password)
}

func (s *UserService) register(ctx context.Context, u user.User, password string) (user.User, error) {
	u.Email = user.NormalizeEmail(u.Email)
	u.Name = strings.TrimSpace(u.Name)
	u.LastName = strings.TrimSpace(u.LastName)

	if err := s.ensureEmailFree(ctx, u.Email, ""); err != nil {
		return user.User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return user.User{}, fmt.Errorf("hashing password: %w", err)
	}
	u.PasswordHash = hash

	created, err := s.store.Create(ctx, u)
	if err != nil {
		return user.User{}, err
	}
	return created.Sanitized(), nil
}

// Update applies a partial change. Callers without ManageUsers may only edit
// their own record and may not change their role.
func (s *UserService) Update(ctx context.Context, actor user.User, id string, req user.UpdateUserRequest) (user.User, error) {
	if !policy.CanEditUser(actor, id) {
		return user.User{}, apperr.ErrForbidden
	}

	var p user.Patch

	if req.Role != nil {
		if *req.Role == user.RoleSuperadmin {
			return user.User{}, user.ErrForbiddenRole
		}
		if !policy.CanAssignRole(actor, *req.Role) {
			return user.User{}, apperr.ErrForbidden
		}
		p.Role = req.Role
	}

	if req.Email != nil {
		email := user.NormalizeEmail(*req.Email)
		if err := s.ensureEmailFree(ctx, email, id); err != nil {
			return user.User{}, err
		}
		p.Email = &email
	}

	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return user.User{}, fmt.Errorf("hashing password: %w", err)
		}
		p.PasswordHash = &hash
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		p.Name = &name
	}
	if req.LastName != nil {
		lastName := strings.TrimSpace(*req.LastName)
		p.LastName = &lastName
	}

	updated, err := s.store.Update(ctx, id, p)
	if err != nil {
		return user.User{}, err
	}
	return updated.Sanitized(), nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (user.User, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	return u.Sanitized(), nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, err := s.store.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		return user.User{}, err
	}
	return u.Sanitized(), nil
}

func (s *UserService) List(ctx context.Context) ([]user.User, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

func (s *UserService) Delete(ctx context.Context, id string) (user.User, error) {
	u, err := s.store.Delete(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	return u.Sanitized(), nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email, exceptID string) error {
	existing, err := s.store.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, user.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("checking email: %w", err)
	case existing.ID == exceptID:
		return nil
	default:
		return user.ErrEmailDuplicate
	}
}
