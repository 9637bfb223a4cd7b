package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Marco21c/backend-noticias/internal/config"
	"github.com/Marco21c/backend-noticias/internal/domain/user"
)

var ErrSuperadminPassword = errors.New("SUPERADMIN_PASSWORD is not configured")

type SuperadminStore interface {
	FindByRole(ctx context.Context, role user.Role) (user.User, error)
	Create(ctx context.Context, u user.User) (user.User, error)
	Delete(ctx context.Context, id string) (user.User, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type Superadmin struct {
	Email    string
	Password string
	Name     string
	LastName string
}

func SuperadminFromConfig(cfg config.Config) Superadmin {
	return Superadmin{
		Email:    cfg.SuperadminEmail,
		Password: cfg.SuperadminPassword,
		Name:     cfg.SuperadminName,
		LastName: cfg.SuperadminLastName,
	}
}

// EnsureSuperadmin creates the superadmin account unless one already exists.
// The boolean reports whether a new account was created.
func EnsureSuperadmin(ctx context.Context, store SuperadminStore, hasher PasswordHasher, sa Superadmin) (user.User, bool, error) {
	existing, err := store.FindByRole(ctx, user.RoleSuperadmin)
	if err == nil {
		return existing.Sanitized(), false, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return user.User{}, false, fmt.Errorf("looking up superadmin: %w", err)
	}

	if sa.Password == "" {
		return user.User{}, false, ErrSuperadminPassword
	}

	hash, err := hasher.Hash(sa.Password)
	if err != nil {
		return user.User{}, false, fmt.Errorf("hashing superadmin password: %w", err)
	}

	created, err := store.Create(ctx, user.User{
		Email:        user.NormalizeEmail(sa.Email),
		PasswordHash: hash,
		Role:         user.RoleSuperadmin,
		Name:         strings.TrimSpace(sa.Name),
		LastName:     strings.TrimSpace(sa.LastName),
	})
	if err != nil {
		return user.User{}, false, fmt.Errorf("creating superadmin: %w", err)
	}

	return created.Sanitized(), true, nil
}

// RemoveSuperadmin deletes the oldest superadmin, if any.
func RemoveSuperadmin(ctx context.Context, store SuperadminStore) (user.User, bool, error) {
	existing, err := store.FindByRole(ctx, user.RoleSuperadmin)
	if errors.Is(err, user.ErrNotFound) {
		return user.User{}, false, nil
	}
	if err != nil {
		return user.User{}, false, fmt.Errorf("looking up superadmin: %w", err)
	}

	deleted, err := store.Delete(ctx, existing.ID)
	if err != nil {
		return user.User{}, false, fmt.Errorf("deleting superadmin: %w", err)
	}
	return deleted.Sanitized(), true, nil
}
