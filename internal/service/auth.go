package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Marco21c/backend-noticias/internal/auth"
	"github.com/Marco21c/backend-noticias/internal/domain/user"
	"github.com/Marco21c/backend-noticias/internal/security"
)

// Session is what a successful login or signup hands back to the client.
type Session struct {
	User  user.User `json:"user"`
	Token string    `json:"token"`
}

type AuthService struct {
	users  UserStore
	hasher PasswordHasher
	tokens TokenManager
	signup *UserService

	decoyOnce sync.Once
	decoy     string
}

func NewAuthService(users UserStore, hasher PasswordHasher, tokens TokenManager) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		signup: NewUserService(users, hasher),
	}
}

// Login reports the same INVALID_CREDENTIALS error for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	u, err := s.users.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// spend the same bcrypt work as a real account
			_ = s.hasher.Compare(s.decoyHash(), password)
			return Session{}, user.ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("loading user: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		if errors.Is(err, security.ErrMismatch) {
			return Session{}, user.ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("comparing password: %w", err)
	}

	return s.issue(u)
}

// decoyHash is hashed with the configured hasher so its cost matches stored passwords.
func (s *AuthService) decoyHash() string {
	s.decoyOnce.Do(func() {
		s.decoy, _ = s.hasher.Hash("decoy-password-for-unknown-accounts")
	})
	return s.decoy
}

func (s *AuthService) SignUp(ctx context.Context, req user.SignUpRequest) (Session, error) {
	u, err := s.signup.SignUp(ctx, req)
	if err != nil {
		return Session{}, err
	}
	return s.issue(u)
}

// Authenticate verifies a bearer token and reloads its user, so deleted
// accounts and role changes take effect on the next request.
func (s *AuthService) Authenticate(ctx context.Context, token string) (user.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return user.User{}, err
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, auth.ErrTokenInvalid
		}
		return user.User{}, fmt.Errorf("loading token user: %w", err)
	}
	return u.Sanitized(), nil
}

func (s *AuthService) issue(u user.User) (Session, error) {
	token, err := s.tokens.Sign(auth.Identity{
		UserID:   u.ID,
		Role:     string(u.Role),
		Email:    u.Email,
		Name:     u.Name,
		LastName: u.LastName,
	})
	if err != nil {
		return Session{}, err
	}
	return Session{User: u.Sanitized(), Token: token}, nil
}
