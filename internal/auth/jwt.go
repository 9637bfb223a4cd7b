package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Marco21c/backend-noticias/internal/apperr"
)

var (
	ErrSecretMissing = apperr.New(apperr.KindMisconfigured, "JWT_SECRET_MISSING", "token signing secret is not configured")
	ErrTokenMissing  = apperr.New(apperr.KindUnauthenticated, "TOKEN_MISSING", "authorization token is required")
	ErrTokenExpired  = apperr.New(apperr.KindUnauthenticated, "TOKEN_EXPIRED", "token has expired")
	ErrTokenInvalid  = apperr.New(apperr.KindUnauthenticated, "TOKEN_INVALID", "token is invalid")
)

// Identity is what a token says about its bearer.
type Identity struct {
	UserID   string
	Role     string
	Email    string
	Name     string
	LastName string
}

type Claims struct {
	UserID   string `json:"id"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() Identity {
	return Identity{
		UserID:   c.UserID,
		Role:     c.Role,
		Email:    c.Email,
		Name:     c.Name,
		LastName: c.LastName,
	}
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Sign issues an HS256 token for id. It fails closed when no secret is configured.
func (m *Manager) Sign(id Identity) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrSecretMissing
	}

	now := m.now().UTC()

	claims := Claims{
		UserID:   id.UserID,
		Role:     id.Role,
		Email:    id.Email,
		Name:     id.Name,
		LastName: id.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", apperr.ErrInternal.Wrap(err)
	}
	return signed, nil
}

// Verify parses tokenStr and reports TOKEN_EXPIRED separately from every other failure.
func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	if len(m.secret) == 0 {
		return nil, ErrSecretMissing
	}
	if tokenStr == "" {
		return nil, ErrTokenMissing
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired.Wrap(err)
		}
		return nil, ErrTokenInvalid.Wrap(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
