package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentity = Identity{
	UserID:   "64b7f0c2a1b2c3d4e5f60718",
	Role:     "editor",
	Email:    "ana@example.com",
	Name:     "Ana",
	LastName: "Lopez",
}

func TestSignAndVerify_RoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Sign(testIdentity)
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, testIdentity, claims.Identity())
	assert.Equal(t, testIdentity.UserID, claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestSign_FailsClosedWithoutSecret(t *testing.T) {
	m := NewManager("", time.Hour)

	_, err := m.Sign(testIdentity)
	assert.ErrorIs(t, err, ErrSecretMissing)
}

func TestVerify_NonPositiveTTLIsExpired(t *testing.T) {
	for _, ttl := range []time.Duration{0, -time.Minute} {
		m := NewManager("test-secret", ttl)

		token, err := m.Sign(testIdentity)
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, ErrTokenExpired, "ttl %s", ttl)
		assert.False(t, errors.Is(err, ErrTokenInvalid))
	}
}

func TestVerify_ExpiredAfterClockMoves(t *testing.T) {
	m := NewManager("test-secret", time.Minute)

	token, err := m.Sign(testIdentity)
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_WrongSecretIsInvalid(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Sign(testIdentity)
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_GarbageIsInvalid(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, err := m.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = m.Verify("")
	assert.ErrorIs(t, err, ErrTokenMissing)
}

func TestVerify_RejectsNonHMAC(t *testing.T) {
	claims := Claims{
		UserID: testIdentity.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewManager("test-secret", time.Hour).Verify(unsigned)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
