package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serviceconnect/api/internal/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("secret", 30)

	token, exp, err := tm.GenerateToken("user-1", domain.RoleProvider)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.SubjectID())
	assert.Equal(t, domain.RoleProvider, claims.Role)
	assert.NotNil(t, claims.IssuedAt)
}

func TestParseTokenMissing(t *testing.T) {
	tm := NewTokenManager("secret", 30)

	for _, raw := range []string{"", "   "} {
		_, err := tm.ParseToken(raw)
		assert.ErrorIs(t, err, ErrMissingToken)
	}
}

func TestParseTokenExpired(t *testing.T) {
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("secret", 10)
	tm.now = fixedClock(issued)

	token, _, err := tm.GenerateToken("user-1", domain.RoleClient)
	require.NoError(t, err)

	tm.now = fixedClock(issued.Add(11 * time.Minute))
	_, err = tm.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 10).GenerateToken("user-1", domain.RoleClient)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 10).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenMalformed(t *testing.T) {
	tm := NewTokenManager("secret", 10)

	for _, raw := range []string{"not-a-jwt", "a.b.c", "Bearer"} {
		_, err := tm.ParseToken(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, raw)
	}
}

func TestParseTokenRejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{
		Role: domain.RoleClient,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", 10).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRequiresExpiryAndSubject(t *testing.T) {
	secret := []byte("secret")
	tm := NewTokenManager(string(secret), 10)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}).SignedString(secret)
	require.NoError(t, err)
	_, err = tm.ParseToken(noExp)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(secret)
	require.NoError(t, err)
	_, err = tm.ParseToken(noSub)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManagerDefaultsTTL(t *testing.T) {
	assert.Equal(t, time.Hour, NewTokenManager("s", 0).ttl)
}
