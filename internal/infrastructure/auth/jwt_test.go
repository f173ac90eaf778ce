package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lawai/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                "lawai-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()

	issued, err := svc.GenerateAccessToken("user-1", "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bearer", issued.TokenType)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), issued.ExpiresAt, time.Minute)

	claims, err := svc.ValidateAccessToken(issued.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, "lawai-test", claims.Issuer)
	assert.Greater(t, claims.GetRemainingTTL(), 6*24*time.Hour)
}

func TestJWTService_UniqueTokenIDs(t *testing.T) {
	svc := newTestJWTService()

	a, err := svc.GenerateAccessToken("user-1", "")
	require.NoError(t, err)
	b, err := svc.GenerateAccessToken("user-1", "")
	require.NoError(t, err)

	ca, err := svc.ValidateAccessToken(a.AccessToken)
	require.NoError(t, err)
	cb, err := svc.ValidateAccessToken(b.AccessToken)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestJWTService_RequiresSubject(t *testing.T) {
	_, err := newTestJWTService().GenerateAccessToken("", "x@y.z")
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestJWTService()
	svc.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	issued, err := svc.GenerateAccessToken("user-1", "")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateAccessToken(issued.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issued, err := newTestJWTService().GenerateAccessToken("user-1", "")
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{Secret: "another-secret-another-secret-xx", AccessTokenExpiration: time.Hour})
	_, err = other.ValidateAccessToken(issued.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ID:        "x",
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestJWTService().ValidateAccessToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_GarbageToken(t *testing.T) {
	_, err := newTestJWTService().ValidateAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
