package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metroconnect/metroconnect/internal/auth"
)

const testKey = "test-secret-key-for-testing-only"

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{
		SigningKey: testKey,
		Issuer:     "https://auth.metroconnect.in/auth/v1",
	})

	token, expiresAt, err := svc.GenerateAccessToken("3f2c9a1e-user", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "3f2c9a1e-user", claims.UserID())
	assert.Equal(t, "https://auth.metroconnect.in/auth/v1", claims.Issuer)
	assert.Contains(t, claims.Audience, auth.DefaultAudience)

	userID, err := svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, "3f2c9a1e-user", userID)
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{SigningKey: testKey})

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"malformed token", "not.a.valid.jwt"},
		{"invalid base64", "xxx.yyy.zzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, auth.ErrInvalidAccessToken)
		})
	}
}

func TestJWTService_Expired(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{SigningKey: testKey})

	token, _, err := svc.GenerateAccessToken("user-1", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, auth.ErrAccessTokenExpired)
}

func TestJWTService_WrongSigningKey(t *testing.T) {
	issuer := auth.NewJWTService(auth.JWTConfig{SigningKey: "key-one"})
	token, _, err := issuer.GenerateAccessToken("user-1", time.Hour)
	require.NoError(t, err)

	verifier := auth.NewJWTService(auth.JWTConfig{SigningKey: "key-two"})
	_, err = verifier.ValidateAccessToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidAccessToken)
}

func TestJWTService_IssuerCheckedWhenConfigured(t *testing.T) {
	issuer := auth.NewJWTService(auth.JWTConfig{SigningKey: testKey, Issuer: "issuer-one"})
	token, _, err := issuer.GenerateAccessToken("user-1", time.Hour)
	require.NoError(t, err)

	strict := auth.NewJWTService(auth.JWTConfig{SigningKey: testKey, Issuer: "issuer-two"})
	_, err = strict.ValidateAccessToken(token)
	assert.Error(t, err)

	lenient := auth.NewJWTService(auth.JWTConfig{SigningKey: testKey})
	_, err = lenient.ValidateAccessToken(token)
	assert.NoError(t, err)
}

func TestJWTService_WrongAudience(t *testing.T) {
	issuer := auth.NewJWTService(auth.JWTConfig{SigningKey: testKey, Audience: "service_role"})
	token, _, err := issuer.GenerateAccessToken("user-1", time.Hour)
	require.NoError(t, err)

	verifier := auth.NewJWTService(auth.JWTConfig{SigningKey: testKey})
	_, err = verifier.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_MissingSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Audience:  jwt.ClaimStrings{auth.DefaultAudience},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	require.NoError(t, err)

	svc := auth.NewJWTService(auth.JWTConfig{SigningKey: testKey})
	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, auth.ErrMissingSubject)
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		Audience:  jwt.ClaimStrings{auth.DefaultAudience},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	svc := auth.NewJWTService(auth.JWTConfig{SigningKey: testKey})
	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidAccessToken)
}
