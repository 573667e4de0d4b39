package security

import (
	"Pulse/internal/api/config"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateToken(t *testing.T) {
	Init(config.AuthConfig{Secret: "test-secret", Issuer: "https://auth.test/"})

	token, err := GenerateToken("user_123", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user_123", claims.Subject)
}

func TestValidateToken_Rejects(t *testing.T) {
	Init(config.AuthConfig{Secret: "test-secret", Issuer: "https://auth.test/"})

	expired, err := GenerateToken("user_123", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(expired)
	assert.Error(t, err)

	noSubject, err := GenerateToken("", time.Hour)
	require.NoError(t, err)
	_, err = ValidateToken(noSubject)
	assert.Error(t, err)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, &SubjectClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user_123",
		Issuer:    "https://evil.test/",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	wrongIssuer, err := other.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = ValidateToken(wrongIssuer)
	assert.Error(t, err)

	Init(config.AuthConfig{Secret: "rotated", Issuer: "https://auth.test/"})
	_, err = ValidateToken(wrongIssuer)
	assert.Error(t, err)

	_, err = ValidateToken("not.a.token")
	assert.Error(t, err)
}
