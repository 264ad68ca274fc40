package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortune-cookies-ai/fc-backend/internal/api/middleware"
)

func generateKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	pubPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubDER,
	})
	return key, string(pubPEM)
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.RegisteredClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestAuthenticate_APIKey(t *testing.T) {
	cfg := middleware.AuthConfig{APIKeys: []string{"key-one", "key-two"}}

	result := middleware.Authenticate("ApiKey key-two", cfg)

	assert.True(t, result.Success)
	assert.Equal(t, "apikey", result.AuthType)
}

func TestAuthenticate_UnknownAPIKey(t *testing.T) {
	cfg := middleware.AuthConfig{APIKeys: []string{"key-one"}}

	result := middleware.Authenticate("ApiKey wrong", cfg)

	assert.False(t, result.Success)
	assert.ErrorContains(t, result.Error, "invalid API key")
}

func TestAuthenticate_ValidJWT(t *testing.T) {
	key, pubPEM := generateKeyPair(t)
	cfg := middleware.AuthConfig{JWTPublicKey: pubPEM}

	token := signToken(t, key, jwt.RegisteredClaims{
		Subject:   "did:example:alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	result := middleware.Authenticate("Bearer "+token, cfg)

	assert.True(t, result.Success)
	assert.Equal(t, "jwt", result.AuthType)
	assert.Equal(t, "did:example:alice", result.AuthSubject)
	require.NotNil(t, result.Claims)
	assert.Equal(t, "did:example:alice", result.Claims.Subject)
}

func TestAuthenticate_ExpiredJWT(t *testing.T) {
	key, pubPEM := generateKeyPair(t)
	cfg := middleware.AuthConfig{JWTPublicKey: pubPEM}

	token := signToken(t, key, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})

	result := middleware.Authenticate("Bearer "+token, cfg)

	assert.False(t, result.Success)
	assert.Error(t, result.Error)
}

func TestAuthenticate_WrongKeyJWT(t *testing.T) {
	key, _ := generateKeyPair(t)
	_, otherPub := generateKeyPair(t)
	cfg := middleware.AuthConfig{JWTPublicKey: otherPub}

	token := signToken(t, key, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	result := middleware.Authenticate("Bearer "+token, cfg)

	assert.False(t, result.Success)
}

func TestAuthenticate_NoPublicKeyConfigured(t *testing.T) {
	key, _ := generateKeyPair(t)
	cfg := middleware.AuthConfig{}

	token := signToken(t, key, jwt.RegisteredClaims{})

	result := middleware.Authenticate("Bearer "+token, cfg)

	assert.False(t, result.Success)
	assert.ErrorContains(t, result.Error, "JWT public key not configured")
}

func TestAuthenticate_MalformedHeaders(t *testing.T) {
	cfg := middleware.AuthConfig{APIKeys: []string{"key-one"}}

	for _, header := range []string{"", "key-one", "Basic dXNlcjpwYXNz"} {
		result := middleware.Authenticate(header, cfg)
		assert.False(t, result.Success, "header %q should fail", header)
		assert.Error(t, result.Error)
	}
}
