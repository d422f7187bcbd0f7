package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bkpsdm/asn-monitor-api/pkg/config"
	appErrors "github.com/bkpsdm/asn-monitor-api/pkg/errors"
)

func authTestConfig() config.AuthConfig {
	return config.AuthConfig{
		Enabled:       true,
		AdminUsername: "admin",
		AdminPassword: "123456",
		JWTSecret:     "test_secret",
		TokenExpiry:   time.Hour,
		Issuer:        "asn-monitor-api",
	}
}

func TestAuthLoginAndValidate(t *testing.T) {
	svc := NewAuthService(authTestConfig(), nil, nil)

	resp, err := svc.Login(LoginRequest{Username: "admin", Password: "123456"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(authTestConfig(), nil, nil)

	_, err := svc.Login(LoginRequest{Username: "admin", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthLoginBcryptHashPreferred(t *testing.T) {
	cfg := authTestConfig()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg.AdminPasswordHash = string(hash)
	svc := NewAuthService(cfg, nil, nil)

	_, err = svc.Login(LoginRequest{Username: "admin", Password: "123456"})
	assert.Error(t, err, "plaintext fallback is ignored when a hash is set")

	resp, err := svc.Login(LoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthLoginMissingFields(t *testing.T) {
	svc := NewAuthService(authTestConfig(), nil, nil)

	_, err := svc.Login(LoginRequest{Username: "admin"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthValidateGarbageToken(t *testing.T) {
	svc := NewAuthService(authTestConfig(), nil, nil)

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
