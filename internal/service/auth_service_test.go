package service

import (
	"testing"

	"github.com/renktt/rresume/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(token.NewJWTManager("test-secret", 1), "admin", string(hash))
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestAuthService(t)

	accessToken, err := svc.Login("admin", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	// 签出的 token 可以被同一密钥验证
	claims, err := token.NewJWTManager("test-secret", 1).VerifyToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("root", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
