package service

import (
	"errors"

	"github.com/renktt/rresume/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials 表示用户名或密码不正确。
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService 负责管理后台的登录鉴权。
type AuthService interface {
	// Login 校验管理员凭据并签发访问令牌。
	Login(username, password string) (string, error)
}

type authService struct {
	jwtManager   *token.JWTManager
	adminUser    string
	passwordHash string
}

// NewAuthService 创建一个新的 AuthService 实例。
// passwordHash 是管理员密码的 bcrypt 哈希，来自配置文件。
func NewAuthService(jwtManager *token.JWTManager, adminUser, passwordHash string) AuthService {
	return &authService{
		jwtManager:   jwtManager,
		adminUser:    adminUser,
		passwordHash: passwordHash,
	}
}

func (s *authService) Login(username, password string) (string, error) {
	if username != s.adminUser {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwtManager.GenerateToken(username)
}
