package admin

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/SlpAus/khatira-board-backend/internal/platform/apperr"
	"github.com/SlpAus/khatira-board-backend/internal/platform/config"
)

var ErrInvalidPassword = apperr.New(apperr.KindUnauthorized, "Invalid password")

// Authenticator 校验唯一的管理员共享密码
type Authenticator struct {
	passwordHash []byte
	password     []byte
}

// NewAuthenticator 优先使用bcrypt哈希，未配置哈希时退回到明文密码
func NewAuthenticator(cfg config.AdminConfig) *Authenticator {
	if cfg.PasswordHash != "" {
		return &Authenticator{passwordHash: []byte(cfg.PasswordHash)}
	}
	return &Authenticator{password: []byte(cfg.Password)}
}

func (a *Authenticator) Login(password string) error {
	if password == "" {
		return ErrInvalidPassword
	}
	if a.passwordHash != nil {
		if bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) != nil {
			return ErrInvalidPassword
		}
		return nil
	}
	if len(a.password) == 0 || subtle.ConstantTimeCompare(a.password, []byte(password)) != 1 {
		return ErrInvalidPassword
	}
	return nil
}
