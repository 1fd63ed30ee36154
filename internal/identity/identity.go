package identity

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	// CookieName 是前端读写的投票者身份cookie
	CookieName = "user_id"
	// CookieMaxAge 30天
	CookieMaxAge = 30 * 24 * 60 * 60
	// ContextKey 是身份在gin上下文中的键
	ContextKey = "voterIdentity"

	maxIdentityLength = 255
)

// NewVoterIdentity 生成一个新的、按时间排序的投票者身份 (UUID v7)
func NewVoterIdentity() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("无法生成UUID v7: %w", err)
	}
	return id.String(), nil
}

// IsAcceptable 报告一个客户端提供的身份是否可以直接使用。
// 身份是不透明的，只要非空且不超过列宽即可。
func IsAcceptable(id string) bool {
	return id != "" && len(id) <= maxIdentityLength
}
