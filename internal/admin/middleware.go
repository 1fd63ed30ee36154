package admin

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SlpAus/khatira-board-backend/internal/platform/apperr"
	"github.com/SlpAus/khatira-board-backend/pkg/token"
)

const (
	// SessionCookieName 是管理员令牌所在的HttpOnly cookie
	SessionCookieName = "admin_session"
	// ClaimsKey 是已验证令牌在gin上下文中的键
	ClaimsKey = "adminClaims"
)

// RequireAdmin 要求请求携带有效且未被注销的管理员令牌。
// 令牌可以来自 admin_session cookie 或 Authorization: Bearer 头。
func RequireAdmin(issuer *token.Issuer, revocations RevocationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			raw, _ = c.Cookie(SessionCookieName)
		}

		claims, err := issuer.Validate(raw)
		if err != nil {
			apperr.Respond(c, apperr.ErrUnauthorized)
			return
		}

		revoked, err := revocations.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			apperr.Respond(c, apperr.Store(err))
			return
		}
		if revoked {
			apperr.Respond(c, apperr.ErrUnauthorized)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, value, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(value)
}

func claimsFromContext(c *gin.Context) (*token.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*token.Claims)
	return claims, ok
}
