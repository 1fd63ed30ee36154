package identity

import (
	"github.com/gin-gonic/gin"

	"github.com/SlpAus/khatira-board-backend/internal/platform/logging"
)

// Cookies 持有下发身份cookie时使用的属性
type Cookies struct {
	Secure bool
}

// Set 把身份写入30天有效的cookie。前端需要读取它，所以不设置HttpOnly。
func (k Cookies) Set(c *gin.Context, voterID string) {
	c.SetCookie(CookieName, voterID, CookieMaxAge, "/", "", k.Secure, false)
}

// EnsureVoterCookieMiddleware 确保浏览器持有一个可用的user_id cookie。
// 没有或不可用时生成一个新身份并下发，随后把身份放入Gin上下文。
func (k Cookies) EnsureVoterCookieMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		voterID, _ := c.Cookie(CookieName)

		if !IsAcceptable(voterID) {
			newID, err := NewVoterIdentity()
			if err != nil {
				logging.Logger.Error().Err(err).Msg("创建投票者身份时发生错误")
				voterID = ""
			} else {
				voterID = newID
				k.Set(c, voterID)
			}
		}

		c.Set(ContextKey, voterID)
		c.Next()
	}
}

// LoadVoterMiddleware 读取cookie并将其值（可能为空）放入Gin上下文中。
func LoadVoterMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		voterID, _ := c.Cookie(CookieName)
		if !IsAcceptable(voterID) {
			voterID = ""
		}
		c.Set(ContextKey, voterID)
		c.Next()
	}
}

// FromContext 返回中间件放入上下文的身份，没有时返回空字符串
func FromContext(c *gin.Context) string {
	return c.GetString(ContextKey)
}
