package api

import (
	"github.com/gin-gonic/gin"

	"github.com/SlpAus/khatira-board-backend/internal/admin"
	"github.com/SlpAus/khatira-board-backend/internal/board"
	"github.com/SlpAus/khatira-board-backend/internal/identity"
	"github.com/SlpAus/khatira-board-backend/internal/khatira"
	"github.com/SlpAus/khatira-board-backend/internal/platform/health"
	"github.com/SlpAus/khatira-board-backend/internal/vote"
	"github.com/SlpAus/khatira-board-backend/pkg/token"
)

// Handlers 汇总了所有需要注册的处理器
type Handlers struct {
	Khatira *khatira.Handler
	Vote    *vote.Handler
	Board   *board.Handler
	Admin   *admin.Handler
	Health  *health.Checker

	Cookies     identity.Cookies
	Issuer      *token.Issuer
	Revocations admin.RevocationStore
}

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine, h Handlers) {
	api := router.Group("/api")
	{
		api.GET("/health", h.Health.Handle)

		// 投稿在任何阶段都允许
		api.POST("/submit", h.Khatira.Submit)

		// 读取时确保浏览器持有投票者身份
		api.GET("/khawatir", h.Cookies.EnsureVoterCookieMiddleware(), h.Board.GetKhawatir)
		api.POST("/vote", identity.LoadVoterMiddleware(), h.Vote.SubmitVote)

		api.POST("/admin/login", h.Admin.Login)

		// 管理员路由组
		adminRoutes := api.Group("/admin", admin.RequireAdmin(h.Issuer, h.Revocations))
		{
			adminRoutes.POST("/logout", h.Admin.Logout)
			adminRoutes.GET("/phase", h.Admin.GetPhase)
			adminRoutes.POST("/phase", h.Admin.SetPhase)
			adminRoutes.GET("/khawatir", h.Board.GetAdminKhawatir)
			adminRoutes.DELETE("/khawatir/clear-all", h.Admin.ClearAll)
			adminRoutes.DELETE("/khawatir/:id", h.Admin.DeleteEntry)
		}
	}
}
