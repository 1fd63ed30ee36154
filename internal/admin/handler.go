package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SlpAus/khatira-board-backend/internal/phase"
	"github.com/SlpAus/khatira-board-backend/internal/platform/apperr"
	"github.com/SlpAus/khatira-board-backend/internal/platform/logging"
	"github.com/SlpAus/khatira-board-backend/pkg/token"
)

type LoginRequestBody struct {
	Password string `json:"password"`
}

type PhaseRequestBody struct {
	Phase *int `json:"phase" binding:"required"`
}

var ErrInvalidEntryID = apperr.New(apperr.KindValidation, "Invalid khatira id")

type Handler struct {
	auth         *Authenticator
	issuer       *token.Issuer
	revocations  RevocationStore
	service      *Service
	phases       *phase.Controller
	secureCookie bool
}

func NewHandler(auth *Authenticator, issuer *token.Issuer, revocations RevocationStore, service *Service, phases *phase.Controller, secureCookie bool) *Handler {
	return &Handler{
		auth:         auth,
		issuer:       issuer,
		revocations:  revocations,
		service:      service,
		phases:       phases,
		secureCookie: secureCookie,
	}
}

// Login 校验管理员密码并签发会话令牌
func (h *Handler) Login(c *gin.Context) {
	var body LoginRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Respond(c, ErrInvalidPassword)
		return
	}

	if err := h.auth.Login(body.Password); err != nil {
		logging.Logger.Warn().Msg("管理员登录失败")
		apperr.Respond(c, err)
		return
	}

	signed, _, err := h.issuer.Issue()
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.SetCookie(SessionCookieName, signed, int(h.issuer.TTL().Seconds()), "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": signed})
}

// Logout 吊销当前令牌并清除cookie
func (h *Handler) Logout(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		apperr.Respond(c, apperr.ErrUnauthorized)
		return
	}

	if err := h.revocations.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		apperr.Respond(c, apperr.Store(err))
		return
	}

	c.SetCookie(SessionCookieName, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// GetPhase 返回当前阶段
func (h *Handler) GetPhase(c *gin.Context) {
	current, err := h.phases.Current(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"current_phase": current})
}

// SetPhase 切换到请求的阶段
func (h *Handler) SetPhase(c *gin.Context) {
	var body PhaseRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Respond(c, apperr.FromBinding(err))
		return
	}

	next := phase.Phase(*body.Phase)
	if err := h.phases.Transition(c.Request.Context(), next); err != nil {
		apperr.Respond(c, err)
		return
	}

	logging.Logger.Info().Int("phase", int(next)).Msg("阶段已切换")
	c.JSON(http.StatusOK, gin.H{"message": "Phase updated successfully"})
}

// DeleteEntry 删除单条投稿及其投票
func (h *Handler) DeleteEntry(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apperr.Respond(c, ErrInvalidEntryID)
		return
	}

	if err := h.service.DeleteEntry(c.Request.Context(), uint(id)); err != nil {
		apperr.Respond(c, err)
		return
	}

	logging.Logger.Info().Uint64("khatira_id", id).Msg("投稿已删除")
	c.JSON(http.StatusOK, gin.H{"message": "Khatira deleted successfully"})
}

// ClearAll 清空所有投稿、作者和投票
func (h *Handler) ClearAll(c *gin.Context) {
	if err := h.service.ClearAll(c.Request.Context()); err != nil {
		apperr.Respond(c, err)
		return
	}

	logging.Logger.Info().Msg("所有投稿已清空")
	c.JSON(http.StatusOK, gin.H{"message": "All submissions cleared successfully"})
}
