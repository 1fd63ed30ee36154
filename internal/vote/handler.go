package vote

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SlpAus/khatira-board-backend/internal/identity"
	"github.com/SlpAus/khatira-board-backend/internal/platform/apperr"
)

// VoteRequestBody 定义了前端提交投票时，请求体的JSON结构。
// 字段不在绑定阶段校验：阶段不对时，即使请求无效也应当返回403。
type VoteRequestBody struct {
	KhatiraID uint   `json:"khatira_id"`
	VoteType  string `json:"vote_type"`
}

type Handler struct {
	service *Service
	cookies identity.Cookies
}

func NewHandler(service *Service, cookies identity.Cookies) *Handler {
	return &Handler{service: service, cookies: cookies}
}

// SubmitVote 处理前端提交的投票
func (h *Handler) SubmitVote(c *gin.Context) {
	var body VoteRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		// 请求体无法解析时也要先看阶段，非投票阶段一律返回403
		if phaseErr := h.service.RequireVoting(c.Request.Context()); phaseErr != nil {
			apperr.Respond(c, phaseErr)
			return
		}
		apperr.Respond(c, apperr.FromBinding(err))
		return
	}

	result, err := h.service.Cast(c.Request.Context(), body.KhatiraID, identity.FromContext(c), body.VoteType)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	// 每次成功投票都刷新cookie的有效期
	h.cookies.Set(c, result.VoterIdentity)
	c.JSON(http.StatusOK, gin.H{"message": "Vote recorded successfully"})
}
