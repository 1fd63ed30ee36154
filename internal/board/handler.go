package board

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SlpAus/khatira-board-backend/internal/identity"
	"github.com/SlpAus/khatira-board-backend/internal/phase"
	"github.com/SlpAus/khatira-board-backend/internal/platform/apperr"
)

type Handler struct {
	projector *Projector
	phases    *phase.Controller
}

func NewHandler(projector *Projector, phases *phase.Controller) *Handler {
	return &Handler{projector: projector, phases: phases}
}

// GetKhawatir 返回当前阶段可见的投稿列表
func (h *Handler) GetKhawatir(c *gin.Context) {
	ctx := c.Request.Context()

	current, err := h.phases.Current(ctx)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	views, err := h.projector.Project(ctx, current, identity.FromContext(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"khawatir": views, "phase": current})
}

// GetAdminKhawatir 返回管理员视角的全部投稿
func (h *Handler) GetAdminKhawatir(c *gin.Context) {
	views, err := h.projector.AdminProject(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"khawatir": views})
}
