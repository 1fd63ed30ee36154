package khatira

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SlpAus/khatira-board-backend/internal/platform/apperr"
)

// SubmitRequestBody 定义了投稿请求体的JSON结构
type SubmitRequestBody struct {
	Name    string `json:"name" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit 处理前端提交的新投稿
func (h *Handler) Submit(c *gin.Context) {
	var body SubmitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Respond(c, ErrMissingFields)
		return
	}

	id, err := h.service.Submit(c.Request.Context(), body.Name, body.Content)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Khatira submitted successfully",
		"id":      id,
	})
}
