package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SlpAus/khatira-board-backend/internal/platform/logging"
)

// Respond 是所有handler把错误转换成 {"error": "..."} 响应的唯一出口
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = &Error{Kind: KindStoreFailure, Cause: err}
	}

	status := appErr.Status()
	if status >= http.StatusInternalServerError {
		logging.Logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("请求处理失败")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": appErr.Error()})
}
