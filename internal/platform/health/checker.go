package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SlpAus/khatira-board-backend/internal/platform/logging"
)

const pingTimeout = 2 * time.Second

// Checker 检查数据库和（可选的）Redis是否可用
type Checker struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewChecker 创建一个检查器，rdb 为 nil 表示未启用Redis
func NewChecker(db *gorm.DB, rdb *redis.Client) *Checker {
	return &Checker{db: db, rdb: rdb}
}

// PerformCheck 执行一次完整的健康检查
func (h *Checker) PerformCheck(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	report := Report{Status: StateHealthy, Database: componentOK, Redis: componentDisabled}

	if err := h.pingDB(ctx); err != nil {
		logging.Logger.Error().Err(err).Msg("健康检查: 数据库不可用")
		report.Database = componentUnavailable
		report.Status = StateDown
	}

	if h.rdb != nil {
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			logging.Logger.Warn().Err(err).Msg("健康检查: Redis不可用")
			report.Redis = componentUnavailable
			if report.Status == StateHealthy {
				report.Status = StateDegraded
			}
		} else {
			report.Redis = componentOK
		}
	}

	return report
}

func (h *Checker) pingDB(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Handle 把检查结果写成HTTP响应，不健康时返回503
func (h *Checker) Handle(c *gin.Context) {
	report := h.PerformCheck(c.Request.Context())
	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}
