package vote

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/SlpAus/khatira-board-backend/internal/platform/logging"
)

// PrimeDB 负责迁移投票表
func PrimeDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&Vote{}); err != nil {
		return fmt.Errorf("无法迁移vote表: %w", err)
	}
	logging.Logger.Info().Msg("Vote数据库表迁移成功。")
	return nil
}
