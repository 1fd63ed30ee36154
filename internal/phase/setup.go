package phase

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/SlpAus/khatira-board-backend/internal/platform/logging"
)

// PrimeDB 负责迁移阶段表，并在缺失时写入默认阶段
func PrimeDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&State{}); err != nil {
		return fmt.Errorf("无法迁移phase表: %w", err)
	}
	if err := EnsureDefault(db); err != nil {
		return fmt.Errorf("无法初始化默认阶段: %w", err)
	}
	logging.Logger.Info().Msg("Phase数据库表迁移成功。")
	return nil
}
