package khatira

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/SlpAus/khatira-board-backend/internal/platform/logging"
)

// PrimeDB 负责迁移作者表和投稿表
func PrimeDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&Author{}, &Entry{}); err != nil {
		return fmt.Errorf("无法迁移khatira表: %w", err)
	}
	logging.Logger.Info().Msg("Khatira数据库表迁移成功。")
	return nil
}
