package startup

import (
	"gorm.io/gorm"

	"github.com/SlpAus/khatira-board-backend/internal/khatira"
	"github.com/SlpAus/khatira-board-backend/internal/phase"
	"github.com/SlpAus/khatira-board-backend/internal/platform/logging"
	"github.com/SlpAus/khatira-board-backend/internal/vote"
)

// InitializeApplication 是应用启动时执行的总入口：迁移所有表，并在缺失时写入默认阶段。
// 重复执行是安全的，已有数据和阶段不会被覆盖。
func InitializeApplication(db *gorm.DB) error {
	logging.Logger.Info().Msg("开始应用初始化...")

	if err := khatira.PrimeDB(db); err != nil {
		return err
	}
	if err := vote.PrimeDB(db); err != nil {
		return err
	}
	if err := phase.PrimeDB(db); err != nil {
		return err
	}

	logging.Logger.Info().Msg("应用初始化完成！")
	return nil
}
