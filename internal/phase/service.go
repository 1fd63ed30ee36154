package phase

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SlpAus/khatira-board-backend/internal/platform/apperr"
)

// ErrInvalidPhase 在设置的阶段值不属于 {1,2,3} 时返回
var ErrInvalidPhase = apperr.New(apperr.KindValidation, "Invalid phase")

// Get 读取当前阶段，记录不存在时视为收集阶段
func Get(db *gorm.DB) (Phase, error) {
	var state State
	err := db.Where("id = ?", singletonID).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Collection, nil
		}
		return 0, apperr.Store(err)
	}
	return state.CurrentPhase, nil
}

// Set 创建或更新单行记录，并刷新 updated_at。任意阶段之间都可以切换，包括回退。
func Set(db *gorm.DB, p Phase) error {
	if !p.Valid() {
		return ErrInvalidPhase
	}
	state := State{
		ID:           singletonID,
		CurrentPhase: p,
		UpdatedAt:    time.Now(),
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"current_phase", "updated_at"}),
	}).Create(&state).Error
	if err != nil {
		return apperr.Store(err)
	}
	return nil
}

// EnsureDefault 在记录不存在时以收集阶段创建，已有记录不会被覆盖
func EnsureDefault(db *gorm.DB) error {
	state := State{ID: singletonID, CurrentPhase: Collection, UpdatedAt: time.Now()}
	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&state).Error
	if err != nil {
		return apperr.Store(err)
	}
	return nil
}

// Controller 把阶段的读写绑定到一个数据库连接上，供HTTP处理器使用
type Controller struct {
	db *gorm.DB
}

func NewController(db *gorm.DB) *Controller {
	return &Controller{db: db}
}

func (c *Controller) Current(ctx context.Context) (Phase, error) {
	return Get(c.db.WithContext(ctx))
}

func (c *Controller) Transition(ctx context.Context, p Phase) error {
	return Set(c.db.WithContext(ctx), p)
}
