package admin

import (
	"context"

	"gorm.io/gorm"

	"github.com/SlpAus/khatira-board-backend/internal/khatira"
	"github.com/SlpAus/khatira-board-backend/internal/platform/apperr"
	"github.com/SlpAus/khatira-board-backend/internal/vote"
)

// Service 执行需要管理员权限的批量删除
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// DeleteEntry 删除一条投稿及其所有投票
func (s *Service) DeleteEntry(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := khatira.FindEntry(tx, id); err != nil {
			return err
		}
		if err := vote.DeleteForEntry(tx, id); err != nil {
			return err
		}
		return khatira.Delete(tx, id)
	})
	return apperr.Store(err)
}

// ClearAll 依次删除所有投票、投稿和作者，三者要么全部删除要么都不删。
// 阶段不受影响。
func (s *Service) ClearAll(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := vote.DeleteAll(tx); err != nil {
			return err
		}
		return khatira.DeleteAll(tx)
	})
	return apperr.Store(err)
}
