package board

import (
	"context"

	"gorm.io/gorm"

	"github.com/SlpAus/khatira-board-backend/internal/khatira"
	"github.com/SlpAus/khatira-board-backend/internal/phase"
	"github.com/SlpAus/khatira-board-backend/internal/vote"
)

// Projector 从存储读取投稿，再按阶段计算对外可见的形态
type Projector struct {
	db *gorm.DB
}

func NewProjector(db *gorm.DB) *Projector {
	return &Projector{db: db}
}

// Project 返回当前阶段下 voter 能看到的投稿。
// 收集阶段直接返回空列表，不访问数据库。
func (pr *Projector) Project(ctx context.Context, p phase.Phase, voter string) ([]EntryView, error) {
	if p == phase.Collection {
		return []EntryView{}, nil
	}

	db := pr.db.WithContext(ctx)
	entries, err := khatira.ListEntries(db)
	if err != nil {
		return nil, err
	}
	votes, err := vote.VotesByVoter(db, voter)
	if err != nil {
		return nil, err
	}
	return project(p, entries, votes), nil
}

// AdminProject 返回所有投稿，带作者和得分，按得分降序
func (pr *Projector) AdminProject(ctx context.Context) ([]AdminEntryView, error) {
	entries, err := khatira.ListEntries(pr.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return projectAdmin(entries), nil
}
