package vote

import (
	"context"

	"gorm.io/gorm"

	"github.com/SlpAus/khatira-board-backend/internal/identity"
	"github.com/SlpAus/khatira-board-backend/internal/khatira"
	"github.com/SlpAus/khatira-board-backend/internal/phase"
	"github.com/SlpAus/khatira-board-backend/internal/platform/apperr"
	"github.com/SlpAus/khatira-board-backend/internal/platform/database"
)

var ErrMissingEntryID = apperr.New(apperr.KindValidation, "khatira_id is required")

// CastResult 返回本次投票实际使用的身份。
// Minted 为 true 表示身份是新生成的，调用方应当把它写入cookie。
type CastResult struct {
	VoterIdentity string
	Minted        bool
}

// Service 负责投票的写入
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Cast 记录一次投票并更新投稿的计数器。
// 阶段检查、去重、写入和计数在同一个事务中完成，任何一步失败都会整体回滚。
func (s *Service) Cast(ctx context.Context, entryID uint, voterIdentity, kind string) (CastResult, error) {
	var result CastResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 阶段检查优先于一切请求校验
		current, err := phase.Get(tx)
		if err != nil {
			return err
		}
		if current != phase.Voting {
			return apperr.ErrPhaseViolation
		}

		// 2. 请求校验
		k, err := ParseKind(kind)
		if err != nil {
			return err
		}
		if entryID == 0 {
			return ErrMissingEntryID
		}

		// 3. 没有身份时生成一个
		result.VoterIdentity = voterIdentity
		if result.VoterIdentity == "" {
			minted, err := identity.NewVoterIdentity()
			if err != nil {
				return err
			}
			result.VoterIdentity = minted
			result.Minted = true
		}

		// 4. 去重
		var existing int64
		if err := tx.Model(&Vote{}).
			Where("entry_id = ? AND voter_identity = ?", entryID, result.VoterIdentity).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperr.ErrDuplicateVote
		}

		// 5. 投稿必须存在
		if _, err := khatira.FindEntry(tx, entryID); err != nil {
			return err
		}

		// 6. 写入投票并更新计数
		if err := insertVote(tx, &Vote{EntryID: entryID, VoterIdentity: result.VoterIdentity, Kind: k}); err != nil {
			return err
		}
		return khatira.IncrementCounter(tx, entryID, k == KindUp)
	})
	if err != nil {
		return CastResult{}, apperr.Store(err)
	}
	return result, nil
}

// RequireVoting 在当前阶段不允许投票时返回 ErrPhaseViolation
func (s *Service) RequireVoting(ctx context.Context) error {
	current, err := phase.Get(s.db.WithContext(ctx))
	if err != nil {
		return err
	}
	if current != phase.Voting {
		return apperr.ErrPhaseViolation
	}
	return nil
}

// insertVote 写入一行投票。并发的重复投票会绕过计数检查，在这里撞上唯一索引。
func insertVote(tx *gorm.DB, v *Vote) error {
	if err := tx.Create(v).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return apperr.ErrDuplicateVote
		}
		return err
	}
	return nil
}

// VotesByVoter 返回某个身份在每条投稿上投出的票
func VotesByVoter(db *gorm.DB, voterIdentity string) (map[uint]Kind, error) {
	votes := make(map[uint]Kind)
	if voterIdentity == "" {
		return votes, nil
	}

	var rows []Vote
	if err := db.Where("voter_identity = ?", voterIdentity).Find(&rows).Error; err != nil {
		return nil, apperr.Store(err)
	}
	for _, v := range rows {
		votes[v.EntryID] = v.Kind
	}
	return votes, nil
}

// DeleteForEntry 删除一条投稿的所有投票
func DeleteForEntry(db *gorm.DB, entryID uint) error {
	if err := db.Where("entry_id = ?", entryID).Delete(&Vote{}).Error; err != nil {
		return apperr.Store(err)
	}
	return nil
}

// DeleteAll 删除所有投票
func DeleteAll(db *gorm.DB) error {
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Vote{}).Error; err != nil {
		return apperr.Store(err)
	}
	return nil
}
