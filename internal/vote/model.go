package vote

import (
	"time"

	"github.com/SlpAus/khatira-board-backend/internal/platform/apperr"
)

// Kind 定义了投票类型的枚举
type Kind string

const (
	KindUp   Kind = "up"
	KindDown Kind = "down"
)

// ErrInvalidKind 在投票类型既不是up也不是down时返回
var ErrInvalidKind = apperr.New(apperr.KindValidation, "vote_type must be one of: up down")

func (k Kind) Valid() bool {
	return k == KindUp || k == KindDown
}

// ParseKind 解析请求中的投票类型。未知类型直接拒绝，不会被当作反对票。
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

// Vote 定义了单次投票记录的数据结构
// (entry_id, voter_identity) 上的唯一索引保证每个身份对每条投稿只能投一次
type Vote struct {
	ID            uint   `gorm:"primarykey"`
	EntryID       uint   `gorm:"not null;uniqueIndex:idx_vote_entry_voter,priority:1"`
	VoterIdentity string `gorm:"type:varchar(255);not null;uniqueIndex:idx_vote_entry_voter,priority:2;index"`
	Kind          Kind   `gorm:"column:vote_type;type:varchar(10);not null"`
	CreatedAt     time.Time
}
