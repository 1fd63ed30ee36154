package phase

import "time"

// Phase 是全局的可见性/投票阶段
type Phase int

const (
	// Collection 收集阶段：只接受投稿，读取返回空列表
	Collection Phase = 1
	// Voting 匿名投票阶段：条目可见但不显示作者，允许投票
	Voting Phase = 2
	// Reveal 揭晓阶段：显示作者并按得分排名，禁止投票
	Reveal Phase = 3
)

// Valid 报告p是否是已定义的阶段
func (p Phase) Valid() bool {
	return p >= Collection && p <= Reveal
}

// singletonID 是阶段表中唯一一行的主键
const singletonID = 1

// State 定义了存储当前阶段的单行表
// 固定主键保证了表里至多只有一条记录
type State struct {
	ID           uint  `gorm:"primarykey;autoIncrement:false"`
	CurrentPhase Phase `gorm:"not null;default:1"`
	UpdatedAt    time.Time
}

func (State) TableName() string {
	return "phase_states"
}
