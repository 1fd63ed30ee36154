package khatira

import "time"

// Author 是投稿者，按显示名（区分大小写，精确匹配）唯一
type Author struct {
	ID          uint   `gorm:"primarykey"`
	DisplayName string `gorm:"type:varchar(100);uniqueIndex;not null"`
	CreatedAt   time.Time
}

// Entry 是一条投稿 (khatira)。除计数器外创建后不可修改。
type Entry struct {
	ID        uint   `gorm:"primarykey"`
	AuthorID  uint   `gorm:"not null;index"`
	Author    Author `gorm:"constraint:OnDelete:CASCADE"`
	Content   string `gorm:"type:text;not null"`
	Upvotes   int    `gorm:"not null;default:0"`
	Downvotes int    `gorm:"not null;default:0"`
	CreatedAt time.Time
}

func (Entry) TableName() string {
	return "khawatir"
}

// Score 是净得分
func (e Entry) Score() int {
	return e.Upvotes - e.Downvotes
}
