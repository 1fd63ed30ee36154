package board

import (
	"sort"
	"time"

	"github.com/SlpAus/khatira-board-backend/internal/khatira"
	"github.com/SlpAus/khatira-board-backend/internal/phase"
	"github.com/SlpAus/khatira-board-backend/internal/vote"
)

// EntryView 是公开读取接口返回的投稿形态。
// 匿名投票阶段 Author 为 nil，JSON里不出现 author 键。
type EntryView struct {
	ID        uint       `json:"id"`
	Author    *string    `json:"author,omitempty"`
	Content   string     `json:"content"`
	Upvotes   int        `json:"upvotes"`
	Downvotes int        `json:"downvotes"`
	CreatedAt time.Time  `json:"created_at"`
	UserVote  *vote.Kind `json:"user_vote"`
}

func (v EntryView) score() int {
	return v.Upvotes - v.Downvotes
}

// AdminEntryView 是管理员看到的投稿形态，不受阶段限制
type AdminEntryView struct {
	ID        uint      `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// project 计算给定阶段下的可见形态。entries 以创建顺序传入。
func project(p phase.Phase, entries []khatira.Entry, votes map[uint]vote.Kind) []EntryView {
	views := make([]EntryView, 0, len(entries))
	if p != phase.Voting && p != phase.Reveal {
		return views
	}

	for _, e := range entries {
		view := EntryView{
			ID:        e.ID,
			Content:   e.Content,
			Upvotes:   e.Upvotes,
			Downvotes: e.Downvotes,
			CreatedAt: e.CreatedAt,
		}
		if k, ok := votes[e.ID]; ok {
			view.UserVote = &k
		}
		if p == phase.Reveal {
			author := e.Author.DisplayName
			view.Author = &author
		}
		views = append(views, view)
	}

	if p == phase.Reveal {
		sortByScore(views, EntryView.score)
	}
	return views
}

func projectAdmin(entries []khatira.Entry) []AdminEntryView {
	views := make([]AdminEntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, AdminEntryView{
			ID:        e.ID,
			Author:    e.Author.DisplayName,
			Content:   e.Content,
			Upvotes:   e.Upvotes,
			Downvotes: e.Downvotes,
			Score:     e.Score(),
			CreatedAt: e.CreatedAt,
		})
	}
	sortByScore(views, func(v AdminEntryView) int { return v.Score })
	return views
}

// sortByScore 按得分降序排列，得分相同时保持原有顺序
func sortByScore[T any](items []T, score func(T) int) {
	sort.SliceStable(items, func(i, j int) bool {
		return score(items[i]) > score(items[j])
	})
}
