package khatira

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SlpAus/khatira-board-backend/internal/platform/apperr"
)

// MaxDisplayNameLength 与 authors.display_name 的列宽一致
const MaxDisplayNameLength = 100

var (
	ErrMissingFields = apperr.New(apperr.KindValidation, "Name and content are required")
	ErrNameTooLong   = apperr.Validation("Name must be at most %d characters", MaxDisplayNameLength)
	ErrEntryNotFound = apperr.NotFound("Khatira not found")
)

// Service 负责投稿的写入
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Submit 创建一条投稿并返回其ID。任何阶段都允许投稿。
// 作者按显示名查找或创建，和投稿写入在同一个事务里完成。
func (s *Service) Submit(ctx context.Context, displayName, content string) (uint, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" || strings.TrimSpace(content) == "" {
		return 0, ErrMissingFields
	}
	if utf8.RuneCountInString(displayName) > MaxDisplayNameLength {
		return 0, ErrNameTooLong
	}

	var entryID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		author, err := upsertAuthor(tx, displayName)
		if err != nil {
			return err
		}

		entry := Entry{AuthorID: author.ID, Content: content}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		entryID = entry.ID
		return nil
	})
	if err != nil {
		return 0, apperr.Store(err)
	}
	return entryID, nil
}

// upsertAuthor 依赖 display_name 上的唯一索引：并发提交同名作者时，
// 只有一个插入生效，其余的读到同一行。
func upsertAuthor(tx *gorm.DB, displayName string) (Author, error) {
	author := Author{DisplayName: displayName}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "display_name"}},
		DoNothing: true,
	}).Create(&author)
	if res.Error != nil {
		return Author{}, res.Error
	}
	if res.RowsAffected == 1 && author.ID != 0 {
		return author, nil
	}

	author = Author{}
	if err := tx.Where("display_name = ?", displayName).First(&author).Error; err != nil {
		return Author{}, err
	}
	return author, nil
}

// ListEntries 返回所有投稿（预加载作者），按创建顺序排列
func ListEntries(db *gorm.DB) ([]Entry, error) {
	var entries []Entry
	if err := db.Preload("Author").Order("id asc").Find(&entries).Error; err != nil {
		return nil, apperr.Store(err)
	}
	return entries, nil
}

// FindEntry 按ID查找投稿，不存在时返回NotFound
func FindEntry(db *gorm.DB, id uint) (*Entry, error) {
	var entry Entry
	err := db.Where("id = ?", id).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, apperr.Store(err)
	}
	return &entry, nil
}

// IncrementCounter 在数据库端对赞成或反对计数加一
func IncrementCounter(db *gorm.DB, id uint, upvote bool) error {
	column := "downvotes"
	if upvote {
		column = "upvotes"
	}
	res := db.Model(&Entry{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if res.Error != nil {
		return apperr.Store(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// Delete 删除一条投稿。调用方负责先删除它的投票。
func Delete(db *gorm.DB, id uint) error {
	res := db.Where("id = ?", id).Delete(&Entry{})
	if res.Error != nil {
		return apperr.Store(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// DeleteAll 删除所有投稿和作者
func DeleteAll(db *gorm.DB) error {
	all := db.Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := all.Delete(&Entry{}).Error; err != nil {
		return apperr.Store(err)
	}
	if err := all.Delete(&Author{}).Error; err != nil {
		return apperr.Store(err)
	}
	return nil
}
