package db

import (
	"context"
	"errors"
	"time"

	"github.com/yi-nology/merchant_console/biz/dal/model"
	"gorm.io/gorm"
)

// DefaultJournalLimit caps List when the caller passes no positive limit.
const DefaultJournalLimit = 50

// ActionRecordDAO wraps persistence of the console action journal.
type ActionRecordDAO struct{}

func NewActionRecordDAO() *ActionRecordDAO { return &ActionRecordDAO{} }

// Create persists a new journal entry.
func (dao *ActionRecordDAO) Create(ctx context.Context, db *gorm.DB, entity *model.ActionRecord) error {
	if entity == nil {
		return errors.New("action_record must not be nil")
	}
	if entity.Command == "" {
		return errors.New("command is required")
	}
	if entity.Outcome == "" {
		return errors.New("outcome is required")
	}
	return db.WithContext(ctx).Create(entity).Error
}

// List returns the most recent entries first.
func (dao *ActionRecordDAO) List(ctx context.Context, db *gorm.DB, limit int) ([]model.ActionRecord, error) {
	if limit <= 0 {
		limit = DefaultJournalLimit
	}
	var entities []model.ActionRecord
	if err := db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// ListBySysID returns the most recent entries that acted on sysID.
func (dao *ActionRecordDAO) ListBySysID(ctx context.Context, db *gorm.DB, sysID string, limit int) ([]model.ActionRecord, error) {
	if limit <= 0 {
		limit = DefaultJournalLimit
	}
	var entities []model.ActionRecord
	if err := db.WithContext(ctx).
		Where("sys_id = ?", sysID).
		Order("id DESC").
		Limit(limit).
		Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// CountByOutcome returns how many entries ended with outcome.
func (dao *ActionRecordDAO) CountByOutcome(ctx context.Context, db *gorm.DB, outcome string) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).
		Model(&model.ActionRecord{}).
		Where("outcome = ?", outcome).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteBefore removes entries created before cutoff and reports how many went.
func (dao *ActionRecordDAO) DeleteBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.ActionRecord{})
	return result.RowsAffected, result.Error
}
