package service

import (
	"context"
	"errors"
	"time"

	"github.com/yi-nology/merchant_console/biz/dal/db"
	"github.com/yi-nology/merchant_console/biz/dal/model"
	"gorm.io/gorm"
)

// ErrJournalDisabled is returned when no database backs the journal.
var ErrJournalDisabled = errors.New("action journal is disabled")

// Journal stores one record per executed command.
type Journal interface {
	Record(ctx context.Context, rec *model.ActionRecord) error
	List(ctx context.Context, limit int) ([]model.ActionRecord, error)
	ListBySysID(ctx context.Context, sysID string, limit int) ([]model.ActionRecord, error)
}

// DBJournal keeps the journal in the action_record table.
type DBJournal struct {
	db  *gorm.DB
	dao *db.ActionRecordDAO
}

// NewDBJournal migrates the journal table and returns a journal backed by conn.
func NewDBJournal(conn *gorm.DB) (*DBJournal, error) {
	if conn == nil {
		return nil, ErrJournalDisabled
	}
	if err := conn.AutoMigrate(&model.ActionRecord{}); err != nil {
		return nil, err
	}
	return &DBJournal{db: conn, dao: db.NewActionRecordDAO()}, nil
}

func (j *DBJournal) Record(ctx context.Context, rec *model.ActionRecord) error {
	return j.dao.Create(ctx, j.db, rec)
}

func (j *DBJournal) List(ctx context.Context, limit int) ([]model.ActionRecord, error) {
	return j.dao.List(ctx, j.db, limit)
}

func (j *DBJournal) ListBySysID(ctx context.Context, sysID string, limit int) ([]model.ActionRecord, error) {
	return j.dao.ListBySysID(ctx, j.db, sysID, limit)
}

// Outcomes counts entries per outcome.
func (j *DBJournal) Outcomes(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64, 3)
	for _, outcome := range []string{model.OutcomeOK, model.OutcomeFailed, model.OutcomeIgnored} {
		n, err := j.dao.CountByOutcome(ctx, j.db, outcome)
		if err != nil {
			return nil, err
		}
		out[outcome] = n
	}
	return out, nil
}

// Prune drops entries older than retention.
func (j *DBJournal) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, errors.New("retention must be positive")
	}
	return j.dao.DeleteBefore(ctx, j.db, time.Now().Add(-retention))
}

// Journal returns the most recent journal entries.
func (c *Controller) Journal(ctx context.Context, limit int) ([]model.ActionRecord, error) {
	if c.journal == nil {
		return nil, ErrJournalDisabled
	}
	return c.journal.List(ctx, limit)
}

// JournalFor returns the most recent journal entries that acted on sysID.
func (c *Controller) JournalFor(ctx context.Context, sysID string, limit int) ([]model.ActionRecord, error) {
	if c.journal == nil {
		return nil, ErrJournalDisabled
	}
	return c.journal.ListBySysID(ctx, sysID, limit)
}
