package db

import (
	"context"
	"testing"

	"github.com/yi-nology/merchant_console/biz/dal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Reduce log noise in tests
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// every pooled connection to ":memory:" would open its own empty database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.ActionRecord{}); err != nil {
		t.Fatalf("Failed to migrate tables: %v", err)
	}

	return db
}

// CleanupTestDB closes the database connection
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Logf("Warning: Failed to get underlying DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Logf("Warning: Failed to close DB: %v", err)
	}
}

// CreateTestRecord creates a journal entry with default values
func CreateTestRecord(t *testing.T, db *gorm.DB, command, sysID, outcome string) *model.ActionRecord {
	t.Helper()
	rec := &model.ActionRecord{
		Command:    command,
		SysID:      sysID,
		Outcome:    outcome,
		Message:    "test " + command,
		DurationMs: 5,
		Operator:   "tester",
	}
	if err := NewActionRecordDAO().Create(context.Background(), db, rec); err != nil {
		t.Fatalf("Failed to create test record: %v", err)
	}
	return rec
}
