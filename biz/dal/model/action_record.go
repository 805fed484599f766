package model

import "time"

// Outcomes recorded for an executed console command.
const (
	OutcomeOK      = "ok"
	OutcomeFailed  = "failed"
	OutcomeIgnored = "ignored"
)

// ActionRecord is one journal row per command the console sent to the backend.
type ActionRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt  time.Time `gorm:"index:idx_action_created" json:"created_at,omitempty"`
	Command    string    `gorm:"column:command;type:varchar(64);index:idx_action_command" json:"command"`
	SysID      string    `gorm:"column:sys_id;type:varchar(128);index:idx_action_sys" json:"sys_id,omitempty"`
	Outcome    string    `gorm:"column:outcome;type:varchar(16)" json:"outcome"`
	Message    string    `gorm:"column:message;type:text" json:"message,omitempty"`
	DurationMs int64     `gorm:"column:duration_ms" json:"duration_ms"`
	Operator   string    `gorm:"column:operator;type:varchar(128)" json:"operator,omitempty"`
}

// TableName overrides gorm to use the action_record table.
func (ActionRecord) TableName() string {
	return "action_record"
}
