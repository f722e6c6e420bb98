package audit

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Action is the recorded kind of change
type Action string

const (
	ActionCreate              Action = "create"
	ActionUpdate              Action = "update"
	ActionDelete              Action = "delete"
	ActionFinalize            Action = "finalize"
	ActionAdminOverrideEdit   Action = "admin_override_edit"
	ActionAdminOverrideDelete Action = "admin_override_delete"
)

// Changes is a free-form field change payload stored as JSON
type Changes map[string]interface{}

// Value implements driver.Valuer
func (c Changes) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner
func (c *Changes) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Changes", value)
	}

	return json.Unmarshal(data, c)
}

// LogEntry is one append-only audit record. Entries are never updated or
// deleted; override actions on locked records produce a new entry instead.
type LogEntry struct {
	shared.BaseEntity
	Module    string    `gorm:"type:varchar(50);not null;index:idx_audit_record"`
	RecordID  uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_record"`
	Action    Action    `gorm:"type:varchar(30);not null"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null"`
	ActorName string    `gorm:"type:varchar(200)"`
	Changes   Changes   `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (LogEntry) TableName() string {
	return "audit_logs"
}

// NewLogEntry creates an audit record for an action performed by actor
func NewLogEntry(module string, recordID uuid.UUID, action Action, actor shared.Identity, changes Changes) (*LogEntry, error) {
	if module == "" {
		return nil, shared.NewDomainError("INVALID_MODULE", "Audit module cannot be empty")
	}
	if recordID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECORD", "Audit record ID cannot be empty")
	}

	return &LogEntry{
		BaseEntity: shared.NewBaseEntity(),
		Module:     module,
		RecordID:   recordID,
		Action:     action,
		ActorID:    actor.UserID,
		ActorName:  actor.Name,
		Changes:    changes,
	}, nil
}
