package models

import (
	"encoding/json"
	"time"
)

// AuditLog represents a row of the append-only audit_logs table.
type AuditLog struct {
	AuditID    string          `db:"audit_id"`
	OwnerID    string          `db:"owner_id"`
	Actor      string          `db:"actor"`
	Action     string          `db:"action"`
	Entity     string          `db:"entity"`
	EntityID   *string         `db:"entity_id"`
	BeforeData json.RawMessage `db:"before_data"`
	AfterData  json.RawMessage `db:"after_data"`
	CreatedAt  time.Time       `db:"created_at"`
}
