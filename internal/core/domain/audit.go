package domain

import (
	"encoding/json"
	"time"
)

// AuditAction classifies the event an audit entry records.
type AuditAction string

const (
	ActionCreate AuditAction = "CREATE"
	ActionUpdate AuditAction = "UPDATE"
	ActionDelete AuditAction = "DELETE"
	ActionUndo   AuditAction = "UNDO"
	ActionExport AuditAction = "EXPORT"
)

// AuditEntity is the kind of record an audit entry is about.
type AuditEntity string

const (
	EntityTransaction   AuditEntity = "TRANSACTION"
	EntityWallet        AuditEntity = "WALLET"
	EntityCategory      AuditEntity = "CATEGORY"
	EntityCustomField   AuditEntity = "CUSTOM_FIELD"
	EntityFeedJournal   AuditEntity = "FEED_JOURNAL"
	EntityExportFinance AuditEntity = "EXPORT_FINANCE"
	EntityExportJournal AuditEntity = "EXPORT_JOURNAL"
)

// AuditLog is a write-once record of who changed what, from what, to what.
type AuditLog struct {
	AuditID    string          `json:"auditID"`
	OwnerID    string          `json:"ownerID"`
	Actor      string          `json:"actor"`
	Action     AuditAction     `json:"action"`
	Entity     AuditEntity     `json:"entity"`
	EntityID   *string         `json:"entityID"`   // Null for bulk events such as exports
	BeforeData json.RawMessage `json:"beforeData"` // Null for CREATE
	AfterData  json.RawMessage `json:"afterData"`  // Null for hard DELETE
	CreatedAt  time.Time       `json:"createdAt"`
}
