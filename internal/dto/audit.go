package dto

import (
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
)

// ListAuditLogsParams defines query parameters for listing audit entries.
type ListAuditLogsParams struct {
	Action    domain.AuditAction `form:"action" binding:"omitempty,oneof=CREATE UPDATE DELETE UNDO EXPORT"`
	Entity    domain.AuditEntity `form:"entity" binding:"omitempty,oneof=TRANSACTION WALLET CATEGORY CUSTOM_FIELD FEED_JOURNAL EXPORT_FINANCE EXPORT_JOURNAL"`
	Limit     int                `form:"limit" binding:"omitempty,min=1,max=1000"` // Zero means the configured default
	NextToken *string            `form:"nextToken"`
}

func (p ListAuditLogsParams) Filter() domain.AuditLogFilter {
	return domain.AuditLogFilter{Action: p.Action, Entity: p.Entity}
}

// ListAuditLogsResponse wraps a page of audit entries, newest first.
type ListAuditLogsResponse struct {
	AuditLogs []domain.AuditLog `json:"auditLogs"`
	NextToken *string           `json:"nextToken,omitempty"`
}
