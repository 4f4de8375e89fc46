package repositories

import (
	"context"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AuditLogReader defines read operations for the audit trail
type AuditLogReader interface {
	// ListAuditLogs retrieves entries newest first (created_at DESC, audit_id
	// DESC) using token-based pagination.
	ListAuditLogs(ctx context.Context, ownerID string, filter domain.AuditLogFilter, limit int, nextToken *string) ([]domain.AuditLog, *string, error)
}

// AuditLogWriter appends to the audit trail. There is no update or delete.
type AuditLogWriter interface {
	SaveAuditLogInTx(ctx context.Context, tx pgx.Tx, log domain.AuditLog) error
}

// AuditLogRepositoryFacade combines all audit repository interfaces
type AuditLogRepositoryFacade interface {
	AuditLogReader
	AuditLogWriter
}
