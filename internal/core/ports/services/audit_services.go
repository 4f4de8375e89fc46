package services

import (
	"context"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/jackc/pgx/v5"
)

// AuditRecord describes one audited change. Before and After are encoded
// as JSON; nil encodes as null.
type AuditRecord struct {
	OwnerID  string
	Actor    string
	Action   domain.AuditAction
	Entity   domain.AuditEntity
	EntityID *string
	Before   any
	After    any
}

// AuditRecorderSvc writes audit entries next to the mutation they describe.
type AuditRecorderSvc interface {
	// CreateAuditLog appends an entry inside tx so it commits or rolls back
	// together with the mutation.
	CreateAuditLog(ctx context.Context, tx pgx.Tx, rec AuditRecord) (*domain.AuditLog, error)

	// Publish hands a committed entry to the configured publisher. Failures
	// are logged and never returned.
	Publish(ctx context.Context, log domain.AuditLog)
}

// AuditReaderSvc defines read operations for the audit trail
type AuditReaderSvc interface {
	ListAuditLogs(ctx context.Context, session domain.Session, params dto.ListAuditLogsParams) ([]domain.AuditLog, *string, error)
}

// AuditSvcFacade combines all audit service interfaces
type AuditSvcFacade interface {
	AuditRecorderSvc
	AuditReaderSvc
}

// AuditPublisher delivers committed audit entries to an external sink.
type AuditPublisher interface {
	PublishAuditLog(ctx context.Context, log domain.AuditLog) error
}
