package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const defaultAuditLogLimit = 200

type auditService struct {
	BaseService
	auditRepo    portsrepo.AuditLogRepositoryFacade
	publisher    portssvc.AuditPublisher
	defaultLimit int
	now          func() time.Time
}

// AuditServiceOption configures the audit service.
type AuditServiceOption func(*auditService)

// WithAuditPublisher hands committed entries to publisher.
func WithAuditPublisher(publisher portssvc.AuditPublisher) AuditServiceOption {
	return func(s *auditService) {
		s.publisher = publisher
	}
}

// WithAuditDefaultLimit sets the page size used when a listing asks for none.
func WithAuditDefaultLimit(limit int) AuditServiceOption {
	return func(s *auditService) {
		if limit > 0 {
			s.defaultLimit = limit
		}
	}
}

// WithAuditClock overrides the entry timestamp source.
func WithAuditClock(now func() time.Time) AuditServiceOption {
	return func(s *auditService) {
		s.now = now
	}
}

// NewAuditService creates the audit recorder and reader.
func NewAuditService(repo portsrepo.AuditLogRepositoryFacade, options ...AuditServiceOption) portssvc.AuditSvcFacade {
	svc := &auditService{
		auditRepo:    repo,
		defaultLimit: defaultAuditLogLimit,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) CreateAuditLog(ctx context.Context, tx pgx.Tx, rec portssvc.AuditRecord) (*domain.AuditLog, error) {
	before, err := encodeSnapshot(rec.Before)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit before snapshot: %w", err)
	}
	after, err := encodeSnapshot(rec.After)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit after snapshot: %w", err)
	}

	entry := domain.AuditLog{
		AuditID:    uuid.NewString(),
		OwnerID:    rec.OwnerID,
		Actor:      rec.Actor,
		Action:     rec.Action,
		Entity:     rec.Entity,
		EntityID:   rec.EntityID,
		BeforeData: before,
		AfterData:  after,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.auditRepo.SaveAuditLogInTx(ctx, tx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save audit log",
			slog.String("action", string(rec.Action)),
			slog.String("entity", string(rec.Entity)))
		return nil, err
	}
	return &entry, nil
}

func (s *auditService) Publish(ctx context.Context, log domain.AuditLog) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishAuditLog(ctx, log); err != nil {
		s.LogError(ctx, err, "Failed to publish audit log",
			slog.String("audit_id", log.AuditID),
			slog.String("action", string(log.Action)))
	}
}

func (s *auditService) ListAuditLogs(ctx context.Context, session domain.Session, params dto.ListAuditLogsParams) ([]domain.AuditLog, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}

	logs, nextToken, err := s.auditRepo.ListAuditLogs(ctx, session.OwnerID, params.Filter(), limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list audit logs", slog.String("owner_id", session.OwnerID))
		}
		return nil, nil, err
	}
	return logs, nextToken, nil
}

// encodeSnapshot JSON-encodes an audit snapshot. nil, including a typed nil
// pointer, becomes a SQL NULL.
func encodeSnapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	if raw, ok := v.(json.RawMessage); ok {
		return raw, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return nil, nil
	}
	return b, nil
}
