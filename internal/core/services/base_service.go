package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/farm_ledger_app/internal/middleware"
	"github.com/jackc/pgx/v5"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeWrite rejects mutations from sessions that may only read.
func (s *BaseService) AuthorizeWrite(ctx context.Context, session domain.Session) error {
	if session.CanWrite() {
		return nil
	}
	s.LogDebug(ctx, "Write denied for read-only session",
		slog.String("user_id", session.UserID),
		slog.String("owner_id", session.OwnerID),
		slog.String("role", string(session.Role)))
	return fmt.Errorf("%w: %s sessions are read-only", apperrors.ErrForbidden, session.Role)
}

// runInTx runs fn inside a database transaction. The transaction commits
// when fn succeeds and rolls back otherwise.
func runInTx(ctx context.Context, tm portsrepo.TransactionManager, fn func(tx pgx.Tx) error) error {
	tx, err := tm.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tm.Rollback(ctx, tx); rbErr != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to roll back transaction", slog.String("error", rbErr.Error()))
		}
		return err
	}
	return tm.Commit(ctx, tx)
}

// checkVersion enforces optimistic concurrency. A nil expected version means
// last write wins.
func checkVersion(expected *int64, current int64) error {
	if expected != nil && *expected != current {
		return fmt.Errorf("%w: expected version %d but found %d", apperrors.ErrConflict, *expected, current)
	}
	return nil
}

// validationError wraps a domain rule violation so callers can match both
// apperrors.ErrValidation and the rule itself.
func validationError(err error) error {
	return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
}

func newAuditFields(session domain.Session, now func() time.Time) domain.AuditFields {
	ts := now().UTC()
	return domain.AuditFields{
		CreatedAt:     ts,
		CreatedBy:     session.UserID,
		LastUpdatedAt: ts,
		LastUpdatedBy: session.UserID,
		Version:       1,
	}
}

// touch stamps an update by session and bumps the version.
func touch(fields *domain.AuditFields, session domain.Session, now func() time.Time) {
	fields.LastUpdatedAt = now().UTC()
	fields.LastUpdatedBy = session.UserID
	fields.Version++
}

func strPtr(s string) *string {
	return &s
}
