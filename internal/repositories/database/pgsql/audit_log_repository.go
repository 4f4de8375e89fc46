package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/farm_ledger_app/internal/models"
	"github.com/SscSPs/farm_ledger_app/internal/utils/mapping"
	"github.com/SscSPs/farm_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditLogRepository struct {
	BaseRepository
}

func newPgxAuditLogRepository(pool *pgxpool.Pool) portsrepo.AuditLogRepositoryFacade {
	return &PgxAuditLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditLogRepositoryFacade = (*PgxAuditLogRepository)(nil)

func (r *PgxAuditLogRepository) SaveAuditLogInTx(ctx context.Context, tx pgx.Tx, log domain.AuditLog) error {
	m := mapping.ToModelAuditLog(log)
	query := `
		INSERT INTO audit_logs (audit_id, owner_id, actor, action, entity, entity_id, before_data, after_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		m.AuditID,
		m.OwnerID,
		m.Actor,
		m.Action,
		m.Entity,
		m.EntityID,
		m.BeforeData,
		m.AfterData,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}

func (r *PgxAuditLogRepository) ListAuditLogs(ctx context.Context, ownerID string, filter domain.AuditLogFilter, limit int, nextToken *string) ([]domain.AuditLog, *string, error) {
	conds := []string{"owner_id = $1"}
	args := []any{ownerID}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Action != "" {
		conds = append(conds, "action = "+arg(string(filter.Action)))
	}
	if filter.Entity != "" {
		conds = append(conds, "entity = "+arg(string(filter.Entity)))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		conds = append(conds, fmt.Sprintf("(created_at, audit_id) < (%s, %s)", arg(cursor.CreatedAt), arg(cursor.ID)))
	}

	query := `
		SELECT audit_id, owner_id, actor, action, entity, entity_id, before_data, after_data, created_at
		FROM audit_logs
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY created_at DESC, audit_id DESC
		LIMIT ` + arg(limit+1) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	logs := []models.AuditLog{}
	for rows.Next() {
		var m models.AuditLog
		if err := rows.Scan(
			&m.AuditID,
			&m.OwnerID,
			&m.Actor,
			&m.Action,
			&m.Entity,
			&m.EntityID,
			&m.BeforeData,
			&m.AfterData,
			&m.CreatedAt,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan audit log row: %w", err)
		}
		logs = append(logs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating audit log rows: %w", err)
	}

	var newNextToken *string
	if len(logs) > limit {
		last := logs[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.AuditID})
		newNextToken = &token
		logs = logs[:limit]
	}
	return mapping.ToDomainAuditLogSlice(logs), newNextToken, nil
}
