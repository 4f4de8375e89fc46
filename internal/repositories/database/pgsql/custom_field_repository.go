package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/farm_ledger_app/internal/models"
	"github.com/SscSPs/farm_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCustomFieldRepository struct {
	BaseRepository
}

func newPgxCustomFieldRepository(pool *pgxpool.Pool) portsrepo.CustomFieldRepositoryFacade {
	return &PgxCustomFieldRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomFieldRepositoryFacade = (*PgxCustomFieldRepository)(nil)

// config is JSONB and decodes straight into models.CustomFieldConfig.
const customFieldColumns = `field_id, owner_id, field_key, field_name, field_type, config, is_active, sort_order,
	created_at, created_by, last_updated_at, last_updated_by, version`

func scanCustomField(row rowScanner) (models.CustomField, error) {
	var m models.CustomField
	err := row.Scan(
		&m.FieldID,
		&m.OwnerID,
		&m.FieldKey,
		&m.FieldName,
		&m.FieldType,
		&m.Config,
		&m.IsActive,
		&m.SortOrder,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

func (r *PgxCustomFieldRepository) FindCustomFieldByID(ctx context.Context, ownerID, fieldID string) (*domain.CustomField, error) {
	query := `SELECT ` + customFieldColumns + ` FROM custom_fields WHERE owner_id = $1 AND field_id = $2;`
	m, err := scanCustomField(r.Pool.QueryRow(ctx, query, ownerID, fieldID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find custom field "+fieldID)
	}
	f := mapping.ToDomainCustomField(m)
	return &f, nil
}

func (r *PgxCustomFieldRepository) FindCustomFieldForUpdate(ctx context.Context, tx pgx.Tx, ownerID, fieldID string) (*domain.CustomField, error) {
	query := `SELECT ` + customFieldColumns + ` FROM custom_fields WHERE owner_id = $1 AND field_id = $2 FOR UPDATE;`
	m, err := scanCustomField(tx.QueryRow(ctx, query, ownerID, fieldID))
	if err != nil {
		return nil, notFoundOr(err, "failed to lock custom field "+fieldID)
	}
	f := mapping.ToDomainCustomField(m)
	return &f, nil
}

func (r *PgxCustomFieldRepository) ListCustomFields(ctx context.Context, ownerID string) ([]domain.CustomField, error) {
	query := `SELECT ` + customFieldColumns + ` FROM custom_fields WHERE owner_id = $1 ORDER BY sort_order, field_key;`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom fields: %w", err)
	}
	defer rows.Close()

	fields := []models.CustomField{}
	for rows.Next() {
		m, err := scanCustomField(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan custom field row: %w", err)
		}
		fields = append(fields, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating custom field rows: %w", err)
	}
	return mapping.ToDomainCustomFieldSlice(fields), nil
}

func (r *PgxCustomFieldRepository) SaveCustomFieldInTx(ctx context.Context, tx pgx.Tx, field domain.CustomField) error {
	m := mapping.ToModelCustomField(field)
	query := `
		INSERT INTO custom_fields (field_id, owner_id, field_key, field_name, field_type, config, is_active, sort_order,
			created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.FieldID,
		m.OwnerID,
		m.FieldKey,
		m.FieldName,
		m.FieldType,
		m.Config,
		m.IsActive,
		m.SortOrder,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: field key %s is already defined", apperrors.ErrDuplicate, m.FieldKey)
		}
		return fmt.Errorf("failed to insert custom field: %w", err)
	}
	return nil
}

func (r *PgxCustomFieldRepository) UpdateCustomFieldInTx(ctx context.Context, tx pgx.Tx, field domain.CustomField) error {
	m := mapping.ToModelCustomField(field)
	query := `
		UPDATE custom_fields
		SET field_name = $3, config = $4, is_active = $5, sort_order = $6,
			last_updated_at = $7, last_updated_by = $8, version = $9
		WHERE owner_id = $1 AND field_id = $2;
	`
	tag, err := tx.Exec(ctx, query,
		m.OwnerID,
		m.FieldID,
		m.FieldName,
		m.Config,
		m.IsActive,
		m.SortOrder,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update custom field %s: %w", m.FieldID, err)
	}
	return expectOne(tag)
}

func (r *PgxCustomFieldRepository) DeleteCustomFieldInTx(ctx context.Context, tx pgx.Tx, ownerID, fieldID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM custom_fields WHERE owner_id = $1 AND field_id = $2;`, ownerID, fieldID)
	if err != nil {
		return fmt.Errorf("failed to delete custom field %s: %w", fieldID, err)
	}
	return expectOne(tag)
}
