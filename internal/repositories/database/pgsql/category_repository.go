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

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, owner_id, name, flow, parent_id, sort_order, is_active,
	created_at, created_by, last_updated_at, last_updated_by, version`

const insertCategorySQL = `
	INSERT INTO categories (category_id, owner_id, name, flow, parent_id, sort_order, is_active,
		created_at, created_by, last_updated_at, last_updated_by, version)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

func scanCategory(row rowScanner) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.OwnerID,
		&m.Name,
		&m.Flow,
		&m.ParentID,
		&m.SortOrder,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

func categoryArgs(m models.Category) []any {
	return []any{
		m.CategoryID,
		m.OwnerID,
		m.Name,
		m.Flow,
		m.ParentID,
		m.SortOrder,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	}
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, ownerID, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE owner_id = $1 AND category_id = $2;`
	m, err := scanCategory(r.Pool.QueryRow(ctx, query, ownerID, categoryID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find category "+categoryID)
	}
	c := mapping.ToDomainCategory(m)
	return &c, nil
}

func (r *PgxCategoryRepository) FindCategoryForUpdate(ctx context.Context, tx pgx.Tx, ownerID, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE owner_id = $1 AND category_id = $2 FOR UPDATE;`
	m, err := scanCategory(tx.QueryRow(ctx, query, ownerID, categoryID))
	if err != nil {
		return nil, notFoundOr(err, "failed to lock category "+categoryID)
	}
	c := mapping.ToDomainCategory(m)
	return &c, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context, ownerID string, flow *domain.Flow) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE owner_id = $1`
	args := []any{ownerID}
	if flow != nil {
		query += ` AND flow = $2`
		args = append(args, string(*flow))
	}
	query += ` ORDER BY flow DESC, sort_order, name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return mapping.ToDomainCategorySlice(categories), nil
}

func (r *PgxCategoryRepository) SaveCategoryInTx(ctx context.Context, tx pgx.Tx, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	if _, err := tx.Exec(ctx, insertCategorySQL, categoryArgs(m)...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category with ID %s already exists", apperrors.ErrDuplicate, m.CategoryID)
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (r *PgxCategoryRepository) SaveCategoriesInTx(ctx context.Context, tx pgx.Tx, categories []domain.Category) error {
	if len(categories) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, c := range categories {
		batch.Queue(insertCategorySQL, categoryArgs(mapping.ToModelCategory(c))...)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category already exists", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert categories in batch: %w", err)
	}
	return nil
}

func (r *PgxCategoryRepository) UpdateCategoryInTx(ctx context.Context, tx pgx.Tx, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		UPDATE categories
		SET name = $3, sort_order = $4, is_active = $5,
			last_updated_at = $6, last_updated_by = $7, version = $8
		WHERE owner_id = $1 AND category_id = $2;
	`
	tag, err := tx.Exec(ctx, query,
		m.OwnerID,
		m.CategoryID,
		m.Name,
		m.SortOrder,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", m.CategoryID, err)
	}
	return expectOne(tag)
}

func (r *PgxCategoryRepository) DeleteCategoryInTx(ctx context.Context, tx pgx.Tx, ownerID, categoryID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM categories WHERE owner_id = $1 AND category_id = $2;`, ownerID, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	return expectOne(tag)
}
