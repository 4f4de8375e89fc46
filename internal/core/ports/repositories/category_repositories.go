package repositories

import (
	"context"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	FindCategoryByID(ctx context.Context, ownerID, categoryID string) (*domain.Category, error)

	// ListCategories retrieves the owner's categories ordered by flow and
	// sort order. A nil flow returns both flows.
	ListCategories(ctx context.Context, ownerID string, flow *domain.Flow) ([]domain.Category, error)

	FindCategoryForUpdate(ctx context.Context, tx pgx.Tx, ownerID, categoryID string) (*domain.Category, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	SaveCategoryInTx(ctx context.Context, tx pgx.Tx, category domain.Category) error

	// SaveCategoriesInTx inserts several categories in one round trip.
	SaveCategoriesInTx(ctx context.Context, tx pgx.Tx, categories []domain.Category) error

	UpdateCategoryInTx(ctx context.Context, tx pgx.Tx, category domain.Category) error

	DeleteCategoryInTx(ctx context.Context, tx pgx.Tx, ownerID, categoryID string) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
