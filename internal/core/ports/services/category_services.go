package services

import (
	"context"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
)

// CategoryReaderSvc defines read operations for categories
type CategoryReaderSvc interface {
	GetCategory(ctx context.Context, session domain.Session, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, session domain.Session, flow *domain.Flow) ([]domain.Category, error)
}

// CategoryWriterSvc defines audited write operations for categories
type CategoryWriterSvc interface {
	CreateCategory(ctx context.Context, session domain.Session, req dto.CreateCategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, session domain.Session, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, session domain.Session, categoryID string, version *int64) error
}

// CategorySvcFacade combines all category-related service interfaces
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
