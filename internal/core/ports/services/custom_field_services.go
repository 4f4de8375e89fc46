package services

import (
	"context"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
)

// CustomFieldSvcFacade defines operations on custom field definitions
type CustomFieldSvcFacade interface {
	GetCustomField(ctx context.Context, session domain.Session, fieldID string) (*domain.CustomField, error)
	ListCustomFields(ctx context.Context, session domain.Session) ([]domain.CustomField, error)
	CreateCustomField(ctx context.Context, session domain.Session, req dto.CreateCustomFieldRequest) (*domain.CustomField, error)
	UpdateCustomField(ctx context.Context, session domain.Session, fieldID string, req dto.UpdateCustomFieldRequest) (*domain.CustomField, error)
	DeleteCustomField(ctx context.Context, session domain.Session, fieldID string, version *int64) error
}
