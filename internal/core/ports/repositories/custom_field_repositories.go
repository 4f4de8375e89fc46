package repositories

import (
	"context"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CustomFieldReader defines read operations for custom field definitions
type CustomFieldReader interface {
	FindCustomFieldByID(ctx context.Context, ownerID, fieldID string) (*domain.CustomField, error)

	// ListCustomFields retrieves the owner's definitions ordered by sort order.
	ListCustomFields(ctx context.Context, ownerID string) ([]domain.CustomField, error)

	FindCustomFieldForUpdate(ctx context.Context, tx pgx.Tx, ownerID, fieldID string) (*domain.CustomField, error)
}

// CustomFieldWriter defines write operations for custom field definitions.
// A field key already used by the owner yields apperrors.ErrDuplicate.
type CustomFieldWriter interface {
	SaveCustomFieldInTx(ctx context.Context, tx pgx.Tx, field domain.CustomField) error
	UpdateCustomFieldInTx(ctx context.Context, tx pgx.Tx, field domain.CustomField) error
	DeleteCustomFieldInTx(ctx context.Context, tx pgx.Tx, ownerID, fieldID string) error
}

// CustomFieldRepositoryFacade combines all custom field repository interfaces
type CustomFieldRepositoryFacade interface {
	CustomFieldReader
	CustomFieldWriter
}
