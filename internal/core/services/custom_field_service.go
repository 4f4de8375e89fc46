package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/core/ledger"
	portsrepo "github.com/SscSPs/farm_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type customFieldService struct {
	BaseService
	txManager       portsrepo.TransactionManager
	customFieldRepo portsrepo.CustomFieldRepositoryFacade
	audit           portssvc.AuditRecorderSvc
	now             func() time.Time
}

// NewCustomFieldService creates the service managing custom field
// definitions.
func NewCustomFieldService(txManager portsrepo.TransactionManager, repo portsrepo.CustomFieldRepositoryFacade, audit portssvc.AuditRecorderSvc) portssvc.CustomFieldSvcFacade {
	return &customFieldService{
		txManager:       txManager,
		customFieldRepo: repo,
		audit:           audit,
		now:             time.Now,
	}
}

var _ portssvc.CustomFieldSvcFacade = (*customFieldService)(nil)

func (s *customFieldService) GetCustomField(ctx context.Context, session domain.Session, fieldID string) (*domain.CustomField, error) {
	field, err := s.customFieldRepo.FindCustomFieldByID(ctx, session.OwnerID, fieldID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find custom field", slog.String("field_id", fieldID))
		}
		return nil, err
	}
	return field, nil
}

func (s *customFieldService) ListCustomFields(ctx context.Context, session domain.Session) ([]domain.CustomField, error) {
	fields, err := s.customFieldRepo.ListCustomFields(ctx, session.OwnerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list custom fields", slog.String("owner_id", session.OwnerID))
		return nil, err
	}
	return fields, nil
}

func (s *customFieldService) CreateCustomField(ctx context.Context, session domain.Session, req dto.CreateCustomFieldRequest) (*domain.CustomField, error) {
	if err := s.AuthorizeWrite(ctx, session); err != nil {
		return nil, err
	}

	field := domain.CustomField{
		FieldID:     uuid.NewString(),
		OwnerID:     session.OwnerID,
		FieldKey:    strings.TrimSpace(req.FieldKey),
		FieldName:   strings.TrimSpace(req.FieldName),
		FieldType:   req.FieldType,
		IsActive:    true,
		AuditFields: newAuditFields(session, s.now),
	}
	if field.FieldType.IsSelect() {
		field.Config.Options = normalizeOptions(req.Options)
	}
	if req.SortOrder != nil {
		field.SortOrder = *req.SortOrder
	}
	if err := ledger.CheckCustomFieldDefinition(field); err != nil {
		return nil, validationError(err)
	}

	if req.SortOrder == nil {
		existing, err := s.customFieldRepo.ListCustomFields(ctx, session.OwnerID)
		if err != nil {
			s.LogError(ctx, err, "Failed to list custom fields", slog.String("owner_id", session.OwnerID))
			return nil, err
		}
		field.SortOrder = len(existing)
	}

	var entry *domain.AuditLog
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		if err := s.customFieldRepo.SaveCustomFieldInTx(ctx, tx, field); err != nil {
			return err
		}
		var err error
		entry, err = s.audit.CreateAuditLog(ctx, tx, portssvc.AuditRecord{
			OwnerID:  session.OwnerID,
			Actor:    session.Actor,
			Action:   domain.ActionCreate,
			Entity:   domain.EntityCustomField,
			EntityID: strPtr(field.FieldID),
			After:    field,
		})
		return err
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to create custom field", slog.String("field_key", field.FieldKey))
		}
		return nil, err
	}
	s.audit.Publish(ctx, *entry)
	return &field, nil
}

// UpdateCustomField changes the label, options, order or activity of a
// field. Its key and type are fixed once created since stored values
// depend on them.
func (s *customFieldService) UpdateCustomField(ctx context.Context, session domain.Session, fieldID string, req dto.UpdateCustomFieldRequest) (*domain.CustomField, error) {
	if err := s.AuthorizeWrite(ctx, session); err != nil {
		return nil, err
	}

	var updated domain.CustomField
	var entry *domain.AuditLog
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		current, err := s.customFieldRepo.FindCustomFieldForUpdate(ctx, tx, session.OwnerID, fieldID)
		if err != nil {
			return err
		}
		if err := checkVersion(req.Version, current.Version); err != nil {
			return err
		}

		updated = *current
		if req.FieldName != nil {
			updated.FieldName = strings.TrimSpace(*req.FieldName)
		}
		if req.Options != nil && updated.FieldType.IsSelect() {
			updated.Config.Options = normalizeOptions(req.Options)
		}
		if req.SortOrder != nil {
			updated.SortOrder = *req.SortOrder
		}
		if req.IsActive != nil {
			updated.IsActive = *req.IsActive
		}
		if err := ledger.CheckCustomFieldDefinition(updated); err != nil {
			return validationError(err)
		}
		touch(&updated.AuditFields, session, s.now)

		if err := s.customFieldRepo.UpdateCustomFieldInTx(ctx, tx, updated); err != nil {
			return err
		}
		entry, err = s.audit.CreateAuditLog(ctx, tx, portssvc.AuditRecord{
			OwnerID:  session.OwnerID,
			Actor:    session.Actor,
			Action:   domain.ActionUpdate,
			Entity:   domain.EntityCustomField,
			EntityID: strPtr(fieldID),
			Before:   current,
			After:    updated,
		})
		return err
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to update custom field", slog.String("field_id", fieldID))
		}
		return nil, err
	}
	s.audit.Publish(ctx, *entry)
	return &updated, nil
}

// DeleteCustomField removes the definition. Values stored on transactions
// are kept but no longer validated or exported.
func (s *customFieldService) DeleteCustomField(ctx context.Context, session domain.Session, fieldID string, version *int64) error {
	if err := s.AuthorizeWrite(ctx, session); err != nil {
		return err
	}

	var entry *domain.AuditLog
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		current, err := s.customFieldRepo.FindCustomFieldForUpdate(ctx, tx, session.OwnerID, fieldID)
		if err != nil {
			return err
		}
		if err := checkVersion(version, current.Version); err != nil {
			return err
		}
		if err := s.customFieldRepo.DeleteCustomFieldInTx(ctx, tx, session.OwnerID, fieldID); err != nil {
			return err
		}
		entry, err = s.audit.CreateAuditLog(ctx, tx, portssvc.AuditRecord{
			OwnerID:  session.OwnerID,
			Actor:    session.Actor,
			Action:   domain.ActionDelete,
			Entity:   domain.EntityCustomField,
			EntityID: strPtr(fieldID),
			Before:   current,
		})
		return err
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to delete custom field", slog.String("field_id", fieldID))
		}
		return err
	}
	s.audit.Publish(ctx, *entry)
	return nil
}

// normalizeOptions trims options and drops blanks and repeats, keeping
// the order they were given in.
func normalizeOptions(options []string) []string {
	return domain.NormalizeTags(options)
}
