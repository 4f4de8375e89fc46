package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type categoryService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	categoryRepo portsrepo.CategoryRepositoryFacade
	audit        portssvc.AuditRecorderSvc
	now          func() time.Time
}

// NewCategoryService creates a category service whose writes are audited.
func NewCategoryService(txManager portsrepo.TransactionManager, repo portsrepo.CategoryRepositoryFacade, audit portssvc.AuditRecorderSvc) portssvc.CategorySvcFacade {
	return &categoryService{
		txManager:    txManager,
		categoryRepo: repo,
		audit:        audit,
		now:          time.Now,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) GetCategory(ctx context.Context, session domain.Session, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, session.OwnerID, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find category", slog.String("category_id", categoryID))
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, session domain.Session, flow *domain.Flow) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, session.OwnerID, flow)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories", slog.String("owner_id", session.OwnerID))
		return nil, err
	}
	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, session domain.Session, req dto.CreateCategoryRequest) (*domain.Category, error) {
	if err := s.AuthorizeWrite(ctx, session); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}
	if !req.Flow.IsCategorized() {
		return nil, fmt.Errorf("%w: category flow must be INCOME or EXPENSE", apperrors.ErrValidation)
	}

	category := domain.Category{
		CategoryID:  uuid.NewString(),
		OwnerID:     session.OwnerID,
		Name:        name,
		Flow:        req.Flow,
		ParentID:    req.ParentID,
		IsActive:    true,
		AuditFields: newAuditFields(session, s.now),
	}

	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	} else {
		// New categories go last within their flow.
		existing, err := s.categoryRepo.ListCategories(ctx, session.OwnerID, &req.Flow)
		if err != nil {
			s.LogError(ctx, err, "Failed to list categories", slog.String("owner_id", session.OwnerID))
			return nil, err
		}
		category.SortOrder = len(existing)
	}

	var entry *domain.AuditLog
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		if err := s.categoryRepo.SaveCategoryInTx(ctx, tx, category); err != nil {
			return err
		}
		var err error
		entry, err = s.audit.CreateAuditLog(ctx, tx, portssvc.AuditRecord{
			OwnerID:  session.OwnerID,
			Actor:    session.Actor,
			Action:   domain.ActionCreate,
			Entity:   domain.EntityCategory,
			EntityID: strPtr(category.CategoryID),
			After:    category,
		})
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create category", slog.String("owner_id", session.OwnerID))
		return nil, err
	}
	s.audit.Publish(ctx, *entry)
	return &category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, session domain.Session, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	if err := s.AuthorizeWrite(ctx, session); err != nil {
		return nil, err
	}

	var updated domain.Category
	var entry *domain.AuditLog
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		current, err := s.categoryRepo.FindCategoryForUpdate(ctx, tx, session.OwnerID, categoryID)
		if err != nil {
			return err
		}
		if err := checkVersion(req.Version, current.Version); err != nil {
			return err
		}

		updated = *current
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return fmt.Errorf("%w: category name cannot be empty", apperrors.ErrValidation)
			}
			updated.Name = name
		}
		if req.SortOrder != nil {
			updated.SortOrder = *req.SortOrder
		}
		if req.IsActive != nil {
			updated.IsActive = *req.IsActive
		}
		touch(&updated.AuditFields, session, s.now)

		if err := s.categoryRepo.UpdateCategoryInTx(ctx, tx, updated); err != nil {
			return err
		}
		entry, err = s.audit.CreateAuditLog(ctx, tx, portssvc.AuditRecord{
			OwnerID:  session.OwnerID,
			Actor:    session.Actor,
			Action:   domain.ActionUpdate,
			Entity:   domain.EntityCategory,
			EntityID: strPtr(categoryID),
			Before:   current,
			After:    updated,
		})
		return err
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		}
		return nil, err
	}
	s.audit.Publish(ctx, *entry)
	return &updated, nil
}

// DeleteCategory removes the category. Transactions that used it fall into
// the "Other" bucket of summaries.
func (s *categoryService) DeleteCategory(ctx context.Context, session domain.Session, categoryID string, version *int64) error {
	if err := s.AuthorizeWrite(ctx, session); err != nil {
		return err
	}

	var entry *domain.AuditLog
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		current, err := s.categoryRepo.FindCategoryForUpdate(ctx, tx, session.OwnerID, categoryID)
		if err != nil {
			return err
		}
		if err := checkVersion(version, current.Version); err != nil {
			return err
		}
		if err := s.categoryRepo.DeleteCategoryInTx(ctx, tx, session.OwnerID, categoryID); err != nil {
			return err
		}
		entry, err = s.audit.CreateAuditLog(ctx, tx, portssvc.AuditRecord{
			OwnerID:  session.OwnerID,
			Actor:    session.Actor,
			Action:   domain.ActionDelete,
			Entity:   domain.EntityCategory,
			EntityID: strPtr(categoryID),
			Before:   current,
		})
		return err
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to delete category", slog.String("category_id", categoryID))
		}
		return err
	}
	s.audit.Publish(ctx, *entry)
	return nil
}
