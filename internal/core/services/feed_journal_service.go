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

type feedJournalService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	journalRepo portsrepo.FeedJournalRepositoryFacade
	audit       portssvc.AuditRecorderSvc
	now         func() time.Time
}

// NewFeedJournalService creates the operations diary service.
func NewFeedJournalService(txManager portsrepo.TransactionManager, repo portsrepo.FeedJournalRepositoryFacade, audit portssvc.AuditRecorderSvc) portssvc.FeedJournalSvcFacade {
	return &feedJournalService{
		txManager:   txManager,
		journalRepo: repo,
		audit:       audit,
		now:         time.Now,
	}
}

var _ portssvc.FeedJournalSvcFacade = (*feedJournalService)(nil)

func (s *feedJournalService) GetFeedJournal(ctx context.Context, session domain.Session, journalID string) (*domain.FeedJournal, error) {
	entry, err := s.journalRepo.FindFeedJournalByID(ctx, session.OwnerID, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find feed journal", slog.String("journal_id", journalID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *feedJournalService) ListFeedJournals(ctx context.Context, session domain.Session, params dto.ListFeedJournalsParams) ([]domain.FeedJournal, *string, error) {
	filter := params.Filter()
	filter.Tag = strings.TrimSpace(filter.Tag)

	entries, nextToken, err := s.journalRepo.ListFeedJournals(ctx, session.OwnerID, filter, params.Limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list feed journals", slog.String("owner_id", session.OwnerID))
		}
		return nil, nil, err
	}
	return entries, nextToken, nil
}

func (s *feedJournalService) CreateFeedJournal(ctx context.Context, session domain.Session, req dto.CreateFeedJournalRequest) (*domain.FeedJournal, error) {
	if err := s.AuthorizeWrite(ctx, session); err != nil {
		return nil, err
	}
	if !domain.IsValidDate(req.JournalDate) {
		return nil, fmt.Errorf("%w: journal date must be a YYYY-MM-DD date", apperrors.ErrValidation)
	}

	entry := domain.FeedJournal{
		JournalID:   uuid.NewString(),
		OwnerID:     session.OwnerID,
		JournalDate: req.JournalDate,
		Note:        strings.TrimSpace(req.Note),
		Tags:        domain.NormalizeTags(req.Tags),
		AuditFields: newAuditFields(session, s.now),
	}
	if req.ImageURL != nil && strings.TrimSpace(*req.ImageURL) != "" {
		entry.ImageURL = strPtr(strings.TrimSpace(*req.ImageURL))
	}

	var logEntry *domain.AuditLog
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		if err := s.journalRepo.SaveFeedJournalInTx(ctx, tx, entry); err != nil {
			return err
		}
		var err error
		logEntry, err = s.audit.CreateAuditLog(ctx, tx, portssvc.AuditRecord{
			OwnerID:  session.OwnerID,
			Actor:    session.Actor,
			Action:   domain.ActionCreate,
			Entity:   domain.EntityFeedJournal,
			EntityID: strPtr(entry.JournalID),
			After:    entry,
		})
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create feed journal", slog.String("owner_id", session.OwnerID))
		return nil, err
	}
	s.audit.Publish(ctx, *logEntry)
	return &entry, nil
}

func (s *feedJournalService) DeleteFeedJournal(ctx context.Context, session domain.Session, journalID string) error {
	if err := s.AuthorizeWrite(ctx, session); err != nil {
		return err
	}

	var logEntry *domain.AuditLog
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		current, err := s.journalRepo.FindFeedJournalForUpdate(ctx, tx, session.OwnerID, journalID)
		if err != nil {
			return err
		}
		if err := s.journalRepo.DeleteFeedJournalInTx(ctx, tx, session.OwnerID, journalID); err != nil {
			return err
		}
		logEntry, err = s.audit.CreateAuditLog(ctx, tx, portssvc.AuditRecord{
			OwnerID:  session.OwnerID,
			Actor:    session.Actor,
			Action:   domain.ActionDelete,
			Entity:   domain.EntityFeedJournal,
			EntityID: strPtr(journalID),
			Before:   current,
		})
		return err
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to delete feed journal", slog.String("journal_id", journalID))
		}
		return err
	}
	s.audit.Publish(ctx, *logEntry)
	return nil
}
