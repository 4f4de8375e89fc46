package services

import (
	"context"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
)

// FeedJournalSvcFacade defines operations on the operations diary
type FeedJournalSvcFacade interface {
	GetFeedJournal(ctx context.Context, session domain.Session, journalID string) (*domain.FeedJournal, error)
	ListFeedJournals(ctx context.Context, session domain.Session, params dto.ListFeedJournalsParams) ([]domain.FeedJournal, *string, error)
	CreateFeedJournal(ctx context.Context, session domain.Session, req dto.CreateFeedJournalRequest) (*domain.FeedJournal, error)
	DeleteFeedJournal(ctx context.Context, session domain.Session, journalID string) error
}
