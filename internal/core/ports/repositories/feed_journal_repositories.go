package repositories

import (
	"context"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// FeedJournalReader defines read operations for the feed journal
type FeedJournalReader interface {
	FindFeedJournalByID(ctx context.Context, ownerID, journalID string) (*domain.FeedJournal, error)

	FindFeedJournalForUpdate(ctx context.Context, tx pgx.Tx, ownerID, journalID string) (*domain.FeedJournal, error)

	// ListFeedJournals retrieves a page ordered by journal_date DESC,
	// created_at DESC using token-based pagination.
	ListFeedJournals(ctx context.Context, ownerID string, filter domain.FeedJournalFilter, limit int, nextToken *string) ([]domain.FeedJournal, *string, error)

	// ListFeedJournalsInRange retrieves every entry in the inclusive range
	// ordered by journal_date ASC.
	ListFeedJournalsInRange(ctx context.Context, ownerID, from, to string) ([]domain.FeedJournal, error)
}

// FeedJournalWriter defines write operations for the feed journal
type FeedJournalWriter interface {
	SaveFeedJournalInTx(ctx context.Context, tx pgx.Tx, entry domain.FeedJournal) error
	DeleteFeedJournalInTx(ctx context.Context, tx pgx.Tx, ownerID, journalID string) error
}

// FeedJournalRepositoryFacade combines all feed journal repository interfaces
type FeedJournalRepositoryFacade interface {
	FeedJournalReader
	FeedJournalWriter
}
