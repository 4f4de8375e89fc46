package repositories

import (
	"context"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction of the owner, deleted or not.
	FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error)

	// FindTransactionForUpdate reads and row-locks a transaction inside tx.
	FindTransactionForUpdate(ctx context.Context, tx pgx.Tx, ownerID, transactionID string) (*domain.Transaction, error)

	// ListAllTransactions retrieves every row of the owner including soft
	// deleted ones. The balance and summary engines filter them.
	ListAllTransactions(ctx context.Context, ownerID string) ([]domain.Transaction, error)

	// ListTransactions retrieves a page of transactions ordered by txn_date
	// DESC, created_at DESC using token-based pagination.
	// It returns the transactions, a token for the next page, and an error.
	ListTransactions(ctx context.Context, ownerID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for transaction data.
// Transactions are never hard-deleted.
type TransactionWriter interface {
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// UpdateTransactionInTx writes every mutable column including
	// is_deleted and version.
	UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
