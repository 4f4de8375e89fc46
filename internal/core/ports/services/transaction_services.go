package services

import (
	"context"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	GetTransaction(ctx context.Context, session domain.Session, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns a page of transactions and the token of the next page.
	ListTransactions(ctx context.Context, session domain.Session, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)
}

// TransactionWriterSvc defines audited write operations for transactions.
// A non-nil version must match the stored row or apperrors.ErrConflict is returned.
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, session domain.Session, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, session domain.Session, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction soft-deletes a transaction.
	DeleteTransaction(ctx context.Context, session domain.Session, transactionID string, version *int64) error

	// RestoreTransaction reverses a soft delete and records an UNDO entry.
	RestoreTransaction(ctx context.Context, session domain.Session, transactionID string, version *int64) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
