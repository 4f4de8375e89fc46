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
	"github.com/SscSPs/farm_ledger_app/internal/core/ledger"
	portsrepo "github.com/SscSPs/farm_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

type transactionService struct {
	BaseService
	txManager       portsrepo.TransactionManager
	transactionRepo portsrepo.TransactionRepositoryFacade
	walletRepo      portsrepo.WalletReader
	categoryRepo    portsrepo.CategoryReader
	customFieldRepo portsrepo.CustomFieldReader
	audit           portssvc.AuditRecorderSvc
	now             func() time.Time
}

// NewTransactionService creates the service that authors ledger
// transactions. Candidates are checked against the owner's wallets,
// categories and custom fields before they are stored.
func NewTransactionService(
	txManager portsrepo.TransactionManager,
	transactionRepo portsrepo.TransactionRepositoryFacade,
	walletRepo portsrepo.WalletReader,
	categoryRepo portsrepo.CategoryReader,
	customFieldRepo portsrepo.CustomFieldReader,
	audit portssvc.AuditRecorderSvc,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txManager:       txManager,
		transactionRepo: transactionRepo,
		walletRepo:      walletRepo,
		categoryRepo:    categoryRepo,
		customFieldRepo: customFieldRepo,
		audit:           audit,
		now:             time.Now,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) GetTransaction(ctx context.Context, session domain.Session, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, session.OwnerID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, session domain.Session, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	txns, nextToken, err := s.transactionRepo.ListTransactions(ctx, session.OwnerID, params.Filter(), params.Limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list transactions", slog.String("owner_id", session.OwnerID))
		}
		return nil, nil, err
	}
	return txns, nextToken, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, session domain.Session, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if err := s.AuthorizeWrite(ctx, session); err != nil {
		return nil, err
	}

	refs, err := s.loadRefs(ctx, session.OwnerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transaction references", slog.String("owner_id", session.OwnerID))
		return nil, err
	}

	txn := applyRequest(domain.Transaction{
		TransactionID: uuid.NewString(),
		OwnerID:       session.OwnerID,
		AuditFields:   newAuditFields(session, s.now),
	}, req)
	if err := ledger.CheckTransaction(txn, nil, refs); err != nil {
		return nil, validationError(err)
	}

	var entry *domain.AuditLog
	err = runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		if err := s.transactionRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
			return err
		}
		var err error
		entry, err = s.audit.CreateAuditLog(ctx, tx, portssvc.AuditRecord{
			OwnerID:  session.OwnerID,
			Actor:    session.Actor,
			Action:   domain.ActionCreate,
			Entity:   domain.EntityTransaction,
			EntityID: strPtr(txn.TransactionID),
			After:    txn,
		})
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create transaction", slog.String("owner_id", session.OwnerID))
		return nil, err
	}
	s.audit.Publish(ctx, *entry)

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("flow", string(txn.Flow)))
	return &txn, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, session domain.Session, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	if err := s.AuthorizeWrite(ctx, session); err != nil {
		return nil, err
	}

	refs, err := s.loadRefs(ctx, session.OwnerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transaction references", slog.String("owner_id", session.OwnerID))
		return nil, err
	}

	var updated domain.Transaction
	var entry *domain.AuditLog
	err = runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		current, err := s.transactionRepo.FindTransactionForUpdate(ctx, tx, session.OwnerID, transactionID)
		if err != nil {
			return err
		}
		if current.IsDeleted {
			return fmt.Errorf("%w: transaction is deleted, restore it first", apperrors.ErrValidation)
		}
		if err := checkVersion(req.Version, current.Version); err != nil {
			return err
		}

		updated = applyRequest(*current, req.CreateTransactionRequest)
		if err := ledger.CheckTransaction(updated, current, refs); err != nil {
			return validationError(err)
		}
		touch(&updated.AuditFields, session, s.now)

		if err := s.transactionRepo.UpdateTransactionInTx(ctx, tx, updated); err != nil {
			return err
		}
		entry, err = s.audit.CreateAuditLog(ctx, tx, portssvc.AuditRecord{
			OwnerID:  session.OwnerID,
			Actor:    session.Actor,
			Action:   domain.ActionUpdate,
			Entity:   domain.EntityTransaction,
			EntityID: strPtr(transactionID),
			Before:   current,
			After:    updated,
		})
		return err
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	s.audit.Publish(ctx, *entry)
	return &updated, nil
}

// DeleteTransaction marks the row deleted. The row is kept so the change
// can be restored and audited.
func (s *transactionService) DeleteTransaction(ctx context.Context, session domain.Session, transactionID string, version *int64) error {
	if err := s.AuthorizeWrite(ctx, session); err != nil {
		return err
	}

	var entry *domain.AuditLog
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		current, err := s.transactionRepo.FindTransactionForUpdate(ctx, tx, session.OwnerID, transactionID)
		if err != nil {
			return err
		}
		if current.IsDeleted {
			return fmt.Errorf("%w: transaction is already deleted", apperrors.ErrConflict)
		}
		if err := checkVersion(version, current.Version); err != nil {
			return err
		}

		deleted := *current
		deleted.IsDeleted = true
		touch(&deleted.AuditFields, session, s.now)
		if err := s.transactionRepo.UpdateTransactionInTx(ctx, tx, deleted); err != nil {
			return err
		}
		entry, err = s.audit.CreateAuditLog(ctx, tx, portssvc.AuditRecord{
			OwnerID:  session.OwnerID,
			Actor:    session.Actor,
			Action:   domain.ActionDelete,
			Entity:   domain.EntityTransaction,
			EntityID: strPtr(transactionID),
			Before:   current,
			After:    map[string]bool{"isDeleted": true},
		})
		return err
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		}
		return err
	}
	s.audit.Publish(ctx, *entry)
	return nil
}

// RestoreTransaction clears the deleted mark. References are not
// rechecked: the row was valid when it was written and inactive wallets or
// categories stay valid for history.
func (s *transactionService) RestoreTransaction(ctx context.Context, session domain.Session, transactionID string, version *int64) (*domain.Transaction, error) {
	if err := s.AuthorizeWrite(ctx, session); err != nil {
		return nil, err
	}

	var restored domain.Transaction
	var entry *domain.AuditLog
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		current, err := s.transactionRepo.FindTransactionForUpdate(ctx, tx, session.OwnerID, transactionID)
		if err != nil {
			return err
		}
		if !current.IsDeleted {
			return fmt.Errorf("%w: transaction is not deleted", apperrors.ErrConflict)
		}
		if err := checkVersion(version, current.Version); err != nil {
			return err
		}

		restored = *current
		restored.IsDeleted = false
		touch(&restored.AuditFields, session, s.now)
		if err := s.transactionRepo.UpdateTransactionInTx(ctx, tx, restored); err != nil {
			return err
		}
		entry, err = s.audit.CreateAuditLog(ctx, tx, portssvc.AuditRecord{
			OwnerID:  session.OwnerID,
			Actor:    session.Actor,
			Action:   domain.ActionUndo,
			Entity:   domain.EntityTransaction,
			EntityID: strPtr(transactionID),
			Before:   current,
			After:    restored,
		})
		return err
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to restore transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	s.audit.Publish(ctx, *entry)
	return &restored, nil
}

// loadRefs fetches the owner's reference data concurrently.
func (s *transactionService) loadRefs(ctx context.Context, ownerID string) (ledger.Refs, error) {
	var refs ledger.Refs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		refs.Wallets, err = s.walletRepo.ListWallets(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		refs.Categories, err = s.categoryRepo.ListCategories(gctx, ownerID, nil)
		return err
	})
	g.Go(func() error {
		var err error
		refs.CustomFields, err = s.customFieldRepo.ListCustomFields(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return ledger.Refs{}, err
	}
	return refs, nil
}

// applyRequest copies the editable fields of req onto txn and shapes the
// result for its flow.
func applyRequest(txn domain.Transaction, req dto.CreateTransactionRequest) domain.Transaction {
	txn.TxnDate = req.TxnDate
	txn.Flow = req.Flow
	txn.Amount = req.Amount
	txn.WalletID = req.WalletID
	txn.ToWalletID = req.ToWalletID
	txn.CategoryID = req.CategoryID
	txn.Note = strings.TrimSpace(req.Note)
	txn.CustomFields = req.CustomFields
	return ledger.Normalize(txn)
}
