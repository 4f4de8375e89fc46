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
	"github.com/shopspring/decimal"
)

type walletService struct {
	BaseService
	txManager  portsrepo.TransactionManager
	walletRepo portsrepo.WalletRepositoryFacade
	audit      portssvc.AuditRecorderSvc
	now        func() time.Time
}

// NewWalletService creates a wallet service whose writes are audited.
func NewWalletService(txManager portsrepo.TransactionManager, repo portsrepo.WalletRepositoryFacade, audit portssvc.AuditRecorderSvc) portssvc.WalletSvcFacade {
	return &walletService{
		txManager:  txManager,
		walletRepo: repo,
		audit:      audit,
		now:        time.Now,
	}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

func (s *walletService) GetWallet(ctx context.Context, session domain.Session, walletID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByID(ctx, session.OwnerID, walletID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find wallet", slog.String("wallet_id", walletID))
		}
		return nil, err
	}
	return wallet, nil
}

func (s *walletService) ListWallets(ctx context.Context, session domain.Session) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.ListWallets(ctx, session.OwnerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list wallets", slog.String("owner_id", session.OwnerID))
		return nil, err
	}
	return wallets, nil
}

func (s *walletService) CreateWallet(ctx context.Context, session domain.Session, req dto.CreateWalletRequest) (*domain.Wallet, error) {
	if err := s.AuthorizeWrite(ctx, session); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: wallet name is required", apperrors.ErrValidation)
	}
	if err := checkWholeAmount(req.OpeningBalance); err != nil {
		return nil, err
	}

	wallet := domain.Wallet{
		WalletID:       uuid.NewString(),
		OwnerID:        session.OwnerID,
		Name:           name,
		WalletType:     req.WalletType,
		OpeningBalance: req.OpeningBalance,
		IsActive:       true,
		AuditFields:    newAuditFields(session, s.now),
	}

	var entry *domain.AuditLog
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		if err := s.walletRepo.SaveWalletInTx(ctx, tx, wallet); err != nil {
			return err
		}
		var err error
		entry, err = s.audit.CreateAuditLog(ctx, tx, portssvc.AuditRecord{
			OwnerID:  session.OwnerID,
			Actor:    session.Actor,
			Action:   domain.ActionCreate,
			Entity:   domain.EntityWallet,
			EntityID: strPtr(wallet.WalletID),
			After:    wallet,
		})
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create wallet", slog.String("owner_id", session.OwnerID))
		return nil, err
	}
	s.audit.Publish(ctx, *entry)

	s.LogInfo(ctx, "Wallet created", slog.String("wallet_id", wallet.WalletID))
	return &wallet, nil
}

func (s *walletService) UpdateWallet(ctx context.Context, session domain.Session, walletID string, req dto.UpdateWalletRequest) (*domain.Wallet, error) {
	if err := s.AuthorizeWrite(ctx, session); err != nil {
		return nil, err
	}
	if req.OpeningBalance != nil {
		if err := checkWholeAmount(*req.OpeningBalance); err != nil {
			return nil, err
		}
	}

	var updated domain.Wallet
	var entry *domain.AuditLog
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		current, err := s.walletRepo.FindWalletForUpdate(ctx, tx, session.OwnerID, walletID)
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
				return fmt.Errorf("%w: wallet name cannot be empty", apperrors.ErrValidation)
			}
			updated.Name = name
		}
		if req.WalletType != nil {
			updated.WalletType = *req.WalletType
		}
		if req.OpeningBalance != nil {
			updated.OpeningBalance = *req.OpeningBalance
		}
		if req.IsActive != nil {
			updated.IsActive = *req.IsActive
		}
		touch(&updated.AuditFields, session, s.now)

		if err := s.walletRepo.UpdateWalletInTx(ctx, tx, updated); err != nil {
			return err
		}
		entry, err = s.audit.CreateAuditLog(ctx, tx, portssvc.AuditRecord{
			OwnerID:  session.OwnerID,
			Actor:    session.Actor,
			Action:   domain.ActionUpdate,
			Entity:   domain.EntityWallet,
			EntityID: strPtr(walletID),
			Before:   current,
			After:    updated,
		})
		return err
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to update wallet", slog.String("wallet_id", walletID))
		}
		return nil, err
	}
	s.audit.Publish(ctx, *entry)
	return &updated, nil
}

// DeleteWallet removes the wallet. Transactions that reference it are kept
// and still count towards other wallets' balances.
func (s *walletService) DeleteWallet(ctx context.Context, session domain.Session, walletID string, version *int64) error {
	if err := s.AuthorizeWrite(ctx, session); err != nil {
		return err
	}

	var entry *domain.AuditLog
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		current, err := s.walletRepo.FindWalletForUpdate(ctx, tx, session.OwnerID, walletID)
		if err != nil {
			return err
		}
		if err := checkVersion(version, current.Version); err != nil {
			return err
		}
		if err := s.walletRepo.DeleteWalletInTx(ctx, tx, session.OwnerID, walletID); err != nil {
			return err
		}
		entry, err = s.audit.CreateAuditLog(ctx, tx, portssvc.AuditRecord{
			OwnerID:  session.OwnerID,
			Actor:    session.Actor,
			Action:   domain.ActionDelete,
			Entity:   domain.EntityWallet,
			EntityID: strPtr(walletID),
			Before:   current,
		})
		return err
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to delete wallet", slog.String("wallet_id", walletID))
		}
		return err
	}
	s.audit.Publish(ctx, *entry)
	return nil
}

func checkWholeAmount(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(domain.MoneyScale)) {
		return validationError(domain.ErrFractionalAmount)
	}
	return nil
}

// isClientError reports whether err is caused by the request rather than
// the system, so it need not be logged as an error.
func isClientError(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrConflict) ||
		errors.Is(err, apperrors.ErrDuplicate) ||
		errors.Is(err, apperrors.ErrForbidden)
}
