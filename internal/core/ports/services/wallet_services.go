package services

import (
	"context"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
)

// WalletReaderSvc defines read operations for wallets
type WalletReaderSvc interface {
	GetWallet(ctx context.Context, session domain.Session, walletID string) (*domain.Wallet, error)
	ListWallets(ctx context.Context, session domain.Session) ([]domain.Wallet, error)
}

// WalletWriterSvc defines audited write operations for wallets
type WalletWriterSvc interface {
	CreateWallet(ctx context.Context, session domain.Session, req dto.CreateWalletRequest) (*domain.Wallet, error)
	UpdateWallet(ctx context.Context, session domain.Session, walletID string, req dto.UpdateWalletRequest) (*domain.Wallet, error)
	DeleteWallet(ctx context.Context, session domain.Session, walletID string, version *int64) error
}

// WalletSvcFacade combines all wallet-related service interfaces
type WalletSvcFacade interface {
	WalletReaderSvc
	WalletWriterSvc
}
