package repositories

import (
	"context"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// WalletReader defines read operations for wallet data
type WalletReader interface {
	// FindWalletByID retrieves a wallet of the owner.
	FindWalletByID(ctx context.Context, ownerID, walletID string) (*domain.Wallet, error)

	// ListWallets retrieves every wallet of the owner, active and inactive.
	ListWallets(ctx context.Context, ownerID string) ([]domain.Wallet, error)

	// FindWalletForUpdate reads and row-locks a wallet inside tx.
	FindWalletForUpdate(ctx context.Context, tx pgx.Tx, ownerID, walletID string) (*domain.Wallet, error)
}

// WalletWriter defines write operations for wallet data
type WalletWriter interface {
	SaveWalletInTx(ctx context.Context, tx pgx.Tx, wallet domain.Wallet) error

	// UpdateWalletInTx writes the wallet's mutable fields and version.
	UpdateWalletInTx(ctx context.Context, tx pgx.Tx, wallet domain.Wallet) error

	// DeleteWalletInTx removes the wallet row. Transactions that reference
	// it are kept.
	DeleteWalletInTx(ctx context.Context, tx pgx.Tx, ownerID, walletID string) error
}

// WalletRepositoryFacade combines all wallet-related repository interfaces
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
}
