package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/farm_ledger_app/internal/models"
	"github.com/SscSPs/farm_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxWalletRepository struct {
	BaseRepository
}

func newPgxWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepositoryFacade {
	return &PgxWalletRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)

const walletColumns = `wallet_id, owner_id, name, wallet_type, opening_balance, is_active,
	created_at, created_by, last_updated_at, last_updated_by, version`

func scanWallet(row rowScanner) (models.Wallet, error) {
	var m models.Wallet
	err := row.Scan(
		&m.WalletID,
		&m.OwnerID,
		&m.Name,
		&m.WalletType,
		&m.OpeningBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

func (r *PgxWalletRepository) FindWalletByID(ctx context.Context, ownerID, walletID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE owner_id = $1 AND wallet_id = $2;`
	m, err := scanWallet(r.Pool.QueryRow(ctx, query, ownerID, walletID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find wallet "+walletID)
	}
	w := mapping.ToDomainWallet(m)
	return &w, nil
}

func (r *PgxWalletRepository) FindWalletForUpdate(ctx context.Context, tx pgx.Tx, ownerID, walletID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE owner_id = $1 AND wallet_id = $2 FOR UPDATE;`
	m, err := scanWallet(tx.QueryRow(ctx, query, ownerID, walletID))
	if err != nil {
		return nil, notFoundOr(err, "failed to lock wallet "+walletID)
	}
	w := mapping.ToDomainWallet(m)
	return &w, nil
}

func (r *PgxWalletRepository) ListWallets(ctx context.Context, ownerID string) ([]domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE owner_id = $1 ORDER BY created_at, wallet_id;`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets: %w", err)
	}
	defer rows.Close()

	wallets := []models.Wallet{}
	for rows.Next() {
		m, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet row: %w", err)
		}
		wallets = append(wallets, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet rows: %w", err)
	}
	return mapping.ToDomainWalletSlice(wallets), nil
}

func (r *PgxWalletRepository) SaveWalletInTx(ctx context.Context, tx pgx.Tx, wallet domain.Wallet) error {
	m := mapping.ToModelWallet(wallet)
	query := `
		INSERT INTO wallets (wallet_id, owner_id, name, wallet_type, opening_balance, is_active,
			created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.WalletID,
		m.OwnerID,
		m.Name,
		m.WalletType,
		m.OpeningBalance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: wallet with ID %s already exists", apperrors.ErrDuplicate, m.WalletID)
		}
		return fmt.Errorf("failed to insert wallet: %w", err)
	}
	return nil
}

func (r *PgxWalletRepository) UpdateWalletInTx(ctx context.Context, tx pgx.Tx, wallet domain.Wallet) error {
	m := mapping.ToModelWallet(wallet)
	query := `
		UPDATE wallets
		SET name = $3, wallet_type = $4, opening_balance = $5, is_active = $6,
			last_updated_at = $7, last_updated_by = $8, version = $9
		WHERE owner_id = $1 AND wallet_id = $2;
	`
	tag, err := tx.Exec(ctx, query,
		m.OwnerID,
		m.WalletID,
		m.Name,
		m.WalletType,
		m.OpeningBalance,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update wallet %s: %w", m.WalletID, err)
	}
	return expectOne(tag)
}

func (r *PgxWalletRepository) DeleteWalletInTx(ctx context.Context, tx pgx.Tx, ownerID, walletID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM wallets WHERE owner_id = $1 AND wallet_id = $2;`, ownerID, walletID)
	if err != nil {
		return fmt.Errorf("failed to delete wallet %s: %w", walletID, err)
	}
	return expectOne(tag)
}
