package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/farm_ledger_app/internal/models"
	"github.com/SscSPs/farm_ledger_app/internal/utils/mapping"
	"github.com/SscSPs/farm_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// txn_date is a DATE column and is read back as its ISO text form.
const transactionColumns = `transaction_id, owner_id, txn_date::text, flow, amount, wallet_id, to_wallet_id,
	category_id, note, custom_fields, is_deleted,
	created_at, created_by, last_updated_at, last_updated_by, version`

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.OwnerID,
		&m.TxnDate,
		&m.Flow,
		&m.Amount,
		&m.WalletID,
		&m.ToWalletID,
		&m.CategoryID,
		&m.Note,
		&m.CustomFields,
		&m.IsDeleted,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

func collectTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	defer rows.Close()
	txns := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE owner_id = $1 AND transaction_id = $2;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, ownerID, transactionID))
	if err != nil {
		return nil, notFoundOr(err, "failed to find transaction "+transactionID)
	}
	t := mapping.ToDomainTransaction(m)
	return &t, nil
}

func (r *PgxTransactionRepository) FindTransactionForUpdate(ctx context.Context, tx pgx.Tx, ownerID, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE owner_id = $1 AND transaction_id = $2 FOR UPDATE;`
	m, err := scanTransaction(tx.QueryRow(ctx, query, ownerID, transactionID))
	if err != nil {
		return nil, notFoundOr(err, "failed to lock transaction "+transactionID)
	}
	t := mapping.ToDomainTransaction(m)
	return &t, nil
}

func (r *PgxTransactionRepository) ListAllTransactions(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE owner_id = $1 ORDER BY txn_date, created_at, transaction_id;`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	txns, err := collectTransactions(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTransactionSlice(txns), nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, ownerID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	conds := []string{"owner_id = $1"}
	args := []any{ownerID}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if !filter.IncludeDeleted {
		conds = append(conds, "is_deleted = FALSE")
	}
	if filter.From != "" {
		conds = append(conds, "txn_date >= "+arg(filter.From)+"::date")
	}
	if filter.To != "" {
		conds = append(conds, "txn_date <= "+arg(filter.To)+"::date")
	}
	if filter.WalletID != "" {
		p := arg(filter.WalletID)
		conds = append(conds, "(wallet_id = "+p+" OR to_wallet_id = "+p+")")
	}
	if filter.Flow != "" {
		conds = append(conds, "flow = "+arg(string(filter.Flow)))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		conds = append(conds, fmt.Sprintf("(txn_date, created_at, transaction_id) < (%s::date, %s, %s)",
			arg(cursor.Date), arg(cursor.CreatedAt), arg(cursor.ID)))
	}

	// Fetch one extra row to know whether another page exists.
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY txn_date DESC, created_at DESC, transaction_id DESC LIMIT ` + arg(limit+1) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions page: %w", err)
	}
	txns, err := collectTransactions(rows)
	if err != nil {
		return nil, nil, err
	}

	var newNextToken *string
	if len(txns) > limit {
		last := txns[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.TxnDate, CreatedAt: last.CreatedAt, ID: last.TransactionID})
		newNextToken = &token
		txns = txns[:limit]
	}
	return mapping.ToDomainTransactionSlice(txns), newNextToken, nil
}

func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (transaction_id, owner_id, txn_date, flow, amount, wallet_id, to_wallet_id,
			category_id, note, custom_fields, is_deleted,
			created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.OwnerID,
		m.TxnDate,
		m.Flow,
		m.Amount,
		m.WalletID,
		m.ToWalletID,
		m.CategoryID,
		m.Note,
		m.CustomFields,
		m.IsDeleted,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

func (r *PgxTransactionRepository) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET txn_date = $3::date, flow = $4, amount = $5, wallet_id = $6, to_wallet_id = $7,
			category_id = $8, note = $9, custom_fields = $10, is_deleted = $11,
			last_updated_at = $12, last_updated_by = $13, version = $14
		WHERE owner_id = $1 AND transaction_id = $2;
	`
	tag, err := tx.Exec(ctx, query,
		m.OwnerID,
		m.TransactionID,
		m.TxnDate,
		m.Flow,
		m.Amount,
		m.WalletID,
		m.ToWalletID,
		m.CategoryID,
		m.Note,
		m.CustomFields,
		m.IsDeleted,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	return expectOne(tag)
}
