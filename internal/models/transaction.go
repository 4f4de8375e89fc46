package models

import "github.com/shopspring/decimal"

// Transaction represents a row of the transactions table. Rows are never
// removed; IsDeleted marks a soft delete.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	OwnerID       string          `db:"owner_id"`
	TxnDate       string          `db:"txn_date"`
	Flow          string          `db:"flow"`
	Amount        decimal.Decimal `db:"amount"`
	WalletID      string          `db:"wallet_id"`
	ToWalletID    *string         `db:"to_wallet_id"`
	CategoryID    *string         `db:"category_id"`
	Note          string          `db:"note"`
	CustomFields  map[string]any  `db:"custom_fields"` // JSONB
	IsDeleted     bool            `db:"is_deleted"`
	AuditFields
}
