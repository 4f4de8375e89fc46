package models

import "github.com/shopspring/decimal"

// Wallet represents a row of the wallets table. No balance column exists;
// balances are always derived.
type Wallet struct {
	WalletID       string          `db:"wallet_id"`
	OwnerID        string          `db:"owner_id"`
	Name           string          `db:"name"`
	WalletType     string          `db:"wallet_type"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
