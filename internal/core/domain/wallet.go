package domain

import (
	"github.com/shopspring/decimal"
)

// WalletType distinguishes cash boxes from bank accounts.
type WalletType string

const (
	WalletCash WalletType = "CASH"
	WalletBank WalletType = "BANK"
)

// Wallet is a named money-holding bucket. Its balance is never stored; it is
// derived from OpeningBalance and the visible transactions.
type Wallet struct {
	WalletID       string          `json:"walletID"`
	OwnerID        string          `json:"ownerID"`
	Name           string          `json:"name"`
	WalletType     WalletType      `json:"type"`
	OpeningBalance decimal.Decimal `json:"openingBalance"` // May be negative
	IsActive       bool            `json:"isActive"`       // Inactive wallets stay valid for history
	AuditFields
}
