package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Flow is the directional classification of a transaction.
type Flow string

const (
	FlowIncome   Flow = "INCOME"
	FlowExpense  Flow = "EXPENSE"
	FlowTransfer Flow = "TRANSFER"
)

// IsValid reports whether f is a known flow.
func (f Flow) IsValid() bool {
	return f == FlowIncome || f == FlowExpense || f == FlowTransfer
}

// IsCategorized reports whether transactions of this flow carry a category.
func (f Flow) IsCategorized() bool {
	return f == FlowIncome || f == FlowExpense
}

// Transaction is a single ledger movement. Amount is always a positive
// magnitude; the direction comes from Flow.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	OwnerID       string          `json:"ownerID"`
	TxnDate       string          `json:"txnDate"` // YYYY-MM-DD
	Flow          Flow            `json:"flow"`
	Amount        decimal.Decimal `json:"amount"`
	WalletID      string          `json:"walletID"`             // Source wallet, all flows
	ToWalletID    *string         `json:"toWalletID,omitempty"` // TRANSFER only
	CategoryID    *string         `json:"categoryID,omitempty"` // INCOME/EXPENSE only
	Note          string          `json:"note"`
	CustomFields  map[string]any  `json:"customFields"`
	IsDeleted     bool            `json:"isDeleted"`
	AuditFields
}

// IsTransfer reports whether the transaction moves money between two wallets.
func (t Transaction) IsTransfer() bool {
	return t.Flow == FlowTransfer
}

// Touches reports whether the transaction moves money in or out of walletID.
func (t Transaction) Touches(walletID string) bool {
	if t.WalletID == walletID {
		return true
	}
	return t.ToWalletID != nil && *t.ToWalletID == walletID
}

var (
	ErrInvalidFlow           = errors.New("flow must be INCOME, EXPENSE or TRANSFER")
	ErrInvalidTxnDate        = errors.New("txn_date must be a YYYY-MM-DD date")
	ErrNonPositiveAmount     = errors.New("amount must be greater than zero")
	ErrFractionalAmount      = errors.New("amount must be a whole number of VND")
	ErrWalletRequired        = errors.New("wallet_id is required")
	ErrDestinationRequired   = errors.New("to_wallet_id is required for a transfer")
	ErrSameWalletTransfer    = errors.New("transfer source and destination wallets must differ")
	ErrUnexpectedDestination = errors.New("to_wallet_id is only allowed for a transfer")
	ErrCategoryRequired      = errors.New("category_id is required for income and expense")
	ErrUnexpectedCategory    = errors.New("category_id is not allowed for a transfer")
)

// Validate checks the shape invariants a transaction must satisfy before it
// is persisted: positive whole amount, a valid date, and exactly one of
// category or destination wallet consistent with the flow.
func (t Transaction) Validate() error {
	if !t.Flow.IsValid() {
		return fmt.Errorf("%w: got %q", ErrInvalidFlow, t.Flow)
	}
	if !IsValidDate(t.TxnDate) {
		return fmt.Errorf("%w: got %q", ErrInvalidTxnDate, t.TxnDate)
	}
	if !t.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if !t.Amount.Equal(t.Amount.Truncate(MoneyScale)) {
		return ErrFractionalAmount
	}
	if t.WalletID == "" {
		return ErrWalletRequired
	}

	if t.IsTransfer() {
		if t.ToWalletID == nil || *t.ToWalletID == "" {
			return ErrDestinationRequired
		}
		if *t.ToWalletID == t.WalletID {
			return ErrSameWalletTransfer
		}
		if t.CategoryID != nil {
			return ErrUnexpectedCategory
		}
		return nil
	}

	if t.ToWalletID != nil {
		return ErrUnexpectedDestination
	}
	if t.CategoryID == nil || *t.CategoryID == "" {
		return ErrCategoryRequired
	}
	return nil
}

// IsValidDate reports whether s is a calendar date in DateLayout.
func IsValidDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
