package dto

import (
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest struct {
	TxnDate      string          `json:"txnDate" binding:"required,isodate"`
	Flow         domain.Flow     `json:"flow" binding:"required,flow"`
	Amount       decimal.Decimal `json:"amount"`
	WalletID     string          `json:"walletID" binding:"required"`
	ToWalletID   *string         `json:"toWalletID"` // TRANSFER only
	CategoryID   *string         `json:"categoryID"` // INCOME/EXPENSE only
	Note         string          `json:"note" binding:"max=1000"`
	CustomFields map[string]any  `json:"customFields"`
}

// UpdateTransactionRequest replaces the editable fields of a transaction.
type UpdateTransactionRequest struct {
	CreateTransactionRequest
	Version *int64 `json:"version"` // Expected version; omit for last-write-wins
}

// VersionParams carries the optional expected version of delete and
// restore calls.
type VersionParams struct {
	Version *int64 `form:"version" binding:"omitempty,min=1"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	From           string      `form:"from" binding:"omitempty,isodate"`
	To             string      `form:"to" binding:"omitempty,isodate"`
	WalletID       string      `form:"walletID"`
	Flow           domain.Flow `form:"flow" binding:"omitempty,flow"`
	IncludeDeleted bool        `form:"includeDeleted"`
	Limit          int         `form:"limit,default=50" binding:"min=1,max=500"`
	NextToken      *string     `form:"nextToken"`
}

// Filter converts the query to a repository filter.
func (p ListTransactionsParams) Filter() domain.TransactionFilter {
	return domain.TransactionFilter{
		From:           p.From,
		To:             p.To,
		WalletID:       p.WalletID,
		Flow:           p.Flow,
		IncludeDeleted: p.IncludeDeleted,
	}
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	TxnDate       string          `json:"txnDate"`
	Flow          domain.Flow     `json:"flow"`
	Amount        decimal.Decimal `json:"amount"`
	WalletID      string          `json:"walletID"`
	ToWalletID    *string         `json:"toWalletID,omitempty"`
	CategoryID    *string         `json:"categoryID,omitempty"`
	Note          string          `json:"note"`
	CustomFields  map[string]any  `json:"customFields"`
	IsDeleted     bool            `json:"isDeleted"`
	Version       int64           `json:"version"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		TxnDate:       t.TxnDate,
		Flow:          t.Flow,
		Amount:        t.Amount,
		WalletID:      t.WalletID,
		ToWalletID:    t.ToWalletID,
		CategoryID:    t.CategoryID,
		Note:          t.Note,
		CustomFields:  t.CustomFields,
		IsDeleted:     t.IsDeleted,
		Version:       t.Version,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
		LastUpdatedAt: t.LastUpdatedAt,
		LastUpdatedBy: t.LastUpdatedBy,
	}
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToListTransactionsResponse converts a page of domain.Transaction to its DTO
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: res, NextToken: nextToken}
}
