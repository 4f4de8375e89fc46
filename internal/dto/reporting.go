package dto

import (
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateRangeParams is an inclusive date range. Empty bounds are open.
type DateRangeParams struct {
	From string `form:"from" binding:"omitempty,isodate"`
	To   string `form:"to" binding:"omitempty,isodate"`
}

// BalancesParams defines query parameters for the balances report.
type BalancesParams struct {
	IncludeInactive bool `form:"includeInactive"`
}

// BalancesResponse lists current wallet balances and their total.
type BalancesResponse struct {
	Wallets []domain.WalletBalance `json:"wallets"`
	Total   decimal.Decimal        `json:"total"`
}

// RangeBalancesResponse lists each wallet's balance at the edges of a range.
type RangeBalancesResponse struct {
	From    string                `json:"from"`
	To      string                `json:"to"`
	Wallets []domain.RangeBalance `json:"wallets"`
}

// SummaryResponse is the income/expense summary of a range.
type SummaryResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
	domain.Summary
}

// CashflowResponse is the daily cashflow of a range.
type CashflowResponse struct {
	From string                 `json:"from"`
	To   string                 `json:"to"`
	Days []domain.DailyCashflow `json:"days"`
}
