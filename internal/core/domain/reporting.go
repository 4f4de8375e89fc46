package domain

import (
	"github.com/shopspring/decimal"
)

// WalletBalance is a wallet's derived current balance.
type WalletBalance struct {
	WalletID       string          `json:"walletID"`
	Name           string          `json:"name"`
	WalletType     WalletType      `json:"type"`
	IsActive       bool            `json:"isActive"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Balance        decimal.Decimal `json:"balance"`
}

// RangeBalance is a wallet's balance at the edges of an inclusive date range.
// Closing always equals Opening + Inflow - Outflow.
type RangeBalance struct {
	WalletID string          `json:"walletID"`
	Name     string          `json:"name"`
	From     string          `json:"from"`
	To       string          `json:"to"`
	Opening  decimal.Decimal `json:"opening"`
	Inflow   decimal.Decimal `json:"inflow"`
	Outflow  decimal.Decimal `json:"outflow"`
	Closing  decimal.Decimal `json:"closing"`
}

// CategoryTotal is one row of a category breakdown.
type CategoryTotal struct {
	Flow         Flow            `json:"flow"`
	CategoryID   *string         `json:"categoryID,omitempty"`
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
	Count        int             `json:"count"`
}

// Summary aggregates income and expense over a transaction set. Transfers
// never contribute.
type Summary struct {
	Income    decimal.Decimal `json:"income"`
	Expense   decimal.Decimal `json:"expense"`
	Profit    decimal.Decimal `json:"profit"`
	Breakdown []CategoryTotal `json:"breakdown"`
}

// DailyCashflow is the income and expense of a single calendar day.
type DailyCashflow struct {
	Date    string          `json:"date"`
	CashIn  decimal.Decimal `json:"cashIn"`
	CashOut decimal.Decimal `json:"cashOut"`
	Net     decimal.Decimal `json:"net"`
}

// Overview is the dashboard view over a trailing window.
type Overview struct {
	From             string          `json:"from"`
	To               string          `json:"to"`
	Summary          Summary         `json:"summary"`
	TopExpenses      []CategoryTotal `json:"topExpenses"`
	TotalBalance     decimal.Decimal `json:"totalBalance"`
	TransactionCount int             `json:"transactionCount"`
}
