package ledger

import (
	"sort"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InRange reports whether date lies in the inclusive range [from, to].
// Empty bounds are open.
func InRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

// Visible drops soft-deleted transactions.
func Visible(txns []domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if !t.IsDeleted {
			out = append(out, t)
		}
	}
	return out
}

// FilterByDateRange keeps visible transactions whose txn_date is inside the
// inclusive range.
func FilterByDateRange(txns []domain.Transaction, from, to string) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if !t.IsDeleted && InRange(t.TxnDate, from, to) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByWallet keeps transactions touching walletID. An empty walletID
// keeps everything.
func FilterByWallet(txns []domain.Transaction, walletID string) []domain.Transaction {
	if walletID == "" {
		return txns
	}
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.Touches(walletID) {
			out = append(out, t)
		}
	}
	return out
}

// SortByDate orders transactions by txn_date then creation time, oldest
// first. The input slice is not modified.
func SortByDate(txns []domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(txns))
	copy(out, txns)
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].TxnDate != out[b].TxnDate {
			return out[a].TxnDate < out[b].TxnDate
		}
		return out[a].CreatedAt.Before(out[b].CreatedAt)
	})
	return out
}

// ComputeDailyCashflow groups income and expense by txn_date in ascending
// date order. Transfers move money between wallets and are not cashflow.
func ComputeDailyCashflow(txns []domain.Transaction) []domain.DailyCashflow {
	byDate := make(map[string]*domain.DailyCashflow)
	for _, t := range txns {
		if t.IsDeleted || !t.Flow.IsCategorized() {
			continue
		}
		day, ok := byDate[t.TxnDate]
		if !ok {
			day = &domain.DailyCashflow{Date: t.TxnDate, CashIn: decimal.Zero, CashOut: decimal.Zero}
			byDate[t.TxnDate] = day
		}
		if t.Flow == domain.FlowIncome {
			day.CashIn = day.CashIn.Add(t.Amount)
		} else {
			day.CashOut = day.CashOut.Add(t.Amount)
		}
	}

	out := make([]domain.DailyCashflow, 0, len(byDate))
	for _, day := range byDate {
		day.Net = day.CashIn.Sub(day.CashOut)
		out = append(out, *day)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Date < out[b].Date })
	return out
}
