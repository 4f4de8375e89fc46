// Package ledger derives balances, summaries and cashflow from an in-memory
// snapshot of wallets, categories and transactions. Every function is pure:
// no I/O, no shared state, and the same input always yields the same output.
package ledger

import (
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// Delta is the signed effect of txn on walletID. Deleted transactions
// contribute nothing.
func Delta(txn domain.Transaction, walletID string) decimal.Decimal {
	return accounting.CalculateSignedAmount(txn, walletID)
}

// CurrentBalance is opening balance plus the sum of all visible deltas.
func CurrentBalance(w domain.Wallet, txns []domain.Transaction) decimal.Decimal {
	return w.OpeningBalance.Add(accounting.SumSignedAmounts(txns, w.WalletID))
}

// ComputeBalances returns the current balance of every wallet, in the order
// the wallets were given.
func ComputeBalances(wallets []domain.Wallet, txns []domain.Transaction) []domain.WalletBalance {
	sums := sumByWallet(txns, func(domain.Transaction) bool { return true })

	out := make([]domain.WalletBalance, 0, len(wallets))
	for _, w := range wallets {
		out = append(out, domain.WalletBalance{
			WalletID:       w.WalletID,
			Name:           w.Name,
			WalletType:     w.WalletType,
			IsActive:       w.IsActive,
			OpeningBalance: w.OpeningBalance,
			Balance:        w.OpeningBalance.Add(sums[w.WalletID]),
		})
	}
	return out
}

// ComputeRangeBalances returns, for each wallet, the balance just before
// from and at the end of to. Both bounds are inclusive and compared as ISO
// date strings. An empty from means "since the beginning"; an empty to means
// "up to the latest transaction".
func ComputeRangeBalances(wallets []domain.Wallet, txns []domain.Transaction, from, to string) []domain.RangeBalance {
	before := sumByWallet(txns, func(t domain.Transaction) bool {
		return from != "" && t.TxnDate < from
	})

	inflow := make(map[string]decimal.Decimal)
	outflow := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if t.IsDeleted || !InRange(t.TxnDate, from, to) {
			continue
		}
		for _, walletID := range walletsOf(t) {
			d := Delta(t, walletID)
			switch {
			case d.IsPositive():
				inflow[walletID] = inflow[walletID].Add(d)
			case d.IsNegative():
				outflow[walletID] = outflow[walletID].Add(d.Neg())
			}
		}
	}

	out := make([]domain.RangeBalance, 0, len(wallets))
	for _, w := range wallets {
		opening := w.OpeningBalance.Add(before[w.WalletID])
		in := inflow[w.WalletID]
		outAmt := outflow[w.WalletID]
		out = append(out, domain.RangeBalance{
			WalletID: w.WalletID,
			Name:     w.Name,
			From:     from,
			To:       to,
			Opening:  opening,
			Inflow:   in,
			Outflow:  outAmt,
			Closing:  opening.Add(in).Sub(outAmt),
		})
	}
	return out
}

// TotalBalance sums the balances of the given rows.
func TotalBalance(balances []domain.WalletBalance) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Balance)
	}
	return total
}

// sumByWallet accumulates deltas per wallet over the visible transactions
// accepted by keep.
func sumByWallet(txns []domain.Transaction, keep func(domain.Transaction) bool) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if t.IsDeleted || !keep(t) {
			continue
		}
		for _, walletID := range walletsOf(t) {
			sums[walletID] = sums[walletID].Add(Delta(t, walletID))
		}
	}
	return sums
}

// walletsOf lists the wallets a transaction can move money for.
func walletsOf(t domain.Transaction) []string {
	if t.IsTransfer() && t.ToWalletID != nil {
		return []string{t.WalletID, *t.ToWalletID}
	}
	return []string{t.WalletID}
}
