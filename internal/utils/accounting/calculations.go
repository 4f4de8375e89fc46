package accounting

import (
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount returns the effect of txn on walletID's balance.
// This is used by the balance engine and the export surface so both agree on
// direction.
//
// INCOME into the wallet -> Positive (+)
// EXPENSE from the wallet -> Negative (-)
// TRANSFER out of the wallet -> Negative (-)
// TRANSFER into the wallet -> Positive (+)
//
// Deleted transactions and wallets the transaction does not touch yield zero.
func CalculateSignedAmount(txn domain.Transaction, walletID string) decimal.Decimal {
	if txn.IsDeleted || walletID == "" {
		return decimal.Zero
	}

	switch txn.Flow {
	case domain.FlowIncome:
		if txn.WalletID == walletID {
			return txn.Amount
		}
	case domain.FlowExpense:
		if txn.WalletID == walletID {
			return txn.Amount.Neg()
		}
	case domain.FlowTransfer:
		// wallet_id != to_wallet_id is enforced at authoring time, so at most
		// one branch applies.
		if txn.WalletID == walletID {
			return txn.Amount.Neg()
		}
		if txn.ToWalletID != nil && *txn.ToWalletID == walletID {
			return txn.Amount
		}
	}
	return decimal.Zero
}

// SumSignedAmounts adds the effect of every transaction on walletID.
func SumSignedAmounts(txns []domain.Transaction, walletID string) decimal.Decimal {
	sum := decimal.Zero
	for _, txn := range txns {
		sum = sum.Add(CalculateSignedAmount(txn, walletID))
	}
	return sum
}
