package accounting

import (
	"testing"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateSignedAmount(t *testing.T) {
	bank := "bank"
	tests := []struct {
		name     string
		txn      domain.Transaction
		walletID string
		want     int64
	}{
		{"income into wallet", domain.Transaction{Flow: domain.FlowIncome, WalletID: "cash", Amount: decimal.NewFromInt(500)}, "cash", 500},
		{"expense from wallet", domain.Transaction{Flow: domain.FlowExpense, WalletID: "cash", Amount: decimal.NewFromInt(200)}, "cash", -200},
		{"transfer source", domain.Transaction{Flow: domain.FlowTransfer, WalletID: "cash", ToWalletID: &bank, Amount: decimal.NewFromInt(300)}, "cash", -300},
		{"transfer destination", domain.Transaction{Flow: domain.FlowTransfer, WalletID: "cash", ToWalletID: &bank, Amount: decimal.NewFromInt(300)}, "bank", 300},
		{"other wallet", domain.Transaction{Flow: domain.FlowIncome, WalletID: "cash", Amount: decimal.NewFromInt(500)}, "bank", 0},
		{"deleted", domain.Transaction{Flow: domain.FlowIncome, WalletID: "cash", Amount: decimal.NewFromInt(500), IsDeleted: true}, "cash", 0},
		{"income never credits a destination", domain.Transaction{Flow: domain.FlowIncome, WalletID: "cash", ToWalletID: &bank, Amount: decimal.NewFromInt(500)}, "bank", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateSignedAmount(tt.txn, tt.walletID)
			assert.True(t, decimal.NewFromInt(tt.want).Equal(got), "got %s, want %d", got, tt.want)
		})
	}
}

func TestSumSignedAmounts(t *testing.T) {
	bank := "bank"
	txns := []domain.Transaction{
		{Flow: domain.FlowIncome, WalletID: "cash", Amount: decimal.NewFromInt(1000)},
		{Flow: domain.FlowExpense, WalletID: "cash", Amount: decimal.NewFromInt(250)},
		{Flow: domain.FlowTransfer, WalletID: "cash", ToWalletID: &bank, Amount: decimal.NewFromInt(100)},
	}
	assert.True(t, decimal.NewFromInt(650).Equal(SumSignedAmounts(txns, "cash")))
	assert.True(t, decimal.NewFromInt(100).Equal(SumSignedAmounts(txns, "bank")))
	assert.True(t, decimal.Zero.Equal(SumSignedAmounts(nil, "cash")))
}
