package domain_test

import (
	"testing"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Touches(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		walletID    string
		want        bool
	}{
		{
			name:        "source wallet",
			transaction: domain.Transaction{WalletID: "cash"},
			walletID:    "cash",
			want:        true,
		},
		{
			name:        "destination wallet of a transfer",
			transaction: domain.Transaction{WalletID: "cash", ToWalletID: stringPtr("bank"), Flow: domain.FlowTransfer},
			walletID:    "bank",
			want:        true,
		},
		{
			name:        "unrelated wallet",
			transaction: domain.Transaction{WalletID: "cash", ToWalletID: stringPtr("bank"), Flow: domain.FlowTransfer},
			walletID:    "safe",
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.transaction.Touches(tt.walletID)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tx      domain.Transaction
		wantErr error
	}{
		{
			name: "valid income",
			tx: domain.Transaction{
				TxnDate:    "2024-03-01",
				Flow:       domain.FlowIncome,
				Amount:     decimal.NewFromInt(500000),
				WalletID:   "cash",
				CategoryID: stringPtr("sales"),
			},
		},
		{
			name: "valid transfer",
			tx: domain.Transaction{
				TxnDate:    "2024-03-01",
				Flow:       domain.FlowTransfer,
				Amount:     decimal.NewFromInt(300000),
				WalletID:   "cash",
				ToWalletID: stringPtr("bank"),
			},
		},
		{
			name: "unknown flow",
			tx: domain.Transaction{
				TxnDate:  "2024-03-01",
				Flow:     domain.Flow("REFUND"),
				Amount:   decimal.NewFromInt(1),
				WalletID: "cash",
			},
			wantErr: domain.ErrInvalidFlow,
		},
		{
			name: "bad date",
			tx: domain.Transaction{
				TxnDate:    "01/03/2024",
				Flow:       domain.FlowExpense,
				Amount:     decimal.NewFromInt(1),
				WalletID:   "cash",
				CategoryID: stringPtr("feed"),
			},
			wantErr: domain.ErrInvalidTxnDate,
		},
		{
			name: "zero amount",
			tx: domain.Transaction{
				TxnDate:    "2024-03-01",
				Flow:       domain.FlowExpense,
				Amount:     decimal.Zero,
				WalletID:   "cash",
				CategoryID: stringPtr("feed"),
			},
			wantErr: domain.ErrNonPositiveAmount,
		},
		{
			name: "negative amount",
			tx: domain.Transaction{
				TxnDate:    "2024-03-01",
				Flow:       domain.FlowExpense,
				Amount:     decimal.NewFromInt(-10),
				WalletID:   "cash",
				CategoryID: stringPtr("feed"),
			},
			wantErr: domain.ErrNonPositiveAmount,
		},
		{
			name: "fractional amount",
			tx: domain.Transaction{
				TxnDate:    "2024-03-01",
				Flow:       domain.FlowExpense,
				Amount:     decimal.RequireFromString("10.5"),
				WalletID:   "cash",
				CategoryID: stringPtr("feed"),
			},
			wantErr: domain.ErrFractionalAmount,
		},
		{
			name: "missing wallet",
			tx: domain.Transaction{
				TxnDate:    "2024-03-01",
				Flow:       domain.FlowExpense,
				Amount:     decimal.NewFromInt(10),
				CategoryID: stringPtr("feed"),
			},
			wantErr: domain.ErrWalletRequired,
		},
		{
			name: "transfer to the same wallet",
			tx: domain.Transaction{
				TxnDate:    "2024-03-01",
				Flow:       domain.FlowTransfer,
				Amount:     decimal.NewFromInt(10),
				WalletID:   "cash",
				ToWalletID: stringPtr("cash"),
			},
			wantErr: domain.ErrSameWalletTransfer,
		},
		{
			name: "transfer without destination",
			tx: domain.Transaction{
				TxnDate:  "2024-03-01",
				Flow:     domain.FlowTransfer,
				Amount:   decimal.NewFromInt(10),
				WalletID: "cash",
			},
			wantErr: domain.ErrDestinationRequired,
		},
		{
			name: "transfer with category",
			tx: domain.Transaction{
				TxnDate:    "2024-03-01",
				Flow:       domain.FlowTransfer,
				Amount:     decimal.NewFromInt(10),
				WalletID:   "cash",
				ToWalletID: stringPtr("bank"),
				CategoryID: stringPtr("feed"),
			},
			wantErr: domain.ErrUnexpectedCategory,
		},
		{
			name: "expense without category",
			tx: domain.Transaction{
				TxnDate:  "2024-03-01",
				Flow:     domain.FlowExpense,
				Amount:   decimal.NewFromInt(10),
				WalletID: "cash",
			},
			wantErr: domain.ErrCategoryRequired,
		},
		{
			name: "income with destination wallet",
			tx: domain.Transaction{
				TxnDate:    "2024-03-01",
				Flow:       domain.FlowIncome,
				Amount:     decimal.NewFromInt(10),
				WalletID:   "cash",
				ToWalletID: stringPtr("bank"),
				CategoryID: stringPtr("sales"),
			},
			wantErr: domain.ErrUnexpectedDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, domain.IsValidDate("2024-02-29"))
	assert.False(t, domain.IsValidDate("2023-02-29"))
	assert.False(t, domain.IsValidDate("2024-2-1"))
	assert.False(t, domain.IsValidDate(""))
}

// Helper functions
func stringPtr(s string) *string {
	return &s
}
