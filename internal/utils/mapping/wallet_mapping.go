package mapping

import (
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/models"
)

// ToModelWallet converts a domain Wallet to a model Wallet
func ToModelWallet(d domain.Wallet) models.Wallet {
	return models.Wallet{
		WalletID:       d.WalletID,
		OwnerID:        d.OwnerID,
		Name:           d.Name,
		WalletType:     string(d.WalletType),
		OpeningBalance: d.OpeningBalance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWallet converts a model Wallet to a domain Wallet
func ToDomainWallet(m models.Wallet) domain.Wallet {
	return domain.Wallet{
		WalletID:       m.WalletID,
		OwnerID:        m.OwnerID,
		Name:           m.Name,
		WalletType:     domain.WalletType(m.WalletType),
		OpeningBalance: m.OpeningBalance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainWalletSlice converts a slice of model Wallets to a slice of domain Wallets
func ToDomainWalletSlice(ms []models.Wallet) []domain.Wallet {
	ds := make([]domain.Wallet, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWallet(m)
	}
	return ds
}
