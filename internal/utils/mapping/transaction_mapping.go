package mapping

import (
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	fields := d.CustomFields
	if fields == nil {
		fields = map[string]any{}
	}
	return models.Transaction{
		TransactionID: d.TransactionID,
		OwnerID:       d.OwnerID,
		TxnDate:       d.TxnDate,
		Flow:          string(d.Flow),
		Amount:        d.Amount,
		WalletID:      d.WalletID,
		ToWalletID:    d.ToWalletID,
		CategoryID:    d.CategoryID,
		Note:          d.Note,
		CustomFields:  fields,
		IsDeleted:     d.IsDeleted,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	fields := m.CustomFields
	if fields == nil {
		fields = map[string]any{}
	}
	return domain.Transaction{
		TransactionID: m.TransactionID,
		OwnerID:       m.OwnerID,
		TxnDate:       m.TxnDate,
		Flow:          domain.Flow(m.Flow),
		Amount:        m.Amount,
		WalletID:      m.WalletID,
		ToWalletID:    m.ToWalletID,
		CategoryID:    m.CategoryID,
		Note:          m.Note,
		CustomFields:  fields,
		IsDeleted:     m.IsDeleted,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
