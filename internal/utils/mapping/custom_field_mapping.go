package mapping

import (
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/models"
)

// ToModelCustomField converts a domain CustomField to a model CustomField
func ToModelCustomField(d domain.CustomField) models.CustomField {
	return models.CustomField{
		FieldID:     d.FieldID,
		OwnerID:     d.OwnerID,
		FieldKey:    d.FieldKey,
		FieldName:   d.FieldName,
		FieldType:   string(d.FieldType),
		Config:      models.CustomFieldConfig{Options: d.Config.Options},
		IsActive:    d.IsActive,
		SortOrder:   d.SortOrder,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomField converts a model CustomField to a domain CustomField
func ToDomainCustomField(m models.CustomField) domain.CustomField {
	return domain.CustomField{
		FieldID:     m.FieldID,
		OwnerID:     m.OwnerID,
		FieldKey:    m.FieldKey,
		FieldName:   m.FieldName,
		FieldType:   domain.CustomFieldType(m.FieldType),
		Config:      domain.CustomFieldConfig{Options: m.Config.Options},
		IsActive:    m.IsActive,
		SortOrder:   m.SortOrder,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCustomFieldSlice converts a slice of model CustomFields to domain CustomFields
func ToDomainCustomFieldSlice(ms []models.CustomField) []domain.CustomField {
	ds := make([]domain.CustomField, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCustomField(m)
	}
	return ds
}
