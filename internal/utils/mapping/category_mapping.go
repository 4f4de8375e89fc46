package mapping

import (
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/models"
)

func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:  d.CategoryID,
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		Flow:        string(d.Flow),
		ParentID:    d.ParentID,
		SortOrder:   d.SortOrder,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:  m.CategoryID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Flow:        domain.Flow(m.Flow),
		ParentID:    m.ParentID,
		SortOrder:   m.SortOrder,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	ds := make([]domain.Category, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategory(m)
	}
	return ds
}
