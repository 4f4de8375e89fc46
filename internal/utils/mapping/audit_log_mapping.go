package mapping

import (
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/models"
)

// ToModelAuditLog converts a domain AuditLog to a model AuditLog
func ToModelAuditLog(d domain.AuditLog) models.AuditLog {
	return models.AuditLog{
		AuditID:    d.AuditID,
		OwnerID:    d.OwnerID,
		Actor:      d.Actor,
		Action:     string(d.Action),
		Entity:     string(d.Entity),
		EntityID:   d.EntityID,
		BeforeData: d.BeforeData,
		AfterData:  d.AfterData,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainAuditLog converts a model AuditLog to a domain AuditLog
func ToDomainAuditLog(m models.AuditLog) domain.AuditLog {
	return domain.AuditLog{
		AuditID:    m.AuditID,
		OwnerID:    m.OwnerID,
		Actor:      m.Actor,
		Action:     domain.AuditAction(m.Action),
		Entity:     domain.AuditEntity(m.Entity),
		EntityID:   m.EntityID,
		BeforeData: m.BeforeData,
		AfterData:  m.AfterData,
		CreatedAt:  m.CreatedAt,
	}
}

func ToDomainAuditLogSlice(ms []models.AuditLog) []domain.AuditLog {
	ds := make([]domain.AuditLog, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditLog(m)
	}
	return ds
}
