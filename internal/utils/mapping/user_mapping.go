package mapping

import (
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:       d.UserID,
		Email:        d.Email,
		FullName:     d.FullName,
		PasswordHash: d.PasswordHash,
		Role:         string(d.Role),
		ParentID:     d.ParentID,
		AuditFields:  ToModelAuditFields(d.AuditFields),

		RefreshTokenExpiryTime: d.RefreshTokenExpiryTime,
	}
	if d.RefreshTokenHash != "" {
		hash := d.RefreshTokenHash
		m.RefreshTokenHash = &hash
	}
	return m
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:       m.UserID,
		Email:        m.Email,
		FullName:     m.FullName,
		PasswordHash: m.PasswordHash,
		Role:         domain.UserRole(m.Role),
		ParentID:     m.ParentID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),

		RefreshTokenExpiryTime: m.RefreshTokenExpiryTime,
	}
	if m.RefreshTokenHash != nil {
		d.RefreshTokenHash = *m.RefreshTokenHash
	}
	return d
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
