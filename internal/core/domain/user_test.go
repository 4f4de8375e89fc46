package domain_test

import (
	"testing"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewSession(t *testing.T) {
	parent := "owner-1"
	tests := []struct {
		name      string
		user      domain.User
		wantOwner string
		wantActor string
		canWrite  bool
	}{
		{
			name:      "editor owns its data",
			user:      domain.User{UserID: "owner-1", Email: "a@farm.vn", FullName: "Anh Ba", Role: domain.RoleEditor},
			wantOwner: "owner-1",
			wantActor: "Anh Ba",
			canWrite:  true,
		},
		{
			name:      "viewer reads parent data",
			user:      domain.User{UserID: "viewer-1", Email: "v@farm.vn", Role: domain.RoleViewer, ParentID: &parent},
			wantOwner: "owner-1",
			wantActor: "v@farm.vn",
			canWrite:  false,
		},
		{
			name:      "actor falls back to user",
			user:      domain.User{UserID: "u-2", Role: domain.RoleEditor},
			wantOwner: "u-2",
			wantActor: "user",
			canWrite:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.NewSession(tt.user)
			assert.Equal(t, tt.wantOwner, s.OwnerID)
			assert.Equal(t, tt.wantActor, s.Actor)
			assert.Equal(t, tt.canWrite, s.CanWrite())
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	got := domain.NormalizeTags([]string{" Nước", "Thức ăn", "", "Nước", "Thuốc "})
	assert.Equal(t, []string{"Nước", "Thức ăn", "Thuốc"}, got)
	assert.Empty(t, domain.NormalizeTags(nil))
}
