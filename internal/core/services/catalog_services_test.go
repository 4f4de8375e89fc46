package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/core/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_CreateAppendsToFlow(t *testing.T) {
	ctx := context.Background()
	tm := &stubTxManager{}
	repo := new(MockCategoryRepository)
	auditRepo := new(MockAuditLogRepository)
	svc := services.NewCategoryService(tm, repo, services.NewAuditService(auditRepo))

	flow := domain.FlowExpense
	repo.On("ListCategories", ctx, "owner-1", &flow).Return([]domain.Category{{CategoryID: "a"}, {CategoryID: "b"}}, nil).Once()
	repo.On("SaveCategoryInTx", ctx, mock.Anything, mock.MatchedBy(func(c domain.Category) bool {
		return c.SortOrder == 2 && c.Name == "Vôi" && c.Flow == domain.FlowExpense
	})).Return(nil).Once()
	auditRepo.On("SaveAuditLogInTx", ctx, mock.Anything, mock.MatchedBy(func(l domain.AuditLog) bool {
		return l.Entity == domain.EntityCategory && l.Action == domain.ActionCreate
	})).Return(nil).Once()

	category, err := svc.CreateCategory(ctx, editorSession, dto.CreateCategoryRequest{Name: "Vôi", Flow: domain.FlowExpense})

	require.NoError(t, err)
	assert.Equal(t, 2, category.SortOrder)
	repo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestCategoryService_RejectsTransferFlow(t *testing.T) {
	svc := services.NewCategoryService(&stubTxManager{}, new(MockCategoryRepository), services.NewAuditService(new(MockAuditLogRepository)))

	_, err := svc.CreateCategory(context.Background(), editorSession, dto.CreateCategoryRequest{Name: "Chuyển", Flow: domain.FlowTransfer})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCategoryService_UpdateKeepsFlow(t *testing.T) {
	ctx := context.Background()
	tm := &stubTxManager{}
	repo := new(MockCategoryRepository)
	auditRepo := new(MockAuditLogRepository)
	svc := services.NewCategoryService(tm, repo, services.NewAuditService(auditRepo))

	current := &domain.Category{CategoryID: "c1", OwnerID: "owner-1", Name: "Thuốc", Flow: domain.FlowExpense, IsActive: true, AuditFields: domain.AuditFields{Version: 1}}
	repo.On("FindCategoryForUpdate", ctx, mock.Anything, "owner-1", "c1").Return(current, nil).Once()
	repo.On("UpdateCategoryInTx", ctx, mock.Anything, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == "Thuốc thủy sản" && c.Flow == domain.FlowExpense && c.Version == 2
	})).Return(nil).Once()
	auditRepo.On("SaveAuditLogInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	updated, err := svc.UpdateCategory(ctx, editorSession, "c1", dto.UpdateCategoryRequest{Name: strPtr("Thuốc thủy sản")})

	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, 1, tm.commits)
}

func TestCustomFieldService_Create(t *testing.T) {
	ctx := context.Background()
	tm := &stubTxManager{}
	repo := new(MockCustomFieldRepository)
	auditRepo := new(MockAuditLogRepository)
	svc := services.NewCustomFieldService(tm, repo, services.NewAuditService(auditRepo))

	repo.On("SaveCustomFieldInTx", ctx, mock.Anything, mock.MatchedBy(func(f domain.CustomField) bool {
		return f.FieldKey == "pond" && len(f.Config.Options) == 2 && f.SortOrder == 0
	})).Return(nil).Once()
	auditRepo.On("SaveAuditLogInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	field, err := svc.CreateCustomField(ctx, editorSession, dto.CreateCustomFieldRequest{
		FieldKey:  "pond",
		FieldName: "Ao",
		FieldType: domain.FieldSingleSelect,
		Options:   []string{" Ao 1", "Ao 2", "Ao 1", ""},
		SortOrder: new(int),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Ao 1", "Ao 2"}, field.Config.Options)
	repo.AssertExpectations(t)
}

func TestCustomFieldService_SelectNeedsOptions(t *testing.T) {
	svc := services.NewCustomFieldService(&stubTxManager{}, new(MockCustomFieldRepository), services.NewAuditService(new(MockAuditLogRepository)))

	_, err := svc.CreateCustomField(context.Background(), editorSession, dto.CreateCustomFieldRequest{
		FieldKey: "pond", FieldName: "Ao", FieldType: domain.FieldMultiSelect, Options: []string{"  "},
	})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCustomFieldService_DuplicateKey(t *testing.T) {
	ctx := context.Background()
	tm := &stubTxManager{}
	repo := new(MockCustomFieldRepository)
	svc := services.NewCustomFieldService(tm, repo, services.NewAuditService(new(MockAuditLogRepository)))

	repo.On("ListCustomFields", ctx, "owner-1").Return([]domain.CustomField{}, nil).Once()
	repo.On("SaveCustomFieldInTx", ctx, mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := svc.CreateCustomField(ctx, editorSession, dto.CreateCustomFieldRequest{FieldKey: "kg", FieldName: "Số kg", FieldType: domain.FieldNumber})

	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Equal(t, 1, tm.rollbacks)
}

func TestFeedJournalService_CreateNormalizesTags(t *testing.T) {
	ctx := context.Background()
	tm := &stubTxManager{}
	repo := new(MockFeedJournalRepository)
	auditRepo := new(MockAuditLogRepository)
	svc := services.NewFeedJournalService(tm, repo, services.NewAuditService(auditRepo))

	repo.On("SaveFeedJournalInTx", ctx, mock.Anything, mock.MatchedBy(func(j domain.FeedJournal) bool {
		return j.ImageURL == nil && j.Note == "Cho ăn 2 cữ"
	})).Return(nil).Once()
	auditRepo.On("SaveAuditLogInTx", ctx, mock.Anything, mock.MatchedBy(func(l domain.AuditLog) bool {
		return l.Entity == domain.EntityFeedJournal && l.Action == domain.ActionCreate
	})).Return(nil).Once()

	entry, err := svc.CreateFeedJournal(ctx, editorSession, dto.CreateFeedJournalRequest{
		JournalDate: "2024-03-03",
		ImageURL:    strPtr("   "),
		Note:        "Cho ăn 2 cữ ",
		Tags:        []string{"ao-1", " ao-1", "", "sáng"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"ao-1", "sáng"}, entry.Tags)
	repo.AssertExpectations(t)
}

func TestFeedJournalService_Delete(t *testing.T) {
	ctx := context.Background()
	tm := &stubTxManager{}
	repo := new(MockFeedJournalRepository)
	auditRepo := new(MockAuditLogRepository)
	svc := services.NewFeedJournalService(tm, repo, services.NewAuditService(auditRepo))

	repo.On("FindFeedJournalForUpdate", ctx, mock.Anything, "owner-1", "j1").Return(&domain.FeedJournal{JournalID: "j1"}, nil).Once()
	repo.On("DeleteFeedJournalInTx", ctx, mock.Anything, "owner-1", "j1").Return(nil).Once()
	auditRepo.On("SaveAuditLogInTx", ctx, mock.Anything, mock.MatchedBy(func(l domain.AuditLog) bool {
		return l.Action == domain.ActionDelete && l.AfterData == nil
	})).Return(nil).Once()

	require.NoError(t, svc.DeleteFeedJournal(ctx, editorSession, "j1"))
	assert.ErrorIs(t, svc.DeleteFeedJournal(ctx, viewerSession, "j1"), apperrors.ErrForbidden)
	repo.AssertExpectations(t)
}
