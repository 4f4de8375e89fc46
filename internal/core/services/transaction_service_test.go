package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/core/ledger"
	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/core/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	txManager       *stubTxManager
	transactionRepo *MockTransactionRepository
	walletRepo      *MockWalletRepository
	categoryRepo    *MockCategoryRepository
	customFieldRepo *MockCustomFieldRepository
	auditRepo       *MockAuditLogRepository
	publisher       *MockAuditPublisher
	service         portssvc.TransactionSvcFacade
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.txManager = &stubTxManager{}
	s.transactionRepo = new(MockTransactionRepository)
	s.walletRepo = new(MockWalletRepository)
	s.categoryRepo = new(MockCategoryRepository)
	s.customFieldRepo = new(MockCustomFieldRepository)
	s.auditRepo = new(MockAuditLogRepository)
	s.publisher = new(MockAuditPublisher)

	audit := services.NewAuditService(s.auditRepo, services.WithAuditPublisher(s.publisher))
	s.service = services.NewTransactionService(s.txManager, s.transactionRepo, s.walletRepo, s.categoryRepo, s.customFieldRepo, audit)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

// expectRefs primes the reference data every authoring call loads.
func (s *TransactionServiceTestSuite) expectRefs() {
	s.walletRepo.On("ListWallets", mock.Anything, "owner-1").Return([]domain.Wallet{
		{WalletID: "cash", Name: "Tiền mặt", IsActive: true},
		{WalletID: "bank", Name: "Ngân hàng", IsActive: true},
		{WalletID: "closed", Name: "Ví cũ", IsActive: false},
	}, nil)
	s.categoryRepo.On("ListCategories", mock.Anything, "owner-1", (*domain.Flow)(nil)).Return([]domain.Category{
		{CategoryID: "feed", Name: "Thức ăn", Flow: domain.FlowExpense, IsActive: true},
		{CategoryID: "sales", Name: "Bán cá", Flow: domain.FlowIncome, IsActive: true},
	}, nil)
	s.customFieldRepo.On("ListCustomFields", mock.Anything, "owner-1").Return([]domain.CustomField{
		{FieldKey: "pond", FieldName: "Ao", FieldType: domain.FieldSingleSelect, IsActive: true, Config: domain.CustomFieldConfig{Options: []string{"Ao 1", "Ao 2"}}},
	}, nil)
}

func expenseRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		TxnDate:      "2024-03-01",
		Flow:         domain.FlowExpense,
		Amount:       decimal.NewFromInt(500_000),
		WalletID:     "cash",
		CategoryID:   strPtr("feed"),
		Note:         " cám viên ",
		CustomFields: map[string]any{"pond": "Ao 1"},
	}
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	s.expectRefs()
	s.transactionRepo.On("SaveTransactionInTx", ctx, mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Note == "cám viên" && t.OwnerID == "owner-1" && t.Version == 1 && !t.IsDeleted
	})).Return(nil).Once()
	s.auditRepo.On("SaveAuditLogInTx", ctx, mock.Anything, mock.MatchedBy(func(l domain.AuditLog) bool {
		return l.Action == domain.ActionCreate && l.Entity == domain.EntityTransaction
	})).Return(nil).Once()
	s.publisher.On("PublishAuditLog", ctx, mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()

	txn, err := s.service.CreateTransaction(ctx, editorSession, expenseRequest())

	s.Require().NoError(err)
	s.NotEmpty(txn.TransactionID)
	s.Equal("owner-1", txn.CreatedBy)
	s.Equal(1, s.txManager.commits)
	s.transactionRepo.AssertExpectations(s.T())
	s.publisher.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_TransferDropsCategoryAndFields() {
	ctx := context.Background()
	s.expectRefs()
	s.transactionRepo.On("SaveTransactionInTx", ctx, mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.CategoryID == nil && len(t.CustomFields) == 0 && *t.ToWalletID == "bank"
	})).Return(nil).Once()
	s.auditRepo.On("SaveAuditLogInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	s.publisher.On("PublishAuditLog", ctx, mock.Anything).Return(nil).Once()

	req := expenseRequest()
	req.Flow = domain.FlowTransfer
	req.ToWalletID = strPtr("bank")

	_, err := s.service.CreateTransaction(ctx, editorSession, req)

	s.Require().NoError(err)
	s.transactionRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_RejectsInvalidCandidates() {
	tests := []struct {
		name    string
		mutate  func(r *dto.CreateTransactionRequest)
		wantErr error
	}{
		{name: "zero amount", mutate: func(r *dto.CreateTransactionRequest) { r.Amount = decimal.Zero }, wantErr: domain.ErrNonPositiveAmount},
		{name: "inactive wallet", mutate: func(r *dto.CreateTransactionRequest) { r.WalletID = "closed" }, wantErr: ledger.ErrInactiveWallet},
		{name: "category of the other flow", mutate: func(r *dto.CreateTransactionRequest) { r.Flow = domain.FlowIncome }, wantErr: ledger.ErrCategoryFlowMismatch},
		{name: "option outside the list", mutate: func(r *dto.CreateTransactionRequest) { r.CustomFields = map[string]any{"pond": "Ao 7"} }, wantErr: ledger.ErrInvalidCustomValue},
		{name: "transfer to itself", mutate: func(r *dto.CreateTransactionRequest) {
			r.Flow = domain.FlowTransfer
			r.ToWalletID = strPtr("cash")
		}, wantErr: domain.ErrSameWalletTransfer},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.expectRefs()
			req := expenseRequest()
			tt.mutate(&req)

			_, err := s.service.CreateTransaction(context.Background(), editorSession, req)

			s.ErrorIs(err, apperrors.ErrValidation)
			s.ErrorIs(err, tt.wantErr)
			s.Zero(s.txManager.begins)
		})
	}
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction_DeletedRowMustBeRestoredFirst() {
	ctx := context.Background()
	s.expectRefs()
	current := &domain.Transaction{TransactionID: "t1", OwnerID: "owner-1", IsDeleted: true, AuditFields: domain.AuditFields{Version: 2}}
	s.transactionRepo.On("FindTransactionForUpdate", ctx, mock.Anything, "owner-1", "t1").Return(current, nil).Once()

	_, err := s.service.UpdateTransaction(ctx, editorSession, "t1", dto.UpdateTransactionRequest{CreateTransactionRequest: expenseRequest()})

	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal(1, s.txManager.rollbacks)
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction_KeepsInactiveWalletItAlreadyUsed() {
	ctx := context.Background()
	s.expectRefs()
	current := &domain.Transaction{
		TransactionID: "t1", OwnerID: "owner-1", TxnDate: "2024-02-01", Flow: domain.FlowExpense,
		Amount: decimal.NewFromInt(100), WalletID: "closed", CategoryID: strPtr("feed"),
		AuditFields: domain.AuditFields{Version: 4},
	}
	s.transactionRepo.On("FindTransactionForUpdate", ctx, mock.Anything, "owner-1", "t1").Return(current, nil).Once()
	s.transactionRepo.On("UpdateTransactionInTx", ctx, mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Version == 5 && t.Amount.Equal(decimal.NewFromInt(500_000))
	})).Return(nil).Once()
	s.auditRepo.On("SaveAuditLogInTx", ctx, mock.Anything, mock.MatchedBy(func(l domain.AuditLog) bool {
		return l.Action == domain.ActionUpdate && l.BeforeData != nil && l.AfterData != nil
	})).Return(nil).Once()
	s.publisher.On("PublishAuditLog", ctx, mock.Anything).Return(nil).Once()

	req := expenseRequest()
	req.WalletID = "closed"
	updated, err := s.service.UpdateTransaction(ctx, editorSession, "t1", dto.UpdateTransactionRequest{CreateTransactionRequest: req, Version: int64Ptr(4)})

	s.Require().NoError(err)
	s.Equal(int64(5), updated.Version)
	s.transactionRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestDeleteTransaction_SoftDeletes() {
	ctx := context.Background()
	current := &domain.Transaction{TransactionID: "t1", OwnerID: "owner-1", AuditFields: domain.AuditFields{Version: 1}}
	s.transactionRepo.On("FindTransactionForUpdate", ctx, mock.Anything, "owner-1", "t1").Return(current, nil).Once()
	s.transactionRepo.On("UpdateTransactionInTx", ctx, mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.IsDeleted && t.Version == 2
	})).Return(nil).Once()
	s.auditRepo.On("SaveAuditLogInTx", ctx, mock.Anything, mock.MatchedBy(func(l domain.AuditLog) bool {
		var after map[string]bool
		return l.Action == domain.ActionDelete &&
			json.Unmarshal(l.AfterData, &after) == nil && after["isDeleted"]
	})).Return(nil).Once()
	s.publisher.On("PublishAuditLog", ctx, mock.Anything).Return(nil).Once()

	s.Require().NoError(s.service.DeleteTransaction(ctx, editorSession, "t1", int64Ptr(1)))
	s.transactionRepo.AssertExpectations(s.T())
	s.auditRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestDeleteTransaction_AlreadyDeleted() {
	ctx := context.Background()
	current := &domain.Transaction{TransactionID: "t1", OwnerID: "owner-1", IsDeleted: true}
	s.transactionRepo.On("FindTransactionForUpdate", ctx, mock.Anything, "owner-1", "t1").Return(current, nil).Once()

	err := s.service.DeleteTransaction(ctx, editorSession, "t1", nil)

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *TransactionServiceTestSuite) TestRestoreTransaction_RecordsUndo() {
	ctx := context.Background()
	current := &domain.Transaction{TransactionID: "t1", OwnerID: "owner-1", IsDeleted: true, AuditFields: domain.AuditFields{Version: 2}}
	s.transactionRepo.On("FindTransactionForUpdate", ctx, mock.Anything, "owner-1", "t1").Return(current, nil).Once()
	s.transactionRepo.On("UpdateTransactionInTx", ctx, mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return !t.IsDeleted && t.Version == 3
	})).Return(nil).Once()
	s.auditRepo.On("SaveAuditLogInTx", ctx, mock.Anything, mock.MatchedBy(func(l domain.AuditLog) bool {
		var before, after domain.Transaction
		return l.Action == domain.ActionUndo &&
			json.Unmarshal(l.BeforeData, &before) == nil && before.IsDeleted &&
			json.Unmarshal(l.AfterData, &after) == nil && !after.IsDeleted
	})).Return(nil).Once()
	s.publisher.On("PublishAuditLog", ctx, mock.Anything).Return(nil).Once()

	restored, err := s.service.RestoreTransaction(ctx, editorSession, "t1", nil)

	s.Require().NoError(err)
	s.False(restored.IsDeleted)
	s.auditRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestRestoreTransaction_NotDeleted() {
	ctx := context.Background()
	current := &domain.Transaction{TransactionID: "t1", OwnerID: "owner-1"}
	s.transactionRepo.On("FindTransactionForUpdate", ctx, mock.Anything, "owner-1", "t1").Return(current, nil).Once()

	_, err := s.service.RestoreTransaction(ctx, editorSession, "t1", nil)

	s.ErrorIs(err, apperrors.ErrConflict)
	s.publisher.AssertNotCalled(s.T(), "PublishAuditLog", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestViewerCannotWrite() {
	ctx := context.Background()

	_, err := s.service.CreateTransaction(ctx, viewerSession, expenseRequest())
	s.ErrorIs(err, apperrors.ErrForbidden)

	s.ErrorIs(s.service.DeleteTransaction(ctx, viewerSession, "t1", nil), apperrors.ErrForbidden)

	_, err = s.service.RestoreTransaction(ctx, viewerSession, "t1", nil)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.Zero(s.txManager.begins)
}

func (s *TransactionServiceTestSuite) TestListTransactions_PassesFilter() {
	ctx := context.Background()
	params := dto.ListTransactionsParams{From: "2024-03-01", WalletID: "cash", Limit: 20}
	next := "token"
	s.transactionRepo.On("ListTransactions", ctx, "owner-1", params.Filter(), 20, (*string)(nil)).
		Return([]domain.Transaction{{TransactionID: "t1"}}, &next, nil).Once()

	txns, token, err := s.service.ListTransactions(ctx, viewerSession, params)

	s.Require().NoError(err)
	s.Len(txns, 1)
	s.Equal("token", *token)
}
