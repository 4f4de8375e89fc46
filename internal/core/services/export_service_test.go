package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/core/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExportServiceTestSuite struct {
	suite.Suite
	txManager       *stubTxManager
	walletRepo      *MockWalletRepository
	categoryRepo    *MockCategoryRepository
	customFieldRepo *MockCustomFieldRepository
	transactionRepo *MockTransactionRepository
	journalRepo     *MockFeedJournalRepository
	auditRepo       *MockAuditLogRepository
	writer          *MockSpreadsheetWriter
	service         portssvc.ExportSvcFacade
}

func (s *ExportServiceTestSuite) SetupTest() {
	s.txManager = &stubTxManager{}
	s.walletRepo = new(MockWalletRepository)
	s.categoryRepo = new(MockCategoryRepository)
	s.customFieldRepo = new(MockCustomFieldRepository)
	s.transactionRepo = new(MockTransactionRepository)
	s.journalRepo = new(MockFeedJournalRepository)
	s.auditRepo = new(MockAuditLogRepository)
	s.writer = new(MockSpreadsheetWriter)

	repos := portsrepo.RepositoryProvider{
		TxManager:       s.txManager,
		WalletRepo:      s.walletRepo,
		CategoryRepo:    s.categoryRepo,
		CustomFieldRepo: s.customFieldRepo,
		TransactionRepo: s.transactionRepo,
		FeedJournalRepo: s.journalRepo,
		AuditRepo:       s.auditRepo,
	}
	s.service = services.NewExportService(repos, services.NewAuditService(s.auditRepo), s.writer, services.WithExportClock(fixedClock))
}

func TestExportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExportServiceTestSuite))
}

func (s *ExportServiceTestSuite) expectFinanceData() {
	s.walletRepo.On("ListWallets", mock.Anything, "owner-1").Return([]domain.Wallet{
		{WalletID: "cash", Name: "Tiền mặt", IsActive: true},
		{WalletID: "bank", Name: "Ngân hàng", IsActive: true},
	}, nil)
	s.categoryRepo.On("ListCategories", mock.Anything, "owner-1", (*domain.Flow)(nil)).Return([]domain.Category{
		{CategoryID: "feed", Name: "Thức ăn", Flow: domain.FlowExpense},
		{CategoryID: "sales", Name: "Bán cá", Flow: domain.FlowIncome},
	}, nil)
	s.customFieldRepo.On("ListCustomFields", mock.Anything, "owner-1").Return([]domain.CustomField{
		{FieldKey: "pond", FieldName: "Ao", FieldType: domain.FieldText, IsActive: true},
		{FieldKey: "old", FieldName: "Cũ", FieldType: domain.FieldText, IsActive: false},
	}, nil)

	deleted := reportTxn("t9", "2024-03-05", domain.FlowExpense, 1, "cash", strPtr("feed"), nil)
	deleted.IsDeleted = true
	sale := reportTxn("t2", "2024-03-02", domain.FlowIncome, 9_000_000, "bank", strPtr("sales"), nil)
	sale.CustomFields = map[string]any{"pond": "Ao 1"}
	s.transactionRepo.On("ListAllTransactions", mock.Anything, "owner-1").Return([]domain.Transaction{
		reportTxn("t3", "2024-03-20", domain.FlowExpense, 1_500_000, "cash", strPtr("feed"), nil),
		sale,
		reportTxn("t1", "2024-02-28", domain.FlowExpense, 10, "cash", strPtr("feed"), nil),
		reportTxn("t4", "2024-03-10", domain.FlowTransfer, 2_000_000, "bank", nil, strPtr("cash")),
		deleted,
	}, nil)
}

func (s *ExportServiceTestSuite) TestExportFinance_BuildsWorkbookAndAudits() {
	ctx := context.Background()
	s.expectFinanceData()

	var written domain.Workbook
	s.writer.On("WriteWorkbook", ctx, mock.Anything).Run(func(args mock.Arguments) {
		written = args.Get(1).(domain.Workbook)
	}).Return("memory://so-quy_2024-03-01_2024-03-31", nil).Once()
	s.auditRepo.On("SaveAuditLogInTx", ctx, mock.Anything, mock.MatchedBy(func(l domain.AuditLog) bool {
		var payload map[string]any
		return l.Action == domain.ActionExport && l.Entity == domain.EntityExportFinance && l.EntityID == nil &&
			json.Unmarshal(l.AfterData, &payload) == nil &&
			payload["txnCount"] == float64(3) && payload["fileName"] == "so-quy_2024-03-01_2024-03-31"
	})).Return(nil).Once()

	result, err := s.service.ExportFinance(ctx, editorSession, dto.FinanceExportRequest{From: "2024-03-01", To: "2024-03-31"})

	s.Require().NoError(err)
	s.Equal("so-quy_2024-03-01_2024-03-31", result.FileName)
	s.Equal(3, result.RowCount)
	s.Require().Len(written.Sheets, 3)
	s.Equal("README", written.Sheets[0].Name)
	s.Equal("GIAO_DICH", written.Sheets[1].Name)
	s.Equal("THEO_DANH_MUC", written.Sheets[2].Name)

	txnSheet := written.Sheets[1]
	s.Equal("Ao", txnSheet.Header[len(txnSheet.Header)-1])
	s.Require().Len(txnSheet.Rows, 3)
	s.Equal([]string{"2024-03-02", "Thu", "9000000", "Ngân hàng", "", "Bán cá", "", "0001-01-01T00:00:00Z", "Ao 1"}, txnSheet.Rows[0])
	s.Equal("Chuyển khoản", txnSheet.Rows[1][1])
	s.Equal("Tiền mặt", txnSheet.Rows[1][4])
	s.Equal("2024-03-20", txnSheet.Rows[2][0])

	s.Len(written.Sheets[2].Rows, 2)
	s.Equal(1, s.txManager.commits)
}

func (s *ExportServiceTestSuite) TestExportFinance_WalletFilterAndAuditSheet() {
	ctx := context.Background()
	s.expectFinanceData()
	s.auditRepo.On("ListAuditLogs", mock.Anything, "owner-1", domain.AuditLogFilter{}, 500, (*string)(nil)).Return([]domain.AuditLog{
		{AuditID: "a3", Action: domain.ActionCreate, Entity: domain.EntityWallet, CreatedAt: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)},
		{AuditID: "a2", Action: domain.ActionUpdate, Entity: domain.EntityWallet, CreatedAt: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		{AuditID: "a1", Action: domain.ActionCreate, Entity: domain.EntityWallet, CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}, strPtr("more"), nil).Once()

	var written domain.Workbook
	s.writer.On("WriteWorkbook", ctx, mock.Anything).Run(func(args mock.Arguments) {
		written = args.Get(1).(domain.Workbook)
	}).Return("memory://x", nil).Once()
	s.auditRepo.On("SaveAuditLogInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	result, err := s.service.ExportFinance(ctx, editorSession, dto.FinanceExportRequest{
		From: "2024-03-01", To: "2024-03-31", WalletID: strPtr("cash"), IncludeAuditLog: true,
	})

	s.Require().NoError(err)
	s.Equal(2, result.RowCount, "expense from cash and transfer into cash")
	s.Require().Len(written.Sheets, 4)
	s.Equal("NHAT_KY", written.Sheets[3].Name)
	s.Len(written.Sheets[3].Rows, 1)
	s.auditRepo.AssertNumberOfCalls(s.T(), "ListAuditLogs", 1)
}

func (s *ExportServiceTestSuite) TestExportFinance_UnknownWallet() {
	s.expectFinanceData()

	_, err := s.service.ExportFinance(context.Background(), editorSession, dto.FinanceExportRequest{
		From: "2024-03-01", To: "2024-03-31", WalletID: strPtr("nope"),
	})

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.writer.AssertNotCalled(s.T(), "WriteWorkbook", mock.Anything, mock.Anything)
}

func (s *ExportServiceTestSuite) TestExportFinance_WriterFailureIsNotAudited() {
	ctx := context.Background()
	s.expectFinanceData()
	s.writer.On("WriteWorkbook", ctx, mock.Anything).Return("", errors.New("quota exceeded")).Once()

	_, err := s.service.ExportFinance(ctx, editorSession, dto.FinanceExportRequest{From: "2024-03-01", To: "2024-03-31"})

	s.ErrorContains(err, "quota exceeded")
	s.auditRepo.AssertNotCalled(s.T(), "SaveAuditLogInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ExportServiceTestSuite) TestExportJournal() {
	ctx := context.Background()
	s.journalRepo.On("ListFeedJournalsInRange", ctx, "owner-1", "2024-03-01", "2024-03-31").Return([]domain.FeedJournal{
		{JournalID: "j1", JournalDate: "2024-03-03", Note: "Cho ăn 20kg", Tags: []string{"ao-1", "sáng"}},
		{JournalID: "j2", JournalDate: "2024-03-04", ImageURL: strPtr("https://img.example/a.jpg")},
	}, nil).Once()

	var written domain.Workbook
	s.writer.On("WriteWorkbook", ctx, mock.Anything).Run(func(args mock.Arguments) {
		written = args.Get(1).(domain.Workbook)
	}).Return("memory://journal", nil).Once()
	s.auditRepo.On("SaveAuditLogInTx", ctx, mock.Anything, mock.MatchedBy(func(l domain.AuditLog) bool {
		var payload map[string]any
		return l.Entity == domain.EntityExportJournal &&
			json.Unmarshal(l.AfterData, &payload) == nil && payload["entryCount"] == float64(2)
	})).Return(nil).Once()

	result, err := s.service.ExportJournal(ctx, viewerSession, dto.JournalExportRequest{From: "2024-03-01", To: "2024-03-31"})

	s.Require().NoError(err)
	s.Equal("memory://journal", result.Location)
	s.Require().Len(written.Sheets, 1)
	s.Equal("NHAT_KY_CHO_AN", written.Sheets[0].Name)
	s.Equal("ao-1, sáng", written.Sheets[0].Rows[0][2])
	s.Equal("https://img.example/a.jpg", written.Sheets[0].Rows[1][3])
}

func (s *ExportServiceTestSuite) TestExportNeedsBothBounds() {
	_, err := s.service.ExportJournal(context.Background(), editorSession, dto.JournalExportRequest{From: "2024-03-01"})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.ExportFinance(context.Background(), editorSession, dto.FinanceExportRequest{From: "2024-04-01", To: "2024-03-01"})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ExportServiceTestSuite) TestAmountsUseWholeDong() {
	s.expectFinanceData()
	var written domain.Workbook
	s.writer.On("WriteWorkbook", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		written = args.Get(1).(domain.Workbook)
	}).Return("memory://x", nil).Once()
	s.auditRepo.On("SaveAuditLogInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := s.service.ExportFinance(context.Background(), editorSession, dto.FinanceExportRequest{From: "2024-03-01", To: "2024-03-31"})

	s.Require().NoError(err)
	s.Equal(decimal.NewFromInt(1_500_000).String(), written.Sheets[1].Rows[2][2])
}
