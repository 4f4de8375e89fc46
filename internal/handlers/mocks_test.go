package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListViewers(ctx context.Context, session domain.Session) ([]domain.User, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CreateViewer(ctx context.Context, session domain.Session, req dto.CreateViewerRequest) (*domain.User, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime).Error(0)
}

func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ResolveSession(ctx context.Context, userID string) (domain.Session, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Session), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	args := m.Called(ctx, userID, refreshTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock WalletService ---
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) GetWallet(ctx context.Context, session domain.Session, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, session, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) ListWallets(ctx context.Context, session domain.Session) ([]domain.Wallet, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletService) CreateWallet(ctx context.Context, session domain.Session, req dto.CreateWalletRequest) (*domain.Wallet, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) UpdateWallet(ctx context.Context, session domain.Session, walletID string, req dto.UpdateWalletRequest) (*domain.Wallet, error) {
	args := m.Called(ctx, session, walletID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) DeleteWallet(ctx context.Context, session domain.Session, walletID string, version *int64) error {
	return m.Called(ctx, session, walletID, version).Error(0)
}

var _ portssvc.WalletSvcFacade = (*MockWalletService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, session domain.Session, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, session, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, session domain.Session, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, session, params)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), next, args.Error(2)
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, session domain.Session, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, session domain.Session, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, session, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, session domain.Session, transactionID string, version *int64) error {
	return m.Called(ctx, session, transactionID, version).Error(0)
}

func (m *MockTransactionService) RestoreTransaction(ctx context.Context, session domain.Session, transactionID string, version *int64) (*domain.Transaction, error) {
	args := m.Called(ctx, session, transactionID, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) Balances(ctx context.Context, session domain.Session, includeInactive bool) ([]domain.WalletBalance, error) {
	args := m.Called(ctx, session, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WalletBalance), args.Error(1)
}

func (m *MockReportingService) RangeBalances(ctx context.Context, session domain.Session, from, to string) ([]domain.RangeBalance, error) {
	args := m.Called(ctx, session, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RangeBalance), args.Error(1)
}

func (m *MockReportingService) Summary(ctx context.Context, session domain.Session, from, to string) (*domain.Summary, error) {
	args := m.Called(ctx, session, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *MockReportingService) Cashflow(ctx context.Context, session domain.Session, from, to string) ([]domain.DailyCashflow, error) {
	args := m.Called(ctx, session, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyCashflow), args.Error(1)
}

func (m *MockReportingService) Overview(ctx context.Context, session domain.Session) (*domain.Overview, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Overview), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Mock ExportService ---
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportFinance(ctx context.Context, session domain.Session, req dto.FinanceExportRequest) (*domain.ExportResult, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportResult), args.Error(1)
}

func (m *MockExportService) ExportJournal(ctx context.Context, session domain.Session, req dto.JournalExportRequest) (*domain.ExportResult, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportResult), args.Error(1)
}

var _ portssvc.ExportSvcFacade = (*MockExportService)(nil)
