package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// fakeTx stands in for a database transaction. Repositories are mocked, so
// none of its methods are ever called.
type fakeTx struct {
	pgx.Tx
}

// stubTxManager counts how transactions end.
type stubTxManager struct {
	begins    int
	commits   int
	rollbacks int
	beginErr  error
}

func (m *stubTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	m.begins++
	return fakeTx{}, nil
}

func (m *stubTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	m.commits++
	return nil
}

func (m *stubTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	m.rollbacks++
	return nil
}

// --- Wallets ---

type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) FindWalletByID(ctx context.Context, ownerID, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, ownerID, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListWallets(ctx context.Context, ownerID string) ([]domain.Wallet, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) FindWalletForUpdate(ctx context.Context, tx pgx.Tx, ownerID, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, tx, ownerID, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) SaveWalletInTx(ctx context.Context, tx pgx.Tx, wallet domain.Wallet) error {
	return m.Called(ctx, tx, wallet).Error(0)
}

func (m *MockWalletRepository) UpdateWalletInTx(ctx context.Context, tx pgx.Tx, wallet domain.Wallet) error {
	return m.Called(ctx, tx, wallet).Error(0)
}

func (m *MockWalletRepository) DeleteWalletInTx(ctx context.Context, tx pgx.Tx, ownerID, walletID string) error {
	return m.Called(ctx, tx, ownerID, walletID).Error(0)
}

// --- Categories ---

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, ownerID, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, ownerID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, ownerID string, flow *domain.Flow) ([]domain.Category, error) {
	args := m.Called(ctx, ownerID, flow)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryForUpdate(ctx context.Context, tx pgx.Tx, ownerID, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, tx, ownerID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategoryInTx(ctx context.Context, tx pgx.Tx, category domain.Category) error {
	return m.Called(ctx, tx, category).Error(0)
}

func (m *MockCategoryRepository) SaveCategoriesInTx(ctx context.Context, tx pgx.Tx, categories []domain.Category) error {
	return m.Called(ctx, tx, categories).Error(0)
}

func (m *MockCategoryRepository) UpdateCategoryInTx(ctx context.Context, tx pgx.Tx, category domain.Category) error {
	return m.Called(ctx, tx, category).Error(0)
}

func (m *MockCategoryRepository) DeleteCategoryInTx(ctx context.Context, tx pgx.Tx, ownerID, categoryID string) error {
	return m.Called(ctx, tx, ownerID, categoryID).Error(0)
}

// --- Custom fields ---

type MockCustomFieldRepository struct {
	mock.Mock
}

func (m *MockCustomFieldRepository) FindCustomFieldByID(ctx context.Context, ownerID, fieldID string) (*domain.CustomField, error) {
	args := m.Called(ctx, ownerID, fieldID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomField), args.Error(1)
}

func (m *MockCustomFieldRepository) ListCustomFields(ctx context.Context, ownerID string) ([]domain.CustomField, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomField), args.Error(1)
}

func (m *MockCustomFieldRepository) FindCustomFieldForUpdate(ctx context.Context, tx pgx.Tx, ownerID, fieldID string) (*domain.CustomField, error) {
	args := m.Called(ctx, tx, ownerID, fieldID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomField), args.Error(1)
}

func (m *MockCustomFieldRepository) SaveCustomFieldInTx(ctx context.Context, tx pgx.Tx, field domain.CustomField) error {
	return m.Called(ctx, tx, field).Error(0)
}

func (m *MockCustomFieldRepository) UpdateCustomFieldInTx(ctx context.Context, tx pgx.Tx, field domain.CustomField) error {
	return m.Called(ctx, tx, field).Error(0)
}

func (m *MockCustomFieldRepository) DeleteCustomFieldInTx(ctx context.Context, tx pgx.Tx, ownerID, fieldID string) error {
	return m.Called(ctx, tx, ownerID, fieldID).Error(0)
}

// --- Transactions ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionForUpdate(ctx context.Context, tx pgx.Tx, ownerID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tx, ownerID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListAllTransactions(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, ownerID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, ownerID, filter, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return txns, next, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	return m.Called(ctx, tx, txn).Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	return m.Called(ctx, tx, txn).Error(0)
}

// --- Audit ---

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) ListAuditLogs(ctx context.Context, ownerID string, filter domain.AuditLogFilter, limit int, nextToken *string) ([]domain.AuditLog, *string, error) {
	args := m.Called(ctx, ownerID, filter, limit, nextToken)
	var logs []domain.AuditLog
	if args.Get(0) != nil {
		logs = args.Get(0).([]domain.AuditLog)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return logs, next, args.Error(2)
}

func (m *MockAuditLogRepository) SaveAuditLogInTx(ctx context.Context, tx pgx.Tx, log domain.AuditLog) error {
	return m.Called(ctx, tx, log).Error(0)
}

type MockAuditPublisher struct {
	mock.Mock
}

func (m *MockAuditPublisher) PublishAuditLog(ctx context.Context, log domain.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

// --- Feed journal ---

type MockFeedJournalRepository struct {
	mock.Mock
}

func (m *MockFeedJournalRepository) FindFeedJournalByID(ctx context.Context, ownerID, journalID string) (*domain.FeedJournal, error) {
	args := m.Called(ctx, ownerID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeedJournal), args.Error(1)
}

func (m *MockFeedJournalRepository) FindFeedJournalForUpdate(ctx context.Context, tx pgx.Tx, ownerID, journalID string) (*domain.FeedJournal, error) {
	args := m.Called(ctx, tx, ownerID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeedJournal), args.Error(1)
}

func (m *MockFeedJournalRepository) ListFeedJournals(ctx context.Context, ownerID string, filter domain.FeedJournalFilter, limit int, nextToken *string) ([]domain.FeedJournal, *string, error) {
	args := m.Called(ctx, ownerID, filter, limit, nextToken)
	var entries []domain.FeedJournal
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.FeedJournal)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return entries, next, args.Error(2)
}

func (m *MockFeedJournalRepository) ListFeedJournalsInRange(ctx context.Context, ownerID, from, to string) ([]domain.FeedJournal, error) {
	args := m.Called(ctx, ownerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeedJournal), args.Error(1)
}

func (m *MockFeedJournalRepository) SaveFeedJournalInTx(ctx context.Context, tx pgx.Tx, entry domain.FeedJournal) error {
	return m.Called(ctx, tx, entry).Error(0)
}

func (m *MockFeedJournalRepository) DeleteFeedJournalInTx(ctx context.Context, tx pgx.Tx, ownerID, journalID string) error {
	return m.Called(ctx, tx, ownerID, journalID).Error(0)
}

// --- Users ---

type MockUserRepository struct {
	stubTxManager
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListViewers(ctx context.Context, ownerID string) ([]domain.User, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUserInTx(ctx context.Context, tx pgx.Tx, user domain.User) error {
	return m.Called(ctx, tx, user).Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	return m.Called(ctx, userID, refreshTokenHash, expiry).Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// --- Spreadsheets ---

type MockSpreadsheetWriter struct {
	mock.Mock
}

func (m *MockSpreadsheetWriter) WriteWorkbook(ctx context.Context, wb domain.Workbook) (string, error) {
	args := m.Called(ctx, wb)
	return args.String(0), args.Error(1)
}

// --- Fixtures ---

var (
	editorSession = domain.Session{UserID: "owner-1", OwnerID: "owner-1", Role: domain.RoleEditor, Actor: "Anh Tư"}
	viewerSession = domain.Session{UserID: "viewer-1", OwnerID: "owner-1", Role: domain.RoleViewer, Actor: "Chị Ba"}
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)
}

func strPtr(s string) *string {
	return &s
}

func int64Ptr(v int64) *int64 {
	return &v
}
