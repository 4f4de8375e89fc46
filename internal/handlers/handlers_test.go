package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/SscSPs/farm_ledger_app/internal/handlers"
	"github.com/SscSPs/farm_ledger_app/internal/middleware"
	"github.com/SscSPs/farm_ledger_app/internal/platform/config"
	"github.com/SscSPs/farm_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/swaggo/swag"
)

var (
	editorSession = domain.Session{UserID: "owner-1", OwnerID: "owner-1", Role: domain.RoleEditor, Actor: "Anh Tư"}
	viewerSession = domain.Session{UserID: "viewer-1", OwnerID: "owner-1", Role: domain.RoleViewer, Actor: "Chị Hai"}
)

type HandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	cfg          *config.Config
	users        *MockUserService
	tokens       *MockTokenService
	wallets      *MockWalletService
	transactions *MockTransactionService
	reporting    *MockReportingService
	exports      *MockExportService
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	v, ok := binding.Validator.Engine().(*validator.Validate)
	suite.Require().True(ok)
	suite.Require().NoError(dto.RegisterValidators(v))
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		IsProduction:      true,
		JWTSecret:         "test-secret-key-that-is-long-enough",
		JWTIssuer:         "farm-ledger-test",
		JWTExpiryDuration: time.Hour,
		LoginRateLimit:    "100-M",
		ExportRateLimit:   "1-H",
	}

	suite.users = new(MockUserService)
	suite.tokens = new(MockTokenService)
	suite.wallets = new(MockWalletService)
	suite.transactions = new(MockTransactionService)
	suite.reporting = new(MockReportingService)
	suite.exports = new(MockExportService)

	suite.users.On("ResolveSession", mock.Anything, "owner-1").Return(editorSession, nil).Maybe()
	suite.users.On("ResolveSession", mock.Anything, "viewer-1").Return(viewerSession, nil).Maybe()

	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(slog.Default()))
	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		User:        suite.users,
		Token:       suite.tokens,
		Wallet:      suite.wallets,
		Transaction: suite.transactions,
		Reporting:   suite.reporting,
		Export:      suite.exports,
	}, nil)
}

func (suite *HandlerTestSuite) token(userID string) string {
	token, err := utils.GenerateJWT(userID, suite.cfg.JWTSecret, time.Hour, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
	return token
}

func (suite *HandlerTestSuite) do(method, url, userID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.token(userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestMissingToken() {
	w := suite.do(http.MethodGet, "/api/v1/wallets", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.wallets.AssertNotCalled(suite.T(), "ListWallets", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestTokenWithWrongIssuer() {
	token, err := utils.GenerateJWT("owner-1", suite.cfg.JWTSecret, time.Hour, "someone-else")
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/wallets", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestUnknownSessionUser() {
	suite.users.On("ResolveSession", mock.Anything, "ghost").Return(domain.Session{}, apperrors.ErrUnauthorized).Once()

	w := suite.do(http.MethodGet, "/api/v1/wallets", "ghost", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.wallets.AssertNotCalled(suite.T(), "ListWallets", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListWallets() {
	suite.wallets.On("ListWallets", mock.Anything, editorSession).Return([]domain.Wallet{
		{WalletID: "cash", Name: "Tiền mặt", WalletType: domain.WalletCash, OpeningBalance: decimal.NewFromInt(1000), IsActive: true},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/wallets", "owner-1", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ListWalletsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Wallets, 1)
	suite.Equal("cash", resp.Wallets[0].WalletID)
	suite.True(resp.Wallets[0].OpeningBalance.Equal(decimal.NewFromInt(1000)))
	suite.wallets.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateTransaction() {
	body := map[string]any{
		"txnDate":    "2024-03-01",
		"flow":       "EXPENSE",
		"amount":     "50000",
		"walletID":   "cash",
		"categoryID": "feed",
		"note":       "Cám tháng 3",
	}
	category := "feed"
	suite.transactions.On("CreateTransaction", mock.Anything, editorSession, mock.MatchedBy(func(r dto.CreateTransactionRequest) bool {
		return r.WalletID == "cash" && r.Flow == domain.FlowExpense && r.Amount.Equal(decimal.NewFromInt(50000))
	})).Return(&domain.Transaction{
		TransactionID: "txn-1",
		TxnDate:       "2024-03-01",
		Flow:          domain.FlowExpense,
		Amount:        decimal.NewFromInt(50000),
		WalletID:      "cash",
		CategoryID:    &category,
		Note:          "Cám tháng 3",
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions", "owner-1", body)

	suite.Require().Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("txn-1", resp.TransactionID)
	suite.Equal("feed", *resp.CategoryID)
	suite.transactions.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateTransaction_BadDate() {
	w := suite.do(http.MethodPost, "/api/v1/transactions", "owner-1", map[string]any{
		"txnDate":  "01/03/2024",
		"flow":     "EXPENSE",
		"amount":   "50000",
		"walletID": "cash",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.transactions.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateTransaction_ServiceValidation() {
	suite.transactions.On("CreateTransaction", mock.Anything, editorSession, mock.Anything).
		Return(nil, fmt.Errorf("%w: category of the other flow", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions", "owner-1", map[string]any{
		"txnDate": "2024-03-01", "flow": "INCOME", "amount": "10", "walletID": "cash", "categoryID": "feed",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "category of the other flow")
}

func (suite *HandlerTestSuite) TestCreateTransaction_ViewerForbidden() {
	suite.transactions.On("CreateTransaction", mock.Anything, viewerSession, mock.Anything).
		Return(nil, apperrors.ErrForbidden).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions", "viewer-1", map[string]any{
		"txnDate": "2024-03-01", "flow": "EXPENSE", "amount": "10", "walletID": "cash", "categoryID": "feed",
	})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.transactions.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestDeleteTransaction_WithVersion() {
	suite.transactions.On("DeleteTransaction", mock.Anything, editorSession, "txn-1",
		mock.MatchedBy(func(v *int64) bool { return v != nil && *v == 3 })).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/transactions/txn-1?version=3", "owner-1", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.transactions.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestRestoreTransaction_Conflict() {
	suite.transactions.On("RestoreTransaction", mock.Anything, editorSession, "txn-1", (*int64)(nil)).
		Return(nil, fmt.Errorf("%w: transaction is not deleted", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions/txn-1/restore", "owner-1", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestGetTransaction_NotFound() {
	suite.transactions.On("GetTransaction", mock.Anything, editorSession, "nope").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/nope", "owner-1", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListTransactions_NextToken() {
	next := "token-2"
	suite.transactions.On("ListTransactions", mock.Anything, editorSession, mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
		return p.Limit == 2 && p.WalletID == "cash" && p.From == "2024-03-01"
	})).Return([]domain.Transaction{{TransactionID: "a"}, {TransactionID: "b"}}, &next, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?limit=2&walletID=cash&from=2024-03-01", "owner-1", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 2)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("token-2", *resp.NextToken)
}

func (suite *HandlerTestSuite) TestBalances() {
	suite.reporting.On("Balances", mock.Anything, viewerSession, false).Return([]domain.WalletBalance{
		{WalletID: "cash", Balance: decimal.NewFromInt(1000)},
		{WalletID: "bank", Balance: decimal.NewFromInt(200)},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/balances", "viewer-1", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.BalancesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Wallets, 2)
	suite.True(resp.Total.Equal(decimal.NewFromInt(1200)), resp.Total.String())
}

func (suite *HandlerTestSuite) TestSummary_ReversedRange() {
	suite.reporting.On("Summary", mock.Anything, editorSession, "2024-03-31", "2024-03-01").
		Return(nil, fmt.Errorf("%w: from is after to", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/summary?from=2024-03-31&to=2024-03-01", "owner-1", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestExportFinance_RateLimited() {
	suite.exports.On("ExportFinance", mock.Anything, editorSession, mock.MatchedBy(func(r dto.FinanceExportRequest) bool {
		return r.From == "2024-03-01" && r.To == "2024-03-31"
	})).Return(&domain.ExportResult{
		FileName: "so-quy_2024-03-01_2024-03-31",
		Location: "memory://so-quy_2024-03-01_2024-03-31",
		RowCount: 4,
		Workbook: domain.Workbook{Sheets: []domain.Sheet{{Name: "README"}, {Name: "GIAO_DICH", Rows: [][]string{{"x"}}}}},
		AuditLog: domain.AuditLog{AuditID: "audit-9"},
	}, nil).Once()

	body := map[string]any{"from": "2024-03-01", "to": "2024-03-31"}
	w := suite.do(http.MethodPost, "/api/v1/exports/finance", "owner-1", body)

	suite.Require().Equal(http.StatusCreated, w.Code)
	var resp dto.ExportResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("audit-9", resp.AuditID)
	suite.Len(resp.Sheets, 2)
	suite.Equal(1, resp.Sheets[1].Rows)

	w = suite.do(http.MethodPost, "/api/v1/exports/finance", "owner-1", body)
	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.exports.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestExportJournal_MissingBound() {
	w := suite.do(http.MethodPost, "/api/v1/exports/journal", "owner-1", map[string]any{"from": "2024-03-01"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.exports.AssertNotCalled(suite.T(), "ExportJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestLogin() {
	user := &domain.User{UserID: "owner-1", Email: "tu@example.com", FullName: "Anh Tư", Role: domain.RoleEditor}
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	refreshExpires := expires.Add(24 * time.Hour)

	suite.users.On("AuthenticateUser", mock.Anything, "tu@example.com", "secret-pass").Return(user, nil).Once()
	suite.tokens.On("GenerateAccessToken", mock.Anything, user).Return("access", expires, nil).Once()
	suite.tokens.On("GenerateRefreshToken", mock.Anything, user).Return("raw-refresh", refreshExpires, nil).Once()
	suite.users.On("UpdateRefreshToken", mock.Anything, "owner-1", utils.HashRefreshToken("raw-refresh"), refreshExpires).Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": "tu@example.com", "password": "secret-pass"})

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("access", resp.Token)
	suite.Equal("raw-refresh", resp.RefreshToken)
	suite.Equal("owner-1", resp.User.OwnerID)
	suite.users.AssertExpectations(suite.T())
	suite.tokens.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestLogin_WrongPassword() {
	suite.users.On("AuthenticateUser", mock.Anything, "tu@example.com", "nope-nope").Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": "tu@example.com", "password": "nope-nope"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.tokens.AssertNotCalled(suite.T(), "GenerateAccessToken", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestRefresh_Expired() {
	suite.tokens.On("ValidateAndParseRefreshToken", mock.Anything, "owner-1", "stale").Return(nil, apperrors.ErrRefreshTokenExpired).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]any{"userID": "owner-1", "refreshToken": "stale"})

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestLogout() {
	suite.users.On("ClearRefreshToken", mock.Anything, "owner-1").Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/logout", "owner-1", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.users.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestSwaggerDescribesEveryRoute() {
	raw, err := swag.ReadDoc()
	suite.Require().NoError(err)
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	suite.Require().NoError(json.Unmarshal([]byte(raw), &doc))

	checked := 0
	for _, route := range suite.router.Routes() {
		if !strings.HasPrefix(route.Path, "/api/v1/") {
			continue
		}
		segments := strings.Split(strings.TrimPrefix(route.Path, "/api/v1"), "/")
		for i, seg := range segments {
			if strings.HasPrefix(seg, ":") {
				segments[i] = "{" + seg[1:] + "}"
			}
		}
		path := strings.Join(segments, "/")
		_, ok := doc.Paths[path][strings.ToLower(route.Method)]
		suite.True(ok, "%s %s is not documented", route.Method, path)
		checked++
	}
	suite.GreaterOrEqual(checked, 40)
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
