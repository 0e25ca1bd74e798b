package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/loooooooooogp/Account/internal/apperrors"
	"github.com/loooooooooogp/Account/internal/core/domain"
	portssvc "github.com/loooooooooogp/Account/internal/core/ports/services"
	"github.com/loooooooooogp/Account/internal/dto"
	"github.com/loooooooooogp/Account/internal/handlers"
	"github.com/loooooooooogp/Account/internal/platform/config"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) RecordTransaction(ctx context.Context, actorUserID string, req dto.RecordTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, actorUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) AmendTransaction(ctx context.Context, transactionID, actorUserID string, req dto.AmendTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, actorUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) RemoveTransaction(ctx context.Context, transactionID, actorUserID string) error {
	args := m.Called(ctx, transactionID, actorUserID)
	return args.Error(0)
}
func (m *MockLedgerService) GetTransaction(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	jwtSecret         string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "account-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	// The request DTOs use custom binding tags, registered at startup in main
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		suite.Require().NoError(dto.RegisterCustomValidations(v))
	}

	suite.mockLedgerService = new(MockLedgerService)

	cfg := &config.Config{
		JWTSecret:         suite.jwtSecret,
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "account-test",
		AuthRateLimit:     "100-M",
	}
	services := &portssvc.ServiceContainer{Ledger: suite.mockLedgerService}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *TransactionHandlerTestSuite) doRequest(method, url, userID string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestRecordTransaction_Success() {
	userID := uuid.NewString()
	accountID := uuid.NewString()
	categoryID := uuid.NewString()

	created := &domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		AccountID:     accountID,
		Type:          domain.Expense,
		Amount:        decimal.NewFromInt(42),
		CategoryID:    categoryID,
		Date:          time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	}

	suite.mockLedgerService.On("RecordTransaction",
		mock.Anything,
		userID,
		mock.MatchedBy(func(r dto.RecordTransactionRequest) bool {
			return r.AccountID == accountID && r.Type == domain.Expense && r.Amount.Equal(decimal.NewFromInt(42))
		}),
	).Return(created, nil).Once()

	body := gin.H{
		"accountID":  accountID,
		"type":       "expense",
		"amount":     "42",
		"categoryID": categoryID,
		"date":       "2025-03-14",
	}
	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", userID, body)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.TransactionID, resp.TransactionID)
	suite.Equal("2025-03-14", resp.Date)

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestRecordTransaction_MissingToken() {
	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", "", gin.H{})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "RecordTransaction")
}

func (suite *TransactionHandlerTestSuite) TestRecordTransaction_InvalidType() {
	userID := uuid.NewString()

	body := gin.H{
		"accountID":  uuid.NewString(),
		"type":       "transfer",
		"amount":     "10",
		"categoryID": uuid.NewString(),
		"date":       "2025-03-14",
	}
	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", userID, body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "RecordTransaction")
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockLedgerService.On("GetTransaction", mock.Anything, transactionID, userID).
		Return(nil, apperrors.NewNotFoundError("transaction not found")).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions/"+transactionID, userID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_Success() {
	userID := uuid.NewString()
	limit := 10

	expected := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{
			{
				TransactionID: uuid.NewString(),
				AccountID:     uuid.NewString(),
				Type:          domain.Income,
				Amount:        decimal.NewFromInt(100),
				Date:          "2025-03-14",
			},
		},
		NextToken: nil,
	}

	suite.mockLedgerService.On("ListTransactions",
		mock.Anything,
		userID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Limit == limit
		}),
	).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/transactions?limit=%d", limit)
	w := suite.doRequest(http.MethodGet, url, userID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListTransactionsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.Equal(expected.Transactions[0].TransactionID, resp.Transactions[0].TransactionID)

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestRemoveTransaction_Forbidden() {
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockLedgerService.On("RemoveTransaction", mock.Anything, transactionID, userID).
		Return(fmt.Errorf("%w: write access required", apperrors.ErrForbidden)).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/transactions/"+transactionID, userID, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
