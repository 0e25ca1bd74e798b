package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/loooooooooogp/Account/internal/apperrors"
	"github.com/loooooooooogp/Account/internal/core/domain"
	portsrepo "github.com/loooooooooogp/Account/internal/core/ports/repositories"
	portssvc "github.com/loooooooooogp/Account/internal/core/ports/services"
	"github.com/loooooooooogp/Account/internal/core/services"
	"github.com/loooooooooogp/Account/internal/dto"
)

// --- Mock AccountRepository (full facade) ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.Account, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Test Suite ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockTxnRepo     *MockTransactionRepository
	mockSharing     *MockSharingAuthorizer
	service         portssvc.AccountSvcFacade
	ownerID         string
	account         domain.Account
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockSharing = new(MockSharingAuthorizer)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockTxnRepo, suite.mockSharing)

	suite.ownerID = uuid.NewString()
	suite.account = domain.Account{
		AccountID:   uuid.NewString(),
		OwnerUserID: suite.ownerID,
		Name:        "Wallet",
		AccountType: "cash",
		Balance:     decimal.NewFromInt(40),
	}
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DefaultsToZeroBalance() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Wallet", AccountType: "cash"}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.OwnerUserID == suite.ownerID && acc.Balance.IsZero()
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.ownerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.ownerID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_LinkedUserAllowed() {
	ctx := context.Background()
	granteeID := uuid.NewString()

	suite.mockSharing.On("AuthorizeAccountAccess", ctx, granteeID, suite.account.AccountID, domain.PermissionRead).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()

	account, err := suite.service.GetAccountByID(ctx, suite.account.AccountID, granteeID)

	suite.Require().NoError(err)
	suite.Equal(suite.account.AccountID, account.AccountID)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_StrangerGetsNotFound() {
	ctx := context.Background()
	strangerID := uuid.NewString()

	suite.mockSharing.On("AuthorizeAccountAccess", ctx, strangerID, suite.account.AccountID, domain.PermissionRead).Return(apperrors.NewNotFoundError("account not found")).Once()

	_, err := suite.service.GetAccountByID(ctx, suite.account.AccountID, strangerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NonOwnerHidden() {
	ctx := context.Background()
	name := "Renamed"
	req := dto.UpdateAccountRequest{Name: &name}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, suite.account.AccountID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_WithTransactionsConflicts() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockTxnRepo.On("CountTransactionsByAccount", ctx, suite.account.AccountID).Return(int64(3), nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.account.AccountID, suite.ownerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_EmptyAccountDeleted() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockTxnRepo.On("CountTransactionsByAccount", ctx, suite.account.AccountID).Return(int64(0), nil).Once()
	suite.mockAccountRepo.On("DeleteAccount", ctx, suite.account.AccountID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.account.AccountID, suite.ownerID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
