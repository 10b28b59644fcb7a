package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/core/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	tenantID        string
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount() {
	ctx := tenantCtx(suite.tenantID)
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Code:        "1500",
		Name:        "Prepaid Rent",
		AccountType: domain.Asset,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.tenantID, account.TenantID)
	suite.True(account.IsActive)
	suite.False(account.IsSystem)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccountSameCodeInTwoTenants() {
	otherTenantID := uuid.NewString()
	saved := make([]domain.Account, 0, 2)
	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			saved = append(saved, args.Get(1).(domain.Account))
		}).Return(nil).Twice()

	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}
	first, err := suite.service.CreateAccount(tenantCtx(suite.tenantID), req, suite.userID)
	suite.Require().NoError(err)
	second, err := suite.service.CreateAccount(tenantCtx(otherTenantID), req, suite.userID)
	suite.Require().NoError(err)

	suite.Equal("1000", first.Code)
	suite.Equal("1000", second.Code)
	suite.NotEqual(first.TenantID, second.TenantID)
	suite.Require().Len(saved, 2)
	suite.Equal(suite.tenantID, saved[0].TenantID)
	suite.Equal(otherTenantID, saved[1].TenantID)
}

func (suite *AccountServiceTestSuite) TestCreateAccountRejectsUnknownType() {
	ctx := tenantCtx(suite.tenantID)

	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Code:        "1500",
		Name:        "Mystery",
		AccountType: "GOODWILL",
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccountParentTypeMustMatch() {
	ctx := tenantCtx(suite.tenantID)
	parent := &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "2000",
		AccountType: domain.Liability,
		IsActive:    true,
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, parent.AccountID).
		Return(parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Code:            "1500",
		Name:            "Prepaid Rent",
		AccountType:     domain.Asset,
		ParentAccountID: &parent.AccountID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateSystemAccountRejected() {
	ctx := tenantCtx(suite.tenantID)
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "1000",
		AccountType: domain.Asset,
		IsSystem:    true,
		IsActive:    true,
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, account.AccountID).
		Return(account, nil).Once()

	err := suite.service.DeactivateAccount(ctx, account.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestDeactivateReferencedAccountRejected() {
	ctx := tenantCtx(suite.tenantID)
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "1500",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, account.AccountID).
		Return(account, nil).Once()
	suite.mockAccountRepo.On("IsAccountReferenced", ctx, suite.tenantID, account.AccountID).
		Return(true, nil).Once()

	err := suite.service.DeactivateAccount(ctx, account.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestSeedDefaultAccountsLinksParents() {
	ctx := tenantCtx(suite.tenantID)
	parentCode := "1000"
	seeds := []domain.SeedAccount{
		{Code: "1000", Name: "Assets", AccountType: domain.Asset},
		{Code: "1010", Name: "Bank", AccountType: domain.Asset, SubType: "bank", ParentCode: &parentCode},
	}

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.tenantID, true).
		Return([]domain.Account{}, nil).Once()
	suite.mockAccountRepo.On("ListSeedAccounts", ctx).Return(seeds, nil).Once()

	var saved []domain.Account
	suite.mockAccountRepo.On("SaveAccounts", ctx, mock.AnythingOfType("[]domain.Account")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).([]domain.Account)
		}).
		Return(nil).Once()

	err := suite.service.SeedDefaultAccounts(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(saved, 2)
	suite.True(saved[0].IsSystem)
	suite.Nil(saved[0].ParentAccountID)
	suite.Require().NotNil(saved[1].ParentAccountID)
	suite.Equal(saved[0].AccountID, *saved[1].ParentAccountID)
}

func (suite *AccountServiceTestSuite) TestSeedDefaultAccountsRefusesExistingChart() {
	ctx := tenantCtx(suite.tenantID)
	suite.mockAccountRepo.On("ListAccounts", ctx, suite.tenantID, true).
		Return([]domain.Account{{AccountID: uuid.NewString()}}, nil).Once()

	err := suite.service.SeedDefaultAccounts(ctx, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccounts", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccountAppliesPartialFields() {
	ctx := tenantCtx(suite.tenantID)
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "1500",
		Name:        "Prepaid Rent",
		SubType:     "current_asset",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, account.AccountID).
		Return(account, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	newName := "Prepaid Expenses"
	updated, err := suite.service.UpdateAccount(ctx, account.AccountID, dto.UpdateAccountRequest{Name: &newName}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Prepaid Expenses", updated.Name)
	// Untouched fields survive.
	suite.Equal("current_asset", updated.SubType)
	suite.True(updated.IsActive)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
