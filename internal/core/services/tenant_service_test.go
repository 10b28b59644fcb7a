package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/core/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

type TenantServiceTestSuite struct {
	suite.Suite
	mockTenantRepo  *MockTenantRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.TenantSvcFacade
	userID          string
}

func (suite *TenantServiceTestSuite) SetupTest() {
	suite.mockTenantRepo = new(MockTenantRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewTenantService(suite.mockTenantRepo, suite.mockAccountRepo)
	suite.userID = uuid.NewString()
}

func (suite *TenantServiceTestSuite) TestCreateTenant() {
	ctx := context.Background()
	suite.mockTenantRepo.On("SaveTenant", ctx, mock.AnythingOfType("domain.Tenant")).Return(nil).Once()

	tenant, err := suite.service.CreateTenant(ctx, dto.CreateTenantRequest{Name: "Acme Books"}, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(tenant.TenantID)
	suite.True(tenant.IsActive)
	suite.Equal("Acme Books", tenant.Name)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ListSeedAccounts", mock.Anything)
}

func (suite *TenantServiceTestSuite) TestCreateTenantSeedsChartWhenRequested() {
	ctx := context.Background()
	seeds := []domain.SeedAccount{
		{Code: "1000", Name: "Assets", AccountType: domain.Asset},
		{Code: "4000", Name: "Sales Revenue", AccountType: domain.Income},
	}
	suite.mockTenantRepo.On("SaveTenant", ctx, mock.AnythingOfType("domain.Tenant")).Return(nil).Once()
	suite.mockAccountRepo.On("ListSeedAccounts", ctx).Return(seeds, nil).Once()

	var saved []domain.Account
	suite.mockAccountRepo.On("SaveAccounts", ctx, mock.AnythingOfType("[]domain.Account")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).([]domain.Account)
		}).
		Return(nil).Once()

	tenant, err := suite.service.CreateTenant(ctx, dto.CreateTenantRequest{Name: "Acme Books", SeedAccounts: true}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(saved, 2)
	suite.Equal(tenant.TenantID, saved[0].TenantID)
	suite.Equal("1000", saved[0].Code)
	suite.True(saved[0].IsSystem)
}

func (suite *TenantServiceTestSuite) TestDeactivateTenantDelegates() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	suite.mockTenantRepo.On("SoftDeleteTenant", ctx, tenantID, suite.userID).Return(nil).Once()

	err := suite.service.DeactivateTenant(ctx, tenantID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTenantRepo.AssertExpectations(suite.T())
}

func TestTenantServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}
