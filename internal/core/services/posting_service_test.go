package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/core/services"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

type PostingServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.PostingSvcFacade
	tenantID        string
	userID          string
	cashAccount     domain.Account
	salesAccount    domain.Account
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewPostingService(suite.mockJournalRepo, suite.mockAccountRepo)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.salesAccount = domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "4000",
		Name:        "Sales Revenue",
		AccountType: domain.Income,
		IsActive:    true,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (suite *PostingServiceTestSuite) balancedRequest(amount string) dto.CreateEntryRequest {
	amt := dec(amount)
	return dto.CreateEntryRequest{
		EntryDate:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		ReferenceType: domain.RefManual,
		Description:   "Cash sale",
		Lines: []dto.EntryLineInput{
			{AccountID: suite.cashAccount.AccountID, Debit: &amt},
			{AccountID: suite.salesAccount.AccountID, Credit: &amt},
		},
	}
}

func (suite *PostingServiceTestSuite) expectAccounts(accounts ...domain.Account) {
	byID := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, suite.tenantID, mock.AnythingOfType("[]string")).
		Return(byID, nil).Once()
}

func (suite *PostingServiceTestSuite) TestPostSuccess() {
	ctx := tenantCtx(suite.tenantID)
	req := suite.balancedRequest("150.00")

	suite.expectAccounts(suite.cashAccount, suite.salesAccount)
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("*domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(*domain.JournalEntry)
			entry.EntryNumber = "JE-2026-00001"
		}).
		Return(nil).Once()

	entry, err := suite.service.Post(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal("JE-2026-00001", entry.EntryNumber)
	suite.Equal(domain.StatusPosted, entry.Status)
	suite.Equal(suite.tenantID, entry.TenantID)
	suite.Require().NotNil(entry.PostedAt)
	suite.Require().Len(entry.Lines, 2)
	suite.Equal(domain.Debit, entry.Lines[0].LineType)
	suite.Equal(domain.Credit, entry.Lines[1].LineType)
	suite.True(entry.Lines[0].Amount.Equal(dec("150.00")))
	suite.Equal(entry.EntryID, entry.Lines[0].EntryID)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostUnbalancedRejected() {
	ctx := tenantCtx(suite.tenantID)
	debit := dec("100.00")
	credit := dec("90.00")
	req := dto.CreateEntryRequest{
		EntryDate:     time.Now().UTC(),
		ReferenceType: domain.RefManual,
		Description:   "Broken entry",
		Lines: []dto.EntryLineInput{
			{AccountID: suite.cashAccount.AccountID, Debit: &debit},
			{AccountID: suite.salesAccount.AccountID, Credit: &credit},
		},
	}

	entry, err := suite.service.Post(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalancedEntry)
	suite.Nil(entry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostLineWithBothSidesRejected() {
	ctx := tenantCtx(suite.tenantID)
	amt := dec("50.00")
	req := dto.CreateEntryRequest{
		EntryDate:     time.Now().UTC(),
		ReferenceType: domain.RefManual,
		Description:   "Both sides set",
		Lines: []dto.EntryLineInput{
			{AccountID: suite.cashAccount.AccountID, Debit: &amt, Credit: &amt},
			{AccountID: suite.salesAccount.AccountID, Credit: &amt},
		},
	}

	_, err := suite.service.Post(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestPostLineWithNeitherSideRejected() {
	ctx := tenantCtx(suite.tenantID)
	amt := dec("50.00")
	req := dto.CreateEntryRequest{
		EntryDate:     time.Now().UTC(),
		ReferenceType: domain.RefManual,
		Description:   "Empty line",
		Lines: []dto.EntryLineInput{
			{AccountID: suite.cashAccount.AccountID},
			{AccountID: suite.salesAccount.AccountID, Credit: &amt},
		},
	}

	_, err := suite.service.Post(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestPostInactiveAccountRejected() {
	ctx := tenantCtx(suite.tenantID)
	req := suite.balancedRequest("75.00")

	inactiveSales := suite.salesAccount
	inactiveSales.IsActive = false
	suite.expectAccounts(suite.cashAccount, inactiveSales)

	_, err := suite.service.Post(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostUnknownAccountRejected() {
	ctx := tenantCtx(suite.tenantID)
	req := suite.balancedRequest("75.00")

	// Only one of the two referenced accounts exists.
	suite.expectAccounts(suite.cashAccount)

	_, err := suite.service.Post(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PostingServiceTestSuite) TestPostUnknownReferenceTypeRejected() {
	ctx := tenantCtx(suite.tenantID)
	req := suite.balancedRequest("75.00")
	req.ReferenceType = "SOMETHING_ELSE"

	_, err := suite.service.Post(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestPostWithoutTenantRejected() {
	req := suite.balancedRequest("75.00")

	_, err := suite.service.Post(tenantlessCtx(), req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoTenantContext)
}

func (suite *PostingServiceTestSuite) postedEntry() (*domain.JournalEntry, []domain.JournalLine) {
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{
		EntryID:       entryID,
		TenantID:      suite.tenantID,
		EntryNumber:   "JE-2026-00042",
		EntryDate:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		ReferenceType: domain.RefManual,
		Description:   "Original entry",
		Status:        domain.StatusPosted,
	}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, LineType: domain.Debit, Amount: dec("200.00")},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.salesAccount.AccountID, LineType: domain.Credit, Amount: dec("200.00")},
	}
	return entry, lines
}

func (suite *PostingServiceTestSuite) TestReverseMirrorsLines() {
	ctx := tenantCtx(suite.tenantID)
	original, originalLines := suite.postedEntry()

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, original.EntryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, suite.tenantID, original.EntryID).Return(originalLines, nil).Once()
	suite.mockJournalRepo.On("SaveReversal", ctx, original, mock.AnythingOfType("*domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) {
			reversal := args.Get(2).(*domain.JournalEntry)
			reversal.EntryNumber = "REV-" + original.EntryNumber
		}).
		Return(nil).Once()

	reversal, err := suite.service.Reverse(ctx, original.EntryID, "Duplicate posting", suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Equal("REV-JE-2026-00042", reversal.EntryNumber)
	suite.True(reversal.IsSystemGenerated)
	suite.Require().NotNil(reversal.ReversesEntryID)
	suite.Equal(original.EntryID, *reversal.ReversesEntryID)
	suite.Require().Len(reversal.Lines, 2)
	// Same accounts and amounts, opposite sides.
	suite.Equal(domain.Credit, reversal.Lines[0].LineType)
	suite.Equal(suite.cashAccount.AccountID, reversal.Lines[0].AccountID)
	suite.True(reversal.Lines[0].Amount.Equal(dec("200.00")))
	suite.Equal(domain.Debit, reversal.Lines[1].LineType)
	suite.Equal(suite.salesAccount.AccountID, reversal.Lines[1].AccountID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestReverseAlreadyReversedRejected() {
	ctx := tenantCtx(suite.tenantID)
	original, _ := suite.postedEntry()
	reversedBy := uuid.NewString()
	original.ReversedByEntryID = &reversedBy

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, original.EntryID).Return(original, nil).Once()

	_, err := suite.service.Reverse(ctx, original.EntryID, "Again", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestReverseOfReversalRejected() {
	ctx := tenantCtx(suite.tenantID)
	original, _ := suite.postedEntry()
	reverses := uuid.NewString()
	original.ReversesEntryID = &reverses

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, original.EntryID).Return(original, nil).Once()

	_, err := suite.service.Reverse(ctx, original.EntryID, "Nope", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PostingServiceTestSuite) TestReverseVoidEntryRejected() {
	ctx := tenantCtx(suite.tenantID)
	original, _ := suite.postedEntry()
	original.Status = domain.StatusVoid

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, original.EntryID).Return(original, nil).Once()

	_, err := suite.service.Reverse(ctx, original.EntryID, "Void already", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PostingServiceTestSuite) TestVoidDelegatesToGuardedUpdate() {
	ctx := tenantCtx(suite.tenantID)
	entryID := uuid.NewString()

	suite.mockJournalRepo.On("VoidEntry", ctx, suite.tenantID, entryID, "Entered twice", suite.userID).Return(nil).Once()

	err := suite.service.Void(ctx, entryID, "Entered twice", suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestGetEntryByIDHydratesLines() {
	ctx := tenantCtx(suite.tenantID)
	original, lines := suite.postedEntry()

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, original.EntryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, suite.tenantID, original.EntryID).Return(lines, nil).Once()

	entry, err := suite.service.GetEntryByID(ctx, original.EntryID)

	suite.Require().NoError(err)
	suite.Require().Len(entry.Lines, 2)
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
