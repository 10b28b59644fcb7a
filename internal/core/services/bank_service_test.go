package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/core/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

type BankServiceTestSuite struct {
	suite.Suite
	mockBankRepo    *MockBankRepository
	mockAccountRepo *MockAccountRepository
	mockJournalRepo *MockJournalRepository
	service         portssvc.BankSvcFacade
	tenantID        string
	userID          string
	glAccount       domain.Account
	bankAccount     *domain.BankAccount
}

func (suite *BankServiceTestSuite) SetupTest() {
	suite.mockBankRepo = new(MockBankRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewBankService(suite.mockBankRepo, suite.mockAccountRepo, suite.mockJournalRepo)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.glAccount = domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "1010",
		Name:        "Checking Account",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.bankAccount = &domain.BankAccount{
		BankAccountID: uuid.NewString(),
		TenantID:      suite.tenantID,
		Name:          "Main Checking",
		AccountNumber: "****1234",
		GLAccountID:   suite.glAccount.AccountID,
	}
}

func (suite *BankServiceTestSuite) TestCreateBankAccount() {
	ctx := tenantCtx(suite.tenantID)
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, suite.glAccount.AccountID).
		Return(&suite.glAccount, nil).Once()
	suite.mockBankRepo.On("SaveBankAccount", ctx, mock.AnythingOfType("domain.BankAccount")).Return(nil).Once()

	account, err := suite.service.CreateBankAccount(ctx, dto.CreateBankAccountRequest{
		Name:          "Main Checking",
		AccountNumber: "****1234",
		GLAccountID:   suite.glAccount.AccountID,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(account.BankAccountID)
	suite.Equal(suite.glAccount.AccountID, account.GLAccountID)
	suite.mockBankRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestCreateBankAccountRejectsNonAssetGL() {
	ctx := tenantCtx(suite.tenantID)
	liability := suite.glAccount
	liability.AccountType = domain.Liability
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, liability.AccountID).
		Return(&liability, nil).Once()

	_, err := suite.service.CreateBankAccount(ctx, dto.CreateBankAccountRequest{
		Name:        "Wrong",
		GLAccountID: liability.AccountID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBankRepo.AssertNotCalled(suite.T(), "SaveBankAccount", mock.Anything, mock.Anything)
}

func (suite *BankServiceTestSuite) TestImportStatementRejectsInvertedPeriod() {
	ctx := tenantCtx(suite.tenantID)

	_, err := suite.service.ImportStatement(ctx, dto.ImportStatementRequest{
		BankAccountID: suite.bankAccount.BankAccountID,
		FromDate:      time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		ToDate:        time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BankServiceTestSuite) TestImportStatementAssignsLineIDs() {
	ctx := tenantCtx(suite.tenantID)
	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.tenantID, suite.bankAccount.BankAccountID).
		Return(suite.bankAccount, nil).Once()

	var savedLines []domain.BankStatementLine
	suite.mockBankRepo.On("SaveStatement", ctx, mock.AnythingOfType("domain.BankStatement"), mock.AnythingOfType("[]domain.BankStatementLine")).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(2).([]domain.BankStatementLine)
		}).
		Return(nil).Once()

	statement, err := suite.service.ImportStatement(ctx, dto.ImportStatementRequest{
		BankAccountID: suite.bankAccount.BankAccountID,
		FromDate:      time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		ToDate:        time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		Lines: []dto.StatementLineInput{
			{TransactionDate: time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC), Description: "Deposit", Credit: dec("500.00")},
			{TransactionDate: time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), Description: "Rent", Debit: dec("1200.00")},
		},
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(savedLines, 2)
	suite.NotEmpty(savedLines[0].LineID)
	suite.Equal(statement.StatementID, savedLines[0].StatementID)
	suite.Equal(statement.StatementID, savedLines[1].StatementID)
}

func (suite *BankServiceTestSuite) TestMatchLineAmountMustAgree() {
	ctx := tenantCtx(suite.tenantID)
	journalLine := &domain.JournalLine{
		LineID:    uuid.NewString(),
		AccountID: suite.glAccount.AccountID,
		LineType:  domain.Debit,
		Amount:    dec("500.00"),
	}
	suite.mockJournalRepo.On("FindLineByID", ctx, suite.tenantID, journalLine.LineID).
		Return(journalLine, nil).Once()

	_, err := suite.service.MatchLine(ctx, dto.MatchLineRequest{
		JournalLineID: journalLine.LineID,
		Amount:        dec("450.00"),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBankRepo.AssertNotCalled(suite.T(), "SaveMatches", mock.Anything, mock.Anything)
}

func (suite *BankServiceTestSuite) TestMatchLineSuccess() {
	ctx := tenantCtx(suite.tenantID)
	statementLineID := uuid.NewString()
	journalLine := &domain.JournalLine{
		LineID:    uuid.NewString(),
		AccountID: suite.glAccount.AccountID,
		LineType:  domain.Debit,
		Amount:    dec("500.00"),
	}
	suite.mockJournalRepo.On("FindLineByID", ctx, suite.tenantID, journalLine.LineID).
		Return(journalLine, nil).Once()
	suite.mockBankRepo.On("SaveMatches", ctx, mock.AnythingOfType("[]domain.ReconciliationMatch")).Return(nil).Once()

	match, err := suite.service.MatchLine(ctx, dto.MatchLineRequest{
		StatementLineID: &statementLineID,
		JournalLineID:   journalLine.LineID,
		Amount:          dec("500.00"),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(journalLine.LineID, match.JournalLineID)
	suite.Require().NotNil(match.StatementLineID)
	suite.Equal(statementLineID, *match.StatementLineID)
}

func (suite *BankServiceTestSuite) TestReconcileReportsDifference() {
	ctx := tenantCtx(suite.tenantID)
	asOf := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	unreconciled := []domain.UnreconciledLine{
		{LineID: uuid.NewString(), LineType: domain.Debit, Amount: dec("100.00"), SignedAmount: dec("100.00")},
	}

	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.tenantID, suite.bankAccount.BankAccountID).
		Return(suite.bankAccount, nil).Once()
	suite.mockBankRepo.On("GetBookBalance", ctx, suite.tenantID, suite.glAccount.AccountID, asOf).
		Return(dec("400.00"), nil).Once()
	suite.mockBankRepo.On("ListUnreconciledLines", ctx, suite.tenantID, suite.glAccount.AccountID).
		Return(unreconciled, nil).Once()
	suite.mockBankRepo.On("ListUnmatchedStatementLines", ctx, suite.tenantID, suite.bankAccount.BankAccountID).
		Return([]domain.BankStatementLine{}, nil).Once()

	result, err := suite.service.Reconcile(ctx, dto.ReconcileRequest{
		BankAccountID:    suite.bankAccount.BankAccountID,
		AsOf:             asOf,
		StatementBalance: dec("500.00"),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.BookBalance.Equal(dec("400.00")))
	suite.True(result.Difference.Equal(dec("100.00")))
	suite.False(result.Balanced)
	suite.Len(result.Unreconciled, 1)
	suite.mockBankRepo.AssertNotCalled(suite.T(), "SaveMatches", mock.Anything, mock.Anything)
}

func (suite *BankServiceTestSuite) TestReconcileBalancedWithinTolerance() {
	ctx := tenantCtx(suite.tenantID)
	asOf := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)

	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.tenantID, suite.bankAccount.BankAccountID).
		Return(suite.bankAccount, nil).Once()
	suite.mockBankRepo.On("GetBookBalance", ctx, suite.tenantID, suite.glAccount.AccountID, asOf).
		Return(dec("500.00"), nil).Once()
	suite.mockBankRepo.On("ListUnreconciledLines", ctx, suite.tenantID, suite.glAccount.AccountID).
		Return([]domain.UnreconciledLine{}, nil).Once()
	suite.mockBankRepo.On("ListUnmatchedStatementLines", ctx, suite.tenantID, suite.bankAccount.BankAccountID).
		Return([]domain.BankStatementLine{}, nil).Once()

	result, err := suite.service.Reconcile(ctx, dto.ReconcileRequest{
		BankAccountID:    suite.bankAccount.BankAccountID,
		AsOf:             asOf,
		StatementBalance: dec("500.00"),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.Difference.IsZero())
	suite.True(result.Balanced)
}

func (suite *BankServiceTestSuite) TestReconcileMarksCheckedOffLines() {
	ctx := tenantCtx(suite.tenantID)
	asOf := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	lineA := &domain.JournalLine{LineID: uuid.NewString(), AccountID: suite.glAccount.AccountID,
		LineType: domain.Debit, Amount: dec("120.00")}
	lineB := &domain.JournalLine{LineID: uuid.NewString(), AccountID: suite.glAccount.AccountID,
		LineType: domain.Credit, Amount: dec("45.00")}
	statementRemainder := []domain.BankStatementLine{{LineID: uuid.NewString(), Debit: dec("30.00")}}

	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.tenantID, suite.bankAccount.BankAccountID).
		Return(suite.bankAccount, nil).Once()
	suite.mockJournalRepo.On("FindLineByID", ctx, suite.tenantID, lineA.LineID).Return(lineA, nil).Once()
	suite.mockJournalRepo.On("FindLineByID", ctx, suite.tenantID, lineB.LineID).Return(lineB, nil).Once()

	var savedMatches []domain.ReconciliationMatch
	suite.mockBankRepo.On("SaveMatches", ctx, mock.AnythingOfType("[]domain.ReconciliationMatch")).
		Run(func(args mock.Arguments) {
			savedMatches = args.Get(1).([]domain.ReconciliationMatch)
		}).Return(nil).Once()
	suite.mockBankRepo.On("GetBookBalance", ctx, suite.tenantID, suite.glAccount.AccountID, asOf).
		Return(dec("400.00"), nil).Once()
	suite.mockBankRepo.On("ListUnreconciledLines", ctx, suite.tenantID, suite.glAccount.AccountID).
		Return([]domain.UnreconciledLine{}, nil).Once()
	suite.mockBankRepo.On("ListUnmatchedStatementLines", ctx, suite.tenantID, suite.bankAccount.BankAccountID).
		Return(statementRemainder, nil).Once()

	result, err := suite.service.Reconcile(ctx, dto.ReconcileRequest{
		BankAccountID:     suite.bankAccount.BankAccountID,
		AsOf:              asOf,
		StatementBalance:  dec("500.00"),
		ReconciledLineIDs: []string{lineA.LineID, lineB.LineID},
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(savedMatches, 2)
	suite.Equal(lineA.LineID, savedMatches[0].JournalLineID)
	suite.True(savedMatches[0].Amount.Equal(dec("120.00")))
	suite.Equal(lineB.LineID, savedMatches[1].JournalLineID)
	suite.Equal(suite.tenantID, savedMatches[1].TenantID)
	suite.Equal(suite.userID, savedMatches[1].CreatedBy)
	// Marking lines never shrinks the balance comparison to the marked subset.
	suite.True(result.BookBalance.Equal(dec("400.00")))
	suite.True(result.Difference.Equal(dec("100.00")))
	suite.Require().Len(result.UnmatchedStatementLines, 1)
}

func (suite *BankServiceTestSuite) TestReconcileUnknownLineRejected() {
	ctx := tenantCtx(suite.tenantID)
	missingID := uuid.NewString()

	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.tenantID, suite.bankAccount.BankAccountID).
		Return(suite.bankAccount, nil).Once()
	suite.mockJournalRepo.On("FindLineByID", ctx, suite.tenantID, missingID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Reconcile(ctx, dto.ReconcileRequest{
		BankAccountID:     suite.bankAccount.BankAccountID,
		AsOf:              time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		StatementBalance:  dec("500.00"),
		ReconciledLineIDs: []string{missingID},
	}, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBankRepo.AssertNotCalled(suite.T(), "SaveMatches", mock.Anything, mock.Anything)
}

func (suite *BankServiceTestSuite) TestGetBalanceUsesLinkedGLAccount() {
	ctx := tenantCtx(suite.tenantID)
	asOf := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)

	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.tenantID, suite.bankAccount.BankAccountID).
		Return(suite.bankAccount, nil).Once()
	suite.mockBankRepo.On("GetBookBalance", ctx, suite.tenantID, suite.glAccount.AccountID, asOf).
		Return(dec("1250.50"), nil).Once()

	balance, err := suite.service.GetBalance(ctx, suite.bankAccount.BankAccountID, asOf)

	suite.Require().NoError(err)
	suite.Equal(dec("1250.50"), balance)
	suite.mockBankRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestGetUnreconciledTransactions() {
	ctx := tenantCtx(suite.tenantID)
	open := []domain.UnreconciledLine{{
		LineID:       uuid.NewString(),
		EntryNumber:  "JE-2026-00009",
		LineType:     domain.Debit,
		Amount:       dec("75.00"),
		SignedAmount: dec("75.00"),
	}}

	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.tenantID, suite.bankAccount.BankAccountID).
		Return(suite.bankAccount, nil).Once()
	suite.mockBankRepo.On("GetBookBalance", ctx, suite.tenantID, suite.glAccount.AccountID, mock.AnythingOfType("time.Time")).
		Return(dec("400.00"), nil).Once()
	suite.mockBankRepo.On("ListUnreconciledLines", ctx, suite.tenantID, suite.glAccount.AccountID).
		Return(open, nil).Once()

	lines, bookBalance, err := suite.service.GetUnreconciledTransactions(ctx, suite.bankAccount.BankAccountID)

	suite.Require().NoError(err)
	suite.Equal(dec("400.00"), bookBalance)
	suite.Require().Len(lines, 1)
	suite.Equal("JE-2026-00009", lines[0].EntryNumber)
}

func (suite *BankServiceTestSuite) TestUnmatchLineDelegates() {
	ctx := tenantCtx(suite.tenantID)
	matchID := uuid.NewString()
	suite.mockBankRepo.On("DeleteMatch", ctx, suite.tenantID, matchID).Return(nil).Once()

	err := suite.service.UnmatchLine(ctx, matchID, suite.userID)

	suite.Require().NoError(err)
	suite.mockBankRepo.AssertExpectations(suite.T())
}

func TestBankServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BankServiceTestSuite))
}
