package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/utils/accounting"
)

// bankService manages bank accounts, imported statements and the matching that
// ties statement lines to book-side journal lines.
type bankService struct {
	BaseService
	bankRepo    portsrepo.BankRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewBankService creates a new BankSvcFacade.
func NewBankService(bankRepo portsrepo.BankRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade) portssvc.BankSvcFacade {
	return &bankService{bankRepo: bankRepo, accountRepo: accountRepo, journalRepo: journalRepo}
}

// Ensure bankService implements the portssvc.BankSvcFacade interface
var _ portssvc.BankSvcFacade = (*bankService)(nil)

// CreateBankAccount links a bank account to its GL asset account.
func (s *bankService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}

	glAccount, err := s.accountRepo.FindAccountByID(ctx, tenant.TenantID, req.GLAccountID)
	if err != nil {
		return nil, err
	}
	if glAccount.AccountType != domain.Asset {
		return nil, fmt.Errorf("%w: linked GL account %s must be an ASSET account", apperrors.ErrValidation, glAccount.Code)
	}
	if !glAccount.IsActive {
		return nil, fmt.Errorf("%w: linked GL account %s is inactive", apperrors.ErrValidation, glAccount.Code)
	}

	now := time.Now().UTC()
	account := domain.BankAccount{
		BankAccountID: uuid.NewString(),
		TenantID:      tenant.TenantID,
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		GLAccountID:   req.GLAccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.bankRepo.SaveBankAccount(ctx, account); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Bank account created", slog.String("bank_account_id", account.BankAccountID))
	return &account, nil
}

func (s *bankService) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.bankRepo.ListBankAccounts(ctx, tenant.TenantID)
}

// GetBalance computes sum(debits) - sum(credits) of posted lines against the
// bank's linked GL account up to asOf.
func (s *bankService) GetBalance(ctx context.Context, bankAccountID string, asOf time.Time) (decimal.Decimal, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	bankAccount, err := s.bankRepo.FindBankAccountByID(ctx, tenant.TenantID, bankAccountID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.bankRepo.GetBookBalance(ctx, tenant.TenantID, bankAccount.GLAccountID, asOf)
}

// GetUnreconciledTransactions lists posted lines against the bank's GL account
// not yet matched to any statement line, together with the current book balance.
func (s *bankService) GetUnreconciledTransactions(ctx context.Context, bankAccountID string) ([]domain.UnreconciledLine, decimal.Decimal, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}
	bankAccount, err := s.bankRepo.FindBankAccountByID(ctx, tenant.TenantID, bankAccountID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	bookBalance, err := s.bankRepo.GetBookBalance(ctx, tenant.TenantID, bankAccount.GLAccountID, time.Now().UTC())
	if err != nil {
		return nil, decimal.Zero, err
	}
	lines, err := s.bankRepo.ListUnreconciledLines(ctx, tenant.TenantID, bankAccount.GLAccountID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return lines, bookBalance, nil
}

// ImportStatement stores a pre-parsed statement with its lines.
func (s *bankService) ImportStatement(ctx context.Context, req dto.ImportStatementRequest, userID string) (*domain.BankStatement, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	if req.ToDate.Before(req.FromDate) {
		return nil, fmt.Errorf("%w: statement toDate precedes fromDate", apperrors.ErrValidation)
	}
	if _, err := s.bankRepo.FindBankAccountByID(ctx, tenant.TenantID, req.BankAccountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	statement := domain.BankStatement{
		StatementID:   uuid.NewString(),
		TenantID:      tenant.TenantID,
		BankAccountID: req.BankAccountID,
		FromDate:      req.FromDate,
		ToDate:        req.ToDate,
		AuditFields:   audit,
	}
	lines := make([]domain.BankStatementLine, len(req.Lines))
	for i, in := range req.Lines {
		if in.Debit.IsNegative() || in.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: statement line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		lines[i] = domain.BankStatementLine{
			LineID:          uuid.NewString(),
			StatementID:     statement.StatementID,
			TransactionDate: in.TransactionDate,
			Description:     in.Description,
			Debit:           in.Debit,
			Credit:          in.Credit,
			Balance:         in.Balance,
			AuditFields:     audit,
		}
	}

	if err := s.bankRepo.SaveStatement(ctx, statement, lines); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Bank statement imported",
		slog.String("statement_id", statement.StatementID), slog.Int("line_count", len(lines)))
	return &statement, nil
}

func (s *bankService) GetStatementByID(ctx context.Context, statementID string) (*domain.BankStatement, []domain.BankStatementLine, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, nil, err
	}
	statement, err := s.bankRepo.FindStatementByID(ctx, tenant.TenantID, statementID)
	if err != nil {
		return nil, nil, err
	}
	lines, err := s.bankRepo.FindStatementLines(ctx, tenant.TenantID, statementID)
	if err != nil {
		return nil, nil, err
	}
	return statement, lines, nil
}

// MatchLine links a statement line to a posted journal line. The journal line
// must exist for this tenant; a line already matched is rejected by the unique
// constraint on the match table.
func (s *bankService) MatchLine(ctx context.Context, req dto.MatchLineRequest, userID string) (*domain.ReconciliationMatch, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: match amount must be positive", apperrors.ErrValidation)
	}

	journalLine, err := s.journalRepo.FindLineByID(ctx, tenant.TenantID, req.JournalLineID)
	if err != nil {
		return nil, err
	}
	if !journalLine.Amount.Sub(req.Amount).Abs().LessThan(accounting.Tolerance) {
		return nil, fmt.Errorf("%w: match amount %s does not equal journal line amount %s",
			apperrors.ErrValidation, req.Amount.StringFixed(2), journalLine.Amount.StringFixed(2))
	}

	now := time.Now().UTC()
	match := domain.ReconciliationMatch{
		MatchID:         uuid.NewString(),
		TenantID:        tenant.TenantID,
		StatementLineID: req.StatementLineID,
		JournalLineID:   req.JournalLineID,
		Amount:          req.Amount,
		MatchedAt:       now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.bankRepo.SaveMatches(ctx, []domain.ReconciliationMatch{match}); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Reconciliation match recorded",
		slog.String("match_id", match.MatchID), slog.String("journal_line_id", req.JournalLineID))
	return &match, nil
}

// UnmatchLine removes a match and returns its statement line to the unmatched pool.
func (s *bankService) UnmatchLine(ctx context.Context, matchID, userID string) error {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return err
	}
	if err := s.bankRepo.DeleteMatch(ctx, tenant.TenantID, matchID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Reconciliation match removed", slog.String("match_id", matchID))
	return nil
}

// Reconcile persists matches for the checked-off journal lines, then compares
// the full book balance of the bank's GL account against the reported statement
// balance. BookBalance covers every posted line, not just the marked subset, so
// the difference surfaces whatever is still outstanding.
func (s *bankService) Reconcile(ctx context.Context, req dto.ReconcileRequest, userID string) (*domain.ReconciliationResult, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}

	bankAccount, err := s.bankRepo.FindBankAccountByID(ctx, tenant.TenantID, req.BankAccountID)
	if err != nil {
		return nil, err
	}

	if len(req.ReconciledLineIDs) > 0 {
		now := time.Now().UTC()
		matches := make([]domain.ReconciliationMatch, 0, len(req.ReconciledLineIDs))
		for _, lineID := range req.ReconciledLineIDs {
			line, err := s.journalRepo.FindLineByID(ctx, tenant.TenantID, lineID)
			if err != nil {
				return nil, fmt.Errorf("reconciled line %s: %w", lineID, err)
			}
			matches = append(matches, domain.ReconciliationMatch{
				MatchID:       uuid.NewString(),
				TenantID:      tenant.TenantID,
				JournalLineID: line.LineID,
				Amount:        line.Amount,
				MatchedAt:     now,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     userID,
					LastUpdatedAt: now,
					LastUpdatedBy: userID,
				},
			})
		}
		if err := s.bankRepo.SaveMatches(ctx, matches); err != nil {
			return nil, err
		}
		s.LogInfo(ctx, "Reconciliation matches recorded",
			slog.String("bank_account_id", req.BankAccountID), slog.Int("count", len(matches)))
	}

	bookBalance, err := s.bankRepo.GetBookBalance(ctx, tenant.TenantID, bankAccount.GLAccountID, req.AsOf)
	if err != nil {
		return nil, err
	}
	unreconciled, err := s.bankRepo.ListUnreconciledLines(ctx, tenant.TenantID, bankAccount.GLAccountID)
	if err != nil {
		return nil, err
	}
	unmatchedStatements, err := s.bankRepo.ListUnmatchedStatementLines(ctx, tenant.TenantID, req.BankAccountID)
	if err != nil {
		return nil, err
	}

	difference := req.StatementBalance.Sub(bookBalance)
	return &domain.ReconciliationResult{
		BankAccountID:           req.BankAccountID,
		AsOf:                    req.AsOf,
		StatementBalance:        req.StatementBalance,
		BookBalance:             bookBalance,
		Difference:              difference,
		Balanced:                difference.Abs().LessThan(accounting.Tolerance),
		Unreconciled:            unreconciled,
		UnmatchedStatementLines: unmatchedStatements,
	}, nil
}
