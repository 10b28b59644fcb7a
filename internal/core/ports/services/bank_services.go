package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// BankSvcFacade defines bank account, statement and reconciliation operations.
type BankSvcFacade interface {
	// CreateBankAccount registers a bank account linked to a GL account.
	CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves the tenant's bank accounts.
	ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error)

	// GetBalance computes the book balance of the bank's linked GL account as of a date.
	GetBalance(ctx context.Context, bankAccountID string, asOf time.Time) (decimal.Decimal, error)

	// GetUnreconciledTransactions lists posted lines against the bank's GL
	// account not yet matched to a statement line, with the current book balance.
	GetUnreconciledTransactions(ctx context.Context, bankAccountID string) ([]domain.UnreconciledLine, decimal.Decimal, error)

	// ImportStatement stores a statement and its lines for later matching.
	ImportStatement(ctx context.Context, req dto.ImportStatementRequest, userID string) (*domain.BankStatement, error)

	// GetStatementByID retrieves a statement header with its lines.
	GetStatementByID(ctx context.Context, statementID string) (*domain.BankStatement, []domain.BankStatementLine, error)

	// MatchLine records a match between a statement line and a journal line.
	MatchLine(ctx context.Context, req dto.MatchLineRequest, userID string) (*domain.ReconciliationMatch, error)

	// UnmatchLine removes a previously recorded match.
	UnmatchLine(ctx context.Context, matchID, userID string) error

	// Reconcile records matches for the checked-off journal lines, then compares
	// the full GL book balance of the bank's ledger account as of a date against
	// the reported statement balance. The result lists what remains unmatched on
	// both the book side and the statement side.
	Reconcile(ctx context.Context, req dto.ReconcileRequest, userID string) (*domain.ReconciliationResult, error)
}
