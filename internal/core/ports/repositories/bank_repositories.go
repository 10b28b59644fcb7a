package repositories

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BankAccountReader defines read operations for bank account data
type BankAccountReader interface {
	// FindBankAccountByID retrieves a bank account by ID, scoped to the tenant.
	FindBankAccountByID(ctx context.Context, tenantID, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves all bank accounts for a tenant.
	ListBankAccounts(ctx context.Context, tenantID string) ([]domain.BankAccount, error)
}

// BankAccountWriter defines write operations for bank account data
type BankAccountWriter interface {
	// SaveBankAccount persists a new bank account.
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error
}

// StatementReader defines read operations for ingested statement data
type StatementReader interface {
	// FindStatementByID retrieves a statement header, scoped to the tenant.
	FindStatementByID(ctx context.Context, tenantID, statementID string) (*domain.BankStatement, error)

	// FindStatementLines retrieves all lines of one statement.
	FindStatementLines(ctx context.Context, tenantID, statementID string) ([]domain.BankStatementLine, error)

	// ListUnmatchedStatementLines retrieves unmatched lines for a bank account.
	ListUnmatchedStatementLines(ctx context.Context, tenantID, bankAccountID string) ([]domain.BankStatementLine, error)
}

// StatementWriter persists externally parsed statements.
type StatementWriter interface {
	// SaveStatement persists a statement header and its lines in one transaction.
	SaveStatement(ctx context.Context, statement domain.BankStatement, lines []domain.BankStatementLine) error
}

// ReconciliationReader defines read operations for reconciliation state
type ReconciliationReader interface {
	// GetBookBalance computes sum(debits) - sum(credits) of POSTED lines against the
	// bank's GL account up to asOf.
	GetBookBalance(ctx context.Context, tenantID, glAccountID string, asOf time.Time) (decimal.Decimal, error)

	// ListUnreconciledLines retrieves POSTED lines against the GL account not yet
	// referenced by any reconciliation match.
	ListUnreconciledLines(ctx context.Context, tenantID, glAccountID string) ([]domain.UnreconciledLine, error)
}

// ReconciliationWriter defines write operations for reconciliation matches
type ReconciliationWriter interface {
	// SaveMatches creates match rows and flips is_matched on any referenced
	// statement lines within a single transaction.
	SaveMatches(ctx context.Context, matches []domain.ReconciliationMatch) error

	// DeleteMatch removes a match and flips its statement line back to unmatched.
	DeleteMatch(ctx context.Context, tenantID, matchID string) error
}

// BankRepositoryFacade combines all bank reconciliation repository interfaces
type BankRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
	StatementReader
	StatementWriter
	ReconciliationReader
	ReconciliationWriter
}
