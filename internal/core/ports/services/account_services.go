package services

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// AccountReaderSvc defines read operations over the chart of accounts.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a single account for the tenant in context.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its per-tenant code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the tenant's chart of accounts.
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)
}

// AccountWriterSvc defines mutations of the chart of accounts.
type AccountWriterSvc interface {
	// CreateAccount adds an account to the tenant's chart.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount edits name/subtype/parent/active flags.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount soft-deletes an account. System accounts and accounts
	// referenced by journal lines are refused.
	DeactivateAccount(ctx context.Context, accountID, userID string) error

	// SeedDefaultAccounts copies the global seeding template into the tenant's chart.
	SeedDefaultAccounts(ctx context.Context, userID string) error
}

// AccountSvcFacade combines all chart-of-accounts service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
