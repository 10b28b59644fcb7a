package repositories

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByID retrieves an account by ID, scoped to the tenant.
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its per-tenant code.
	FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID, scoped to the tenant.
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts for a tenant, optionally including inactive ones.
	ListAccounts(ctx context.Context, tenantID string, includeInactive bool) ([]domain.Account, error)

	// IsAccountReferenced reports whether any journal line references the account.
	IsAccountReferenced(ctx context.Context, tenantID, accountID string) (bool, error)
}

// AccountWriter defines write operations for chart-of-accounts data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SaveAccounts persists multiple accounts in one transaction (seeding).
	SaveAccounts(ctx context.Context, accounts []domain.Account) error

	// UpdateAccount updates mutable account fields.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount soft-deletes an account.
	DeactivateAccount(ctx context.Context, tenantID, accountID, updatedByUserID string) error
}

// AccountTxReader exposes in-transaction reads used by the posting flow.
type AccountTxReader interface {
	// FindAccountsByIDsInTx retrieves accounts inside an open transaction.
	FindAccountsByIDsInTx(ctx context.Context, tx pgx.Tx, tenantID string, accountIDs []string) (map[string]domain.Account, error)
}

// SeedTemplateReader reads the global (non-tenant-scoped) chart seeding template.
type SeedTemplateReader interface {
	ListSeedAccounts(ctx context.Context) ([]domain.SeedAccount, error)
}

// AccountRepositoryFacade combines all account repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTxReader
	SeedTemplateReader
}
