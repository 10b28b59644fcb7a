package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// accountService provides chart-of-accounts operations.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// buildSeedAccounts materializes the global seeding template for one tenant.
// Parent references are resolved by code within the same batch.
func buildSeedAccounts(tenantID string, seeds []domain.SeedAccount, userID string) []domain.Account {
	now := time.Now().UTC()
	accounts := make([]domain.Account, len(seeds))
	idByCode := make(map[string]string, len(seeds))
	for i, seed := range seeds {
		accountID := uuid.NewString()
		idByCode[seed.Code] = accountID
		accounts[i] = domain.Account{
			AccountID:   accountID,
			TenantID:    tenantID,
			Code:        seed.Code,
			Name:        seed.Name,
			AccountType: seed.AccountType,
			SubType:     seed.SubType,
			IsSystem:    true,
			IsActive:    true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	for i, seed := range seeds {
		if seed.ParentCode != nil {
			if parentID, ok := idByCode[*seed.ParentCode]; ok {
				accounts[i].ParentAccountID = &parentID
			}
		}
	}
	return accounts
}

// CreateAccount adds an account to the tenant's chart.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	if !req.AccountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if req.ParentAccountID != nil {
		parent, err := s.accountRepo.FindAccountByID(ctx, tenant.TenantID, *req.ParentAccountID)
		if err != nil {
			return nil, fmt.Errorf("parent account: %w", err)
		}
		if parent.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: parent account type %s does not match %s", apperrors.ErrValidation, parent.AccountType, req.AccountType)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		TenantID:        tenant.TenantID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		SubType:         req.SubType,
		ParentAccountID: req.ParentAccountID,
		IsSystem:        false,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves a single account for the tenant in context.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountByID(ctx, tenant.TenantID, accountID)
}

// GetAccountByCode retrieves an account by its per-tenant code.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountByCode(ctx, tenant.TenantID, code)
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountsByIDs(ctx, tenant.TenantID, accountIDs)
}

// ListAccounts retrieves the tenant's chart of accounts.
func (s *accountService) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.accountRepo.ListAccounts(ctx, tenant.TenantID, includeInactive)
}

// UpdateAccount edits name/subtype/active flags. Code and type are immutable
// once the account exists; corrections go through a new account.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, tenant.TenantID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.SubType != nil {
		account.SubType = *req.SubType
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// DeactivateAccount soft-deletes an account. System accounts and accounts
// referenced by journal lines are refused.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID, userID string) error {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, tenant.TenantID, accountID)
	if err != nil {
		return err
	}
	if account.IsSystem {
		return fmt.Errorf("%w: system account %s cannot be deactivated", apperrors.ErrValidation, account.Code)
	}
	referenced, err := s.accountRepo.IsAccountReferenced(ctx, tenant.TenantID, accountID)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: account %s has journal lines", apperrors.ErrConflict, account.Code)
	}

	return s.accountRepo.DeactivateAccount(ctx, tenant.TenantID, accountID, userID)
}

// SeedDefaultAccounts copies the global seeding template into the tenant's chart.
func (s *accountService) SeedDefaultAccounts(ctx context.Context, userID string) error {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return err
	}

	existing, err := s.accountRepo.ListAccounts(ctx, tenant.TenantID, true)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return fmt.Errorf("%w: tenant already has a chart of accounts", apperrors.ErrConflict)
	}

	seeds, err := s.accountRepo.ListSeedAccounts(ctx)
	if err != nil {
		return err
	}
	accounts := buildSeedAccounts(tenant.TenantID, seeds, userID)

	if err := s.accountRepo.SaveAccounts(ctx, accounts); err != nil {
		s.LogError(ctx, err, "Failed to seed accounts", slog.String("tenant_id", tenant.TenantID))
		return err
	}
	s.LogInfo(ctx, "Seeded default chart of accounts", slog.String("tenant_id", tenant.TenantID), slog.Int("accounts", len(accounts)))
	return nil
}
