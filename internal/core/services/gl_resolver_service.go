package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/utils/cache"
)

// glResolverService maps business documents to balanced journal lines using the
// tenant's GL settings. Settings are cached per tenant; every write invalidates.
type glResolverService struct {
	BaseService
	settingsRepo  portsrepo.GLSettingsRepository
	accountRepo   portsrepo.AccountRepositoryFacade
	settingsCache *cache.TTLCache[string, domain.GLSettings]
}

// NewGLResolverService creates a new GLResolverService. cacheTTL bounds how long
// stale settings can be served after an out-of-band database change.
func NewGLResolverService(settingsRepo portsrepo.GLSettingsRepository, accountRepo portsrepo.AccountRepositoryFacade, cacheTTL time.Duration) portssvc.GLResolverSvc {
	return &glResolverService{
		settingsRepo:  settingsRepo,
		accountRepo:   accountRepo,
		settingsCache: cache.New[string, domain.GLSettings](cacheTTL),
	}
}

// Ensure glResolverService implements the portssvc.GLResolverSvc interface
var _ portssvc.GLResolverSvc = (*glResolverService)(nil)

// GetGLSettings returns the tenant's role-to-account mapping and tax rate.
func (s *glResolverService) GetGLSettings(ctx context.Context) (*domain.GLSettings, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.settingsCache.Get(tenant.TenantID); ok {
		return &cached, nil
	}

	settings, err := s.settingsRepo.GetGLSettings(ctx, tenant.TenantID)
	if err != nil {
		return nil, err
	}
	s.settingsCache.Set(tenant.TenantID, *settings)
	return settings, nil
}

// SaveGLSettings replaces the tenant's role mapping and invalidates the resolver
// cache. Every mapped code must name an existing active account.
func (s *glResolverService) SaveGLSettings(ctx context.Context, req dto.SaveGLSettingsRequest, userID string) error {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return err
	}
	if req.TaxRate.IsNegative() || req.TaxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: tax rate must be in [0, 1)", apperrors.ErrValidation)
	}

	for role, code := range req.AccountCodes {
		if code == "" {
			continue
		}
		account, err := s.accountRepo.FindAccountByCode(ctx, tenant.TenantID, code)
		if err != nil {
			return fmt.Errorf("%w: role %s maps to unknown account code %s", apperrors.ErrUnmappedAccount, role, code)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: role %s maps to inactive account %s", apperrors.ErrUnmappedAccount, role, code)
		}
	}

	now := time.Now().UTC()
	settings := domain.GLSettings{
		TenantID:     tenant.TenantID,
		AccountCodes: req.AccountCodes,
		TaxRate:      req.TaxRate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.settingsRepo.SaveGLSettings(ctx, settings); err != nil {
		s.LogError(ctx, err, "Failed to save GL settings", slog.String("tenant_id", tenant.TenantID))
		return err
	}

	s.settingsCache.Invalidate(tenant.TenantID)
	s.LogInfo(ctx, "GL settings saved", slog.String("tenant_id", tenant.TenantID))
	return nil
}

// resolveAccount maps a GL role to an active account through the tenant's settings.
func (s *glResolverService) resolveAccount(ctx context.Context, tenantID string, settings *domain.GLSettings, role domain.GLRole) (*domain.Account, error) {
	code, ok := settings.CodeFor(role)
	if !ok {
		return nil, fmt.Errorf("%w: role %s is not configured", apperrors.ErrUnmappedAccount, role)
	}
	account, err := s.accountRepo.FindAccountByCode(ctx, tenantID, code)
	if err != nil {
		return nil, fmt.Errorf("%w: role %s maps to missing account code %s", apperrors.ErrUnmappedAccount, role, code)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: role %s maps to inactive account %s", apperrors.ErrUnmappedAccount, role, code)
	}
	return account, nil
}

// splitTax decomposes a tax-inclusive gross amount into net and tax at the
// tenant's flat rate, both rounded to cents. Net absorbs the rounding remainder
// so net+tax always reproduces gross exactly.
func splitTax(gross decimal.Decimal, rate decimal.Decimal) (net, tax decimal.Decimal) {
	if rate.IsZero() {
		return gross, decimal.Zero
	}
	net = gross.Div(decimal.NewFromInt(1).Add(rate)).Round(2)
	tax = gross.Sub(net)
	return net, tax
}

// moneyRole picks the cash or bank role for the money leg of a document.
func moneyRole(useBank bool) domain.GLRole {
	if useBank {
		return domain.RoleBankAccount
	}
	return domain.RoleCashAccount
}

// line builds an unpersisted journal line; IDs and audit fields are assigned by
// the posting engine.
func line(account *domain.Account, lineType domain.LineType, amount decimal.Decimal, description string) domain.JournalLine {
	return domain.JournalLine{
		AccountID:   account.AccountID,
		LineType:    lineType,
		Amount:      amount,
		Description: description,
	}
}

// Resolve builds the debit/credit lines for a business document amount.
func (s *glResolverService) Resolve(ctx context.Context, input dto.PostingInput) ([]domain.JournalLine, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	if input.GrossAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: document amount must be positive", apperrors.ErrValidation)
	}
	settings, err := s.GetGLSettings(ctx)
	if err != nil {
		return nil, err
	}

	resolve := func(role domain.GLRole) (*domain.Account, error) {
		return s.resolveAccount(ctx, tenant.TenantID, settings, role)
	}
	gross := input.GrossAmount
	desc := input.Description

	switch input.ReferenceType {
	case domain.RefInvoice:
		// Sales on credit: receivable carries the gross, revenue the net.
		ar, err := resolve(domain.RoleARAccount)
		if err != nil {
			return nil, err
		}
		sales, err := resolve(domain.RoleSalesAccount)
		if err != nil {
			return nil, err
		}
		net, tax := splitTax(gross, settings.TaxRate)
		lines := []domain.JournalLine{
			line(ar, domain.Debit, gross, desc),
			line(sales, domain.Credit, net, desc),
		}
		if tax.IsPositive() {
			taxAcc, err := resolve(domain.RoleSalesTaxAccount)
			if err != nil {
				return nil, err
			}
			lines = append(lines, line(taxAcc, domain.Credit, tax, desc))
		}
		return lines, nil

	case domain.RefPurchaseInvoice:
		// Purchases on credit: payable carries the gross.
		ap, err := resolve(domain.RoleAPAccount)
		if err != nil {
			return nil, err
		}
		purchase, err := resolve(domain.RolePurchaseAccount)
		if err != nil {
			return nil, err
		}
		net, tax := splitTax(gross, settings.TaxRate)
		lines := []domain.JournalLine{
			line(purchase, domain.Debit, net, desc),
		}
		if tax.IsPositive() {
			taxAcc, err := resolve(domain.RoleSalesTaxAccount)
			if err != nil {
				return nil, err
			}
			lines = append(lines, line(taxAcc, domain.Debit, tax, desc))
		}
		lines = append(lines, line(ap, domain.Credit, gross, desc))
		return lines, nil

	case domain.RefReceipt:
		// Customer payment: money in, receivable cleared.
		money, err := resolve(moneyRole(input.UseBankAccount))
		if err != nil {
			return nil, err
		}
		ar, err := resolve(domain.RoleARAccount)
		if err != nil {
			return nil, err
		}
		return []domain.JournalLine{
			line(money, domain.Debit, gross, desc),
			line(ar, domain.Credit, gross, desc),
		}, nil

	case domain.RefPayment:
		// Supplier payment: payable cleared, money out.
		ap, err := resolve(domain.RoleAPAccount)
		if err != nil {
			return nil, err
		}
		money, err := resolve(moneyRole(input.UseBankAccount))
		if err != nil {
			return nil, err
		}
		return []domain.JournalLine{
			line(ap, domain.Debit, gross, desc),
			line(money, domain.Credit, gross, desc),
		}, nil

	case domain.RefExpense:
		expense, err := resolve(domain.RoleExpenseAccount)
		if err != nil {
			return nil, err
		}
		money, err := resolve(moneyRole(input.UseBankAccount))
		if err != nil {
			return nil, err
		}
		return []domain.JournalLine{
			line(expense, domain.Debit, gross, desc),
			line(money, domain.Credit, gross, desc),
		}, nil

	case domain.RefCash:
		// Cash sale: money in immediately, revenue the net.
		money, err := resolve(moneyRole(input.UseBankAccount))
		if err != nil {
			return nil, err
		}
		sales, err := resolve(domain.RoleSalesAccount)
		if err != nil {
			return nil, err
		}
		net, tax := splitTax(gross, settings.TaxRate)
		lines := []domain.JournalLine{
			line(money, domain.Debit, gross, desc),
			line(sales, domain.Credit, net, desc),
		}
		if tax.IsPositive() {
			taxAcc, err := resolve(domain.RoleSalesTaxAccount)
			if err != nil {
				return nil, err
			}
			lines = append(lines, line(taxAcc, domain.Credit, tax, desc))
		}
		return lines, nil
	}

	return nil, fmt.Errorf("%w: no posting rule for reference type %q", apperrors.ErrValidation, input.ReferenceType)
}

// BuildCOGSLines builds the cost-of-goods-sold pair for a stock-out cost amount.
func (s *glResolverService) BuildCOGSLines(ctx context.Context, cogs decimal.Decimal, description string) ([]domain.JournalLine, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	if cogs.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: COGS amount must be positive", apperrors.ErrValidation)
	}
	settings, err := s.GetGLSettings(ctx)
	if err != nil {
		return nil, err
	}

	cogsAcc, err := s.resolveAccount(ctx, tenant.TenantID, settings, domain.RoleCOGSAccount)
	if err != nil {
		return nil, err
	}
	inventoryAcc, err := s.resolveAccount(ctx, tenant.TenantID, settings, domain.RoleInventoryAccount)
	if err != nil {
		return nil, err
	}

	return []domain.JournalLine{
		line(cogsAcc, domain.Debit, cogs, description),
		line(inventoryAcc, domain.Credit, cogs, description),
	}, nil
}
