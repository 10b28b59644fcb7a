package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// tenantService provides tenant lifecycle operations.
type tenantService struct {
	BaseService
	tenantRepo  portsrepo.TenantRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewTenantService creates a new TenantService.
func NewTenantService(tenantRepo portsrepo.TenantRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.TenantSvcFacade {
	return &tenantService{
		tenantRepo:  tenantRepo,
		accountRepo: accountRepo,
	}
}

// Ensure tenantService implements the portssvc.TenantSvcFacade interface
var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

// CreateTenant provisions a tenant and optionally seeds its default chart of accounts.
func (s *tenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error) {
	now := time.Now().UTC()
	tenant := domain.Tenant{
		TenantID: uuid.NewString(),
		Name:     req.Name,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.tenantRepo.SaveTenant(ctx, tenant); err != nil {
		s.LogError(ctx, err, "Failed to save tenant", slog.String("tenant_name", req.Name))
		return nil, err
	}

	if req.SeedAccounts {
		if err := s.seedChart(ctx, tenant, creatorUserID); err != nil {
			s.LogError(ctx, err, "Failed to seed chart of accounts", slog.String("tenant_id", tenant.TenantID))
			return nil, err
		}
	}

	s.LogInfo(ctx, "Tenant created", slog.String("tenant_id", tenant.TenantID), slog.String("name", tenant.Name))
	return &tenant, nil
}

// seedChart copies the global seeding template into the tenant's chart.
func (s *tenantService) seedChart(ctx context.Context, tenant domain.Tenant, creatorUserID string) error {
	seeds, err := s.accountRepo.ListSeedAccounts(ctx)
	if err != nil {
		return err
	}
	return s.accountRepo.SaveAccounts(ctx, buildSeedAccounts(tenant.TenantID, seeds, creatorUserID))
}

// GetTenantByID retrieves a tenant; soft-deleted tenants still resolve so the
// middleware can distinguish "deactivated" from "unknown".
func (s *tenantService) GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	return s.tenantRepo.FindTenantByID(ctx, tenantID)
}

// DeactivateTenant soft-deletes a tenant on cancellation. The tenant's data is
// retained; only new requests are refused.
func (s *tenantService) DeactivateTenant(ctx context.Context, tenantID, userID string) error {
	if err := s.tenantRepo.SoftDeleteTenant(ctx, tenantID, userID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate tenant", slog.String("tenant_id", tenantID))
		return err
	}
	s.LogInfo(ctx, "Tenant deactivated", slog.String("tenant_id", tenantID))
	return nil
}
