package services

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// TenantSvcFacade defines tenant lifecycle operations.
type TenantSvcFacade interface {
	// CreateTenant provisions a tenant and seeds its default chart of accounts.
	CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error)

	// GetTenantByID retrieves an active tenant; soft-deleted tenants read as not found.
	GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// DeactivateTenant soft-deletes a tenant on cancellation.
	DeactivateTenant(ctx context.Context, tenantID, userID string) error
}
