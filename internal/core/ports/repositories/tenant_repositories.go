package repositories

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// TenantReader defines read operations for tenant data
type TenantReader interface {
	// FindTenantByID retrieves a tenant by its unique identifier.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// ListTenants retrieves all tenants, including soft-deleted ones when includeDeleted is set.
	ListTenants(ctx context.Context, includeDeleted bool) ([]domain.Tenant, error)
}

// TenantWriter defines write operations for tenant data
type TenantWriter interface {
	// SaveTenant persists a new tenant.
	SaveTenant(ctx context.Context, tenant domain.Tenant) error

	// SoftDeleteTenant marks a tenant deleted without removing its rows.
	SoftDeleteTenant(ctx context.Context, tenantID string, deletedByUserID string) error
}

// TenantRepositoryFacade combines all tenant repository interfaces
type TenantRepositoryFacade interface {
	TenantReader
	TenantWriter
}
