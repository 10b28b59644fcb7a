package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// CreateTenantRequest defines the data needed to register a new tenant.
type CreateTenantRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=100"`
	SeedAccounts bool   `json:"seedAccounts"` // Copy the default chart of accounts on creation
}

// TenantResponse defines the data returned for a tenant.
type TenantResponse struct {
	TenantID  string    `json:"tenantID"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// ToTenantResponse converts a domain.Tenant to TenantResponse DTO.
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:  t.TenantID,
		Name:      t.Name,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		CreatedBy: t.CreatedBy,
	}
}
