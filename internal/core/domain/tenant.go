package domain

import "time"

// Tenant is the isolation boundary for all ledger data. Every other entity except
// the global chart-of-accounts seeding template carries its TenantID.
type Tenant struct {
	TenantID  string     `json:"tenantID"`  // Primary Key (e.g., UUID)
	Name      string     `json:"name"`      // Business name
	IsActive  bool       `json:"isActive"`  // Disabled tenants cannot post
	DeletedAt *time.Time `json:"deletedAt"` // Soft delete on cancellation; never hard-deleted while referenced
	AuditFields
}

// IsDeleted reports whether the tenant has been soft-deleted.
func (t *Tenant) IsDeleted() bool {
	return t.DeletedAt != nil
}
