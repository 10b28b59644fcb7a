package models

import "time"

// Tenant maps to the tenants table.
type Tenant struct {
	TenantID  string     `json:"tenantID"`
	Name      string     `json:"name"`
	IsActive  bool       `json:"isActive"`
	DeletedAt *time.Time `json:"deletedAt"`
	AuditFields
}
