package models

import "github.com/shopspring/decimal"

// GLSetting maps to the gl_settings table: one row per (tenant_id, role).
type GLSetting struct {
	TenantID    string `json:"tenantID"`
	Role        string `json:"role"`
	AccountCode string `json:"accountCode"`
	AuditFields
}

// TenantTaxRate maps to the tenant_tax_rates table: the single flat rate per tenant.
type TenantTaxRate struct {
	TenantID string          `json:"tenantID"`
	Rate     decimal.Decimal `json:"rate"`
	AuditFields
}
