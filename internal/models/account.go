package models

// AccountType mirrors domain.AccountType at the persistence layer.
type AccountType string

// Account maps to the chart_of_accounts table.
type Account struct {
	AccountID       string      `json:"accountID"`
	TenantID        string      `json:"tenantID"`
	Code            string      `json:"code"` // Unique within (tenant_id)
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	SubType         string      `json:"subType"`
	ParentAccountID *string     `json:"parentAccountID"`
	IsSystem        bool        `json:"isSystem"`
	IsActive        bool        `json:"isActive"`
	AuditFields
}
