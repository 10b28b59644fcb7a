package domain

// AccountType defines the fundamental accounting type of a GL account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	COGS      AccountType = "COGS"
	Expense   AccountType = "EXPENSE"
)

// NormalSide returns the side on which this account type's balance is
// conventionally positive.
func (t AccountType) NormalSide() LineType {
	switch t {
	case Asset, Expense, COGS:
		return Debit
	case Liability, Equity, Income:
		return Credit
	}
	return ""
}

// Valid reports whether t is one of the six known account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Income, COGS, Expense:
		return true
	}
	return false
}

// Account represents a GL account in a tenant's chart of accounts.
// This is the primary representation used by services.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary Key (e.g., UUID)
	TenantID        string      `json:"tenantID"`        // FK -> tenants.tenant_id (NON-NULL)
	Code            string      `json:"code"`            // Unique per tenant (e.g., "1000")
	Name            string      `json:"name"`            // User-defined name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	SubType         string      `json:"subType"`         // Free-form grouping (e.g., "bank", "current_asset")
	ParentAccountID *string     `json:"parentAccountID"` // Nullable FK -> accounts.account_id (self-referencing)
	IsSystem        bool        `json:"isSystem"`        // Seeded accounts; cannot be deleted
	IsActive        bool        `json:"isActive"`        // Soft delete or status flag
	AuditFields
}

// SeedAccount is one row of the global chart-of-accounts seeding template.
// It is the only data in the system not scoped to a tenant.
type SeedAccount struct {
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	SubType     string      `json:"subType"`
	ParentCode  *string     `json:"parentCode"`
}
