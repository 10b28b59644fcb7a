package domain

import "github.com/shopspring/decimal"

// GLRole names a posting slot in the tenant's GL configuration. The resolver maps
// each role to a concrete account before any business document posts.
type GLRole string

const (
	RoleARAccount        GLRole = "ar_account"
	RoleAPAccount        GLRole = "ap_account"
	RoleSalesAccount     GLRole = "sales_account"
	RoleSalesTaxAccount  GLRole = "sales_tax_account"
	RoleCashAccount      GLRole = "cash_account"
	RoleBankAccount      GLRole = "bank_account"
	RoleInventoryAccount GLRole = "inventory_account"
	RoleCOGSAccount      GLRole = "cogs_account"
	RoleExpenseAccount   GLRole = "expense_account"
	RolePurchaseAccount  GLRole = "purchase_account"
)

// GLSettings holds a tenant's account-role mapping plus the single configurable
// flat tax rate. AccountCodes maps role -> chart-of-accounts code.
type GLSettings struct {
	TenantID     string            `json:"tenantID"`
	AccountCodes map[GLRole]string `json:"accountCodes"`
	TaxRate      decimal.Decimal   `json:"taxRate"` // Flat fraction, e.g. 0.08
	AuditFields
}

// CodeFor returns the configured account code for a role, if present.
func (s *GLSettings) CodeFor(role GLRole) (string, bool) {
	code, ok := s.AccountCodes[role]
	return code, ok && code != ""
}
