package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount maps to the bank_accounts table.
type BankAccount struct {
	BankAccountID string `json:"bankAccountID"`
	TenantID      string `json:"tenantID"`
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
	GLAccountID   string `json:"glAccountID"`
	AuditFields
}

// BankStatement maps to the bank_statements table.
type BankStatement struct {
	StatementID   string    `json:"statementID"`
	TenantID      string    `json:"tenantID"`
	BankAccountID string    `json:"bankAccountID"`
	FromDate      time.Time `json:"fromDate"`
	ToDate        time.Time `json:"toDate"`
	AuditFields
}

// BankStatementLine maps to the bank_statement_lines table.
type BankStatementLine struct {
	LineID          string          `json:"lineID"`
	StatementID     string          `json:"statementID"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Balance         decimal.Decimal `json:"balance"`
	IsMatched       bool            `json:"isMatched"`
	AuditFields
}

// ReconciliationMatch maps to the bank_reconciliation_matches table.
type ReconciliationMatch struct {
	MatchID         string          `json:"matchID"`
	TenantID        string          `json:"tenantID"`
	StatementLineID *string         `json:"statementLineID"`
	JournalLineID   string          `json:"journalLineID"`
	Amount          decimal.Decimal `json:"amount"`
	MatchedAt       time.Time       `json:"matchedAt"`
	AuditFields
}
