package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount links a real-world bank account to the GL asset account that books it.
type BankAccount struct {
	BankAccountID string `json:"bankAccountID"`
	TenantID      string `json:"tenantID"`
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
	GLAccountID   string `json:"glAccountID"` // FK -> accounts.account_id (ASSET, debit-normal)
	AuditFields
}

// BankStatement groups externally ingested statement lines for one import.
type BankStatement struct {
	StatementID   string    `json:"statementID"`
	TenantID      string    `json:"tenantID"`
	BankAccountID string    `json:"bankAccountID"`
	FromDate      time.Time `json:"fromDate"`
	ToDate        time.Time `json:"toDate"`
	AuditFields
}

// BankStatementLine is one externally supplied statement row. The import parser
// that produces these lives outside this core.
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

// ReconciliationMatch links a statement line to a book-side journal line. Immutable
// once created; un-matching deletes the row and flips the line's IsMatched back.
type ReconciliationMatch struct {
	MatchID         string          `json:"matchID"`
	TenantID        string          `json:"tenantID"`
	StatementLineID *string         `json:"statementLineID"` // Nullable: UI may check off book lines alone
	JournalLineID   string          `json:"journalLineID"`
	Amount          decimal.Decimal `json:"amount"`
	MatchedAt       time.Time       `json:"matchedAt"`
	AuditFields
}

// UnreconciledLine is a posted book-side line not yet matched, annotated with its
// signed effect on the bank balance (debit positive for a bank asset).
type UnreconciledLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	EntryNumber  string          `json:"entryNumber"`
	EntryDate    time.Time       `json:"entryDate"`
	Description  string          `json:"description"`
	LineType     LineType        `json:"lineType"`
	Amount       decimal.Decimal `json:"amount"`
	SignedAmount decimal.Decimal `json:"signedAmount"`
}

// ReconciliationResult reports whether the externally stated balance agrees with
// the books as of the cut-off date. BookBalance is the full ledger balance, not
// the balance of the checked-off subset.
type ReconciliationResult struct {
	BankAccountID    string             `json:"bankAccountID"`
	AsOf             time.Time          `json:"asOf"`
	StatementBalance decimal.Decimal    `json:"statementBalance"`
	BookBalance      decimal.Decimal    `json:"bookBalance"`
	Difference       decimal.Decimal    `json:"difference"`
	Balanced         bool               `json:"balanced"`
	Unreconciled     []UnreconciledLine `json:"unreconciled"`

	// UnmatchedStatementLines is the statement-side remainder: imported lines
	// for this bank account not yet tied to any book line.
	UnmatchedStatementLines []BankStatementLine `json:"unmatchedStatementLines"`
}
