package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	StatusDraft  EntryStatus = "DRAFT"
	StatusPosted EntryStatus = "POSTED"
	StatusVoid   EntryStatus = "VOID"
)

// LineType indicates whether a journal line is a Debit or a Credit.
type LineType string

const (
	Debit  LineType = "DEBIT"
	Credit LineType = "CREDIT"
)

// Opposite returns the other side.
func (t LineType) Opposite() LineType {
	if t == Debit {
		return Credit
	}
	return Debit
}

// JournalEntry represents a single, balanced financial event composed of journal lines.
// Once POSTED, the entry and its lines are immutable; corrections happen only through
// a reversing entry that voids this one.
type JournalEntry struct {
	EntryID           string        `json:"entryID"`     // Primary Key (e.g., UUID)
	TenantID          string        `json:"tenantID"`    // FK -> tenants.tenant_id (NON-NULL)
	EntryNumber       string        `json:"entryNumber"` // Unique per tenant, sequential (e.g., "JE-2026-00042")
	EntryDate         time.Time     `json:"entryDate"`   // Date the event occurred
	ReferenceType     ReferenceType `json:"referenceType"`
	ReferenceID       *string       `json:"referenceID"`
	Description       string        `json:"description"`
	Status            EntryStatus   `json:"status"`
	IsSystemGenerated bool          `json:"isSystemGenerated"`
	PostedAt          *time.Time    `json:"postedAt"`
	ReversedByEntryID *string       `json:"reversedByEntryID"` // Set when this entry has been voided by a reversal
	ReversesEntryID   *string       `json:"reversesEntryID"`   // Set on the reversal entry itself
	Lines             []JournalLine `json:"lines,omitempty"`   // Owned exclusively; loaded on demand
	AuditFields
}

// IsReversal reports whether this entry was created to negate another entry.
func (e *JournalEntry) IsReversal() bool {
	return e.ReversesEntryID != nil
}

// JournalLine is a single debit or credit against one GL account. It belongs
// exclusively to one JournalEntry and references (does not own) its account.
type JournalLine struct {
	LineID      string          `json:"lineID"`  // Primary Key (e.g., UUID)
	EntryID     string          `json:"entryID"` // FK -> journal_entries.entry_id (Not Null)
	AccountID   string          `json:"accountID"`
	LineType    LineType        `json:"lineType"`
	Amount      decimal.Decimal `json:"amount"` // Always non-negative
	Description string          `json:"description"`
	AuditFields
}

// SignedAmount returns the line amount signed by the account's normal side:
// positive when the line moves the balance toward the account's normal side.
func (l *JournalLine) SignedAmount(accountType AccountType) decimal.Decimal {
	if l.LineType == accountType.NormalSide() {
		return l.Amount
	}
	return l.Amount.Neg()
}
