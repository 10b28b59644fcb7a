package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors domain.EntryStatus at the persistence layer.
type EntryStatus string

// LineType mirrors domain.LineType at the persistence layer.
type LineType string

// JournalEntry maps to the journal_entries table.
type JournalEntry struct {
	EntryID           string      `json:"entryID"`
	TenantID          string      `json:"tenantID"`
	EntryNumber       string      `json:"entryNumber"` // Unique within (tenant_id)
	EntryDate         time.Time   `json:"entryDate"`
	ReferenceType     string      `json:"referenceType"`
	ReferenceID       *string     `json:"referenceID"`
	Description       string      `json:"description"`
	Status            EntryStatus `json:"status"`
	IsSystemGenerated bool        `json:"isSystemGenerated"`
	PostedAt          *time.Time  `json:"postedAt"`
	ReversedByEntryID *string     `json:"reversedByEntryID"`
	ReversesEntryID   *string     `json:"reversesEntryID"`
	AuditFields
}

// JournalLine maps to the journal_lines table. Lines are owned exclusively by
// their entry: deleted with it, never shared.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	LineType    LineType        `json:"lineType"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	AuditFields
}

// DocumentSequence maps to the document_sequences table: one monotonic counter
// per (tenant_id, document_type, year).
type DocumentSequence struct {
	TenantID     string `json:"tenantID"`
	DocumentType string `json:"documentType"`
	Year         int    `json:"year"`
	LastValue    int64  `json:"lastValue"`
}
