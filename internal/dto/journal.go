package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineInput is one debit-or-credit leg of a manual journal entry.
// Exactly one of Debit and Credit must be positive; the other must be absent
// or zero.
type EntryLineInput struct {
	AccountID   string           `json:"accountID" binding:"required"`
	Debit       *decimal.Decimal `json:"debit"`
	Credit      *decimal.Decimal `json:"credit"`
	Description string           `json:"description"`
}

// CreateEntryRequest defines the data needed to post a manual journal entry.
type CreateEntryRequest struct {
	EntryDate     time.Time            `json:"entryDate" binding:"required"`
	ReferenceType domain.ReferenceType `json:"referenceType" binding:"required"`
	ReferenceID   *string              `json:"referenceID"`
	Description   string               `json:"description" binding:"required,max=255"`
	Lines         []EntryLineInput     `json:"lines" binding:"required,min=2,dive"`
}

// ResolvedPostingInput carries resolver-built lines into the posting engine.
// Internal use only; it never crosses the HTTP boundary.
type ResolvedPostingInput struct {
	EntryDate         time.Time
	ReferenceType     domain.ReferenceType
	ReferenceID       *string
	Description       string
	Lines             []domain.JournalLine
	IsSystemGenerated bool
}

// ReverseEntryRequest defines the data needed to reverse a posted entry.
type ReverseEntryRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
}

// VoidEntryRequest defines the data needed to void a posted entry.
type VoidEntryRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
}

// ListEntriesRequest defines paging for listing journal entries, newest first.
type ListEntriesRequest struct {
	Limit       int     `form:"limit"`
	NextToken   *string `form:"nextToken"`
	IncludeVoid bool    `form:"includeVoid"`
}

// EntryLineResponse defines the data returned for a journal line.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	LineType    domain.LineType `json:"lineType"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID           string               `json:"entryID"`
	EntryNumber       string               `json:"entryNumber"`
	EntryDate         time.Time            `json:"entryDate"`
	ReferenceType     domain.ReferenceType `json:"referenceType"`
	ReferenceID       *string              `json:"referenceID"`
	Description       string               `json:"description"`
	Status            domain.EntryStatus   `json:"status"`
	IsSystemGenerated bool                 `json:"isSystemGenerated"`
	PostedAt          *time.Time           `json:"postedAt"`
	ReversedByEntryID *string              `json:"reversedByEntryID"`
	ReversesEntryID   *string              `json:"reversesEntryID"`
	Lines             []EntryLineResponse  `json:"lines,omitempty"`
	CreatedAt         time.Time            `json:"createdAt"`
	CreatedBy         string               `json:"createdBy"`
}

// ListEntriesResponse wraps a page of entries with the keyset token for the next page.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken string          `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain.JournalLine to EntryLineResponse DTO.
func ToEntryLineResponse(line *domain.JournalLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:      line.LineID,
		EntryID:     line.EntryID,
		AccountID:   line.AccountID,
		LineType:    line.LineType,
		Amount:      line.Amount,
		Description: line.Description,
	}
}

// ToEntryLineResponses converts a slice of domain.JournalLine to []EntryLineResponse.
func ToEntryLineResponses(lines []domain.JournalLine) []EntryLineResponse {
	responses := make([]EntryLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = ToEntryLineResponse(&line)
	}
	return responses
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	return EntryResponse{
		EntryID:           e.EntryID,
		EntryNumber:       e.EntryNumber,
		EntryDate:         e.EntryDate,
		ReferenceType:     e.ReferenceType,
		ReferenceID:       e.ReferenceID,
		Description:       e.Description,
		Status:            e.Status,
		IsSystemGenerated: e.IsSystemGenerated,
		PostedAt:          e.PostedAt,
		ReversedByEntryID: e.ReversedByEntryID,
		ReversesEntryID:   e.ReversesEntryID,
		Lines:             ToEntryLineResponses(e.Lines),
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
}

// ToListEntriesResponse converts a page of entries plus its next token.
func ToListEntriesResponse(entries []domain.JournalEntry, nextToken string) ListEntriesResponse {
	responses := make([]EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToEntryResponse(&e)
	}
	return ListEntriesResponse{Entries: responses, NextToken: nextToken}
}
