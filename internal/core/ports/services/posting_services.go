package services

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// PostingSvcFacade defines the journal posting engine.
type PostingSvcFacade interface {
	// Post validates and persists a balanced journal entry for the tenant in
	// context. The entry number is allocated atomically from the tenant's
	// document sequence.
	Post(ctx context.Context, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error)

	// PostResolved posts an entry whose lines were produced by the GL resolver
	// from a source document. Used by the inventory and invoice services.
	PostResolved(ctx context.Context, input dto.ResolvedPostingInput, userID string) (*domain.JournalEntry, error)

	// Reverse creates and posts a mirror-image entry of a posted entry and
	// links the two. A voided or already reversed entry is refused.
	Reverse(ctx context.Context, entryID, reason, userID string) (*domain.JournalEntry, error)

	// Void marks a posted entry VOID without creating a counter entry.
	// Voided entries are excluded from every report.
	Void(ctx context.Context, entryID, reason, userID string) error

	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entries for the tenant, newest first, with keyset
	// pagination.
	ListEntries(ctx context.Context, req dto.ListEntriesRequest) ([]domain.JournalEntry, string, error)

	// ListLinesByAccountID retrieves posted lines touching one account.
	ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalLine, string, error)
}
