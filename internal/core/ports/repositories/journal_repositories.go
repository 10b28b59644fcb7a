package repositories

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// JournalReader defines read operations for journal entry data
type JournalReader interface {
	// FindEntryByID retrieves a journal entry by ID, scoped to the tenant.
	FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries for a tenant using token-based
	// pagination. It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, tenantID string, limit int, nextToken *string, includeVoid bool) ([]domain.JournalEntry, *string, error)

	// FindEntryByReference retrieves the newest POSTED entry tagged with the given
	// business document reference.
	FindEntryByReference(ctx context.Context, tenantID string, refType domain.ReferenceType, referenceID string) (*domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal entry data
type JournalWriter interface {
	// SaveEntry persists an entry with its lines and allocates its document number,
	// all within a single transaction. The entry's EntryNumber field is filled in.
	SaveEntry(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine) error

	// SaveReversal voids the original entry and persists the reversing entry with its
	// lines atomically. The reversal's EntryNumber is derived from the original's.
	SaveReversal(ctx context.Context, original *domain.JournalEntry, reversal *domain.JournalEntry, lines []domain.JournalLine) error

	// VoidEntry marks a POSTED entry VOID without a counter entry. Returns
	// ErrConflict when the entry is not in a voidable state.
	VoidEntry(ctx context.Context, tenantID, entryID, reason, userID string) error
}

// LineReader defines read operations for journal line data
type LineReader interface {
	// FindLineByID retrieves a single line, scoped to the tenant.
	FindLineByID(ctx context.Context, tenantID, lineID string) (*domain.JournalLine, error)

	// FindLinesByEntryID retrieves all lines of one entry.
	FindLinesByEntryID(ctx context.Context, tenantID, entryID string) ([]domain.JournalLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, tenantID string, entryIDs []string) (map[string][]domain.JournalLine, error)

	// ListLinesByAccountID retrieves a paginated list of posted lines against one account.
	ListLinesByAccountID(ctx context.Context, tenantID, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	LineReader
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
