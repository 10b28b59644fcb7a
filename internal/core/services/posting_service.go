package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/utils/accounting"
)

// postingService is the journal posting engine. It is the only writer of
// journal_entries and journal_lines; every other service posts through it.
type postingService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewPostingService creates a new PostingSvcFacade.
func NewPostingService(journalRepo portsrepo.JournalRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade) portssvc.PostingSvcFacade {
	return &postingService{journalRepo: journalRepo, accountRepo: accountRepo}
}

// Ensure postingService implements the portssvc.PostingSvcFacade interface
var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// buildLinesFromInput converts the one-sided debit/credit request shape into
// typed journal lines. Exactly one side of each input must be positive.
func buildLinesFromInput(inputs []dto.EntryLineInput) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, 0, len(inputs))
	for i, in := range inputs {
		hasDebit := in.Debit != nil && !in.Debit.IsZero()
		hasCredit := in.Credit != nil && !in.Credit.IsZero()
		if hasDebit == hasCredit {
			return nil, fmt.Errorf("%w: line %d must set exactly one of debit or credit", apperrors.ErrValidation, i+1)
		}

		var lineType domain.LineType
		var amount decimal.Decimal
		if hasDebit {
			lineType, amount = domain.Debit, *in.Debit
		} else {
			lineType, amount = domain.Credit, *in.Credit
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: line %d amount must be positive", apperrors.ErrValidation, i+1)
		}

		lines = append(lines, domain.JournalLine{
			AccountID:   in.AccountID,
			LineType:    lineType,
			Amount:      amount,
			Description: in.Description,
		})
	}
	return lines, nil
}

// validateLineAccounts checks that every referenced account exists and is active.
func (s *postingService) validateLineAccounts(ctx context.Context, tenantID string, lines []domain.JournalLine) error {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		account, ok := accounts[id]
		if !ok {
			return fmt.Errorf("%w: account %s not found", apperrors.ErrNotFound, id)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s (%s) is inactive", apperrors.ErrValidation, account.Code, id)
		}
	}
	return nil
}

// persistEntry validates balance and accounts, then writes entry plus lines in
// one transaction with the allocated document number.
func (s *postingService) persistEntry(ctx context.Context, tenant domain.Tenant, entry *domain.JournalEntry, lines []domain.JournalLine, userID string) (*domain.JournalEntry, error) {
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, err
	}
	if err := s.validateLineAccounts(ctx, tenant.TenantID, lines); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	entry.EntryID = uuid.NewString()
	entry.TenantID = tenant.TenantID
	entry.Status = domain.StatusPosted
	entry.PostedAt = &now
	entry.AuditFields = audit

	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = entry.EntryID
		lines[i].AuditFields = audit
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry",
			slog.String("tenant_id", tenant.TenantID), slog.String("reference_type", string(entry.ReferenceType)))
		return nil, err
	}

	entry.Lines = lines
	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// Post validates and persists a manual journal entry.
func (s *postingService) Post(ctx context.Context, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	if !req.ReferenceType.Valid() {
		return nil, fmt.Errorf("%w: unknown reference type %q", apperrors.ErrValidation, req.ReferenceType)
	}

	lines, err := buildLinesFromInput(req.Lines)
	if err != nil {
		return nil, err
	}

	entry := &domain.JournalEntry{
		EntryDate:     req.EntryDate,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		Description:   req.Description,
	}
	return s.persistEntry(ctx, tenant, entry, lines, userID)
}

// PostResolved persists an entry whose lines the GL resolver already built.
func (s *postingService) PostResolved(ctx context.Context, input dto.ResolvedPostingInput, userID string) (*domain.JournalEntry, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}

	entry := &domain.JournalEntry{
		EntryDate:         input.EntryDate,
		ReferenceType:     input.ReferenceType,
		ReferenceID:       input.ReferenceID,
		Description:       input.Description,
		IsSystemGenerated: input.IsSystemGenerated,
	}
	lines := make([]domain.JournalLine, len(input.Lines))
	copy(lines, input.Lines)
	return s.persistEntry(ctx, tenant, entry, lines, userID)
}

// Reverse voids a posted entry and creates its mirror image, atomically.
func (s *postingService) Reverse(ctx context.Context, entryID, reason, userID string) (*domain.JournalEntry, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}

	original, err := s.journalRepo.FindEntryByID(ctx, tenant.TenantID, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.StatusPosted {
		return nil, fmt.Errorf("%w: entry %s is %s, only POSTED entries can be reversed", apperrors.ErrConflict, original.EntryNumber, original.Status)
	}
	if original.IsReversal() {
		return nil, fmt.Errorf("%w: entry %s is itself a reversal", apperrors.ErrConflict, original.EntryNumber)
	}
	if original.ReversedByEntryID != nil {
		return nil, fmt.Errorf("%w: entry %s is already reversed", apperrors.ErrConflict, original.EntryNumber)
	}

	originalLines, err := s.journalRepo.FindLinesByEntryID(ctx, tenant.TenantID, entryID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	reversal := &domain.JournalEntry{
		EntryID:           uuid.NewString(),
		TenantID:          tenant.TenantID,
		EntryDate:         now,
		ReferenceType:     original.ReferenceType,
		ReferenceID:       original.ReferenceID,
		Description:       reason + " - " + original.Description,
		Status:            domain.StatusPosted,
		IsSystemGenerated: true,
		PostedAt:          &now,
		ReversesEntryID:   &original.EntryID,
		AuditFields:       audit,
	}

	lines := make([]domain.JournalLine, len(originalLines))
	for i, l := range originalLines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     reversal.EntryID,
			AccountID:   l.AccountID,
			LineType:    l.LineType.Opposite(),
			Amount:      l.Amount,
			Description: l.Description,
			AuditFields: audit,
		}
	}

	if err := s.journalRepo.SaveReversal(ctx, original, reversal, lines); err != nil {
		s.LogError(ctx, err, "Failed to save reversal",
			slog.String("original_entry_id", original.EntryID))
		return nil, err
	}

	reversal.Lines = lines
	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("original_entry_number", original.EntryNumber),
		slog.String("reversal_entry_number", reversal.EntryNumber))
	return reversal, nil
}

// Void marks a posted entry VOID without a counter entry. Voided entries drop
// out of every report.
func (s *postingService) Void(ctx context.Context, entryID, reason, userID string) error {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return err
	}

	if err := s.journalRepo.VoidEntry(ctx, tenant.TenantID, entryID, reason, userID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Journal entry voided",
		slog.String("entry_id", entryID), slog.String("reason", reason))
	return nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *postingService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, tenant.TenantID, entryID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, tenant.TenantID, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves entries newest first with keyset pagination.
func (s *postingService) ListEntries(ctx context.Context, req dto.ListEntriesRequest) ([]domain.JournalEntry, string, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, "", err
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, tenant.TenantID, req.Limit, req.NextToken, req.IncludeVoid)
	if err != nil {
		return nil, "", err
	}

	if len(entries) > 0 {
		entryIDs := make([]string, len(entries))
		for i, e := range entries {
			entryIDs[i] = e.EntryID
		}
		linesByEntry, err := s.journalRepo.FindLinesByEntryIDs(ctx, tenant.TenantID, entryIDs)
		if err != nil {
			return nil, "", err
		}
		for i := range entries {
			entries[i].Lines = linesByEntry[entries[i].EntryID]
		}
	}

	token := ""
	if nextToken != nil {
		token = *nextToken
	}
	return entries, token, nil
}

// ListLinesByAccountID retrieves posted lines against one account.
func (s *postingService) ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalLine, string, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, "", err
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, tenant.TenantID, accountID); err != nil {
		return nil, "", err
	}

	lines, next, err := s.journalRepo.ListLinesByAccountID(ctx, tenant.TenantID, accountID, limit, nextToken)
	if err != nil {
		return nil, "", err
	}
	token := ""
	if next != nil {
		token = *next
	}
	return lines, token, nil
}
