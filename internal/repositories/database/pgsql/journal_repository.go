package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/bizbooks/bizbooks_backend/internal/models"
	"github.com/bizbooks/bizbooks_backend/internal/utils/mapping"
	"github.com/bizbooks/bizbooks_backend/internal/utils/numbering"
	"github.com/bizbooks/bizbooks_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, tenant_id, entry_number, entry_date, reference_type, reference_id, description, status, is_system_generated, posted_at, reversed_by_entry_id, reverses_entry_id, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, line_type, amount, description, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
	numberPadding int
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool, numberPadding int) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		numberPadding:  numberPadding,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// allocateSequenceInTx atomically increments and returns the counter for
// (tenantID, documentType, year). The upsert takes a row lock, so concurrent
// posters serialize here and every caller sees a distinct value.
func allocateSequenceInTx(ctx context.Context, tx pgx.Tx, tenantID, documentType string, year int) (int64, error) {
	query := `
		INSERT INTO document_sequences (tenant_id, document_type, year, last_value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (tenant_id, document_type, year)
		DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value;
	`
	var seq int64
	if err := tx.QueryRow(ctx, query, tenantID, documentType, year).Scan(&seq); err != nil {
		return 0, apperrors.NewAppError(500, "failed to allocate sequence for "+documentType, err)
	}
	return seq, nil
}

// insertEntryInTx writes the entry header row.
func (r *PgxJournalRepository) insertEntryInTx(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(*entry)
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID, m.TenantID, m.EntryNumber, m.EntryDate, m.ReferenceType, m.ReferenceID,
		m.Description, m.Status, m.IsSystemGenerated, m.PostedAt,
		m.ReversedByEntryID, m.ReversesEntryID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "entry number "+m.EntryNumber+" already taken", apperrors.ErrDuplicateNumber)
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}
	return nil
}

// insertLinesInTx batch-inserts the entry's lines.
func (r *PgxJournalRepository) insertLinesInTx(ctx context.Context, tx pgx.Tx, entryID string, lines []domain.JournalLine) error {
	query := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(query,
			m.LineID, m.EntryID, m.AccountID, m.LineType, m.Amount, m.Description,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for entry "+entryID, err)
	}
	return nil
}

// SaveEntry persists an entry with its lines and allocates its document number,
// all within a single transaction. The entry's EntryNumber field is filled in.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	year := entry.EntryDate.Year()
	seq, err := allocateSequenceInTx(ctx, tx, entry.TenantID, numbering.DocTypeJournalEntry, year)
	if err != nil {
		return err
	}
	entry.EntryNumber = numbering.Format(numbering.PrefixJournalEntry, year, seq, r.numberPadding)

	if err := r.insertEntryInTx(ctx, tx, entry); err != nil {
		return err
	}
	if err := r.insertLinesInTx(ctx, tx, entry.EntryID, lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveReversal voids the original entry and persists the reversing entry with its
// lines atomically. The reversal's number is derived from the original's.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, original *domain.JournalEntry, reversal *domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	reversal.EntryNumber = numbering.ReversalNumber(original.EntryNumber)

	// Void the original only if it is still POSTED and unreversed. A concurrent
	// reversal loses this race and sees zero rows affected.
	voidQuery := `
		UPDATE journal_entries
		SET status = $4, reversed_by_entry_id = $5, last_updated_at = $6, last_updated_by = $7
		WHERE tenant_id = $1 AND entry_id = $2 AND status = $3 AND reversed_by_entry_id IS NULL;
	`
	tag, err := tx.Exec(ctx, voidQuery,
		original.TenantID, original.EntryID,
		string(domain.StatusPosted), string(domain.StatusVoid),
		reversal.EntryID, reversal.LastUpdatedAt, reversal.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to void entry "+original.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "entry "+original.EntryID+" is not reversible", apperrors.ErrConflict)
	}

	if err := r.insertEntryInTx(ctx, tx, reversal); err != nil {
		return err
	}
	if err := r.insertLinesInTx(ctx, tx, reversal.EntryID, lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// VoidEntry marks a POSTED, unreversed entry VOID and stamps the reason onto the
// description. A concurrent reversal or void loses the race and sees zero rows.
func (r *PgxJournalRepository) VoidEntry(ctx context.Context, tenantID, entryID, reason, userID string) error {
	query := `
		UPDATE journal_entries
		SET status = $4, description = description || ' (VOID: ' || $5 || ')',
			last_updated_at = $6, last_updated_by = $7
		WHERE tenant_id = $1 AND entry_id = $2 AND status = $3 AND reversed_by_entry_id IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query,
		tenantID, entryID,
		string(domain.StatusPosted), string(domain.StatusVoid),
		reason, time.Now().UTC(), userID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to void entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "entry "+entryID+" is not voidable", apperrors.ErrConflict)
	}
	return nil
}

func scanEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID, &m.TenantID, &m.EntryNumber, &m.EntryDate, &m.ReferenceType, &m.ReferenceID,
		&m.Description, &m.Status, &m.IsSystemGenerated, &m.PostedAt,
		&m.ReversedByEntryID, &m.ReversesEntryID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindEntryByID retrieves a journal entry by ID, scoped to the tenant.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, tenantID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(*m)
	return &entry, nil
}

// FindEntryByReference retrieves the newest POSTED entry carrying the given
// business document reference.
func (r *PgxJournalRepository) FindEntryByReference(ctx context.Context, tenantID string, refType domain.ReferenceType, referenceID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries
		WHERE tenant_id = $1 AND reference_type = $2 AND reference_id = $3 AND status = $4
		ORDER BY created_at DESC LIMIT 1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, tenantID, string(refType), referenceID, string(domain.StatusPosted)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry for reference "+referenceID, err)
	}
	entry := mapping.ToDomainJournalEntry(*m)
	return &entry, nil
}

// ListEntries retrieves a paginated list of entries for a tenant using token-based
// pagination over (entry_date, created_at). Newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, tenantID string, limit int, nextToken *string, includeVoid bool) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1`
	if !includeVoid {
		baseQuery += ` AND status != 'VOID'`
	}
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	args := []interface{}{tenantID}
	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		baseQuery += ` AND (entry_date, created_at) < ($2, $3)`
		args = append(args, lastEntryDate, lastCreatedAt)
	}
	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for tenant "+tenantID, err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		entries = entries[:limit]
	}

	results := make([]domain.JournalEntry, len(entries))
	for i, m := range entries {
		results[i] = mapping.ToDomainJournalEntry(m)
	}
	return results, nextTokenVal, nil
}

func scanLine(row pgx.Row) (*models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID, &m.EntryID, &m.AccountID, &m.LineType, &m.Amount, &m.Description,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindLineByID retrieves a single line, scoped to the tenant.
func (r *PgxJournalRepository) FindLineByID(ctx context.Context, tenantID, lineID string) (*domain.JournalLine, error) {
	query := `
		SELECT ` + prefixedLineColumns("l") + `
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.tenant_id = $1 AND l.line_id = $2;
	`
	m, err := scanLine(r.Pool.QueryRow(ctx, query, tenantID, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find line by ID "+lineID, err)
	}
	line := mapping.ToDomainJournalLine(*m)
	return &line, nil
}

// FindLinesByEntryID retrieves all lines of one entry.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, tenantID, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT ` + prefixedLineColumns("l") + `
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.tenant_id = $1 AND l.entry_id = $2
		ORDER BY l.created_at, l.line_id;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}

	return mapping.ToDomainJournalLineSlice(lines), nil
}

// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, tenantID string, entryIDs []string) (map[string][]domain.JournalLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}

	query := `
		SELECT ` + prefixedLineColumns("l") + `
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.tenant_id = $1 AND l.entry_id = ANY($2)
		ORDER BY l.entry_id, l.created_at, l.line_id;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entries", err)
	}
	defer rows.Close()

	grouped := map[string][]domain.JournalLine{}
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row", err)
		}
		grouped[m.EntryID] = append(grouped[m.EntryID], mapping.ToDomainJournalLine(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows", err)
	}

	return grouped, nil
}

// ListLinesByAccountID retrieves a paginated list of POSTED lines against one
// account using token-based pagination over (entry_date, created_at).
func (r *PgxJournalRepository) ListLinesByAccountID(ctx context.Context, tenantID, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + prefixedLineColumns("l") + `, e.entry_date
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.tenant_id = $1 AND l.account_id = $2 AND e.status = 'POSTED'
	`
	orderByClause := `ORDER BY e.entry_date DESC, l.created_at DESC`

	args := []interface{}{tenantID, accountID}
	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		baseQuery += ` AND (e.entry_date, l.created_at) < ($3, $4)`
		args = append(args, lastEntryDate, lastCreatedAt)
	}
	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query lines for account "+accountID, err)
	}
	defer rows.Close()

	type lineWithDate struct {
		line      models.JournalLine
		entryDate time.Time
	}
	lines := []lineWithDate{}
	for rows.Next() {
		var lw lineWithDate
		err := rows.Scan(
			&lw.line.LineID, &lw.line.EntryID, &lw.line.AccountID, &lw.line.LineType,
			&lw.line.Amount, &lw.line.Description,
			&lw.line.CreatedAt, &lw.line.CreatedBy, &lw.line.LastUpdatedAt, &lw.line.LastUpdatedBy,
			&lw.entryDate,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan line row for account "+accountID, err)
		}
		lines = append(lines, lw)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating line rows for account "+accountID, err)
	}

	var nextTokenVal *string
	if len(lines) > limit {
		last := lines[limit-1]
		token := pagination.EncodeToken(last.entryDate, last.line.CreatedAt)
		nextTokenVal = &token
		lines = lines[:limit]
	}

	results := make([]domain.JournalLine, len(lines))
	for i, lw := range lines {
		results[i] = mapping.ToDomainJournalLine(lw.line)
	}
	return results, nextTokenVal, nil
}

// prefixedLineColumns qualifies the line column list with a table alias.
func prefixedLineColumns(alias string) string {
	return alias + ".line_id, " + alias + ".entry_id, " + alias + ".account_id, " + alias + ".line_type, " +
		alias + ".amount, " + alias + ".description, " +
		alias + ".created_at, " + alias + ".created_by, " + alias + ".last_updated_at, " + alias + ".last_updated_by"
}
