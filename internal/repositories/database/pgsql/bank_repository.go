package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/bizbooks/bizbooks_backend/internal/models"
	"github.com/bizbooks/bizbooks_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const bankAccountColumns = `bank_account_id, tenant_id, name, account_number, gl_account_id, created_at, created_by, last_updated_at, last_updated_by`

const statementLineColumns = `line_id, statement_id, transaction_date, description, debit, credit, balance, is_matched, created_at, created_by, last_updated_at, last_updated_by`

type PgxBankRepository struct {
	BaseRepository
}

// newPgxBankRepository creates a new repository for bank reconciliation data.
func newPgxBankRepository(pool *pgxpool.Pool) portsrepo.BankRepositoryFacade {
	return &PgxBankRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBankRepository implements portsrepo.BankRepositoryFacade
var _ portsrepo.BankRepositoryFacade = (*PgxBankRepository)(nil)

// SaveBankAccount persists a new bank account.
func (r *PgxBankRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)
	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BankAccountID, m.TenantID, m.Name, m.AccountNumber, m.GLAccountID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "bank account already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert bank account "+m.BankAccountID, err)
	}
	return nil
}

// FindBankAccountByID retrieves a bank account by ID, scoped to the tenant.
func (r *PgxBankRepository) FindBankAccountByID(ctx context.Context, tenantID, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE tenant_id = $1 AND bank_account_id = $2;`
	var m models.BankAccount
	err := r.Pool.QueryRow(ctx, query, tenantID, bankAccountID).Scan(
		&m.BankAccountID, &m.TenantID, &m.Name, &m.AccountNumber, &m.GLAccountID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank account by ID "+bankAccountID, err)
	}
	account := mapping.ToDomainBankAccount(m)
	return &account, nil
}

// ListBankAccounts retrieves all bank accounts for a tenant.
func (r *PgxBankRepository) ListBankAccounts(ctx context.Context, tenantID string) ([]domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE tenant_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank accounts for tenant "+tenantID, err)
	}
	defer rows.Close()

	accounts := []models.BankAccount{}
	for rows.Next() {
		var m models.BankAccount
		err := rows.Scan(
			&m.BankAccountID, &m.TenantID, &m.Name, &m.AccountNumber, &m.GLAccountID,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank account row", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank account rows", err)
	}

	return mapping.ToDomainBankAccountSlice(accounts), nil
}

// SaveStatement persists a statement header and its lines in one transaction.
func (r *PgxBankRepository) SaveStatement(ctx context.Context, statement domain.BankStatement, lines []domain.BankStatementLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	ms := mapping.ToModelBankStatement(statement)
	headerQuery := `
		INSERT INTO bank_statements (statement_id, tenant_id, bank_account_id, from_date, to_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, headerQuery,
		ms.StatementID, ms.TenantID, ms.BankAccountID, ms.FromDate, ms.ToDate,
		ms.CreatedAt, ms.CreatedBy, ms.LastUpdatedAt, ms.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert bank statement "+ms.StatementID, err)
	}

	lineQuery := `
		INSERT INTO bank_statement_lines (` + statementLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		ml := mapping.ToModelStatementLine(line)
		batch.Queue(lineQuery,
			ml.LineID, ml.StatementID, ml.TransactionDate, ml.Description,
			ml.Debit, ml.Credit, ml.Balance, ml.IsMatched,
			ml.CreatedAt, ml.CreatedBy, ml.LastUpdatedAt, ml.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert statement lines for "+ms.StatementID, err)
	}

	return r.Commit(ctx, tx)
}

// FindStatementByID retrieves a statement header, scoped to the tenant.
func (r *PgxBankRepository) FindStatementByID(ctx context.Context, tenantID, statementID string) (*domain.BankStatement, error) {
	query := `
		SELECT statement_id, tenant_id, bank_account_id, from_date, to_date, created_at, created_by, last_updated_at, last_updated_by
		FROM bank_statements
		WHERE tenant_id = $1 AND statement_id = $2;
	`
	var m models.BankStatement
	err := r.Pool.QueryRow(ctx, query, tenantID, statementID).Scan(
		&m.StatementID, &m.TenantID, &m.BankAccountID, &m.FromDate, &m.ToDate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find statement by ID "+statementID, err)
	}
	statement := mapping.ToDomainBankStatement(m)
	return &statement, nil
}

// FindStatementLines retrieves all lines of one statement.
func (r *PgxBankRepository) FindStatementLines(ctx context.Context, tenantID, statementID string) ([]domain.BankStatementLine, error) {
	query := `
		SELECT ` + prefixedStatementLineColumns("l") + `
		FROM bank_statement_lines l
		JOIN bank_statements s ON l.statement_id = s.statement_id
		WHERE s.tenant_id = $1 AND l.statement_id = $2
		ORDER BY l.transaction_date, l.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, statementID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for statement "+statementID, err)
	}
	defer rows.Close()
	return collectStatementLines(rows)
}

// ListUnmatchedStatementLines retrieves unmatched lines for a bank account.
func (r *PgxBankRepository) ListUnmatchedStatementLines(ctx context.Context, tenantID, bankAccountID string) ([]domain.BankStatementLine, error) {
	query := `
		SELECT ` + prefixedStatementLineColumns("l") + `
		FROM bank_statement_lines l
		JOIN bank_statements s ON l.statement_id = s.statement_id
		WHERE s.tenant_id = $1 AND s.bank_account_id = $2 AND l.is_matched = FALSE
		ORDER BY l.transaction_date, l.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, bankAccountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query unmatched lines for bank account "+bankAccountID, err)
	}
	defer rows.Close()
	return collectStatementLines(rows)
}

// GetBookBalance computes sum(debits) - sum(credits) of POSTED lines against the
// bank's GL account up to and including asOf.
func (r *PgxBankRepository) GetBookBalance(ctx context.Context, tenantID, glAccountID string, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN l.line_type = 'DEBIT' THEN l.amount ELSE -l.amount END), 0)
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.tenant_id = $1 AND l.account_id = $2 AND e.status = 'POSTED' AND e.entry_date <= $3;
	`
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, tenantID, glAccountID, asOf).Scan(&balance); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute book balance for account "+glAccountID, err)
	}
	return balance, nil
}

// ListUnreconciledLines retrieves POSTED lines against the GL account not yet
// referenced by any reconciliation match.
func (r *PgxBankRepository) ListUnreconciledLines(ctx context.Context, tenantID, glAccountID string) ([]domain.UnreconciledLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, e.entry_number, e.entry_date, l.description, l.line_type, l.amount
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.tenant_id = $1 AND l.account_id = $2 AND e.status = 'POSTED'
		  AND NOT EXISTS (
			SELECT 1 FROM bank_reconciliation_matches m
			WHERE m.tenant_id = $1 AND m.journal_line_id = l.line_id
		  )
		ORDER BY e.entry_date, l.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, glAccountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query unreconciled lines for account "+glAccountID, err)
	}
	defer rows.Close()

	lines := []domain.UnreconciledLine{}
	for rows.Next() {
		var l domain.UnreconciledLine
		var lineType string
		err := rows.Scan(&l.LineID, &l.EntryID, &l.EntryNumber, &l.EntryDate, &l.Description, &lineType, &l.Amount)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan unreconciled line row", err)
		}
		l.LineType = domain.LineType(lineType)
		// Bank GL accounts are debit-normal, so debits add to the balance.
		if l.LineType == domain.Debit {
			l.SignedAmount = l.Amount
		} else {
			l.SignedAmount = l.Amount.Neg()
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating unreconciled line rows", err)
	}

	return lines, nil
}

// SaveMatches creates match rows and flips is_matched on any referenced
// statement lines within a single transaction.
func (r *PgxBankRepository) SaveMatches(ctx context.Context, matches []domain.ReconciliationMatch) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	matchQuery := `
		INSERT INTO bank_reconciliation_matches (match_id, tenant_id, statement_line_id, journal_line_id, amount, matched_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	flipQuery := `UPDATE bank_statement_lines SET is_matched = TRUE WHERE line_id = $1;`

	batch := &pgx.Batch{}
	for _, match := range matches {
		m := mapping.ToModelReconciliationMatch(match)
		batch.Queue(matchQuery,
			m.MatchID, m.TenantID, m.StatementLineID, m.JournalLineID, m.Amount, m.MatchedAt,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if m.StatementLineID != nil {
			batch.Queue(flipQuery, *m.StatementLineID)
		}
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "journal line already matched", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save reconciliation matches", err)
	}

	return r.Commit(ctx, tx)
}

// DeleteMatch removes a match and flips its statement line back to unmatched.
func (r *PgxBankRepository) DeleteMatch(ctx context.Context, tenantID, matchID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var statementLineID *string
	deleteQuery := `
		DELETE FROM bank_reconciliation_matches
		WHERE tenant_id = $1 AND match_id = $2
		RETURNING statement_line_id;
	`
	err = tx.QueryRow(ctx, deleteQuery, tenantID, matchID).Scan(&statementLineID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to delete match "+matchID, err)
	}

	if statementLineID != nil {
		flipQuery := `UPDATE bank_statement_lines SET is_matched = FALSE WHERE line_id = $1;`
		if _, err := tx.Exec(ctx, flipQuery, *statementLineID); err != nil {
			return apperrors.NewAppError(500, "failed to unflag statement line "+*statementLineID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func collectStatementLines(rows pgx.Rows) ([]domain.BankStatementLine, error) {
	lines := []models.BankStatementLine{}
	for rows.Next() {
		var m models.BankStatementLine
		err := rows.Scan(
			&m.LineID, &m.StatementID, &m.TransactionDate, &m.Description,
			&m.Debit, &m.Credit, &m.Balance, &m.IsMatched,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan statement line row", err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating statement line rows", err)
	}
	return mapping.ToDomainStatementLineSlice(lines), nil
}

// prefixedStatementLineColumns qualifies the statement line column list with a
// table alias.
func prefixedStatementLineColumns(alias string) string {
	return alias + ".line_id, " + alias + ".statement_id, " + alias + ".transaction_date, " + alias + ".description, " +
		alias + ".debit, " + alias + ".credit, " + alias + ".balance, " + alias + ".is_matched, " +
		alias + ".created_at, " + alias + ".created_by, " + alias + ".last_updated_at, " + alias + ".last_updated_by"
}
