package pgsql

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for financial report data.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure ReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// GetTrialBalanceData retrieves per-account gross lifetime debit/credit totals
// over POSTED entries as of a date. Accounts with no postings are omitted; the
// service nets each row onto one side and drops zero-net accounts.
func (r *ReportingRepository) GetTrialBalanceData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(CASE WHEN l.line_type = 'DEBIT' THEN l.amount ELSE 0 END), 0) AS total_debit,
		       COALESCE(SUM(CASE WHEN l.line_type = 'CREDIT' THEN l.amount ELSE 0 END), 0) AS total_credit
		FROM chart_of_accounts a
		JOIN journal_lines l ON l.account_id = a.account_id
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE a.tenant_id = $1 AND e.tenant_id = $1 AND e.status = 'POSTED' AND e.entry_date <= $2
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data for tenant "+tenantID, err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string
		if err := rows.Scan(&row.AccountID, &row.Code, &row.Name, &accountType, &row.Debit, &row.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}

	return result, nil
}

// accountNets aggregates debit-minus-credit per account for the given account
// types over POSTED entries in [from, to]. The caller flips the sign for
// credit-normal types.
func (r *ReportingRepository) accountNets(ctx context.Context, tenantID string, accountTypes []string, from, to time.Time) ([]domain.AccountAmount, error) {
	query := `
		SELECT a.account_id, a.code, a.name,
		       COALESCE(SUM(CASE WHEN l.line_type = 'DEBIT' THEN l.amount ELSE -l.amount END), 0) AS net
		FROM chart_of_accounts a
		JOIN journal_lines l ON l.account_id = a.account_id
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE a.tenant_id = $1 AND e.tenant_id = $1 AND e.status = 'POSTED'
		  AND a.account_type = ANY($2)
		  AND e.entry_date >= $3 AND e.entry_date <= $4
		GROUP BY a.account_id, a.code, a.name
		HAVING COALESCE(SUM(CASE WHEN l.line_type = 'DEBIT' THEN l.amount ELSE -l.amount END), 0) != 0
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, accountTypes, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account nets for tenant "+tenantID, err)
	}
	defer rows.Close()

	result := []domain.AccountAmount{}
	for rows.Next() {
		var a domain.AccountAmount
		if err := rows.Scan(&a.AccountID, &a.Code, &a.Name, &a.NetAmount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account net row", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account net rows", err)
	}

	return result, nil
}

// negateNets flips the sign of every net amount. Credit-normal sections report
// positive figures for their natural balances.
func negateNets(amounts []domain.AccountAmount) []domain.AccountAmount {
	for i := range amounts {
		amounts[i].NetAmount = amounts[i].NetAmount.Neg()
	}
	return amounts
}

// earliestDate bounds open-ended period queries from below.
var earliestDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

// GetProfitAndLossData retrieves income, cogs and expense account nets for a
// period, each signed positive on the section's normal side.
func (r *ReportingRepository) GetProfitAndLossData(ctx context.Context, tenantID string, from, to time.Time) (income, cogs, expenses []domain.AccountAmount, err error) {
	income, err = r.accountNets(ctx, tenantID, []string{string(domain.Income)}, from, to)
	if err != nil {
		return nil, nil, nil, err
	}
	income = negateNets(income)

	cogs, err = r.accountNets(ctx, tenantID, []string{string(domain.COGS)}, from, to)
	if err != nil {
		return nil, nil, nil, err
	}

	expenses, err = r.accountNets(ctx, tenantID, []string{string(domain.Expense)}, from, to)
	if err != nil {
		return nil, nil, nil, err
	}

	return income, cogs, expenses, nil
}

// GetBalanceSheetData retrieves asset, liability and equity account nets from
// inception through asOf, each signed positive on the section's normal side.
func (r *ReportingRepository) GetBalanceSheetData(ctx context.Context, tenantID string, asOf time.Time) (assets, liabilities, equity []domain.AccountAmount, err error) {
	assets, err = r.accountNets(ctx, tenantID, []string{string(domain.Asset)}, earliestDate, asOf)
	if err != nil {
		return nil, nil, nil, err
	}

	liabilities, err = r.accountNets(ctx, tenantID, []string{string(domain.Liability)}, earliestDate, asOf)
	if err != nil {
		return nil, nil, nil, err
	}
	liabilities = negateNets(liabilities)

	equity, err = r.accountNets(ctx, tenantID, []string{string(domain.Equity)}, earliestDate, asOf)
	if err != nil {
		return nil, nil, nil, err
	}
	equity = negateNets(equity)

	return assets, liabilities, equity, nil
}

// GetCumulativeNetProfit computes cumulative net profit from inception through
// asOf. Credits minus debits across all P&L accounts equals income minus costs.
func (r *ReportingRepository) GetCumulativeNetProfit(ctx context.Context, tenantID string, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN l.line_type = 'CREDIT' THEN l.amount ELSE -l.amount END), 0)
		FROM chart_of_accounts a
		JOIN journal_lines l ON l.account_id = a.account_id
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE a.tenant_id = $1 AND e.tenant_id = $1 AND e.status = 'POSTED'
		  AND a.account_type IN ('INCOME', 'COGS', 'EXPENSE')
		  AND e.entry_date <= $2;
	`
	var netProfit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, tenantID, asOf).Scan(&netProfit); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute cumulative net profit for tenant "+tenantID, err)
	}
	return netProfit, nil
}
