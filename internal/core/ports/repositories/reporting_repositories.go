package repositories

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines operations for retrieving financial report data.
// All queries consider POSTED entries only and are tenant-scoped.
type ReportingRepository interface {
	// GetTrialBalanceData retrieves per-account gross lifetime debit/credit totals as of a date.
	GetTrialBalanceData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetProfitAndLossData retrieves income, cogs and expense account nets for a period.
	GetProfitAndLossData(ctx context.Context, tenantID string, from, to time.Time) (income, cogs, expenses []domain.AccountAmount, err error)

	// GetBalanceSheetData retrieves asset, liability and equity account nets as of a date.
	GetBalanceSheetData(ctx context.Context, tenantID string, asOf time.Time) (assets, liabilities, equity []domain.AccountAmount, err error)

	// GetCumulativeNetProfit computes cumulative net profit from inception through asOf
	// (the synthetic Retained Earnings figure).
	GetCumulativeNetProfit(ctx context.Context, tenantID string, asOf time.Time) (decimal.Decimal, error)
}
