package services

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// ReportingSvcFacade defines the financial report aggregator. All reports
// consider POSTED entries only and are scoped to the tenant in context.
type ReportingSvcFacade interface {
	// GetTrialBalance lists every account's lifetime debit and credit totals
	// as of a date plus the grand totals, which must agree.
	GetTrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error)

	// GetProfitAndLoss computes income, cost of goods sold, gross profit,
	// expenses and net profit for a period.
	GetProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error)

	// GetBalanceSheet computes assets, liabilities and equity as of a date.
	// Equity includes a synthetic retained earnings line carrying cumulative
	// net profit through the date.
	GetBalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)

	// GetAgingReport buckets open invoice balances by days overdue.
	GetAgingReport(ctx context.Context, kind domain.InvoiceKind, asOf time.Time) (*domain.AgingReport, error)
}
