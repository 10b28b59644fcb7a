package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/utils/accounting"
)

// reportingService aggregates posted journal data into financial statements.
// It never writes; all heavy lifting is pushed into SQL aggregation.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	invoiceRepo   portsrepo.InvoiceReader
}

// NewReportingService creates a new ReportingSvcFacade.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, invoiceRepo portsrepo.InvoiceReader) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo, invoiceRepo: invoiceRepo}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetTrialBalance lists lifetime per-account totals as of a date. Balanced going
// false means the posting invariant was violated somewhere and is worth alerting on.
func (s *reportingService) GetTrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, tenant.TenantID, asOf)
	if err != nil {
		return nil, err
	}

	// Net each account's gross activity onto one side. The positive side is the
	// normal side for a normal balance and the opposite side for a contra balance.
	accounts := make([]domain.TrialBalanceRow, 0, len(rows))
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range rows {
		net := row.Debit.Sub(row.Credit)
		if net.IsZero() {
			continue
		}
		if net.IsPositive() {
			row.Debit, row.Credit = net, decimal.Zero
		} else {
			row.Debit, row.Credit = decimal.Zero, net.Neg()
		}
		accounts = append(accounts, row)
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	return &domain.TrialBalanceReport{
		Accounts:    accounts,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Balanced:    totalDebit.Sub(totalCredit).Abs().LessThan(accounting.Tolerance),
	}, nil
}

func sectionOf(accounts []domain.AccountAmount) domain.ReportSection {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.NetAmount)
	}
	if accounts == nil {
		accounts = []domain.AccountAmount{}
	}
	return domain.ReportSection{Accounts: accounts, Total: total}
}

// GetProfitAndLoss computes the income statement for a period.
func (s *reportingService) GetProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}

	income, cogs, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, tenant.TenantID, from, to)
	if err != nil {
		return nil, err
	}

	incomeSection := sectionOf(income)
	cogsSection := sectionOf(cogs)
	expenseSection := sectionOf(expenses)
	grossProfit := incomeSection.Total.Sub(cogsSection.Total)

	return &domain.PAndLReport{
		Income:      incomeSection,
		COGS:        cogsSection,
		GrossProfit: grossProfit,
		Expenses:    expenseSection,
		NetProfit:   grossProfit.Sub(expenseSection.Total),
	}, nil
}

// GetBalanceSheet computes the statement of financial position. A synthetic
// Retained Earnings equity line carries cumulative net profit through asOf so
// assets tie out to liabilities plus equity.
func (s *reportingService) GetBalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}

	assets, liabilities, equity, err := s.reportingRepo.GetBalanceSheetData(ctx, tenant.TenantID, asOf)
	if err != nil {
		return nil, err
	}
	retainedEarnings, err := s.reportingRepo.GetCumulativeNetProfit(ctx, tenant.TenantID, asOf)
	if err != nil {
		return nil, err
	}

	equitySection := sectionOf(equity)
	equitySection.Accounts = append(equitySection.Accounts, domain.AccountAmount{
		Code:      "RE",
		Name:      "Retained Earnings",
		NetAmount: retainedEarnings,
	})
	equitySection.Total = equitySection.Total.Add(retainedEarnings)

	assetSection := sectionOf(assets)
	liabilitySection := sectionOf(liabilities)

	return &domain.BalanceSheetReport{
		Assets:                    assetSection,
		Liabilities:               liabilitySection,
		Equity:                    equitySection,
		RetainedEarnings:          retainedEarnings,
		TotalLiabilitiesAndEquity: liabilitySection.Total.Add(equitySection.Total),
	}, nil
}

// GetAgingReport buckets open invoice balances by whole days overdue at asOf.
func (s *reportingService) GetAgingReport(ctx context.Context, kind domain.InvoiceKind, asOf time.Time) (*domain.AgingReport, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.ListInvoices(ctx, tenant.TenantID, kind, true)
	if err != nil {
		return nil, err
	}

	report := &domain.AgingReport{
		Rows: make([]domain.AgingRow, 0, len(invoices)),
		Buckets: map[domain.AgingBucket]decimal.Decimal{
			domain.BucketCurrent: decimal.Zero,
			domain.Bucket1To30:   decimal.Zero,
			domain.Bucket31To60:  decimal.Zero,
			domain.Bucket61To90:  decimal.Zero,
			domain.BucketOver90:  decimal.Zero,
		},
		Total: decimal.Zero,
	}

	for _, inv := range invoices {
		if inv.IssueDate.After(asOf) {
			continue
		}
		daysOverdue := int(asOf.Sub(inv.DueDate).Hours() / 24)
		bucket := domain.BucketFor(daysOverdue)
		report.Rows = append(report.Rows, domain.AgingRow{
			InvoiceID:   inv.InvoiceID,
			Number:      inv.Number,
			PartnerName: inv.PartnerName,
			DueDate:     inv.DueDate,
			Outstanding: inv.OutstandingAmount,
			Bucket:      bucket,
		})
		report.Buckets[bucket] = report.Buckets[bucket].Add(inv.OutstandingAmount)
		report.Total = report.Total.Add(inv.OutstandingAmount)
	}
	return report, nil
}
