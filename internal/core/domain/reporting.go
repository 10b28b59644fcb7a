package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one line of a trial balance: the account's lifetime balance
// as of the report date, shown on its normal side.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists every account with a non-zero balance. Balanced is a
// cross-check of the posting invariant, not an independent computation.
type TrialBalanceReport struct {
	Accounts    []TrialBalanceRow `json:"accounts"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Balanced    bool              `json:"balanced"`
}

// AccountAmount is an account with its normal-balance-signed net amount.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// ReportSection groups accounts with their section total.
type ReportSection struct {
	Accounts []AccountAmount `json:"accounts"`
	Total    decimal.Decimal `json:"total"`
}

// PAndLReport is a profit and loss statement for a period.
type PAndLReport struct {
	Income      ReportSection   `json:"income"`
	COGS        ReportSection   `json:"cogs"`
	GrossProfit decimal.Decimal `json:"grossProfit"`
	Expenses    ReportSection   `json:"expenses"`
	NetProfit   decimal.Decimal `json:"netProfit"`
}

// BalanceSheetReport is a point-in-time balance sheet. Equity includes a synthetic
// "Retained Earnings" line equal to cumulative net profit from inception, which is
// what makes TotalAssets equal TotalLiabilitiesAndEquity for a fully posted ledger.
type BalanceSheetReport struct {
	Assets                    ReportSection   `json:"assets"`
	Liabilities               ReportSection   `json:"liabilities"`
	Equity                    ReportSection   `json:"equity"`
	RetainedEarnings          decimal.Decimal `json:"retainedEarnings"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"totalLiabilitiesAndEquity"`
}

// AgingRow is one invoice's contribution to an aging report.
type AgingRow struct {
	InvoiceID   string          `json:"invoiceID"`
	Number      string          `json:"number"`
	PartnerName string          `json:"partnerName"`
	DueDate     time.Time       `json:"dueDate"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Bucket      AgingBucket     `json:"bucket"`
}

// AgingReport buckets open invoices by days overdue.
type AgingReport struct {
	Rows    []AgingRow                      `json:"rows"`
	Buckets map[AgingBucket]decimal.Decimal `json:"buckets"`
	Total   decimal.Decimal                 `json:"total"`
}
