package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceKind separates receivables (sales) from payables (purchases).
type InvoiceKind string

const (
	InvoiceSales    InvoiceKind = "SALES"
	InvoicePurchase InvoiceKind = "PURCHASE"
)

// InvoiceStatus tracks the settlement state of an invoice.
type InvoiceStatus string

const (
	InvoiceOpen          InvoiceStatus = "OPEN"
	InvoicePartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoicePaid          InvoiceStatus = "PAID"
	InvoiceVoid          InvoiceStatus = "VOID"
)

// Invoice is the minimal open-document record the ledger needs: it feeds AP/AR
// aging and carries the reference the posting engine tags entries with. Invoice
// line items, templates and delivery live outside this core.
type Invoice struct {
	InvoiceID         string          `json:"invoiceID"`
	TenantID          string          `json:"tenantID"`
	Kind              InvoiceKind     `json:"kind"`
	Number            string          `json:"number"` // Unique per tenant, sequence-allocated
	PartnerName       string          `json:"partnerName"`
	IssueDate         time.Time       `json:"issueDate"`
	DueDate           time.Time       `json:"dueDate"`
	Total             decimal.Decimal `json:"total"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	Status            InvoiceStatus   `json:"status"`
	AuditFields
}

// AgingBucket labels a time-since-due range for AP/AR aging.
type AgingBucket string

const (
	BucketCurrent AgingBucket = "current"
	Bucket1To30   AgingBucket = "1_30"
	Bucket31To60  AgingBucket = "31_60"
	Bucket61To90  AgingBucket = "61_90"
	BucketOver90  AgingBucket = "over_90"
)

// BucketFor places an overdue age (in whole days) into its aging bucket.
func BucketFor(daysOverdue int) AgingBucket {
	switch {
	case daysOverdue <= 0:
		return BucketCurrent
	case daysOverdue <= 30:
		return Bucket1To30
	case daysOverdue <= 60:
		return Bucket31To60
	case daysOverdue <= 90:
		return Bucket61To90
	default:
		return BucketOver90
	}
}
