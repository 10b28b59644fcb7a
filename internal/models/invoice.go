package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice maps to the invoices table.
type Invoice struct {
	InvoiceID         string          `json:"invoiceID"`
	TenantID          string          `json:"tenantID"`
	Kind              string          `json:"kind"`
	Number            string          `json:"number"` // Unique within (tenant_id)
	PartnerName       string          `json:"partnerName"`
	IssueDate         time.Time       `json:"issueDate"`
	DueDate           time.Time       `json:"dueDate"`
	Total             decimal.Decimal `json:"total"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	Status            string          `json:"status"`
	AuditFields
}
