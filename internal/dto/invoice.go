package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest defines the data needed to issue an invoice.
type CreateInvoiceRequest struct {
	Kind        domain.InvoiceKind `json:"kind" binding:"required,oneof=SALES PURCHASE"`
	PartnerName string             `json:"partnerName" binding:"required,max=100"`
	IssueDate   time.Time          `json:"issueDate" binding:"required"`
	DueDate     time.Time          `json:"dueDate" binding:"required"`
	Total       decimal.Decimal    `json:"total" binding:"required"`
}

// RecordPaymentRequest defines the data to apply a payment against an invoice.
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate time.Time       `json:"paymentDate" binding:"required"`
	// UseBankAccount books the money leg against the bank role instead of cash.
	UseBankAccount bool `json:"useBankAccount"`
}

// VoidInvoiceRequest defines the data to void an unpaid invoice.
type VoidInvoiceRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID         string               `json:"invoiceID"`
	Kind              domain.InvoiceKind   `json:"kind"`
	Number            string               `json:"number"`
	PartnerName       string               `json:"partnerName"`
	IssueDate         time.Time            `json:"issueDate"`
	DueDate           time.Time            `json:"dueDate"`
	Total             decimal.Decimal      `json:"total"`
	OutstandingAmount decimal.Decimal      `json:"outstandingAmount"`
	Status            domain.InvoiceStatus `json:"status"`
	CreatedAt         time.Time            `json:"createdAt"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:         inv.InvoiceID,
		Kind:              inv.Kind,
		Number:            inv.Number,
		PartnerName:       inv.PartnerName,
		IssueDate:         inv.IssueDate,
		DueDate:           inv.DueDate,
		Total:             inv.Total,
		OutstandingAmount: inv.OutstandingAmount,
		Status:            inv.Status,
		CreatedAt:         inv.CreatedAt,
	}
}

// ToInvoiceResponses converts a slice of domain.Invoice to []InvoiceResponse.
func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		responses[i] = ToInvoiceResponse(&inv)
	}
	return responses
}
