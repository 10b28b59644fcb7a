package services

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// InvoiceSvcFacade defines sales and purchase invoice operations. Issuing,
// paying and voiding an invoice each post through the GL resolver so the
// ledger stays in step with the document.
type InvoiceSvcFacade interface {
	// CreateInvoice stores an invoice and posts its issue entry.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)

	// GetInvoiceByID retrieves an invoice.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves the tenant's invoices of one kind.
	ListInvoices(ctx context.Context, kind domain.InvoiceKind, onlyOpen bool) ([]domain.Invoice, error)

	// RecordPayment applies a payment against an invoice and posts the
	// receipt or payment entry. Overpayment is refused.
	RecordPayment(ctx context.Context, invoiceID string, req dto.RecordPaymentRequest, userID string) (*domain.Invoice, error)

	// VoidInvoice voids an unpaid invoice and reverses its issue entry.
	VoidInvoice(ctx context.Context, invoiceID, reason, userID string) error
}
