package repositories

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice by ID, scoped to the tenant.
	FindInvoiceByID(ctx context.Context, tenantID, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves invoices of one kind, optionally restricted to
	// those still carrying an outstanding amount.
	ListInvoices(ctx context.Context, tenantID string, kind domain.InvoiceKind, onlyOpen bool) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice, allocating its number from the tenant's
	// document sequence.
	SaveInvoice(ctx context.Context, invoice *domain.Invoice) error

	// ApplyPayment reduces an invoice's outstanding amount and updates its status.
	ApplyPayment(ctx context.Context, tenantID, invoiceID string, amount decimal.Decimal, updatedByUserID string) error

	// VoidInvoice marks an invoice void and zeroes its outstanding amount.
	VoidInvoice(ctx context.Context, tenantID, invoiceID, updatedByUserID string) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
