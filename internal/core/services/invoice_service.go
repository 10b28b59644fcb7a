package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// invoiceService keeps the open-document ledger for AP/AR. Every state change
// of an invoice posts the matching journal entry through the resolver.
type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	journalRepo portsrepo.JournalReader
	resolverSvc portssvc.GLResolverSvc
	postingSvc  portssvc.PostingSvcFacade
}

// NewInvoiceService creates a new InvoiceSvcFacade.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, journalRepo portsrepo.JournalReader, resolverSvc portssvc.GLResolverSvc, postingSvc portssvc.PostingSvcFacade) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		journalRepo: journalRepo,
		resolverSvc: resolverSvc,
		postingSvc:  postingSvc,
	}
}

// Ensure invoiceService implements the portssvc.InvoiceSvcFacade interface
var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// issueRefType maps the invoice kind to the reference type of its issue entry.
func issueRefType(kind domain.InvoiceKind) domain.ReferenceType {
	if kind == domain.InvoicePurchase {
		return domain.RefPurchaseInvoice
	}
	return domain.RefInvoice
}

// paymentRefType maps the invoice kind to the reference type of a settlement.
func paymentRefType(kind domain.InvoiceKind) domain.ReferenceType {
	if kind == domain.InvoicePurchase {
		return domain.RefPayment
	}
	return domain.RefReceipt
}

// CreateInvoice stores the invoice and posts its issue entry. The invoice row
// is written first so the entry can reference its ID; a posting failure is
// surfaced to the caller with the invoice left OPEN and unposted.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	if req.Total.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: invoice total must be positive", apperrors.ErrValidation)
	}
	if req.DueDate.Before(req.IssueDate) {
		return nil, fmt.Errorf("%w: due date precedes issue date", apperrors.ErrValidation)
	}

	// Resolve before writing anything so a configuration gap fails fast.
	refType := issueRefType(req.Kind)
	desc := fmt.Sprintf("%s invoice - %s", req.Kind, req.PartnerName)
	lines, err := s.resolverSvc.Resolve(ctx, dto.PostingInput{
		ReferenceType: refType,
		GrossAmount:   req.Total,
		Description:   desc,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoice := &domain.Invoice{
		InvoiceID:         uuid.NewString(),
		TenantID:          tenant.TenantID,
		Kind:              req.Kind,
		PartnerName:       req.PartnerName,
		IssueDate:         req.IssueDate,
		DueDate:           req.DueDate,
		Total:             req.Total,
		OutstandingAmount: req.Total,
		Status:            domain.InvoiceOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		return nil, err
	}

	if _, err := s.postingSvc.PostResolved(ctx, dto.ResolvedPostingInput{
		EntryDate:         req.IssueDate,
		ReferenceType:     refType,
		ReferenceID:       &invoice.InvoiceID,
		Description:       desc + " " + invoice.Number,
		Lines:             lines,
		IsSystemGenerated: true,
	}, userID); err != nil {
		s.LogError(ctx, err, "Invoice stored but issue entry failed",
			slog.String("invoice_id", invoice.InvoiceID))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", invoice.InvoiceID), slog.String("number", invoice.Number))
	return invoice, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.invoiceRepo.FindInvoiceByID(ctx, tenant.TenantID, invoiceID)
}

func (s *invoiceService) ListInvoices(ctx context.Context, kind domain.InvoiceKind, onlyOpen bool) ([]domain.Invoice, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.invoiceRepo.ListInvoices(ctx, tenant.TenantID, kind, onlyOpen)
}

// RecordPayment applies a payment and posts the settlement entry. The guarded
// repository update rejects overpayment and concurrent double-settlement.
func (s *invoiceService) RecordPayment(ctx context.Context, invoiceID string, req dto.RecordPaymentRequest, userID string) (*domain.Invoice, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, tenant.TenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == domain.InvoiceVoid || invoice.Status == domain.InvoicePaid {
		return nil, fmt.Errorf("%w: invoice %s is %s", apperrors.ErrConflict, invoice.Number, invoice.Status)
	}
	if req.Amount.GreaterThan(invoice.OutstandingAmount) {
		return nil, fmt.Errorf("%w: payment %s exceeds outstanding %s on invoice %s",
			apperrors.ErrValidation, req.Amount.StringFixed(2), invoice.OutstandingAmount.StringFixed(2), invoice.Number)
	}

	refType := paymentRefType(invoice.Kind)
	desc := fmt.Sprintf("Payment for invoice %s", invoice.Number)
	lines, err := s.resolverSvc.Resolve(ctx, dto.PostingInput{
		ReferenceType:  refType,
		ReferenceID:    &invoice.InvoiceID,
		GrossAmount:    req.Amount,
		Description:    desc,
		UseBankAccount: req.UseBankAccount,
	})
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.ApplyPayment(ctx, tenant.TenantID, invoiceID, req.Amount, userID); err != nil {
		return nil, err
	}

	if _, err := s.postingSvc.PostResolved(ctx, dto.ResolvedPostingInput{
		EntryDate:         req.PaymentDate,
		ReferenceType:     refType,
		ReferenceID:       &invoice.InvoiceID,
		Description:       desc,
		Lines:             lines,
		IsSystemGenerated: true,
	}, userID); err != nil {
		s.LogError(ctx, err, "Payment applied but settlement entry failed",
			slog.String("invoice_id", invoiceID))
		return nil, err
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("invoice_id", invoiceID), slog.String("amount", req.Amount.String()))
	return s.invoiceRepo.FindInvoiceByID(ctx, tenant.TenantID, invoiceID)
}

// VoidInvoice voids an untouched invoice and reverses its issue entry.
func (s *invoiceService) VoidInvoice(ctx context.Context, invoiceID, reason, userID string) error {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, tenant.TenantID, invoiceID)
	if err != nil {
		return err
	}
	if invoice.Status != domain.InvoiceOpen || !invoice.OutstandingAmount.Equal(invoice.Total) {
		return fmt.Errorf("%w: invoice %s has payments or is not open", apperrors.ErrConflict, invoice.Number)
	}

	if err := s.invoiceRepo.VoidInvoice(ctx, tenant.TenantID, invoiceID, userID); err != nil {
		return err
	}

	entry, err := s.journalRepo.FindEntryByReference(ctx, tenant.TenantID, issueRefType(invoice.Kind), invoiceID)
	switch {
	case err == nil:
		if _, err := s.postingSvc.Reverse(ctx, entry.EntryID, reason, userID); err != nil {
			s.LogError(ctx, err, "Invoice voided but issue entry reversal failed",
				slog.String("invoice_id", invoiceID), slog.String("entry_id", entry.EntryID))
			return err
		}
	case errors.Is(err, apperrors.ErrNotFound):
		// Invoice without an issue entry: nothing to reverse.
	default:
		return err
	}

	s.LogInfo(ctx, "Invoice voided", slog.String("invoice_id", invoiceID), slog.String("reason", reason))
	return nil
}
