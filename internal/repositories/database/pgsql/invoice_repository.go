package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/bizbooks/bizbooks_backend/internal/models"
	"github.com/bizbooks/bizbooks_backend/internal/utils/mapping"
	"github.com/bizbooks/bizbooks_backend/internal/utils/numbering"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const invoiceColumns = `invoice_id, tenant_id, kind, number, partner_name, issue_date, due_date, total, outstanding_amount, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxInvoiceRepository struct {
	BaseRepository
	numberPadding int
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool, numberPadding int) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
		numberPadding:  numberPadding,
	}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryFacade
var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID, &m.TenantID, &m.Kind, &m.Number, &m.PartnerName,
		&m.IssueDate, &m.DueDate, &m.Total, &m.OutstandingAmount, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveInvoice persists a new invoice, allocating its number from the tenant's
// document sequence. The invoice's Number field is filled in.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice *domain.Invoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	docType := numbering.DocTypeInvoice
	if invoice.Kind == domain.InvoicePurchase {
		docType = numbering.DocTypePurchaseInvoice
	}
	year := invoice.IssueDate.Year()
	seq, err := allocateSequenceInTx(ctx, tx, invoice.TenantID, docType, year)
	if err != nil {
		return err
	}
	invoice.Number = numbering.Format(numbering.PrefixFor(docType), year, seq, r.numberPadding)

	m := mapping.ToModelInvoice(*invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, query,
		m.InvoiceID, m.TenantID, m.Kind, m.Number, m.PartnerName,
		m.IssueDate, m.DueDate, m.Total, m.OutstandingAmount, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "invoice number "+m.Number+" already taken", apperrors.ErrDuplicateNumber)
		}
		return apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}

	return r.Commit(ctx, tx)
}

// FindInvoiceByID retrieves an invoice by ID, scoped to the tenant.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, tenantID, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE tenant_id = $1 AND invoice_id = $2;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, tenantID, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by ID "+invoiceID, err)
	}
	invoice := mapping.ToDomainInvoice(*m)
	return &invoice, nil
}

// ListInvoices retrieves invoices of one kind, optionally restricted to those
// still carrying an outstanding amount.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, tenantID string, kind domain.InvoiceKind, onlyOpen bool) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE tenant_id = $1 AND kind = $2`
	if onlyOpen {
		query += ` AND status IN ('OPEN', 'PARTIALLY_PAID')`
	}
	query += ` ORDER BY due_date, number;`

	rows, err := r.Pool.Query(ctx, query, tenantID, string(kind))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoices for tenant "+tenantID, err)
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		invoices = append(invoices, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}

	return mapping.ToDomainInvoiceSlice(invoices), nil
}

// ApplyPayment reduces an invoice's outstanding amount and updates its status.
// The guard predicate refuses overpayment; the service validates first, this is
// the concurrent-payment backstop.
func (r *PgxInvoiceRepository) ApplyPayment(ctx context.Context, tenantID, invoiceID string, amount decimal.Decimal, updatedByUserID string) error {
	now := time.Now().UTC()
	query := `
		UPDATE invoices
		SET outstanding_amount = outstanding_amount - $3,
		    status = CASE WHEN outstanding_amount - $3 = 0 THEN 'PAID' ELSE 'PARTIALLY_PAID' END,
		    last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND invoice_id = $2
		  AND status IN ('OPEN', 'PARTIALLY_PAID')
		  AND outstanding_amount >= $3;
	`
	tag, err := r.Pool.Exec(ctx, query, tenantID, invoiceID, amount, now, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply payment to invoice "+invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "invoice "+invoiceID+" cannot take this payment", apperrors.ErrConflict)
	}
	return nil
}

// VoidInvoice marks an invoice void and zeroes its outstanding amount. Only an
// invoice with no payments applied can be voided.
func (r *PgxInvoiceRepository) VoidInvoice(ctx context.Context, tenantID, invoiceID, updatedByUserID string) error {
	now := time.Now().UTC()
	query := `
		UPDATE invoices
		SET status = 'VOID', outstanding_amount = 0, last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $1 AND invoice_id = $2 AND status = 'OPEN' AND outstanding_amount = total;
	`
	tag, err := r.Pool.Exec(ctx, query, tenantID, invoiceID, now, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to void invoice "+invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "invoice "+invoiceID+" is not voidable", apperrors.ErrConflict)
	}
	return nil
}
