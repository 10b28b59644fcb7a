package pgsql

import (
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx repository over one shared pool.
// numberPadding sets the zero-padded width of document numbers.
func NewRepositoryProvider(dbPool *pgxpool.Pool, numberPadding int) portsrepo.RepositoryProvider {
	tenantRepo := newPgxTenantRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	glSettingsRepo := newPgxGLSettingsRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, numberPadding)
	inventoryRepo := newPgxInventoryRepository(dbPool)
	bankRepo := newPgxBankRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool, numberPadding)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TenantRepo:     tenantRepo,
		AccountRepo:    accountRepo,
		GLSettingsRepo: glSettingsRepo,
		JournalRepo:    journalRepo,
		InventoryRepo:  inventoryRepo,
		BankRepo:       bankRepo,
		InvoiceRepo:    invoiceRepo,
		ReportingRepo:  reportingRepo,
	}
}
