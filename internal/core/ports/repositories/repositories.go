package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TenantRepo     TenantRepositoryFacade
	AccountRepo    AccountRepositoryFacade
	GLSettingsRepo GLSettingsRepository
	JournalRepo    JournalRepositoryWithTx
	InventoryRepo  InventoryRepositoryFacade
	BankRepo       BankRepositoryFacade
	InvoiceRepo    InvoiceRepositoryFacade
	ReportingRepo  ReportingRepository
}
