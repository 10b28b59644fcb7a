package services

import (
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/platform/config"
)

// NewServiceContainer wires every service with its repository and peer service
// dependencies. Construction order follows the dependency direction: resolver
// and posting first, then the document services that post through them.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.TenantSvc = NewTenantService(repos.TenantRepo, repos.AccountRepo)
	container.AccountSvc = NewAccountService(repos.AccountRepo)
	container.ResolverSvc = NewGLResolverService(repos.GLSettingsRepo, repos.AccountRepo, cfg.GLSettingsCacheTTL)
	container.PostingSvc = NewPostingService(repos.JournalRepo, repos.AccountRepo)
	container.InventorySvc = NewInventoryService(repos.InventoryRepo, container.ResolverSvc, container.PostingSvc)
	container.BankSvc = NewBankService(repos.BankRepo, repos.AccountRepo, repos.JournalRepo)
	container.InvoiceSvc = NewInvoiceService(repos.InvoiceRepo, repos.JournalRepo, container.ResolverSvc, container.PostingSvc)
	container.ReportingSvc = NewReportingService(repos.ReportingRepo, repos.InvoiceRepo)

	return container
}
