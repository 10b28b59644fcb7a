package services

// ServiceContainer aggregates every service facade for handler wiring.
type ServiceContainer struct {
	TenantSvc    TenantSvcFacade
	AccountSvc   AccountSvcFacade
	ResolverSvc  GLResolverSvc
	PostingSvc   PostingSvcFacade
	InventorySvc InventorySvcFacade
	BankSvc      BankSvcFacade
	InvoiceSvc   InvoiceSvcFacade
	ReportingSvc ReportingSvcFacade
}
