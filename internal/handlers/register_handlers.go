package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
	"github.com/bizbooks/bizbooks_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes. Tenant lifecycle routes need
// only a user; everything else additionally runs under the tenant resolver.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	v1 := r.Group("/api/v1", middleware.UserResolver())
	registerTenantRoutes(v1, services.TenantSvc)

	scoped := v1.Group("", middleware.TenantResolver(services.TenantSvc))
	registerAccountRoutes(scoped, services.AccountSvc)
	registerGLSettingsRoutes(scoped, services.ResolverSvc)
	registerJournalRoutes(scoped, services.PostingSvc)
	registerInventoryRoutes(scoped, services.InventorySvc)
	registerBankRoutes(scoped, services.BankSvc)
	registerInvoiceRoutes(scoped, services.InvoiceSvc)
	registerReportingRoutes(scoped, services.ReportingSvc)
}
