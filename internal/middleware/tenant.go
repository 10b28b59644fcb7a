package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
)

const tenantKey = contextKey("tenant")

// TenantHeader is the request header carrying the caller's tenant ID. The
// upstream gateway is responsible for authenticating it.
const TenantHeader = "X-Tenant-ID"

// TenantResolver creates a Gin middleware that loads the tenant named by the
// request header and stores it in the request context. Requests with a missing,
// unknown or deactivated tenant are rejected before any handler runs.
func TenantResolver(tenantSvc portssvc.TenantSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(TenantHeader)
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + TenantHeader + " header"})
			return
		}

		tenant, err := tenantSvc.GetTenantByID(c.Request.Context(), tenantID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
				return
			}
			GetLoggerFromCtx(c.Request.Context()).Error("Failed to resolve tenant",
				slog.String("tenant_id", tenantID), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve tenant"})
			return
		}
		if !tenant.IsActive || tenant.IsDeleted() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "tenant is deactivated"})
			return
		}

		ctx := SetTenantInCtx(c.Request.Context(), *tenant)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// SetTenantInCtx returns a context carrying the resolved tenant.
func SetTenantInCtx(ctx context.Context, tenant domain.Tenant) context.Context {
	return context.WithValue(ctx, tenantKey, tenant)
}

// TenantFromCtx retrieves the resolved tenant from the context. Every
// tenant-scoped operation must call this; a missing tenant is a hard failure,
// never a fallback to some default scope.
func TenantFromCtx(ctx context.Context) (domain.Tenant, error) {
	tenant, ok := ctx.Value(tenantKey).(domain.Tenant)
	if !ok {
		return domain.Tenant{}, apperrors.ErrNoTenantContext
	}
	return tenant, nil
}
