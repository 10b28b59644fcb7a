package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// glSettingsHandler handles HTTP requests for the tenant's GL posting configuration.
type glSettingsHandler struct {
	resolverService portssvc.GLResolverSvc
}

func newGLSettingsHandler(rs portssvc.GLResolverSvc) *glSettingsHandler {
	return &glSettingsHandler{resolverService: rs}
}

// registerGLSettingsRoutes registers routes related to GL settings.
func registerGLSettingsRoutes(rg *gin.RouterGroup, resolverService portssvc.GLResolverSvc) {
	h := newGLSettingsHandler(resolverService)

	settings := rg.Group("/gl-settings")
	{
		settings.GET("", h.getGLSettings)
		settings.PUT("", h.saveGLSettings)
	}
}

func (h *glSettingsHandler) getGLSettings(c *gin.Context) {
	settings, err := h.resolverService.GetGLSettings(c.Request.Context())
	if err != nil {
		respondError(c, err, "get GL settings")
		return
	}
	c.JSON(http.StatusOK, dto.ToGLSettingsResponse(settings))
}

func (h *glSettingsHandler) saveGLSettings(c *gin.Context) {
	var req dto.SaveGLSettingsRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.resolverService.SaveGLSettings(c.Request.Context(), req, userID); err != nil {
		respondError(c, err, "save GL settings")
		return
	}
	c.Status(http.StatusNoContent)
}
