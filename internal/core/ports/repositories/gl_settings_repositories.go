package repositories

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// GLSettingsRepository defines operations for the tenant GL account mapping.
type GLSettingsRepository interface {
	// GetGLSettings retrieves the role->code mapping and flat tax rate for a tenant.
	GetGLSettings(ctx context.Context, tenantID string) (*domain.GLSettings, error)

	// SaveGLSettings upserts the mapping and tax rate for a tenant.
	SaveGLSettings(ctx context.Context, settings domain.GLSettings) error
}
