package services

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/dto"

	"github.com/shopspring/decimal"
)

// GLResolverSvc maps business documents to balanced journal lines using the
// tenant's GL settings.
type GLResolverSvc interface {
	// Resolve builds the debit/credit lines for a business document amount.
	// Tax-bearing document types split the gross amount using the tenant's
	// tax rate. An unmapped role yields apperrors.ErrUnmappedAccount.
	Resolve(ctx context.Context, input dto.PostingInput) ([]domain.JournalLine, error)

	// BuildCOGSLines builds the cost-of-goods-sold pair (debit COGS, credit
	// inventory) for a stock-out cost amount.
	BuildCOGSLines(ctx context.Context, cogs decimal.Decimal, description string) ([]domain.JournalLine, error)

	// GetGLSettings returns the tenant's role-to-account mapping and tax rate.
	GetGLSettings(ctx context.Context) (*domain.GLSettings, error)

	// SaveGLSettings replaces the tenant's role mapping and invalidates the
	// resolver cache.
	SaveGLSettings(ctx context.Context, req dto.SaveGLSettingsRequest, userID string) error
}
