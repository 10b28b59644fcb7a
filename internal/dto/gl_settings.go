package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingInput describes a business document amount that the GL resolver turns
// into balanced journal lines.
type PostingInput struct {
	ReferenceType domain.ReferenceType `json:"referenceType" binding:"required"`
	ReferenceID   *string              `json:"referenceID"`
	GrossAmount   decimal.Decimal      `json:"grossAmount" binding:"required"`
	Description   string               `json:"description"`
	// UseBankAccount selects the bank role over the cash role for the money leg
	// of receipts and payments.
	UseBankAccount bool `json:"useBankAccount"`
}

// SaveGLSettingsRequest replaces a tenant's role-to-account mapping and tax rate.
type SaveGLSettingsRequest struct {
	AccountCodes map[domain.GLRole]string `json:"accountCodes" binding:"required"`
	TaxRate      decimal.Decimal          `json:"taxRate"`
}

// GLSettingsResponse defines the data returned for the tenant's GL settings.
type GLSettingsResponse struct {
	AccountCodes  map[domain.GLRole]string `json:"accountCodes"`
	TaxRate       decimal.Decimal          `json:"taxRate"`
	LastUpdatedAt time.Time                `json:"lastUpdatedAt"`
}

// ToGLSettingsResponse converts domain.GLSettings to GLSettingsResponse DTO.
func ToGLSettingsResponse(s *domain.GLSettings) GLSettingsResponse {
	return GLSettingsResponse{
		AccountCodes:  s.AccountCodes,
		TaxRate:       s.TaxRate,
		LastUpdatedAt: s.LastUpdatedAt,
	}
}
