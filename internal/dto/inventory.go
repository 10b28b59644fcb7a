package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to register a product.
type CreateProductRequest struct {
	SKU  string `json:"sku" binding:"required,max=50"`
	Name string `json:"name" binding:"required,max=100"`
}

// StockInRequest defines the data for an inbound stock movement.
type StockInRequest struct {
	ProductID    string              `json:"productID" binding:"required"`
	MovementType domain.MovementType `json:"movementType" binding:"required,oneof=PURCHASE ADJUSTMENT_IN OPENING_BALANCE"`
	Quantity     decimal.Decimal     `json:"quantity" binding:"required"`
	UnitCost     decimal.Decimal     `json:"unitCost" binding:"required"`
	Reference    string              `json:"reference"`
	MovementDate time.Time           `json:"movementDate" binding:"required"`
	// PostToGL posts the purchase entry through the resolver. Opening balances
	// and adjustments typically skip it.
	PostToGL bool `json:"postToGL"`
}

// StockOutRequest defines the data for an outbound stock movement.
type StockOutRequest struct {
	ProductID    string              `json:"productID" binding:"required"`
	MovementType domain.MovementType `json:"movementType" binding:"required,oneof=SALE ADJUSTMENT_OUT"`
	Quantity     decimal.Decimal     `json:"quantity" binding:"required"`
	Reference    string              `json:"reference"`
	MovementDate time.Time           `json:"movementDate" binding:"required"`
	// PostToGL posts the COGS entry built from the FIFO cost.
	PostToGL bool `json:"postToGL"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID    string          `json:"productID"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	AverageCost  decimal.Decimal `json:"averageCost"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// MovementResponse defines the data returned for a stock movement.
type MovementResponse struct {
	MovementID      string              `json:"movementID"`
	ProductID       string              `json:"productID"`
	MovementType    domain.MovementType `json:"movementType"`
	Quantity        decimal.Decimal     `json:"quantity"`
	UnitCost        decimal.Decimal     `json:"unitCost"`
	TotalCost       decimal.Decimal     `json:"totalCost"`
	BalanceQuantity decimal.Decimal     `json:"balanceQuantity"`
	Reference       string              `json:"reference"`
	MovementDate    time.Time           `json:"movementDate"`
}

// StockOutResponse defines the data returned for a completed stock-out.
type StockOutResponse struct {
	MovementID string                    `json:"movementID"`
	COGS       decimal.Decimal           `json:"cogs"`
	Consumed   []domain.LayerConsumption `json:"consumed"`
}

// ValuationResponse defines the data returned for a product valuation.
type ValuationResponse struct {
	ProductID   string          `json:"productID"`
	Quantity    decimal.Decimal `json:"quantity"`
	Value       decimal.Decimal `json:"value"`
	AverageCost decimal.Decimal `json:"averageCost"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:    p.ProductID,
		SKU:          p.SKU,
		Name:         p.Name,
		CurrentStock: p.CurrentStock,
		AverageCost:  p.AverageCost,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
	}
}

// ToProductResponses converts a slice of domain.Product to []ProductResponse.
func ToProductResponses(products []domain.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(&p)
	}
	return responses
}

// ToMovementResponse converts a domain.StockMovement to MovementResponse DTO.
func ToMovementResponse(m *domain.StockMovement) MovementResponse {
	return MovementResponse{
		MovementID:      m.MovementID,
		ProductID:       m.ProductID,
		MovementType:    m.MovementType,
		Quantity:        m.Quantity,
		UnitCost:        m.UnitCost,
		TotalCost:       m.TotalCost,
		BalanceQuantity: m.BalanceQuantity,
		Reference:       m.Reference,
		MovementDate:    m.MovementDate,
	}
}

// ToMovementResponses converts a slice of domain.StockMovement to []MovementResponse.
func ToMovementResponses(movements []domain.StockMovement) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i, m := range movements {
		responses[i] = ToMovementResponse(&m)
	}
	return responses
}

// ToStockOutResponse converts a domain.StockOutResult to StockOutResponse DTO.
func ToStockOutResponse(r *domain.StockOutResult) StockOutResponse {
	return StockOutResponse{
		MovementID: r.MovementID,
		COGS:       r.COGS,
		Consumed:   r.Consumed,
	}
}

// ToValuationResponse converts a domain.InventoryValuation to ValuationResponse DTO.
func ToValuationResponse(v *domain.InventoryValuation) ValuationResponse {
	return ValuationResponse{
		ProductID:   v.ProductID,
		Quantity:    v.Quantity,
		Value:       v.Value,
		AverageCost: v.AverageCost,
	}
}
