package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType classifies a stock movement. IN movements create costing layers;
// OUT movements consume them in FIFO order.
type MovementType string

const (
	MovementPurchase       MovementType = "PURCHASE"
	MovementSale           MovementType = "SALE"
	MovementAdjustmentIn   MovementType = "ADJUSTMENT_IN"
	MovementAdjustmentOut  MovementType = "ADJUSTMENT_OUT"
	MovementOpeningBalance MovementType = "OPENING_BALANCE"
)

// IsInbound reports whether this movement type adds stock (and so forms a layer).
func (t MovementType) IsInbound() bool {
	switch t {
	case MovementPurchase, MovementAdjustmentIn, MovementOpeningBalance:
		return true
	}
	return false
}

// Valid reports whether t is a known movement type.
func (t MovementType) Valid() bool {
	switch t {
	case MovementPurchase, MovementSale, MovementAdjustmentIn, MovementAdjustmentOut, MovementOpeningBalance:
		return true
	}
	return false
}

// StockMovement records one stock event. Inbound movements double as FIFO costing
// layers: BalanceQuantity tracks how much of the layer is still unconsumed and
// never goes negative. Outbound movements are results only, never consumable.
type StockMovement struct {
	MovementID      string          `json:"movementID"` // Primary Key (e.g., UUID)
	TenantID        string          `json:"tenantID"`
	ProductID       string          `json:"productID"`
	MovementType    MovementType    `json:"movementType"`
	Quantity        decimal.Decimal `json:"quantity"` // Signed: positive=in, negative=out
	UnitCost        decimal.Decimal `json:"unitCost"`
	TotalCost       decimal.Decimal `json:"totalCost"`
	BalanceQuantity decimal.Decimal `json:"balanceQuantity"` // Remaining in this layer (inbound only)
	Reference       string          `json:"reference"`
	MovementDate    time.Time       `json:"movementDate"`
	AuditFields
}

// LayerConsumption details how much of a single layer a stock-out consumed.
type LayerConsumption struct {
	MovementID string          `json:"movementID"` // The consumed layer
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unitCost"`
	Cost       decimal.Decimal `json:"cost"`
}

// StockOutResult is the outcome of a FIFO stock-out: the total cost of goods sold
// and the per-layer consumption that produced it.
type StockOutResult struct {
	MovementID string             `json:"movementID"` // The OUT movement recorded
	COGS       decimal.Decimal    `json:"cogs"`
	Consumed   []LayerConsumption `json:"consumed"`
}

// InventoryValuation is the point-in-time FIFO valuation of one product.
type InventoryValuation struct {
	ProductID   string          `json:"productID"`
	Quantity    decimal.Decimal `json:"quantity"`
	Value       decimal.Decimal `json:"value"`
	AverageCost decimal.Decimal `json:"averageCost"` // Value / Quantity; zero when no stock
}

// Product is a stocked item. CurrentStock and AverageCost are denormalized for
// display; the FIFO layers remain authoritative for valuation.
type Product struct {
	ProductID    string          `json:"productID"`
	TenantID     string          `json:"tenantID"`
	SKU          string          `json:"sku"` // Unique per tenant
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	AverageCost  decimal.Decimal `json:"averageCost"` // Moving weighted average, display only
	IsActive     bool            `json:"isActive"`
	AuditFields
}
