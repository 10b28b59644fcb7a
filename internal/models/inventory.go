package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement maps to the stock_movements table. Inbound rows are FIFO costing
// layers; balance_quantity tracks the unconsumed remainder.
type StockMovement struct {
	MovementID      string          `json:"movementID"`
	TenantID        string          `json:"tenantID"`
	ProductID       string          `json:"productID"`
	MovementType    string          `json:"movementType"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unitCost"`
	TotalCost       decimal.Decimal `json:"totalCost"`
	BalanceQuantity decimal.Decimal `json:"balanceQuantity"`
	Reference       string          `json:"reference"`
	MovementDate    time.Time       `json:"movementDate"`
	AuditFields
}

// Product maps to the products table.
type Product struct {
	ProductID    string          `json:"productID"`
	TenantID     string          `json:"tenantID"`
	SKU          string          `json:"sku"` // Unique within (tenant_id)
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	AverageCost  decimal.Decimal `json:"averageCost"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}
