package mapping

import (
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/models"
)

// ToModelStockMovement converts a domain StockMovement to a model StockMovement
func ToModelStockMovement(d domain.StockMovement) models.StockMovement {
	return models.StockMovement{
		MovementID:      d.MovementID,
		TenantID:        d.TenantID,
		ProductID:       d.ProductID,
		MovementType:    string(d.MovementType),
		Quantity:        d.Quantity,
		UnitCost:        d.UnitCost,
		TotalCost:       d.TotalCost,
		BalanceQuantity: d.BalanceQuantity,
		Reference:       d.Reference,
		MovementDate:    d.MovementDate,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStockMovement converts a model StockMovement to a domain StockMovement
func ToDomainStockMovement(m models.StockMovement) domain.StockMovement {
	return domain.StockMovement{
		MovementID:      m.MovementID,
		TenantID:        m.TenantID,
		ProductID:       m.ProductID,
		MovementType:    domain.MovementType(m.MovementType),
		Quantity:        m.Quantity,
		UnitCost:        m.UnitCost,
		TotalCost:       m.TotalCost,
		BalanceQuantity: m.BalanceQuantity,
		Reference:       m.Reference,
		MovementDate:    m.MovementDate,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStockMovementSlice converts model StockMovements to domain StockMovements
func ToDomainStockMovementSlice(ms []models.StockMovement) []domain.StockMovement {
	ds := make([]domain.StockMovement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStockMovement(m)
	}
	return ds
}

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:    d.ProductID,
		TenantID:     d.TenantID,
		SKU:          d.SKU,
		Name:         d.Name,
		CurrentStock: d.CurrentStock,
		AverageCost:  d.AverageCost,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:    m.ProductID,
		TenantID:     m.TenantID,
		SKU:          m.SKU,
		Name:         m.Name,
		CurrentStock: m.CurrentStock,
		AverageCost:  m.AverageCost,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProductSlice converts a slice of model Products to domain Products
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}
