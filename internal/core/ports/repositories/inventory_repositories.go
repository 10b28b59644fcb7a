package repositories

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ProductReader defines read operations for product data
type ProductReader interface {
	// FindProductByID retrieves a product by ID, scoped to the tenant.
	FindProductByID(ctx context.Context, tenantID, productID string) (*domain.Product, error)

	// ListProducts retrieves all products for a tenant.
	ListProducts(ctx context.Context, tenantID string, includeInactive bool) ([]domain.Product, error)
}

// ProductWriter defines write operations for product data
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct updates mutable product fields.
	UpdateProduct(ctx context.Context, product domain.Product) error
}

// LayerReader defines read operations over FIFO costing layers
type LayerReader interface {
	// FindOpenLayers retrieves unconsumed inbound layers for a product in FIFO
	// (creation) order.
	FindOpenLayers(ctx context.Context, tenantID, productID string) ([]domain.StockMovement, error)

	// ListMovements retrieves all movements for a product, newest first.
	ListMovements(ctx context.Context, tenantID, productID string, limit int) ([]domain.StockMovement, error)
}

// LayerWriter defines the transactional stock mutation operations. The FIFO
// consumption contract requires row locks, so these run against an open pgx.Tx.
type LayerWriter interface {
	// FindOpenLayersForUpdate locks and returns unconsumed layers in FIFO order.
	FindOpenLayersForUpdate(ctx context.Context, tx pgx.Tx, tenantID, productID string) ([]domain.StockMovement, error)

	// FindProductForUpdate locks and returns the product row.
	FindProductForUpdate(ctx context.Context, tx pgx.Tx, tenantID, productID string) (*domain.Product, error)

	// InsertMovementInTx persists one stock movement row.
	InsertMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error

	// DecrementLayerBalanceInTx subtracts qty from a layer's balance_quantity,
	// failing if the result would go negative.
	DecrementLayerBalanceInTx(ctx context.Context, tx pgx.Tx, movementID string, qty decimal.Decimal) error

	// UpdateProductStockInTx writes the product's denormalized stock and average cost.
	UpdateProductStockInTx(ctx context.Context, tx pgx.Tx, product domain.Product) error
}

// InventoryRepositoryFacade combines all inventory repository interfaces
type InventoryRepositoryFacade interface {
	ProductReader
	ProductWriter
	LayerReader
	LayerWriter
	TransactionManager
}
