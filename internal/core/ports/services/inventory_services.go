package services

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// InventorySvcFacade defines the FIFO inventory ledger.
type InventorySvcFacade interface {
	// CreateProduct registers a product for the tenant in context.
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error)

	// GetProductByID retrieves a product with its denormalized stock figures.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves the tenant's products.
	ListProducts(ctx context.Context, includeInactive bool) ([]domain.Product, error)

	// StockIn records an inbound movement, creating a new cost layer. When the
	// movement originates from a purchase it also posts the corresponding
	// journal entry through the GL resolver.
	StockIn(ctx context.Context, req dto.StockInRequest, userID string) (*domain.StockMovement, error)

	// StockOut consumes cost layers oldest first and returns the blended COGS.
	// When quantity on hand is insufficient the whole operation is rejected
	// with apperrors.ErrInsufficientStock and no layer is touched. Sale-driven
	// stock-outs also post the COGS journal entry.
	StockOut(ctx context.Context, req dto.StockOutRequest, userID string) (*domain.StockOutResult, error)

	// GetValuation reports quantity on hand, total FIFO value and per-unit
	// average for one product.
	GetValuation(ctx context.Context, productID string) (*domain.InventoryValuation, error)

	// ListMovements retrieves a product's movement history, newest first.
	ListMovements(ctx context.Context, productID string, limit int) ([]domain.StockMovement, error)
}
