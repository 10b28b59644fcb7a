package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// inventoryService maintains FIFO cost layers. Inbound movements append layers;
// outbound movements consume them oldest first under row locks so concurrent
// stock-outs never double-spend a layer.
type inventoryService struct {
	BaseService
	inventoryRepo portsrepo.InventoryRepositoryFacade
	resolverSvc   portssvc.GLResolverSvc
	postingSvc    portssvc.PostingSvcFacade
}

// NewInventoryService creates a new InventorySvcFacade.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade, resolverSvc portssvc.GLResolverSvc, postingSvc portssvc.PostingSvcFacade) portssvc.InventorySvcFacade {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		resolverSvc:   resolverSvc,
		postingSvc:    postingSvc,
	}
}

// Ensure inventoryService implements the portssvc.InventorySvcFacade interface
var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// CreateProduct registers a product with zero stock.
func (s *inventoryService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:    uuid.NewString(),
		TenantID:     tenant.TenantID,
		SKU:          req.SKU,
		Name:         req.Name,
		CurrentStock: decimal.Zero,
		AverageCost:  decimal.Zero,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.inventoryRepo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Product created", slog.String("product_id", product.ProductID), slog.String("sku", product.SKU))
	return &product, nil
}

func (s *inventoryService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.inventoryRepo.FindProductByID(ctx, tenant.TenantID, productID)
}

func (s *inventoryService) ListProducts(ctx context.Context, includeInactive bool) ([]domain.Product, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.inventoryRepo.ListProducts(ctx, tenant.TenantID, includeInactive)
}

// StockIn appends a cost layer and refreshes the product's denormalized figures.
// The GL posting runs after the inventory transaction commits; a posting failure
// is surfaced with the committed movement's ID and leaves the layer in place.
func (s *inventoryService) StockIn(ctx context.Context, req dto.StockInRequest, userID string) (*domain.StockMovement, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	if !req.MovementType.IsInbound() {
		return nil, fmt.Errorf("%w: %s is not an inbound movement type", apperrors.ErrValidation, req.MovementType)
	}
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	if req.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: unit cost cannot be negative", apperrors.ErrValidation)
	}

	tx, err := s.inventoryRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.inventoryRepo.Rollback(ctx, tx)

	product, err := s.inventoryRepo.FindProductForUpdate(ctx, tx, tenant.TenantID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product %s is inactive", apperrors.ErrValidation, product.SKU)
	}

	now := time.Now().UTC()
	totalCost := req.Quantity.Mul(req.UnitCost).Round(2)
	movement := domain.StockMovement{
		MovementID:      uuid.NewString(),
		TenantID:        tenant.TenantID,
		ProductID:       req.ProductID,
		MovementType:    req.MovementType,
		Quantity:        req.Quantity,
		UnitCost:        req.UnitCost,
		TotalCost:       totalCost,
		BalanceQuantity: req.Quantity,
		Reference:       req.Reference,
		MovementDate:    req.MovementDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.inventoryRepo.InsertMovementInTx(ctx, tx, movement); err != nil {
		return nil, err
	}

	// Moving weighted average over the incoming layer, display only.
	oldValue := product.CurrentStock.Mul(product.AverageCost)
	newStock := product.CurrentStock.Add(req.Quantity)
	product.AverageCost = oldValue.Add(totalCost).Div(newStock).Round(4)
	product.CurrentStock = newStock
	product.LastUpdatedAt = now
	product.LastUpdatedBy = userID
	if err := s.inventoryRepo.UpdateProductStockInTx(ctx, tx, *product); err != nil {
		return nil, err
	}

	if err := s.inventoryRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	if req.PostToGL && req.MovementType == domain.MovementPurchase {
		if err := s.postPurchase(ctx, &movement, product.Name, userID); err != nil {
			s.LogError(ctx, err, "Stock movement recorded but purchase entry failed",
				slog.String("movement_id", movement.MovementID))
			return nil, fmt.Errorf("movement %s recorded but GL posting failed: %w", movement.MovementID, err)
		}
	}

	s.LogInfo(ctx, "Stock in recorded",
		slog.String("movement_id", movement.MovementID),
		slog.String("product_id", req.ProductID),
		slog.String("quantity", req.Quantity.String()))
	return &movement, nil
}

// postPurchase posts the inventory purchase entry through the resolver.
func (s *inventoryService) postPurchase(ctx context.Context, movement *domain.StockMovement, productName, userID string) error {
	desc := fmt.Sprintf("Purchase of %s x %s", movement.Quantity.String(), productName)
	lines, err := s.resolverSvc.Resolve(ctx, dto.PostingInput{
		ReferenceType: domain.RefPurchaseInvoice,
		ReferenceID:   &movement.MovementID,
		GrossAmount:   movement.TotalCost,
		Description:   desc,
	})
	if err != nil {
		return err
	}
	_, err = s.postingSvc.PostResolved(ctx, dto.ResolvedPostingInput{
		EntryDate:         movement.MovementDate,
		ReferenceType:     domain.RefPurchaseInvoice,
		ReferenceID:       &movement.MovementID,
		Description:       desc,
		Lines:             lines,
		IsSystemGenerated: true,
	}, userID)
	return err
}

// postCOGS posts the cost-of-goods entry for a sale stock-out.
func (s *inventoryService) postCOGS(ctx context.Context, movement *domain.StockMovement, productName string, quantity, cogs decimal.Decimal, userID string) error {
	desc := fmt.Sprintf("COGS for %s x %s", quantity.String(), productName)
	lines, err := s.resolverSvc.BuildCOGSLines(ctx, cogs, desc)
	if err != nil {
		return err
	}
	_, err = s.postingSvc.PostResolved(ctx, dto.ResolvedPostingInput{
		EntryDate:         movement.MovementDate,
		ReferenceType:     domain.RefAdjustment,
		ReferenceID:       &movement.MovementID,
		Description:       desc,
		Lines:             lines,
		IsSystemGenerated: true,
	}, userID)
	return err
}

// StockOut consumes layers oldest first and records the blended COGS. Either the
// full quantity is available or nothing moves. The COGS entry is posted after
// the inventory transaction commits; a posting failure is surfaced with the
// committed movement's ID and leaves the consumption in place.
func (s *inventoryService) StockOut(ctx context.Context, req dto.StockOutRequest, userID string) (*domain.StockOutResult, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	if req.MovementType.IsInbound() || !req.MovementType.Valid() {
		return nil, fmt.Errorf("%w: %s is not an outbound movement type", apperrors.ErrValidation, req.MovementType)
	}
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}

	tx, err := s.inventoryRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.inventoryRepo.Rollback(ctx, tx)

	// Product lock first, then layer locks, always in this order.
	product, err := s.inventoryRepo.FindProductForUpdate(ctx, tx, tenant.TenantID, req.ProductID)
	if err != nil {
		return nil, err
	}

	layers, err := s.inventoryRepo.FindOpenLayersForUpdate(ctx, tx, tenant.TenantID, req.ProductID)
	if err != nil {
		return nil, err
	}

	available := decimal.Zero
	for _, layer := range layers {
		available = available.Add(layer.BalanceQuantity)
	}
	if available.LessThan(req.Quantity) {
		return nil, fmt.Errorf("%w: requested %s, available %s for product %s",
			apperrors.ErrInsufficientStock, req.Quantity.String(), available.String(), product.SKU)
	}

	remaining := req.Quantity
	cogs := decimal.Zero
	consumed := make([]domain.LayerConsumption, 0, len(layers))
	for _, layer := range layers {
		if remaining.IsZero() {
			break
		}
		take := decimal.Min(layer.BalanceQuantity, remaining)
		cost := take.Mul(layer.UnitCost).Round(2)
		if err := s.inventoryRepo.DecrementLayerBalanceInTx(ctx, tx, layer.MovementID, take); err != nil {
			return nil, err
		}
		consumed = append(consumed, domain.LayerConsumption{
			MovementID: layer.MovementID,
			Quantity:   take,
			UnitCost:   layer.UnitCost,
			Cost:       cost,
		})
		cogs = cogs.Add(cost)
		remaining = remaining.Sub(take)
	}

	now := time.Now().UTC()
	outMovement := domain.StockMovement{
		MovementID:      uuid.NewString(),
		TenantID:        tenant.TenantID,
		ProductID:       req.ProductID,
		MovementType:    req.MovementType,
		Quantity:        req.Quantity.Neg(),
		UnitCost:        cogs.Div(req.Quantity).Round(4),
		TotalCost:       cogs,
		BalanceQuantity: decimal.Zero,
		Reference:       req.Reference,
		MovementDate:    req.MovementDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.inventoryRepo.InsertMovementInTx(ctx, tx, outMovement); err != nil {
		return nil, err
	}

	product.CurrentStock = product.CurrentStock.Sub(req.Quantity)
	if product.CurrentStock.IsZero() {
		product.AverageCost = decimal.Zero
	}
	product.LastUpdatedAt = now
	product.LastUpdatedBy = userID
	if err := s.inventoryRepo.UpdateProductStockInTx(ctx, tx, *product); err != nil {
		return nil, err
	}

	if err := s.inventoryRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	result := &domain.StockOutResult{
		MovementID: outMovement.MovementID,
		COGS:       cogs,
		Consumed:   consumed,
	}

	if req.PostToGL && req.MovementType == domain.MovementSale && cogs.IsPositive() {
		if err := s.postCOGS(ctx, &outMovement, product.Name, req.Quantity, cogs, userID); err != nil {
			s.LogError(ctx, err, "Stock movement recorded but COGS entry failed",
				slog.String("movement_id", outMovement.MovementID))
			return nil, fmt.Errorf("movement %s recorded but COGS posting failed: %w", outMovement.MovementID, err)
		}
	}

	s.LogInfo(ctx, "Stock out recorded",
		slog.String("movement_id", outMovement.MovementID),
		slog.String("product_id", req.ProductID),
		slog.String("cogs", cogs.String()))
	return result, nil
}

// GetValuation sums the unconsumed layers. AverageCost is zero with no stock.
func (s *inventoryService) GetValuation(ctx context.Context, productID string) (*domain.InventoryValuation, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.inventoryRepo.FindProductByID(ctx, tenant.TenantID, productID); err != nil {
		return nil, err
	}

	layers, err := s.inventoryRepo.FindOpenLayers(ctx, tenant.TenantID, productID)
	if err != nil {
		return nil, err
	}

	quantity := decimal.Zero
	value := decimal.Zero
	for _, layer := range layers {
		quantity = quantity.Add(layer.BalanceQuantity)
		value = value.Add(layer.BalanceQuantity.Mul(layer.UnitCost))
	}
	value = value.Round(2)

	averageCost := decimal.Zero
	if quantity.IsPositive() {
		averageCost = value.Div(quantity).Round(4)
	}
	return &domain.InventoryValuation{
		ProductID:   productID,
		Quantity:    quantity,
		Value:       value,
		AverageCost: averageCost,
	}, nil
}

// ListMovements retrieves a product's movement history, newest first.
func (s *inventoryService) ListMovements(ctx context.Context, productID string, limit int) ([]domain.StockMovement, error) {
	tenant, err := s.Tenant(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.inventoryRepo.FindProductByID(ctx, tenant.TenantID, productID); err != nil {
		return nil, err
	}
	return s.inventoryRepo.ListMovements(ctx, tenant.TenantID, productID, limit)
}
