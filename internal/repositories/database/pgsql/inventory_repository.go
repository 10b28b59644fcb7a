package pgsql

import (
	"context"
	"errors"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/bizbooks/bizbooks_backend/internal/models"
	"github.com/bizbooks/bizbooks_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const productColumns = `product_id, tenant_id, sku, name, current_stock, average_cost, is_active, created_at, created_by, last_updated_at, last_updated_by`

const movementColumns = `movement_id, tenant_id, product_id, movement_type, quantity, unit_cost, total_cost, balance_quantity, reference, movement_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for product and stock data.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxInventoryRepository implements portsrepo.InventoryRepositoryFacade
var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

func scanProduct(row pgx.Row) (*models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID, &m.TenantID, &m.SKU, &m.Name, &m.CurrentStock, &m.AverageCost, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanMovement(row pgx.Row) (*models.StockMovement, error) {
	var m models.StockMovement
	err := row.Scan(
		&m.MovementID, &m.TenantID, &m.ProductID, &m.MovementType, &m.Quantity,
		&m.UnitCost, &m.TotalCost, &m.BalanceQuantity, &m.Reference, &m.MovementDate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveProduct persists a new product.
func (r *PgxInventoryRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProductID, m.TenantID, m.SKU, m.Name, m.CurrentStock, m.AverageCost, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "SKU "+m.SKU+" already exists for tenant", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert product "+m.ProductID, err)
	}
	return nil
}

// UpdateProduct updates mutable product fields.
func (r *PgxInventoryRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		UPDATE products
		SET name = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE tenant_id = $1 AND product_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TenantID, m.ProductID, m.Name, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update product "+m.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindProductByID retrieves a product by ID, scoped to the tenant.
func (r *PgxInventoryRepository) FindProductByID(ctx context.Context, tenantID, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1 AND product_id = $2;`
	m, err := scanProduct(r.Pool.QueryRow(ctx, query, tenantID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find product by ID "+productID, err)
	}
	product := mapping.ToDomainProduct(*m)
	return &product, nil
}

// ListProducts retrieves all products for a tenant, ordered by SKU.
func (r *PgxInventoryRepository) ListProducts(ctx context.Context, tenantID string, includeInactive bool) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY sku;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products for tenant "+tenantID, err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product row", err)
		}
		products = append(products, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating product rows", err)
	}

	return mapping.ToDomainProductSlice(products), nil
}

// openLayersQuery selects unconsumed inbound layers in FIFO (arrival) order.
// movement_date orders layers; created_at breaks same-day ties by insertion.
const openLayersQuery = `
	SELECT ` + movementColumns + `
	FROM stock_movements
	WHERE tenant_id = $1 AND product_id = $2 AND quantity > 0 AND balance_quantity > 0
	ORDER BY movement_date, created_at`

// FindOpenLayers retrieves unconsumed inbound layers for a product in FIFO order.
func (r *PgxInventoryRepository) FindOpenLayers(ctx context.Context, tenantID, productID string) ([]domain.StockMovement, error) {
	rows, err := r.Pool.Query(ctx, openLayersQuery+";", tenantID, productID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open layers for product "+productID, err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// FindOpenLayersForUpdate locks and returns unconsumed layers in FIFO order.
// The row locks serialize concurrent stock-outs on the same product.
func (r *PgxInventoryRepository) FindOpenLayersForUpdate(ctx context.Context, tx pgx.Tx, tenantID, productID string) ([]domain.StockMovement, error) {
	rows, err := tx.Query(ctx, openLayersQuery+` FOR UPDATE;`, tenantID, productID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock open layers for product "+productID, err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// FindProductForUpdate locks and returns the product row.
func (r *PgxInventoryRepository) FindProductForUpdate(ctx context.Context, tx pgx.Tx, tenantID, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1 AND product_id = $2 FOR UPDATE;`
	m, err := scanProduct(tx.QueryRow(ctx, query, tenantID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock product "+productID, err)
	}
	product := mapping.ToDomainProduct(*m)
	return &product, nil
}

// InsertMovementInTx persists one stock movement row.
func (r *PgxInventoryRepository) InsertMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error {
	m := mapping.ToModelStockMovement(movement)
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.MovementID, m.TenantID, m.ProductID, m.MovementType, m.Quantity,
		m.UnitCost, m.TotalCost, m.BalanceQuantity, m.Reference, m.MovementDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert stock movement "+m.MovementID, err)
	}
	return nil
}

// DecrementLayerBalanceInTx subtracts qty from a layer's balance_quantity. The
// guard predicate refuses to drive the balance negative; the CHECK constraint
// is the backstop.
func (r *PgxInventoryRepository) DecrementLayerBalanceInTx(ctx context.Context, tx pgx.Tx, movementID string, qty decimal.Decimal) error {
	query := `
		UPDATE stock_movements
		SET balance_quantity = balance_quantity - $2
		WHERE movement_id = $1 AND balance_quantity >= $2;
	`
	tag, err := tx.Exec(ctx, query, movementID, qty)
	if err != nil {
		return apperrors.NewAppError(500, "failed to decrement layer "+movementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "layer "+movementID+" has less than requested quantity", apperrors.ErrInsufficientStock)
	}
	return nil
}

// UpdateProductStockInTx writes the product's denormalized stock and average cost.
func (r *PgxInventoryRepository) UpdateProductStockInTx(ctx context.Context, tx pgx.Tx, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		UPDATE products
		SET current_stock = $3, average_cost = $4, last_updated_at = $5, last_updated_by = $6
		WHERE tenant_id = $1 AND product_id = $2;
	`
	tag, err := tx.Exec(ctx, query,
		m.TenantID, m.ProductID, m.CurrentStock, m.AverageCost, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update stock for product "+m.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListMovements retrieves movements for a product, newest first.
func (r *PgxInventoryRepository) ListMovements(ctx context.Context, tenantID, productID string, limit int) ([]domain.StockMovement, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE tenant_id = $1 AND product_id = $2
		ORDER BY movement_date DESC, created_at DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, productID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query movements for product "+productID, err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]domain.StockMovement, error) {
	movements := []models.StockMovement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan stock movement row", err)
		}
		movements = append(movements, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating stock movement rows", err)
	}
	return mapping.ToDomainStockMovementSlice(movements), nil
}
