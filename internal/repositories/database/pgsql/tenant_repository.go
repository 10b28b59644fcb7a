package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/bizbooks/bizbooks_backend/internal/models"
	"github.com/bizbooks/bizbooks_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTenantRepository struct {
	BaseRepository
}

// newPgxTenantRepository creates a new repository for tenant data.
func newPgxTenantRepository(pool *pgxpool.Pool) portsrepo.TenantRepositoryFacade {
	return &PgxTenantRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTenantRepository implements portsrepo.TenantRepositoryFacade
var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

// SaveTenant persists a new tenant.
func (r *PgxTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	modelTenant := mapping.ToModelTenant(tenant)
	query := `
		INSERT INTO tenants (tenant_id, name, is_active, deleted_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelTenant.TenantID,
		modelTenant.Name,
		modelTenant.IsActive,
		modelTenant.DeletedAt,
		modelTenant.CreatedAt,
		modelTenant.CreatedBy,
		modelTenant.LastUpdatedAt,
		modelTenant.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "tenant already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert tenant "+modelTenant.TenantID, err)
	}
	return nil
}

// FindTenantByID retrieves a tenant by its unique identifier.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `
		SELECT tenant_id, name, is_active, deleted_at, created_at, created_by, last_updated_at, last_updated_by
		FROM tenants
		WHERE tenant_id = $1;
	`
	var m models.Tenant
	err := r.Pool.QueryRow(ctx, query, tenantID).Scan(
		&m.TenantID,
		&m.Name,
		&m.IsActive,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find tenant by ID "+tenantID, err)
	}

	domainTenant := mapping.ToDomainTenant(m)
	return &domainTenant, nil
}

// ListTenants retrieves all tenants, optionally including soft-deleted ones.
func (r *PgxTenantRepository) ListTenants(ctx context.Context, includeDeleted bool) ([]domain.Tenant, error) {
	query := `
		SELECT tenant_id, name, is_active, deleted_at, created_at, created_by, last_updated_at, last_updated_by
		FROM tenants
	`
	if !includeDeleted {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tenants", err)
	}
	defer rows.Close()

	tenants := []models.Tenant{}
	for rows.Next() {
		var m models.Tenant
		err := rows.Scan(
			&m.TenantID,
			&m.Name,
			&m.IsActive,
			&m.DeletedAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tenant row", err)
		}
		tenants = append(tenants, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tenant rows", err)
	}

	return mapping.ToDomainTenantSlice(tenants), nil
}

// SoftDeleteTenant marks a tenant deleted without removing its rows.
func (r *PgxTenantRepository) SoftDeleteTenant(ctx context.Context, tenantID string, deletedByUserID string) error {
	now := time.Now().UTC()
	query := `
		UPDATE tenants
		SET is_active = FALSE, deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE tenant_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, tenantID, now, deletedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to soft delete tenant "+tenantID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
