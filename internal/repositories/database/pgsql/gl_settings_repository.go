package pgsql

import (
	"context"
	"errors"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxGLSettingsRepository struct {
	BaseRepository
}

// newPgxGLSettingsRepository creates a new repository for the tenant GL mapping.
func newPgxGLSettingsRepository(pool *pgxpool.Pool) portsrepo.GLSettingsRepository {
	return &PgxGLSettingsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxGLSettingsRepository implements portsrepo.GLSettingsRepository
var _ portsrepo.GLSettingsRepository = (*PgxGLSettingsRepository)(nil)

// GetGLSettings retrieves the role->code mapping and flat tax rate for a tenant.
// A tenant with no configured roles at all maps to ErrNotFound.
func (r *PgxGLSettingsRepository) GetGLSettings(ctx context.Context, tenantID string) (*domain.GLSettings, error) {
	roleQuery := `
		SELECT role, account_code, last_updated_at, last_updated_by
		FROM gl_settings
		WHERE tenant_id = $1;
	`
	rows, err := r.Pool.Query(ctx, roleQuery, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query GL settings for tenant "+tenantID, err)
	}
	defer rows.Close()

	settings := domain.GLSettings{
		TenantID:     tenantID,
		AccountCodes: map[domain.GLRole]string{},
	}
	for rows.Next() {
		var role, code string
		if err := rows.Scan(&role, &code, &settings.LastUpdatedAt, &settings.LastUpdatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan GL settings row", err)
		}
		settings.AccountCodes[domain.GLRole(role)] = code
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating GL settings rows", err)
	}
	if len(settings.AccountCodes) == 0 {
		return nil, apperrors.ErrNotFound
	}

	rateQuery := `SELECT rate FROM tenant_tax_rates WHERE tenant_id = $1;`
	err = r.Pool.QueryRow(ctx, rateQuery, tenantID).Scan(&settings.TaxRate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			settings.TaxRate = decimal.Zero
		} else {
			return nil, apperrors.NewAppError(500, "failed to query tax rate for tenant "+tenantID, err)
		}
	}

	return &settings, nil
}

// SaveGLSettings replaces the mapping and tax rate for a tenant in one transaction.
func (r *PgxGLSettingsRepository) SaveGLSettings(ctx context.Context, settings domain.GLSettings) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Replace wholesale: the service passes the full mapping every time.
	if _, err := tx.Exec(ctx, `DELETE FROM gl_settings WHERE tenant_id = $1;`, settings.TenantID); err != nil {
		return apperrors.NewAppError(500, "failed to clear GL settings for tenant "+settings.TenantID, err)
	}

	insertQuery := `
		INSERT INTO gl_settings (tenant_id, role, account_code, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for role, code := range settings.AccountCodes {
		batch.Queue(insertQuery,
			settings.TenantID, string(role), code,
			settings.CreatedAt, settings.CreatedBy, settings.LastUpdatedAt, settings.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert GL settings for tenant "+settings.TenantID, err)
	}

	rateQuery := `
		INSERT INTO tenant_tax_rates (tenant_id, rate, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tenant_id) DO UPDATE SET rate = EXCLUDED.rate,
			last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err = tx.Exec(ctx, rateQuery,
		settings.TenantID, settings.TaxRate,
		settings.CreatedAt, settings.CreatedBy, settings.LastUpdatedAt, settings.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert tax rate for tenant "+settings.TenantID, err)
	}

	return r.Commit(ctx, tx)
}
