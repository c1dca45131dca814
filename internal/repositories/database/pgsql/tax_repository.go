package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/apperrors"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	portsrepo "github.com/LeaseFlowHQ/leaseflow_backend/internal/core/ports/repositories"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/models"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/utils/mapping"
)

type PgxTaxRepository struct {
	BaseRepository
}

// newPgxTaxRepository creates a new repository for tax definitions.
func newPgxTaxRepository(pool *pgxpool.Pool) portsrepo.TaxRepositoryWithTx {
	return &PgxTaxRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TaxRepositoryWithTx = (*PgxTaxRepository)(nil)

// SaveTax persists a new tax definition.
func (r *PgxTaxRepository) SaveTax(ctx context.Context, tax domain.Tax) error {
	modelTax := mapping.ToModelTax(tax)

	query := `
		INSERT INTO taxes (tax_id, name, rate_percent, is_inclusive, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelTax.TaxID,
		modelTax.Name,
		modelTax.RatePercent,
		modelTax.IsInclusive,
		modelTax.CreatedAt,
		modelTax.CreatedBy,
		modelTax.LastUpdatedAt,
		modelTax.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to save tax %s: %w", modelTax.TaxID, err)
	}
	return nil
}

// FindTaxByID retrieves a tax definition by its ID.
func (r *PgxTaxRepository) FindTaxByID(ctx context.Context, taxID string) (*domain.Tax, error) {
	query := `
		SELECT tax_id, name, rate_percent, is_inclusive, created_at, created_by, last_updated_at, last_updated_by
		FROM taxes
		WHERE tax_id = $1;
	`
	var modelTax models.Tax
	err := r.Pool.QueryRow(ctx, query, taxID).Scan(
		&modelTax.TaxID,
		&modelTax.Name,
		&modelTax.RatePercent,
		&modelTax.IsInclusive,
		&modelTax.CreatedAt,
		&modelTax.CreatedBy,
		&modelTax.LastUpdatedAt,
		&modelTax.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tax by id %s: %w", taxID, err)
	}

	domainTax := mapping.ToDomainTax(modelTax)
	return &domainTax, nil
}

// ListTaxes retrieves all tax definitions.
func (r *PgxTaxRepository) ListTaxes(ctx context.Context) ([]domain.Tax, error) {
	query := `
		SELECT tax_id, name, rate_percent, is_inclusive, created_at, created_by, last_updated_at, last_updated_by
		FROM taxes
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query taxes: %w", err)
	}
	defer rows.Close()

	modelTaxes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Tax, error) {
		var tax models.Tax
		err := row.Scan(
			&tax.TaxID,
			&tax.Name,
			&tax.RatePercent,
			&tax.IsInclusive,
			&tax.CreatedAt,
			&tax.CreatedBy,
			&tax.LastUpdatedAt,
			&tax.LastUpdatedBy,
		)
		return tax, err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan taxes: %w", err)
	}

	return mapping.ToDomainTaxSlice(modelTaxes), nil
}
