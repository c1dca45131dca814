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

type PgxCostCenterRepository struct {
	BaseRepository
}

// newPgxCostCenterRepository creates a new repository for the cost-center hierarchy.
func newPgxCostCenterRepository(pool *pgxpool.Pool) portsrepo.CostCenterRepositoryWithTx {
	return &PgxCostCenterRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CostCenterRepositoryWithTx = (*PgxCostCenterRepository)(nil)

func scanCostCenterRow(row pgx.CollectableRow) (models.CostCenter, error) {
	var cc models.CostCenter
	err := row.Scan(
		&cc.CostCenterID,
		&cc.ParentID,
		&cc.Level,
		&cc.Code,
		&cc.Name,
		&cc.CreatedAt,
		&cc.CreatedBy,
		&cc.LastUpdatedAt,
		&cc.LastUpdatedBy,
	)
	return cc, err
}

// SaveCostCenter persists a new cost center node.
func (r *PgxCostCenterRepository) SaveCostCenter(ctx context.Context, costCenter domain.CostCenter) error {
	modelCC := mapping.ToModelCostCenter(costCenter)

	query := `
		INSERT INTO cost_centers (cost_center_id, parent_id, level, code, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelCC.CostCenterID,
		modelCC.ParentID,
		modelCC.Level,
		modelCC.Code,
		modelCC.Name,
		modelCC.CreatedAt,
		modelCC.CreatedBy,
		modelCC.LastUpdatedAt,
		modelCC.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to save cost center %s: %w", modelCC.CostCenterID, err)
	}
	return nil
}

// FindCostCenterByID retrieves a cost center node by its ID.
func (r *PgxCostCenterRepository) FindCostCenterByID(ctx context.Context, costCenterID string) (*domain.CostCenter, error) {
	query := `
		SELECT cost_center_id, parent_id, level, code, name, created_at, created_by, last_updated_at, last_updated_by
		FROM cost_centers
		WHERE cost_center_id = $1;
	`
	var modelCC models.CostCenter
	err := r.Pool.QueryRow(ctx, query, costCenterID).Scan(
		&modelCC.CostCenterID,
		&modelCC.ParentID,
		&modelCC.Level,
		&modelCC.Code,
		&modelCC.Name,
		&modelCC.CreatedAt,
		&modelCC.CreatedBy,
		&modelCC.LastUpdatedAt,
		&modelCC.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cost center by id %s: %w", costCenterID, err)
	}

	domainCC := mapping.ToDomainCostCenter(modelCC)
	return &domainCC, nil
}

// FindCostCentersByIDs retrieves several cost center nodes keyed by ID.
// Missing IDs are simply absent from the result map.
func (r *PgxCostCenterRepository) FindCostCentersByIDs(ctx context.Context, costCenterIDs []string) (map[string]domain.CostCenter, error) {
	if len(costCenterIDs) == 0 {
		return map[string]domain.CostCenter{}, nil
	}

	query := `
		SELECT cost_center_id, parent_id, level, code, name, created_at, created_by, last_updated_at, last_updated_by
		FROM cost_centers
		WHERE cost_center_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, costCenterIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost centers: %w", err)
	}
	defer rows.Close()

	modelCCs, err := pgx.CollectRows(rows, scanCostCenterRow)
	if err != nil {
		return nil, fmt.Errorf("failed to scan cost centers: %w", err)
	}

	result := make(map[string]domain.CostCenter, len(modelCCs))
	for _, m := range modelCCs {
		result[m.CostCenterID] = mapping.ToDomainCostCenter(m)
	}
	return result, nil
}

// ListChildren retrieves the cost centers at a level scoped to a parent.
func (r *PgxCostCenterRepository) ListChildren(ctx context.Context, level int, parentID *string) ([]domain.CostCenter, error) {
	query := `
		SELECT cost_center_id, parent_id, level, code, name, created_at, created_by, last_updated_at, last_updated_by
		FROM cost_centers
		WHERE level = $1 AND parent_id IS NOT DISTINCT FROM $2
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, level, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost centers at level %d: %w", level, err)
	}
	defer rows.Close()

	modelCCs, err := pgx.CollectRows(rows, scanCostCenterRow)
	if err != nil {
		return nil, fmt.Errorf("failed to scan cost centers: %w", err)
	}

	return mapping.ToDomainCostCenterSlice(modelCCs), nil
}
