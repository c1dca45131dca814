package repositories

import (
	"context"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
)

// CostCenterReader defines read operations for cost center data
type CostCenterReader interface {
	// FindCostCenterByID retrieves a specific cost center node.
	FindCostCenterByID(ctx context.Context, costCenterID string) (*domain.CostCenter, error)

	// FindCostCentersByIDs retrieves several cost center nodes keyed by ID.
	FindCostCentersByIDs(ctx context.Context, costCenterIDs []string) (map[string]domain.CostCenter, error)

	// ListChildren retrieves the cost centers at the given level scoped to a
	// parent. parentID is nil for level 1.
	ListChildren(ctx context.Context, level int, parentID *string) ([]domain.CostCenter, error)
}

// CostCenterWriter defines write operations for cost center data
type CostCenterWriter interface {
	// SaveCostCenter persists a new cost center node.
	SaveCostCenter(ctx context.Context, costCenter domain.CostCenter) error
}

// CostCenterRepositoryFacade combines all cost-center repository interfaces
type CostCenterRepositoryFacade interface {
	CostCenterReader
	CostCenterWriter
}

// CostCenterRepositoryWithTx extends CostCenterRepositoryFacade with transaction capabilities
type CostCenterRepositoryWithTx interface {
	CostCenterRepositoryFacade
	TransactionManager
}
