package services

import (
	"context"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/dto"
)

// CostCenterReaderSvc defines read operations for the cost-center hierarchy.
type CostCenterReaderSvc interface {
	// ResolveOptions returns the selectable cost centers at the given level
	// scoped to the parent chain (empty for level 1). Fails with
	// apperrors.ErrInvalidParent when the chain is incomplete or broken.
	ResolveOptions(ctx context.Context, level int, parentChain []string) ([]domain.CostCenter, error)
}

// CostCenterWriterSvc defines write operations for the cost-center hierarchy.
type CostCenterWriterSvc interface {
	// CreateCostCenter persists a new node, validating its parent.
	CreateCostCenter(ctx context.Context, req dto.CreateCostCenterRequest, creatorUserID string) (*domain.CostCenter, error)
}

// CostCenterSelectorSvc drives selection state for document headers/lines.
type CostCenterSelectorSvc interface {
	// Select applies a selection at the given level, clearing all deeper
	// levels, and verifies the chosen value actually belongs to the parent's
	// child set.
	Select(ctx context.Context, current domain.CostCenterSelection, level int, costCenterID *string) (domain.CostCenterSelection, error)

	// ValidateSelection verifies chain contiguity and parent/child links of
	// a full selection.
	ValidateSelection(ctx context.Context, selection domain.CostCenterSelection) error
}

// CostCenterSvcFacade combines all cost-center service interfaces.
type CostCenterSvcFacade interface {
	CostCenterReaderSvc
	CostCenterWriterSvc
	CostCenterSelectorSvc
}
