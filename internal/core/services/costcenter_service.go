package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/apperrors"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	portsrepo "github.com/LeaseFlowHQ/leaseflow_backend/internal/core/ports/repositories"
	portssvc "github.com/LeaseFlowHQ/leaseflow_backend/internal/core/ports/services"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/dto"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/middleware"
)

// costCenterService enforces the 4-level parent-dependency rules of the
// cost-center hierarchy.
type costCenterService struct {
	costCenterRepo portsrepo.CostCenterRepositoryWithTx
}

// NewCostCenterService creates a new CostCenterService.
func NewCostCenterService(costCenterRepo portsrepo.CostCenterRepositoryWithTx) portssvc.CostCenterSvcFacade {
	return &costCenterService{costCenterRepo: costCenterRepo}
}

var _ portssvc.CostCenterSvcFacade = (*costCenterService)(nil)

// CreateCostCenter persists a new hierarchy node after validating its parent.
func (s *costCenterService) CreateCostCenter(ctx context.Context, req dto.CreateCostCenterRequest, creatorUserID string) (*domain.CostCenter, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Level == 1 {
		if req.ParentID != nil {
			return nil, fmt.Errorf("%w: level 1 cost centers cannot have a parent", apperrors.ErrValidation)
		}
	} else {
		if req.ParentID == nil {
			return nil, fmt.Errorf("%w: level %d requires a parent", apperrors.ErrInvalidParent, req.Level)
		}
		parent, err := s.costCenterRepo.FindCostCenterByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent %s does not exist", apperrors.ErrInvalidParent, *req.ParentID)
			}
			return nil, fmt.Errorf("failed to look up parent cost center: %w", err)
		}
		if parent.Level != req.Level-1 {
			return nil, fmt.Errorf("%w: parent %s is level %d, expected level %d", apperrors.ErrInvalidParent, parent.CostCenterID, parent.Level, req.Level-1)
		}
	}

	now := time.Now().UTC()
	costCenter := domain.CostCenter{
		CostCenterID: uuid.NewString(),
		ParentID:     req.ParentID,
		Level:        req.Level,
		Code:         req.Code,
		Name:         req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.costCenterRepo.SaveCostCenter(ctx, costCenter); err != nil {
		logger.Error("Failed to save cost center", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create cost center: %w", err)
	}

	return &costCenter, nil
}

// ResolveOptions returns the selectable cost centers at a level given its
// parent chain. Level 1 takes an empty chain; every deeper level needs the
// full chain above it, in order.
func (s *costCenterService) ResolveOptions(ctx context.Context, level int, parentChain []string) ([]domain.CostCenter, error) {
	if level < 1 || level > domain.CostCenterMaxLevel {
		return nil, fmt.Errorf("%w: level must be 1..%d", apperrors.ErrValidation, domain.CostCenterMaxLevel)
	}
	if len(parentChain) != level-1 {
		return nil, fmt.Errorf("%w: level %d requires %d parent selections, got %d", apperrors.ErrInvalidParent, level, level-1, len(parentChain))
	}

	if err := s.verifyChain(ctx, parentChain); err != nil {
		return nil, err
	}

	var parentID *string
	if len(parentChain) > 0 {
		parentID = &parentChain[len(parentChain)-1]
	}

	options, err := s.costCenterRepo.ListChildren(ctx, level, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost centers at level %d: %w", level, err)
	}
	return options, nil
}

// Select applies a selection at the given level. All deeper levels are
// cleared, and the chosen value must belong to the child set of the level's
// parent.
func (s *costCenterService) Select(ctx context.Context, current domain.CostCenterSelection, level int, costCenterID *string) (domain.CostCenterSelection, error) {
	next, err := current.Select(level, costCenterID)
	if err != nil {
		return current, fmt.Errorf("%w: %s", apperrors.ErrInvalidParent, err.Error())
	}
	if costCenterID == nil {
		return next, nil
	}

	node, err := s.costCenterRepo.FindCostCenterByID(ctx, *costCenterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return current, fmt.Errorf("%w: cost center %s does not exist", apperrors.ErrInvalidParent, *costCenterID)
		}
		return current, fmt.Errorf("failed to look up cost center: %w", err)
	}
	if node.Level != level {
		return current, fmt.Errorf("%w: %s is a level %d cost center, selected at level %d", apperrors.ErrInvalidParent, node.CostCenterID, node.Level, level)
	}
	if level > 1 {
		expectedParent := current.LevelID(level - 1)
		if node.ParentID == nil || expectedParent == nil || *node.ParentID != *expectedParent {
			return current, fmt.Errorf("%w: %s is not a child of the selected level %d cost center", apperrors.ErrInvalidParent, node.CostCenterID, level-1)
		}
	}

	return next, nil
}

// ValidateSelection checks chain contiguity and that every selected node
// exists at its level under the selected parent.
func (s *costCenterService) ValidateSelection(ctx context.Context, selection domain.CostCenterSelection) error {
	if selection.IsEmpty() {
		return nil
	}
	if err := selection.Validate(); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidParent, err.Error())
	}

	chain := selection.Chain()
	return s.verifyChain(ctx, chain)
}

// verifyChain checks that chain[0] is a level 1 node and each subsequent
// entry is the child of the one before it.
func (s *costCenterService) verifyChain(ctx context.Context, chain []string) error {
	if len(chain) == 0 {
		return nil
	}

	nodes, err := s.costCenterRepo.FindCostCentersByIDs(ctx, chain)
	if err != nil {
		return fmt.Errorf("failed to load cost center chain: %w", err)
	}

	for i, id := range chain {
		node, ok := nodes[id]
		if !ok {
			return fmt.Errorf("%w: cost center %s does not exist", apperrors.ErrInvalidParent, id)
		}
		if node.Level != i+1 {
			return fmt.Errorf("%w: %s is a level %d cost center, expected level %d", apperrors.ErrInvalidParent, id, node.Level, i+1)
		}
		if i > 0 {
			if node.ParentID == nil || *node.ParentID != chain[i-1] {
				return fmt.Errorf("%w: %s is not a child of %s", apperrors.ErrInvalidParent, id, chain[i-1])
			}
		}
	}
	return nil
}

// CopyCostCentersToLines applies a header selection to every line that has no
// explicit selection of its own. Lines with any level set keep their full
// chain untouched.
func CopyCostCentersToLines(header domain.CostCenterSelection, lines []domain.VoucherLine) []domain.VoucherLine {
	out := make([]domain.VoucherLine, len(lines))
	for i, line := range lines {
		line.CostCenters = line.CostCenters.MergeDefaults(header)
		out[i] = line
	}
	return out
}
