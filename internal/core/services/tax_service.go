package services

import (
	"context"
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

// taxService manages tax definitions referenced by invoices and voucher lines.
type taxService struct {
	taxRepo portsrepo.TaxRepositoryWithTx
}

// NewTaxService creates a new TaxService.
func NewTaxService(taxRepo portsrepo.TaxRepositoryWithTx) portssvc.TaxSvcFacade {
	return &taxService{taxRepo: taxRepo}
}

var _ portssvc.TaxSvcFacade = (*taxService)(nil)

// CreateTax persists a new tax definition. Negative rates are rejected.
func (s *taxService) CreateTax(ctx context.Context, req dto.CreateTaxRequest, creatorUserID string) (*domain.Tax, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.RatePercent.IsNegative() {
		return nil, fmt.Errorf("%w: rate %s is negative", apperrors.ErrInvalidRate, req.RatePercent.String())
	}

	now := time.Now().UTC()
	tax := domain.Tax{
		TaxID:       uuid.NewString(),
		Name:        req.Name,
		RatePercent: req.RatePercent,
		IsInclusive: req.IsInclusive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.taxRepo.SaveTax(ctx, tax); err != nil {
		logger.Error("Failed to save tax", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create tax: %w", err)
	}

	return &tax, nil
}

// GetTaxByID retrieves a specific tax definition.
func (s *taxService) GetTaxByID(ctx context.Context, taxID string) (*domain.Tax, error) {
	tax, err := s.taxRepo.FindTaxByID(ctx, taxID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tax %s: %w", taxID, err)
	}
	return tax, nil
}

// ListTaxes retrieves all tax definitions.
func (s *taxService) ListTaxes(ctx context.Context) ([]domain.Tax, error) {
	taxes, err := s.taxRepo.ListTaxes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list taxes: %w", err)
	}
	return taxes, nil
}
