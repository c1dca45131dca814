package services

import (
	"context"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/dto"
)

// TaxReaderSvc defines read operations for tax definitions.
type TaxReaderSvc interface {
	// GetTaxByID retrieves a specific tax definition.
	GetTaxByID(ctx context.Context, taxID string) (*domain.Tax, error)

	// ListTaxes retrieves all tax definitions.
	ListTaxes(ctx context.Context) ([]domain.Tax, error)
}

// TaxWriterSvc defines write operations for tax definitions.
type TaxWriterSvc interface {
	// CreateTax persists a new tax definition.
	CreateTax(ctx context.Context, req dto.CreateTaxRequest, creatorUserID string) (*domain.Tax, error)
}

// TaxSvcFacade combines all tax-related service interfaces.
type TaxSvcFacade interface {
	TaxReaderSvc
	TaxWriterSvc
}
