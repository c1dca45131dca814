package repositories

import (
	"context"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
)

// TaxReader defines read operations for tax data
type TaxReader interface {
	// FindTaxByID retrieves a specific tax definition.
	FindTaxByID(ctx context.Context, taxID string) (*domain.Tax, error)

	// ListTaxes retrieves all tax definitions.
	ListTaxes(ctx context.Context) ([]domain.Tax, error)
}

// TaxWriter defines write operations for tax data
type TaxWriter interface {
	// SaveTax persists a new tax definition.
	SaveTax(ctx context.Context, tax domain.Tax) error
}

// TaxRepositoryFacade combines all tax-related repository interfaces
type TaxRepositoryFacade interface {
	TaxReader
	TaxWriter
}

// TaxRepositoryWithTx extends TaxRepositoryFacade with transaction capabilities
type TaxRepositoryWithTx interface {
	TaxRepositoryFacade
	TransactionManager
}
