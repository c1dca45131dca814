package repositories

import (
	"context"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves a specific invoice by its ID.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves invoices ordered by invoice date, newest first.
	ListInvoices(ctx context.Context, limit int, offset int) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoice persists changes to an existing invoice. The update is
	// conditional on expectedVersion matching the stored row version and
	// returns apperrors.ErrStaleVersion on a mismatch.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice, expectedVersion int64) error

	// DeleteInvoice removes an invoice. Lifecycle guards are enforced by the
	// service layer before this is called.
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction capabilities
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}
