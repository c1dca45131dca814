package repositories

import (
	"context"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
)

// ReceiptReader defines read operations for receipt data
type ReceiptReader interface {
	// FindReceiptByID retrieves a specific receipt by its ID.
	FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)

	// FindReceiptsByInvoiceID retrieves all receipts recorded against an invoice.
	FindReceiptsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Receipt, error)
}

// ReceiptWriter defines write operations for receipt data
type ReceiptWriter interface {
	// SaveReceipt persists a new receipt.
	SaveReceipt(ctx context.Context, receipt domain.Receipt) error

	// UpdateReceipt persists changes to an existing receipt, conditional on
	// expectedVersion.
	UpdateReceipt(ctx context.Context, receipt domain.Receipt, expectedVersion int64) error
}

// ReceiptRepositoryFacade combines all receipt-related repository interfaces
type ReceiptRepositoryFacade interface {
	ReceiptReader
	ReceiptWriter
}

// ReceiptRepositoryWithTx extends ReceiptRepositoryFacade with transaction capabilities
type ReceiptRepositoryWithTx interface {
	ReceiptRepositoryFacade
	TransactionManager
}
