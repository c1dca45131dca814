package services

import (
	"context"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices.
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves a specific invoice.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves invoices, optionally filtered to those overdue
	// as of params.AsOf. The overdue filter uses the derived view, not the
	// persisted status.
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error)
}

// InvoiceWriterSvc defines the mutating invoice operations.
type InvoiceWriterSvc interface {
	// CreateInvoice creates a new Draft invoice and runs the recompute
	// pipeline before persisting.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// UpdateInvoiceAmounts edits the monetary input fields of an invoice,
	// recomputes the derived fields and persists. Fails with
	// apperrors.ErrIllegalTransition when the invoice is Paid or Cancelled.
	UpdateInvoiceAmounts(ctx context.Context, invoiceID string, req dto.UpdateInvoiceAmountsRequest, updaterUserID string) (*domain.Invoice, error)

	// TransitionStatus performs an operator-directed status change, enforcing
	// the lifecycle transition table.
	TransitionStatus(ctx context.Context, invoiceID string, newStatus domain.InvoiceStatus, updaterUserID string) (*domain.Invoice, error)

	// AdvanceRecurring generates the next instance of a recurring invoice.
	// The source invoice is never mutated. Fails with
	// apperrors.ErrNotRecurring for non-recurring invoices.
	AdvanceRecurring(ctx context.Context, invoiceID string, creatorUserID string) (*domain.Invoice, error)

	// DeleteInvoice removes an invoice, refusing when it is Paid or has any
	// paid amount recorded.
	DeleteInvoice(ctx context.Context, invoiceID string, deleterUserID string) error
}

// InvoiceComputeSvc exposes the pure recompute entry point for callers that
// hold an unsaved document.
type InvoiceComputeSvc interface {
	// ComputeInvoiceTotals resolves the invoice's tax (when set) and applies
	// the ordered recompute pipeline, returning the derived document without
	// persisting anything.
	ComputeInvoiceTotals(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces.
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
	InvoiceComputeSvc
}
