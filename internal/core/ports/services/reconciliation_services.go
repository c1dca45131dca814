package services

import (
	"context"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/dto"
)

// ReceiptSvc defines receipt-recording operations.
type ReceiptSvc interface {
	// AddReceipt records an incoming payment against an invoice.
	AddReceipt(ctx context.Context, invoiceID string, req dto.CreateReceiptRequest, creatorUserID string) (*domain.Receipt, error)

	// ListReceipts retrieves the receipts recorded against an invoice.
	ListReceipts(ctx context.Context, invoiceID string) ([]domain.Receipt, error)

	// UpdateReceiptStatus moves a receipt through its payment states. The
	// received amount of a cleared receipt is immutable.
	UpdateReceiptStatus(ctx context.Context, receiptID string, newStatus domain.ReceiptStatus, updaterUserID string) (*domain.Receipt, error)
}

// ReconcileSvc applies an invoice's receipts to its balance.
type ReconcileSvc interface {
	// ReconcileInvoice loads the invoice's receipts, aggregates settled and
	// pending amounts, updates PaidAmount/BalanceAmount and the automatic
	// Partial/Paid status, persists, and returns the summary. Idempotent for
	// an unchanged receipt set.
	ReconcileInvoice(ctx context.Context, invoiceID string, updaterUserID string) (*domain.Invoice, *domain.PaymentSummary, error)
}

// ReconciliationSvcFacade combines receipt and reconciliation operations.
type ReconciliationSvcFacade interface {
	ReceiptSvc
	ReconcileSvc
}
