package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/apperrors"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	portsrepo "github.com/LeaseFlowHQ/leaseflow_backend/internal/core/ports/repositories"
	portssvc "github.com/LeaseFlowHQ/leaseflow_backend/internal/core/ports/services"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/dto"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/middleware"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/utils/fincalc"
)

var (
	ErrReceiptNotPositive  = errors.New("receipt amount must be positive")
	ErrReceiptOnCancelled  = errors.New("receipts cannot be recorded against a cancelled invoice")
	ErrClearedAmountLocked = errors.New("a cleared receipt's amount is immutable")
)

// reconciliationService applies receipts against invoices and keeps the
// settled/pending aggregates and the automatic Partial/Paid status in step.
type reconciliationService struct {
	invoiceRepo portsrepo.InvoiceRepositoryWithTx
	receiptRepo portsrepo.ReceiptRepositoryWithTx
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(invoiceRepo portsrepo.InvoiceRepositoryWithTx, receiptRepo portsrepo.ReceiptRepositoryWithTx) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		invoiceRepo: invoiceRepo,
		receiptRepo: receiptRepo,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// SummarizeReceipts aggregates a receipt set against an invoice.
//
// Clearing policy (applied uniformly, never per caller): only CLEARED
// receipts settle the invoice and feed PaidAmount; RECEIVED and DEPOSITED
// receipts accumulate into PendingAmount without touching the balance;
// CANCELLED, BOUNCED and REVERSED receipts are ignored entirely.
//
// Receipts are de-duplicated by ID so re-applying the same set can never
// double-count.
func SummarizeReceipts(invoice domain.Invoice, receipts []domain.Receipt) (domain.PaymentSummary, error) {
	currencyCode := invoice.TotalAmount.CurrencyCode()
	precision := invoice.TotalAmount.Precision()

	totalPaid := domain.ZeroMoney(currencyCode, precision)
	pending := domain.ZeroMoney(currencyCode, precision)
	paidCount := 0
	pendingCount := 0

	seen := make(map[string]struct{}, len(receipts))
	for _, receipt := range receipts {
		if _, dup := seen[receipt.ReceiptID]; dup {
			continue
		}
		seen[receipt.ReceiptID] = struct{}{}

		if receipt.IsExcluded() {
			continue
		}

		var err error
		switch {
		case receipt.IsSettled():
			totalPaid, err = totalPaid.Add(receipt.ReceivedAmount)
			paidCount++
		case receipt.IsPending():
			pending, err = pending.Add(receipt.ReceivedAmount)
			pendingCount++
		}
		if err != nil {
			return domain.PaymentSummary{}, fmt.Errorf("%w: receipt %s: %s", apperrors.ErrValidation, receipt.ReceiptID, err.Error())
		}
	}

	progress := decimal.Zero
	if invoice.TotalAmount.IsPositive() {
		progress = totalPaid.Decimal().Div(invoice.TotalAmount.Decimal()).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return domain.PaymentSummary{
		TotalPaid:              totalPaid,
		PendingAmount:          pending,
		ReceiptCount:           paidCount,
		PendingCount:           pendingCount,
		PaymentProgressPercent: progress,
	}, nil
}

// ApplyReceipts reconciles a receipt set into the invoice: PaidAmount takes
// the settled total, the balance is re-derived, and the automatic
// Partial/Paid status applied. Pure; the inputs are not mutated. Cancelled
// invoices keep their status untouched.
func ApplyReceipts(invoice domain.Invoice, receipts []domain.Receipt) (domain.Invoice, domain.PaymentSummary, error) {
	summary, err := SummarizeReceipts(invoice, receipts)
	if err != nil {
		return domain.Invoice{}, domain.PaymentSummary{}, err
	}

	invoice.PaidAmount = summary.TotalPaid
	invoice, err = fincalc.RecomputeInvoice(invoice, nil)
	if err != nil {
		return domain.Invoice{}, domain.PaymentSummary{}, err
	}

	if invoice.Status != domain.InvoiceCancelled {
		paidVsTotal := invoice.PaidAmount.MinorUnits()
		total := invoice.TotalAmount.MinorUnits()
		switch {
		case total > 0 && paidVsTotal >= total:
			invoice.Status = domain.InvoicePaid
		case paidVsTotal > 0 && paidVsTotal < total:
			invoice.Status = domain.InvoicePartial
		case paidVsTotal == 0 && (invoice.Status == domain.InvoicePartial || invoice.Status == domain.InvoicePaid):
			// All prior payments were bounced, cancelled or reversed.
			invoice.Status = domain.InvoiceSent
		}
	}

	return invoice, summary, nil
}

// ReconcileInvoice loads the invoice's stored receipts, applies them and
// persists the result. Re-running with an unchanged receipt set converges on
// the same document.
func (s *reconciliationService) ReconcileInvoice(ctx context.Context, invoiceID string, updaterUserID string) (*domain.Invoice, *domain.PaymentSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load invoice %s: %w", invoiceID, err)
	}

	receipts, err := s.receiptRepo.FindReceiptsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load receipts for invoice %s: %w", invoiceID, err)
	}

	updated, summary, err := ApplyReceipts(*invoice, receipts)
	if err != nil {
		return nil, nil, err
	}

	// Skip the write when reconciliation changed nothing; keeps the call
	// idempotent at the persistence layer too.
	if updated.PaidAmount.Equal(invoice.PaidAmount) &&
		updated.BalanceAmount.Equal(invoice.BalanceAmount) &&
		updated.Status == invoice.Status {
		return invoice, &summary, nil
	}

	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = updaterUserID
	expectedVersion := updated.Version
	updated.Version++

	if err := s.invoiceRepo.UpdateInvoice(ctx, updated, expectedVersion); err != nil {
		logger.Error("Failed to persist reconciliation", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to reconcile invoice %s: %w", invoiceID, err)
	}

	logger.Info("Invoice reconciled",
		slog.String("invoice_id", invoiceID),
		slog.String("paid", updated.PaidAmount.String()),
		slog.String("balance", updated.BalanceAmount.String()),
		slog.String("status", string(updated.Status)),
	)
	return &updated, &summary, nil
}

// AddReceipt records an incoming payment against an invoice. Reconciliation
// stays explicit; recording a receipt does not itself move the balance.
func (s *reconciliationService) AddReceipt(ctx context.Context, invoiceID string, req dto.CreateReceiptRequest, creatorUserID string) (*domain.Receipt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice %s: %w", invoiceID, err)
	}
	if invoice.Status == domain.InvoiceCancelled {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrReceiptOnCancelled.Error())
	}

	if !req.ReceivedAmount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrReceiptNotPositive.Error())
	}

	status := domain.ReceiptReceived
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown receipt status %q", apperrors.ErrValidation, *req.Status)
		}
		status = *req.Status
	}

	now := time.Now().UTC()
	receipt := domain.Receipt{
		ReceiptID:      uuid.NewString(),
		InvoiceID:      invoiceID,
		ReceivedAmount: domain.NewMoney(req.ReceivedAmount, invoice.TotalAmount.CurrencyCode(), invoice.TotalAmount.Precision()),
		Status:         status,
		ReceiptDate:    req.ReceiptDate,
		Reference:      req.Reference,
		Version:        1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.receiptRepo.SaveReceipt(ctx, receipt); err != nil {
		logger.Error("Failed to save receipt", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to record receipt: %w", err)
	}

	logger.Info("Receipt recorded", slog.String("receipt_id", receipt.ReceiptID), slog.String("invoice_id", invoiceID), slog.String("amount", receipt.ReceivedAmount.String()))
	return &receipt, nil
}

// ListReceipts retrieves the receipts recorded against an invoice.
func (s *reconciliationService) ListReceipts(ctx context.Context, invoiceID string) ([]domain.Receipt, error) {
	receipts, err := s.receiptRepo.FindReceiptsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts for invoice %s: %w", invoiceID, err)
	}
	return receipts, nil
}

// UpdateReceiptStatus moves a receipt through its payment states. The
// received amount never changes here; once a receipt has cleared it is
// immutable by rule anyway.
func (s *reconciliationService) UpdateReceiptStatus(ctx context.Context, receiptID string, newStatus domain.ReceiptStatus, updaterUserID string) (*domain.Receipt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown receipt status %q", apperrors.ErrValidation, newStatus)
	}

	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipt %s: %w", receiptID, err)
	}

	updated := *receipt
	updated.Status = newStatus
	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = updaterUserID
	expectedVersion := updated.Version
	updated.Version++

	if err := s.receiptRepo.UpdateReceipt(ctx, updated, expectedVersion); err != nil {
		logger.Error("Failed to update receipt status", slog.String("receipt_id", receiptID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update receipt %s: %w", receiptID, err)
	}

	return &updated, nil
}
