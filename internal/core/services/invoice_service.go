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
	ErrPeriodRange        = errors.New("period end must not be before period start")
	ErrRecurrenceFields   = errors.New("recurring invoices need a pattern and a next invoice date after the invoice date")
	ErrAdvanceNotDue      = errors.New("next invoice date has not been reached yet")
	ErrUnknownCurrency    = errors.New("unknown currency code")
	ErrMonetaryEditDenied = errors.New("monetary fields cannot be edited on a paid or cancelled invoice")
)

// invoiceService owns invoice computation, the status lifecycle and
// recurrence advancement.
type invoiceService struct {
	invoiceRepo  portsrepo.InvoiceRepositoryWithTx
	taxRepo      portsrepo.TaxReader
	currencyRepo portsrepo.CurrencyReader
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryWithTx, taxRepo portsrepo.TaxReader, currencyRepo portsrepo.CurrencyReader) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		taxRepo:      taxRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// resolveCurrency loads the currency so Money values carry the right
// minor-unit precision.
func (s *invoiceService) resolveCurrency(ctx context.Context, code string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrUnknownCurrency.Error(), code)
		}
		return nil, fmt.Errorf("failed to resolve currency %s: %w", code, err)
	}
	return currency, nil
}

// resolveTaxRate returns the rate for taxID, or nil when no tax applies.
func (s *invoiceService) resolveTaxRate(ctx context.Context, taxID *string) (*decimal.Decimal, error) {
	if taxID == nil {
		return nil, nil
	}
	tax, err := s.taxRepo.FindTaxByID(ctx, *taxID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown tax %s", apperrors.ErrValidation, *taxID)
		}
		return nil, fmt.Errorf("failed to resolve tax %s: %w", *taxID, err)
	}
	return &tax.RatePercent, nil
}

// validateSchedule checks the date and recurrence invariants shared by create
// and advance.
func validateSchedule(inv domain.Invoice) error {
	if inv.PeriodFrom != nil && inv.PeriodTo != nil && inv.PeriodTo.Before(*inv.PeriodFrom) {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPeriodRange.Error())
	}
	if inv.IsRecurring {
		if inv.RecurrencePattern == nil || !inv.RecurrencePattern.IsValid() || inv.NextInvoiceDate == nil {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrRecurrenceFields.Error())
		}
		if !inv.NextInvoiceDate.After(inv.InvoiceDate) {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrRecurrenceFields.Error())
		}
	}
	return nil
}

// CreateInvoice builds a Draft invoice from the request, runs the recompute
// pipeline and persists the result.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency, err := s.resolveCurrency(ctx, req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	zero := domain.ZeroMoney(currency.CurrencyCode, currency.Precision)
	taxAmount := zero
	if req.TaxAmount != nil {
		taxAmount = domain.NewMoney(*req.TaxAmount, currency.CurrencyCode, currency.Precision)
	}
	discount := zero
	if req.DiscountAmount != nil {
		discount = domain.NewMoney(*req.DiscountAmount, currency.CurrencyCode, currency.Precision)
	}

	exchangeRate := req.ExchangeRate
	if exchangeRate.IsZero() {
		exchangeRate = decimal.NewFromInt(1)
	}

	now := time.Now().UTC()
	invoice := domain.Invoice{
		InvoiceID:         uuid.NewString(),
		InvoiceNo:         req.InvoiceNo,
		Status:            domain.InvoiceDraft,
		InvoiceDate:       req.InvoiceDate,
		DueDate:           req.DueDate,
		PeriodFrom:        req.PeriodFrom,
		PeriodTo:          req.PeriodTo,
		CurrencyCode:      currency.CurrencyCode,
		ExchangeRate:      exchangeRate,
		TaxID:             req.TaxID,
		SubTotal:          domain.NewMoney(req.SubTotal, currency.CurrencyCode, currency.Precision),
		TaxAmount:         taxAmount,
		DiscountAmount:    discount,
		TotalAmount:       zero,
		PaidAmount:        zero,
		BalanceAmount:     zero,
		IsRecurring:       req.IsRecurring,
		RecurrencePattern: req.RecurrencePattern,
		NextInvoiceDate:   req.NextInvoiceDate,
		Version:           1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := validateSchedule(invoice); err != nil {
		return nil, err
	}

	taxRate, err := s.resolveTaxRate(ctx, invoice.TaxID)
	if err != nil {
		return nil, err
	}
	invoice, err = fincalc.RecomputeInvoice(invoice, taxRate)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		logger.Error("Failed to save invoice", slog.String("invoice_no", invoice.InvoiceNo), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	logger.Info("Invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("invoice_no", invoice.InvoiceNo))
	return &invoice, nil
}

// GetInvoiceByID retrieves a specific invoice.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

// ListInvoices retrieves invoices, applying the derived overdue filter when
// requested. The filter never consults the persisted status beyond the
// paid/cancelled exclusion, so it stays correct for callers that never
// persist OVERDUE.
func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.ListInvoices(ctx, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if !params.OverdueOnly {
		return invoices, nil
	}

	asOf := params.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	overdue := make([]domain.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.IsOverdue(asOf) {
			overdue = append(overdue, inv)
		}
	}
	return overdue, nil
}

// ComputeInvoiceTotals resolves the invoice's tax and applies the recompute
// pipeline without persisting. This is the pure entry point for callers
// holding an unsaved document.
func (s *invoiceService) ComputeInvoiceTotals(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error) {
	taxRate, err := s.resolveTaxRate(ctx, invoice.TaxID)
	if err != nil {
		return nil, err
	}
	computed, err := fincalc.RecomputeInvoice(invoice, taxRate)
	if err != nil {
		return nil, err
	}
	return &computed, nil
}

// UpdateInvoiceAmounts edits monetary input fields, recomputes and persists.
func (s *invoiceService) UpdateInvoiceAmounts(ctx context.Context, invoiceID string, req dto.UpdateInvoiceAmountsRequest, updaterUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice %s: %w", invoiceID, err)
	}

	if !invoice.MonetaryEditAllowed() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrIllegalTransition, ErrMonetaryEditDenied.Error())
	}

	updated := *invoice
	currencyCode := invoice.SubTotal.CurrencyCode()
	precision := invoice.SubTotal.Precision()
	if req.SubTotal != nil {
		updated.SubTotal = domain.NewMoney(*req.SubTotal, currencyCode, precision)
	}
	if req.TaxAmount != nil {
		updated.TaxAmount = domain.NewMoney(*req.TaxAmount, currencyCode, precision)
	}
	if req.DiscountAmount != nil {
		updated.DiscountAmount = domain.NewMoney(*req.DiscountAmount, currencyCode, precision)
	}
	if req.TaxID != nil {
		updated.TaxID = req.TaxID
	}

	taxRate, err := s.resolveTaxRate(ctx, updated.TaxID)
	if err != nil {
		return nil, err
	}
	updated, err = fincalc.RecomputeInvoice(updated, taxRate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = updaterUserID
	expectedVersion := updated.Version
	updated.Version++

	if err := s.invoiceRepo.UpdateInvoice(ctx, updated, expectedVersion); err != nil {
		logger.Error("Failed to update invoice", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update invoice %s: %w", invoiceID, err)
	}

	return &updated, nil
}

// TransitionStatus performs an operator-directed status change, enforcing
// the transition table: terminal states (Paid, Cancelled) allow no exit.
func (s *invoiceService) TransitionStatus(ctx context.Context, invoiceID string, newStatus domain.InvoiceStatus, updaterUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, newStatus)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice %s: %w", invoiceID, err)
	}

	if !invoice.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrIllegalTransition, invoice.Status, newStatus)
	}

	updated := *invoice
	updated.Status = newStatus
	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = updaterUserID
	expectedVersion := updated.Version
	updated.Version++

	if err := s.invoiceRepo.UpdateInvoice(ctx, updated, expectedVersion); err != nil {
		logger.Error("Failed to transition invoice status", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to transition invoice %s: %w", invoiceID, err)
	}

	logger.Info("Invoice status changed", slog.String("invoice_id", invoiceID), slog.String("from", string(invoice.Status)), slog.String("to", string(newStatus)))
	return &updated, nil
}

// AdvanceRecurring generates the next instance of a recurring invoice once
// its next invoice date has been reached. The source invoice is never
// mutated; advancement must always be an explicit call so retried requests
// cannot fan out duplicate invoices.
func (s *invoiceService) AdvanceRecurring(ctx context.Context, invoiceID string, creatorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	source, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice %s: %w", invoiceID, err)
	}

	if !source.IsRecurring || source.RecurrencePattern == nil || source.NextInvoiceDate == nil {
		return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotRecurring, invoiceID)
	}

	now := time.Now().UTC()
	nextDate := *source.NextInvoiceDate
	if now.Before(nextDate) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAdvanceNotDue.Error())
	}

	pattern := *source.RecurrencePattern
	followingDate := pattern.Next(nextDate)

	// Due date keeps the same offset from the invoice date as the source.
	dueOffset := source.DueDate.Sub(source.InvoiceDate)

	var periodFrom, periodTo *time.Time
	if source.PeriodFrom != nil {
		pf := pattern.Next(*source.PeriodFrom)
		periodFrom = &pf
	}
	if source.PeriodTo != nil {
		pt := pattern.Next(*source.PeriodTo)
		periodTo = &pt
	}

	zero := domain.ZeroMoney(source.SubTotal.CurrencyCode(), source.SubTotal.Precision())
	next := domain.Invoice{
		InvoiceID:         uuid.NewString(),
		InvoiceNo:         fmt.Sprintf("%s-%s", source.InvoiceNo, nextDate.Format("20060102")),
		Status:            domain.InvoiceDraft,
		InvoiceDate:       nextDate,
		DueDate:           nextDate.Add(dueOffset),
		PeriodFrom:        periodFrom,
		PeriodTo:          periodTo,
		CurrencyCode:      source.CurrencyCode,
		ExchangeRate:      source.ExchangeRate,
		TaxID:             source.TaxID,
		SubTotal:          source.SubTotal,
		TaxAmount:         source.TaxAmount,
		DiscountAmount:    source.DiscountAmount,
		TotalAmount:       zero,
		PaidAmount:        zero,
		BalanceAmount:     zero,
		IsRecurring:       true,
		RecurrencePattern: source.RecurrencePattern,
		NextInvoiceDate:   &followingDate,
		Version:           1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	taxRate, err := s.resolveTaxRate(ctx, next.TaxID)
	if err != nil {
		return nil, err
	}
	next, err = fincalc.RecomputeInvoice(next, taxRate)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, next); err != nil {
		logger.Error("Failed to save advanced invoice", slog.String("source_invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to advance invoice %s: %w", invoiceID, err)
	}

	logger.Info("Recurring invoice advanced",
		slog.String("source_invoice_id", invoiceID),
		slog.String("new_invoice_id", next.InvoiceID),
		slog.Time("invoice_date", next.InvoiceDate),
	)
	return &next, nil
}

// DeleteInvoice removes an invoice unless payments exist against it.
func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string, deleterUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to load invoice %s: %w", invoiceID, err)
	}

	if !invoice.IsDeletable() {
		return fmt.Errorf("%w: invoices with payments cannot be deleted", apperrors.ErrIllegalTransition)
	}

	if err := s.invoiceRepo.DeleteInvoice(ctx, invoiceID); err != nil {
		logger.Error("Failed to delete invoice", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}

	logger.Info("Invoice deleted", slog.String("invoice_id", invoiceID), slog.String("deleted_by", deleterUserID))
	return nil
}
