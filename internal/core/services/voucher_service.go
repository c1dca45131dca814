package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
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
	ErrVoucherNotEditable   = errors.New("only draft or pending vouchers can be edited")
	ErrVoucherNotReversible = errors.New("only paid vouchers can be reversed")
)

// voucherService validates, balances and freezes payment vouchers.
type voucherService struct {
	voucherRepo   portsrepo.VoucherRepositoryWithTx
	currencyRepo  portsrepo.CurrencyReader
	costCenterSvc portssvc.CostCenterSelectorSvc
}

// NewVoucherService creates a new VoucherService.
func NewVoucherService(voucherRepo portsrepo.VoucherRepositoryWithTx, currencyRepo portsrepo.CurrencyReader, costCenterSvc portssvc.CostCenterSelectorSvc) portssvc.VoucherSvcFacade {
	return &voucherService{
		voucherRepo:   voucherRepo,
		currencyRepo:  currencyRepo,
		costCenterSvc: costCenterSvc,
	}
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// newVoucherNo generates a voucher number when the caller did not supply one.
func newVoucherNo() string {
	return "PV-" + strings.ToUpper(uuid.NewString()[:8])
}

// buildInstrument assembles the payment-type specific detail variant from the
// flat wire fields and validates its required fields.
func buildInstrument(paymentType domain.PaymentType, req dto.CreateVoucherRequest) (domain.PaymentInstrument, error) {
	var instrument domain.PaymentInstrument
	switch paymentType {
	case domain.PaymentCash:
		instrument = domain.CashPayment{}
	case domain.PaymentCheque:
		var chequeDate time.Time
		if req.ChequeDate != nil {
			chequeDate = *req.ChequeDate
		}
		instrument = domain.ChequePayment{ChequeNo: req.ChequeNo, ChequeDate: chequeDate, BankName: req.BankName}
	case domain.PaymentBankTransfer:
		instrument = domain.BankTransferPayment{BankName: req.BankName, AccountNo: req.AccountNo, TransferRef: req.TransferRef}
	case domain.PaymentWireTransfer:
		instrument = domain.WireTransferPayment{BankName: req.BankName, SwiftCode: req.SwiftCode, TransferRef: req.TransferRef}
	case domain.PaymentOnline:
		instrument = domain.OnlinePayment{TransactionRef: req.TransactionRef}
	case domain.PaymentCreditCard, domain.PaymentDebitCard:
		instrument = domain.CardPayment{Kind: paymentType, CardLast4: req.CardLast4, AuthCode: req.AuthCode}
	default:
		return nil, fmt.Errorf("%w: unknown payment type %q", apperrors.ErrValidation, paymentType)
	}

	if err := instrument.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return instrument, nil
}

// buildVoucher assembles and fully validates a domain voucher from a create
// request: instrument fields, cost-center cascade, per-line tax and the
// header/line balance. Any failure rejects the document unchanged.
func (s *voucherService) buildVoucher(ctx context.Context, req dto.CreateVoucherRequest) (*domain.PaymentVoucher, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, req.CurrencyCode)
		}
		return nil, fmt.Errorf("failed to resolve currency %s: %w", req.CurrencyCode, err)
	}

	instrument, err := buildInstrument(req.PaymentType, req)
	if err != nil {
		return nil, err
	}

	header := domain.CostCenterSelection{
		Level1ID: req.CostCenter1ID,
		Level2ID: req.CostCenter2ID,
		Level3ID: req.CostCenter3ID,
		Level4ID: req.CostCenter4ID,
	}
	if err := s.costCenterSvc.ValidateSelection(ctx, header); err != nil {
		return nil, err
	}

	lines := make([]domain.VoucherLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		line := domain.VoucherLine{
			LineID:        uuid.NewString(),
			AccountID:     lineReq.AccountID,
			Amount:        domain.NewMoney(lineReq.Amount, currency.CurrencyCode, currency.Precision),
			TaxPercentage: lineReq.TaxPercentage,
			CostCenters: domain.CostCenterSelection{
				Level1ID: lineReq.CostCenter1ID,
				Level2ID: lineReq.CostCenter2ID,
				Level3ID: lineReq.CostCenter3ID,
				Level4ID: lineReq.CostCenter4ID,
			},
			Description: lineReq.Description,
		}
		line, err = fincalc.RecomputeLineTax(line)
		if err != nil {
			return nil, err
		}
		lines[i] = line
	}

	if req.CopyCostCentersToLines {
		lines = CopyCostCentersToLines(header, lines)
	}
	for i := range lines {
		if err := s.costCenterSvc.ValidateSelection(ctx, lines[i].CostCenters); err != nil {
			return nil, err
		}
	}

	exchangeRate := req.ExchangeRate
	if exchangeRate.IsZero() {
		exchangeRate = decimal.NewFromInt(1)
	}

	voucherNo := req.VoucherNo
	if voucherNo == "" {
		voucherNo = newVoucherNo()
	}

	voucher := &domain.PaymentVoucher{
		VoucherNo:              voucherNo,
		VoucherDate:            req.VoucherDate,
		Status:                 domain.VoucherDraft,
		TotalAmount:            domain.NewMoney(req.TotalAmount, currency.CurrencyCode, currency.Precision),
		CurrencyCode:           currency.CurrencyCode,
		ExchangeRate:           exchangeRate,
		TaxID:                  req.TaxID,
		PaymentType:            req.PaymentType,
		Instrument:             instrument,
		CostCenters:            header,
		CopyCostCentersToLines: req.CopyCostCentersToLines,
		Lines:                  lines,
		AttachmentIDs:          req.AttachmentIDs,
	}

	if err := fincalc.CheckVoucherBalance(*voucher); err != nil {
		return nil, err
	}

	return voucher, nil
}

// CreateVoucher validates and persists a new payment voucher.
func (s *voucherService) CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, creatorUserID string) (*domain.PaymentVoucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.buildVoucher(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	voucher.Version = 1
	voucher.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	if err := s.voucherRepo.SaveVoucher(ctx, *voucher); err != nil {
		logger.Error("Failed to save voucher", slog.String("voucher_no", voucher.VoucherNo), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create voucher: %w", err)
	}

	logger.Info("Voucher created", slog.String("voucher_no", voucher.VoucherNo), slog.String("total", voucher.TotalAmount.String()))
	return voucher, nil
}

// GetVoucherByNo retrieves a voucher with its lines.
func (s *voucherService) GetVoucherByNo(ctx context.Context, voucherNo string) (*domain.PaymentVoucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByNo(ctx, voucherNo)
	if err != nil {
		return nil, fmt.Errorf("failed to get voucher %s: %w", voucherNo, err)
	}
	return voucher, nil
}

// ListVouchers retrieves vouchers, newest first.
func (s *voucherService) ListVouchers(ctx context.Context, limit int, offset int) ([]domain.PaymentVoucher, error) {
	vouchers, err := s.voucherRepo.ListVouchers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	return vouchers, nil
}

// UpdateVoucher replaces the mutable portion of a Draft/Pending voucher.
// Paid/Reversed documents are frozen; Rejected/Cancelled ones are closed to
// edits as well.
func (s *voucherService) UpdateVoucher(ctx context.Context, voucherNo string, req dto.UpdateVoucherRequest, updaterUserID string) (*domain.PaymentVoucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.voucherRepo.FindVoucherByNo(ctx, voucherNo)
	if err != nil {
		return nil, fmt.Errorf("failed to load voucher %s: %w", voucherNo, err)
	}

	if existing.IsFrozen() {
		return nil, fmt.Errorf("%w: voucher %s is %s", apperrors.ErrFrozen, voucherNo, existing.Status)
	}
	if !existing.IsEditable() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrVoucherNotEditable.Error())
	}

	// Rebuild through the create path so every rule re-runs. Identity and
	// currency are immutable on update.
	rebuilt, err := s.buildVoucher(ctx, dto.CreateVoucherRequest{
		VoucherNo:              existing.VoucherNo,
		VoucherDate:            req.VoucherDate,
		TotalAmount:            req.TotalAmount,
		CurrencyCode:           existing.CurrencyCode,
		ExchangeRate:           existing.ExchangeRate,
		TaxID:                  req.TaxID,
		PaymentType:            req.PaymentType,
		ChequeNo:               req.ChequeNo,
		ChequeDate:             req.ChequeDate,
		BankName:               req.BankName,
		AccountNo:              req.AccountNo,
		TransferRef:            req.TransferRef,
		SwiftCode:              req.SwiftCode,
		TransactionRef:         req.TransactionRef,
		CardLast4:              req.CardLast4,
		AuthCode:               req.AuthCode,
		CostCenter1ID:          req.CostCenter1ID,
		CostCenter2ID:          req.CostCenter2ID,
		CostCenter3ID:          req.CostCenter3ID,
		CostCenter4ID:          req.CostCenter4ID,
		CopyCostCentersToLines: req.CopyCostCentersToLines,
		Lines:                  req.Lines,
		AttachmentIDs:          req.AttachmentIDs,
	})
	if err != nil {
		return nil, err
	}

	rebuilt.Status = existing.Status
	rebuilt.ReversalOf = existing.ReversalOf
	rebuilt.AuditFields = existing.AuditFields
	now := time.Now().UTC()
	rebuilt.LastUpdatedAt = now
	rebuilt.LastUpdatedBy = updaterUserID
	rebuilt.Version = existing.Version + 1

	if err := s.voucherRepo.UpdateVoucher(ctx, *rebuilt, existing.Version); err != nil {
		logger.Error("Failed to update voucher", slog.String("voucher_no", voucherNo), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update voucher %s: %w", voucherNo, err)
	}

	return rebuilt, nil
}

// UpdateVoucherStatus moves a voucher through its payment states. Frozen
// documents reject any status change; reversal is the only way forward.
func (s *voucherService) UpdateVoucherStatus(ctx context.Context, voucherNo string, newStatus domain.VoucherStatus, updaterUserID string) (*domain.PaymentVoucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown voucher status %q", apperrors.ErrValidation, newStatus)
	}

	existing, err := s.voucherRepo.FindVoucherByNo(ctx, voucherNo)
	if err != nil {
		return nil, fmt.Errorf("failed to load voucher %s: %w", voucherNo, err)
	}

	if existing.IsFrozen() {
		return nil, fmt.Errorf("%w: voucher %s is %s", apperrors.ErrFrozen, voucherNo, existing.Status)
	}

	updated := *existing
	updated.Status = newStatus
	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = updaterUserID
	updated.Version = existing.Version + 1

	if err := s.voucherRepo.UpdateVoucher(ctx, updated, existing.Version); err != nil {
		logger.Error("Failed to update voucher status", slog.String("voucher_no", voucherNo), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update voucher %s: %w", voucherNo, err)
	}

	logger.Info("Voucher status changed", slog.String("voucher_no", voucherNo), slog.String("from", string(existing.Status)), slog.String("to", string(newStatus)))
	return &updated, nil
}

// ReverseVoucher creates the reversal document for a paid voucher: a new
// voucher with negated amounts linked back to the source, which is marked
// Reversed. The source's lines are never mutated.
func (s *voucherService) ReverseVoucher(ctx context.Context, voucherNo string, creatorUserID string) (*domain.PaymentVoucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	source, err := s.voucherRepo.FindVoucherByNo(ctx, voucherNo)
	if err != nil {
		return nil, fmt.Errorf("failed to load voucher %s: %w", voucherNo, err)
	}

	if source.Status != domain.VoucherPaid {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrVoucherNotReversible.Error())
	}

	now := time.Now().UTC()
	reversalLines := make([]domain.VoucherLine, len(source.Lines))
	for i, line := range source.Lines {
		reversed := line
		reversed.LineID = uuid.NewString()
		reversed.Amount = line.Amount.Neg()
		reversed.TaxAmount = line.TaxAmount.Neg()
		reversalLines[i] = reversed
	}

	sourceNo := source.VoucherNo
	reversal := domain.PaymentVoucher{
		VoucherNo:              newVoucherNo(),
		VoucherDate:            now,
		Status:                 domain.VoucherPending,
		TotalAmount:            source.TotalAmount.Neg(),
		CurrencyCode:           source.CurrencyCode,
		ExchangeRate:           source.ExchangeRate,
		TaxID:                  source.TaxID,
		PaymentType:            source.PaymentType,
		Instrument:             source.Instrument,
		CostCenters:            source.CostCenters,
		CopyCostCentersToLines: source.CopyCostCentersToLines,
		Lines:                  reversalLines,
		AttachmentIDs:          source.AttachmentIDs,
		ReversalOf:             &sourceNo,
		Version:                1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.voucherRepo.SaveVoucher(ctx, reversal); err != nil {
		logger.Error("Failed to save reversal voucher", slog.String("source_voucher_no", voucherNo), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create reversal for voucher %s: %w", voucherNo, err)
	}

	frozen := *source
	frozen.Status = domain.VoucherReversed
	frozen.LastUpdatedAt = now
	frozen.LastUpdatedBy = creatorUserID
	frozen.Version = source.Version + 1
	if err := s.voucherRepo.UpdateVoucher(ctx, frozen, source.Version); err != nil {
		logger.Error("Failed to mark voucher reversed", slog.String("voucher_no", voucherNo), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to mark voucher %s reversed: %w", voucherNo, err)
	}

	logger.Info("Voucher reversed", slog.String("voucher_no", voucherNo), slog.String("reversal_no", reversal.VoucherNo))
	return &reversal, nil
}

// ValidateVoucherBalance dry-runs the balance check for an unsaved request.
// Nothing is persisted; only the line/total arithmetic is verified.
func (s *voucherService) ValidateVoucherBalance(ctx context.Context, req dto.CreateVoucherRequest) error {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, req.CurrencyCode)
		}
		return fmt.Errorf("failed to resolve currency %s: %w", req.CurrencyCode, err)
	}

	lines := make([]domain.VoucherLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.VoucherLine{
			Amount: domain.NewMoney(lineReq.Amount, currency.CurrencyCode, currency.Precision),
		}
	}
	probe := domain.PaymentVoucher{
		TotalAmount: domain.NewMoney(req.TotalAmount, currency.CurrencyCode, currency.Precision),
		Lines:       lines,
	}

	return fincalc.CheckVoucherBalance(probe)
}
