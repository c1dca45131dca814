package services

import (
	"context"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/dto"
)

// VoucherReaderSvc defines read operations for payment vouchers.
type VoucherReaderSvc interface {
	// GetVoucherByNo retrieves a voucher with its lines.
	GetVoucherByNo(ctx context.Context, voucherNo string) (*domain.PaymentVoucher, error)

	// ListVouchers retrieves vouchers, newest first.
	ListVouchers(ctx context.Context, limit int, offset int) ([]domain.PaymentVoucher, error)
}

// VoucherWriterSvc defines the mutating voucher operations.
type VoucherWriterSvc interface {
	// CreateVoucher validates the balance, cascades cost centers, computes
	// per-line tax and persists a new voucher. The write is rejected on any
	// validation failure.
	CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, creatorUserID string) (*domain.PaymentVoucher, error)

	// UpdateVoucher replaces the mutable portion of a Draft/Pending voucher,
	// re-running all validation. Fails with apperrors.ErrFrozen for Paid or
	// Reversed vouchers.
	UpdateVoucher(ctx context.Context, voucherNo string, req dto.UpdateVoucherRequest, updaterUserID string) (*domain.PaymentVoucher, error)

	// UpdateVoucherStatus moves a voucher through its payment states.
	UpdateVoucherStatus(ctx context.Context, voucherNo string, newStatus domain.VoucherStatus, updaterUserID string) (*domain.PaymentVoucher, error)

	// ReverseVoucher creates a reversal document for a frozen voucher and
	// marks the source Reversed. The source's lines are never mutated.
	ReverseVoucher(ctx context.Context, voucherNo string, creatorUserID string) (*domain.PaymentVoucher, error)
}

// VoucherValidatorSvc exposes the pure balance check for dry-run callers.
type VoucherValidatorSvc interface {
	// ValidateVoucherBalance checks that the request's lines sum to its
	// header total within tolerance, without persisting anything. Returns an
	// apperrors.OutOfBalanceError carrying the signed difference on failure.
	ValidateVoucherBalance(ctx context.Context, req dto.CreateVoucherRequest) error
}

// VoucherSvcFacade combines all voucher-related service interfaces.
type VoucherSvcFacade interface {
	VoucherReaderSvc
	VoucherWriterSvc
	VoucherValidatorSvc
}
