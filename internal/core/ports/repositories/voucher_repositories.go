package repositories

import (
	"context"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
)

// VoucherReader defines read operations for payment voucher data
type VoucherReader interface {
	// FindVoucherByNo retrieves a voucher with its lines by voucher number.
	FindVoucherByNo(ctx context.Context, voucherNo string) (*domain.PaymentVoucher, error)

	// ListVouchers retrieves vouchers ordered by voucher date, newest first.
	ListVouchers(ctx context.Context, limit int, offset int) ([]domain.PaymentVoucher, error)
}

// VoucherWriter defines write operations for payment voucher data.
// Saving a voucher implies saving its lines atomically.
type VoucherWriter interface {
	// SaveVoucher persists a new voucher together with its lines.
	SaveVoucher(ctx context.Context, voucher domain.PaymentVoucher) error

	// UpdateVoucher replaces a voucher and its lines, conditional on
	// expectedVersion.
	UpdateVoucher(ctx context.Context, voucher domain.PaymentVoucher, expectedVersion int64) error
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
}

// VoucherRepositoryWithTx extends VoucherRepositoryFacade with transaction capabilities
type VoucherRepositoryWithTx interface {
	VoucherRepositoryFacade
	TransactionManager
}
