package fincalc

import (
	"fmt"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/apperrors"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceToleranceMinorUnits is the permitted absolute difference, in minor
// units, between a voucher's line total and its header total (0.01 for a
// 2-decimal currency).
const BalanceToleranceMinorUnits int64 = 1

var oneHundred = decimal.NewFromInt(100)

// ComputeTax calculates the tax portion of base at ratePercent.
// Exclusive: tax = base * rate / 100.
// Inclusive: tax = base * rate / (100 + rate), i.e. the tax already contained
// in base. The result is rounded half-up to the base currency's precision.
func ComputeTax(base domain.Money, ratePercent decimal.Decimal, inclusive bool) (domain.Money, error) {
	if ratePercent.IsNegative() {
		return domain.Money{}, fmt.Errorf("%w: rate %s is negative", apperrors.ErrInvalidRate, ratePercent.String())
	}
	var tax decimal.Decimal
	if inclusive {
		tax = base.Decimal().Mul(ratePercent).Div(oneHundred.Add(ratePercent))
	} else {
		tax = base.Decimal().Mul(ratePercent).Div(oneHundred)
	}
	return domain.NewMoney(tax, base.CurrencyCode(), base.Precision()), nil
}

// RecomputeInvoice applies the ordered derivation pipeline to an invoice and
// returns the updated copy. The order is fixed so later steps never read a
// stale value:
//  1. TaxAmount from SubTotal when a tax rate applies,
//  2. TotalAmount = max(0, SubTotal + TaxAmount - DiscountAmount),
//  3. BalanceAmount = max(0, TotalAmount - PaidAmount).
//
// Negative raw inputs are rejected, not clamped; only the derived Total and
// Balance are clamped at zero. The function is pure and idempotent, and never
// touches Status.
func RecomputeInvoice(inv domain.Invoice, taxRate *decimal.Decimal) (domain.Invoice, error) {
	if err := checkNonNegative("subTotal", inv.SubTotal); err != nil {
		return domain.Invoice{}, err
	}
	if err := checkNonNegative("taxAmount", inv.TaxAmount); err != nil {
		return domain.Invoice{}, err
	}
	if err := checkNonNegative("discountAmount", inv.DiscountAmount); err != nil {
		return domain.Invoice{}, err
	}
	if err := checkNonNegative("paidAmount", inv.PaidAmount); err != nil {
		return domain.Invoice{}, err
	}

	// Step 1: tax from sub-total. Recomputed from scratch whenever a tax
	// applies so repeated runs converge on the same document.
	if inv.TaxID != nil && taxRate != nil {
		taxAmount, err := ComputeTax(inv.SubTotal, *taxRate, false)
		if err != nil {
			return domain.Invoice{}, err
		}
		inv.TaxAmount = taxAmount
	}

	// Step 2: total.
	gross, err := inv.SubTotal.Add(inv.TaxAmount)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	total, err := gross.Sub(inv.DiscountAmount)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	inv.TotalAmount = total.ClampZero()

	// Step 3: balance.
	balance, err := inv.TotalAmount.Sub(inv.PaidAmount)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	inv.BalanceAmount = balance.ClampZero()

	return inv, nil
}

// VoucherLineTotal sums the line amounts of a voucher using Money addition.
func VoucherLineTotal(voucher domain.PaymentVoucher) (domain.Money, error) {
	total := domain.ZeroMoney(voucher.TotalAmount.CurrencyCode(), voucher.TotalAmount.Precision())
	for _, line := range voucher.Lines {
		var err error
		total, err = total.Add(line.Amount)
		if err != nil {
			return domain.Money{}, fmt.Errorf("line %s: %w", line.LineID, err)
		}
	}
	return total, nil
}

// CheckVoucherBalance verifies that the voucher's lines sum to its header
// total within BalanceToleranceMinorUnits. On failure it returns an
// OutOfBalanceError carrying the signed difference (lineTotal - headerTotal).
func CheckVoucherBalance(voucher domain.PaymentVoucher) error {
	lineTotal, err := VoucherLineTotal(voucher)
	if err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	diff, err := lineTotal.Sub(voucher.TotalAmount)
	if err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	absDiff := diff.MinorUnits()
	if absDiff < 0 {
		absDiff = -absDiff
	}
	if absDiff > BalanceToleranceMinorUnits {
		return apperrors.NewOutOfBalanceError(diff.Decimal())
	}
	return nil
}

// RecomputeLineTax recomputes a single line's tax amount from its amount and
// tax percentage. Lines without a percentage get a zero tax amount. Line
// tax is always exclusive of the line amount.
func RecomputeLineTax(line domain.VoucherLine) (domain.VoucherLine, error) {
	if line.TaxPercentage == nil {
		line.TaxAmount = domain.ZeroMoney(line.Amount.CurrencyCode(), line.Amount.Precision())
		return line, nil
	}
	taxAmount, err := ComputeTax(line.Amount, *line.TaxPercentage, false)
	if err != nil {
		return domain.VoucherLine{}, err
	}
	line.TaxAmount = taxAmount
	return line, nil
}

func checkNonNegative(field string, amount domain.Money) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: negative amount for %s (%s)", apperrors.ErrValidation, field, amount.String())
	}
	return nil
}
