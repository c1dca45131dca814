package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/models"
)

// marshalInstrument serializes the payment-type specific detail variant for
// the JSONB column. Cash carries no detail and serializes to an empty object.
func marshalInstrument(instrument domain.PaymentInstrument) ([]byte, error) {
	if instrument == nil {
		return []byte("{}"), nil
	}
	raw, err := json.Marshal(instrument)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment instrument: %w", err)
	}
	return raw, nil
}

// unmarshalInstrument rebuilds the concrete instrument variant from the stored
// JSONB using the discriminating payment type.
func unmarshalInstrument(paymentType domain.PaymentType, raw []byte) (domain.PaymentInstrument, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}

	switch paymentType {
	case domain.PaymentCash:
		return domain.CashPayment{}, nil
	case domain.PaymentCheque:
		var p domain.ChequePayment
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cheque payment: %w", err)
		}
		return p, nil
	case domain.PaymentBankTransfer:
		var p domain.BankTransferPayment
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal bank transfer payment: %w", err)
		}
		return p, nil
	case domain.PaymentWireTransfer:
		var p domain.WireTransferPayment
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal wire transfer payment: %w", err)
		}
		return p, nil
	case domain.PaymentOnline:
		var p domain.OnlinePayment
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal online payment: %w", err)
		}
		return p, nil
	case domain.PaymentCreditCard, domain.PaymentDebitCard:
		var p domain.CardPayment
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal card payment: %w", err)
		}
		p.Kind = paymentType
		return p, nil
	}
	return nil, fmt.Errorf("unknown payment type %q", paymentType)
}

// ToModelVoucher converts a domain PaymentVoucher to its header model plus
// line models.
func ToModelVoucher(d domain.PaymentVoucher) (models.PaymentVoucher, []models.VoucherLine, error) {
	instrumentJSON, err := marshalInstrument(d.Instrument)
	if err != nil {
		return models.PaymentVoucher{}, nil, err
	}

	header := models.PaymentVoucher{
		VoucherNo:       d.VoucherNo,
		VoucherDate:     d.VoucherDate,
		Status:          string(d.Status),
		TotalAmount:     d.TotalAmount.MinorUnits(),
		CurrencyCode:    d.CurrencyCode,
		AmountPrecision: d.TotalAmount.Precision(),
		ExchangeRate:    d.ExchangeRate,
		TaxID:           d.TaxID,

		PaymentType:    string(d.PaymentType),
		InstrumentJSON: instrumentJSON,

		CostCenter1ID:          d.CostCenters.Level1ID,
		CostCenter2ID:          d.CostCenters.Level2ID,
		CostCenter3ID:          d.CostCenters.Level3ID,
		CostCenter4ID:          d.CostCenters.Level4ID,
		CopyCostCentersToLines: d.CopyCostCentersToLines,

		AttachmentIDs: d.AttachmentIDs,
		ReversalOf:    d.ReversalOf,
		Version:       d.Version,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}

	lines := make([]models.VoucherLine, len(d.Lines))
	for i, line := range d.Lines {
		lines[i] = models.VoucherLine{
			LineID:        line.LineID,
			VoucherNo:     d.VoucherNo,
			LineNo:        i + 1,
			AccountID:     line.AccountID,
			Amount:        line.Amount.MinorUnits(),
			TaxPercentage: line.TaxPercentage,
			TaxAmount:     line.TaxAmount.MinorUnits(),

			CostCenter1ID: line.CostCenters.Level1ID,
			CostCenter2ID: line.CostCenters.Level2ID,
			CostCenter3ID: line.CostCenters.Level3ID,
			CostCenter4ID: line.CostCenters.Level4ID,

			Description: line.Description,
		}
	}

	return header, lines, nil
}

// ToDomainVoucher converts a header model plus its line models to a domain
// PaymentVoucher.
func ToDomainVoucher(m models.PaymentVoucher, lineModels []models.VoucherLine) (domain.PaymentVoucher, error) {
	paymentType := domain.PaymentType(m.PaymentType)
	instrument, err := unmarshalInstrument(paymentType, m.InstrumentJSON)
	if err != nil {
		return domain.PaymentVoucher{}, err
	}

	money := func(minorUnits int64) domain.Money {
		return domain.NewMoneyFromMinorUnits(minorUnits, m.CurrencyCode, m.AmountPrecision)
	}

	lines := make([]domain.VoucherLine, len(lineModels))
	for i, line := range lineModels {
		lines[i] = domain.VoucherLine{
			LineID:        line.LineID,
			AccountID:     line.AccountID,
			Amount:        money(line.Amount),
			TaxPercentage: line.TaxPercentage,
			TaxAmount:     money(line.TaxAmount),
			CostCenters: domain.CostCenterSelection{
				Level1ID: line.CostCenter1ID,
				Level2ID: line.CostCenter2ID,
				Level3ID: line.CostCenter3ID,
				Level4ID: line.CostCenter4ID,
			},
			Description: line.Description,
		}
	}

	return domain.PaymentVoucher{
		VoucherNo:    m.VoucherNo,
		VoucherDate:  m.VoucherDate,
		Status:       domain.VoucherStatus(m.Status),
		TotalAmount:  money(m.TotalAmount),
		CurrencyCode: m.CurrencyCode,
		ExchangeRate: m.ExchangeRate,
		TaxID:        m.TaxID,

		PaymentType: paymentType,
		Instrument:  instrument,

		CostCenters: domain.CostCenterSelection{
			Level1ID: m.CostCenter1ID,
			Level2ID: m.CostCenter2ID,
			Level3ID: m.CostCenter3ID,
			Level4ID: m.CostCenter4ID,
		},
		CopyCostCentersToLines: m.CopyCostCentersToLines,

		Lines:         lines,
		AttachmentIDs: m.AttachmentIDs,
		ReversalOf:    m.ReversalOf,
		Version:       m.Version,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}, nil
}
