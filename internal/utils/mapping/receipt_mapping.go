package mapping

import (
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/models"
)

// ToModelReceipt converts a domain Receipt to a model Receipt
func ToModelReceipt(d domain.Receipt) models.Receipt {
	return models.Receipt{
		ReceiptID:       d.ReceiptID,
		InvoiceID:       d.InvoiceID,
		ReceivedAmount:  d.ReceivedAmount.MinorUnits(),
		CurrencyCode:    d.ReceivedAmount.CurrencyCode(),
		AmountPrecision: d.ReceivedAmount.Precision(),
		Status:          string(d.Status),
		ReceiptDate:     d.ReceiptDate,
		Reference:       d.Reference,
		Version:         d.Version,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReceipt converts a model Receipt to a domain Receipt
func ToDomainReceipt(m models.Receipt) domain.Receipt {
	return domain.Receipt{
		ReceiptID:      m.ReceiptID,
		InvoiceID:      m.InvoiceID,
		ReceivedAmount: domain.NewMoneyFromMinorUnits(m.ReceivedAmount, m.CurrencyCode, m.AmountPrecision),
		Status:         domain.ReceiptStatus(m.Status),
		ReceiptDate:    m.ReceiptDate,
		Reference:      m.Reference,
		Version:        m.Version,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainReceiptSlice converts a slice of model Receipts to domain Receipts
func ToDomainReceiptSlice(ms []models.Receipt) []domain.Receipt {
	ds := make([]domain.Receipt, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReceipt(m)
	}
	return ds
}
