package mapping

import (
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice. All monetary
// columns are written in the invoice currency's minor units.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	var pattern *string
	if d.RecurrencePattern != nil {
		p := string(*d.RecurrencePattern)
		pattern = &p
	}

	return models.Invoice{
		InvoiceID:    d.InvoiceID,
		InvoiceNo:    d.InvoiceNo,
		Status:       string(d.Status),
		InvoiceDate:  d.InvoiceDate,
		DueDate:      d.DueDate,
		PeriodFrom:   d.PeriodFrom,
		PeriodTo:     d.PeriodTo,
		CurrencyCode: d.CurrencyCode,
		ExchangeRate: d.ExchangeRate,
		TaxID:        d.TaxID,

		SubTotal:        d.SubTotal.MinorUnits(),
		TaxAmount:       d.TaxAmount.MinorUnits(),
		DiscountAmount:  d.DiscountAmount.MinorUnits(),
		TotalAmount:     d.TotalAmount.MinorUnits(),
		PaidAmount:      d.PaidAmount.MinorUnits(),
		BalanceAmount:   d.BalanceAmount.MinorUnits(),
		AmountPrecision: d.SubTotal.Precision(),

		IsRecurring:       d.IsRecurring,
		RecurrencePattern: pattern,
		NextInvoiceDate:   d.NextInvoiceDate,

		Version:     d.Version,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	var pattern *domain.RecurrencePattern
	if m.RecurrencePattern != nil {
		p := domain.RecurrencePattern(*m.RecurrencePattern)
		pattern = &p
	}

	money := func(minorUnits int64) domain.Money {
		return domain.NewMoneyFromMinorUnits(minorUnits, m.CurrencyCode, m.AmountPrecision)
	}

	return domain.Invoice{
		InvoiceID:    m.InvoiceID,
		InvoiceNo:    m.InvoiceNo,
		Status:       domain.InvoiceStatus(m.Status),
		InvoiceDate:  m.InvoiceDate,
		DueDate:      m.DueDate,
		PeriodFrom:   m.PeriodFrom,
		PeriodTo:     m.PeriodTo,
		CurrencyCode: m.CurrencyCode,
		ExchangeRate: m.ExchangeRate,
		TaxID:        m.TaxID,

		SubTotal:       money(m.SubTotal),
		TaxAmount:      money(m.TaxAmount),
		DiscountAmount: money(m.DiscountAmount),
		TotalAmount:    money(m.TotalAmount),
		PaidAmount:     money(m.PaidAmount),
		BalanceAmount:  money(m.BalanceAmount),

		IsRecurring:       m.IsRecurring,
		RecurrencePattern: pattern,
		NextInvoiceDate:   m.NextInvoiceDate,

		Version:     m.Version,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts a slice of model Invoices to domain Invoices
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}
