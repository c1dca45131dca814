package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
)

func TestInvoiceStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.InvoiceStatus
		to   domain.InvoiceStatus
		want bool
	}{
		{"draft to sent", domain.InvoiceDraft, domain.InvoiceSent, true},
		{"sent to cancelled", domain.InvoiceSent, domain.InvoiceCancelled, true},
		{"overdue to paid", domain.InvoiceOverdue, domain.InvoicePaid, true},
		{"re-asserting current state is a no-op", domain.InvoiceSent, domain.InvoiceSent, true},
		{"paid is terminal", domain.InvoicePaid, domain.InvoiceSent, false},
		{"cancelled is terminal", domain.InvoiceCancelled, domain.InvoiceDraft, false},
		{"unknown target rejected", domain.InvoiceDraft, domain.InvoiceStatus("BOGUS"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestInvoiceStatus_IsTerminal(t *testing.T) {
	assert.True(t, domain.InvoicePaid.IsTerminal())
	assert.True(t, domain.InvoiceCancelled.IsTerminal())
	assert.False(t, domain.InvoiceDraft.IsTerminal())
	assert.False(t, domain.InvoiceOverdue.IsTerminal())
}

func TestInvoice_IsOverdue(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	pastDue := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	futureDue := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	outstanding := domain.NewMoneyFromMinorUnits(5000, "USD", 2)
	settled := domain.ZeroMoney("USD", 2)

	tests := []struct {
		name    string
		invoice domain.Invoice
		want    bool
	}{
		{
			name:    "outstanding balance past due date",
			invoice: domain.Invoice{Status: domain.InvoiceSent, DueDate: pastDue, BalanceAmount: outstanding},
			want:    true,
		},
		{
			name:    "due date in the future",
			invoice: domain.Invoice{Status: domain.InvoiceSent, DueDate: futureDue, BalanceAmount: outstanding},
			want:    false,
		},
		{
			name:    "zero balance past due",
			invoice: domain.Invoice{Status: domain.InvoiceSent, DueDate: pastDue, BalanceAmount: settled},
			want:    false,
		},
		{
			name:    "paid invoices are never overdue",
			invoice: domain.Invoice{Status: domain.InvoicePaid, DueDate: pastDue, BalanceAmount: outstanding},
			want:    false,
		},
		{
			name:    "cancelled invoices are never overdue",
			invoice: domain.Invoice{Status: domain.InvoiceCancelled, DueDate: pastDue, BalanceAmount: outstanding},
			want:    false,
		},
		{
			name:    "partial with outstanding balance past due",
			invoice: domain.Invoice{Status: domain.InvoicePartial, DueDate: pastDue, BalanceAmount: outstanding},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.invoice.IsOverdue(asOf))
		})
	}
}

func TestRecurrencePattern_Next(t *testing.T) {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		pattern domain.RecurrencePattern
		from    time.Time
		want    time.Time
	}{
		{"daily", domain.RecurDaily, base, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)},
		{"weekly", domain.RecurWeekly, base, time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC)},
		{"monthly", domain.RecurMonthly, base, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)},
		{"quarterly", domain.RecurQuarterly, base, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)},
		{"yearly", domain.RecurYearly, base, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{
			// AddDate normalization: Jan 31 + 1 month lands past February.
			name:    "monthly from end of january normalizes",
			pattern: domain.RecurMonthly,
			from:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			want:    time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pattern.Next(tt.from))
		})
	}
}

func TestRecurrencePattern_IsValid(t *testing.T) {
	assert.True(t, domain.RecurMonthly.IsValid())
	assert.True(t, domain.RecurYearly.IsValid())
	assert.False(t, domain.RecurrencePattern("FORTNIGHTLY").IsValid())
}

func TestInvoice_MonetaryEditAllowed(t *testing.T) {
	assert.True(t, domain.Invoice{Status: domain.InvoiceDraft}.MonetaryEditAllowed())
	assert.True(t, domain.Invoice{Status: domain.InvoicePartial}.MonetaryEditAllowed())
	assert.False(t, domain.Invoice{Status: domain.InvoicePaid}.MonetaryEditAllowed())
	assert.False(t, domain.Invoice{Status: domain.InvoiceCancelled}.MonetaryEditAllowed())
}

func TestInvoice_IsDeletable(t *testing.T) {
	paid := domain.NewMoneyFromMinorUnits(100, "USD", 2)
	unpaid := domain.ZeroMoney("USD", 2)

	assert.True(t, domain.Invoice{Status: domain.InvoiceDraft, PaidAmount: unpaid}.IsDeletable())
	assert.False(t, domain.Invoice{Status: domain.InvoicePaid, PaidAmount: unpaid}.IsDeletable())
	assert.False(t, domain.Invoice{Status: domain.InvoicePartial, PaidAmount: paid}.IsDeletable())
}
