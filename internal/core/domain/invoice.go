package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoicePending   InvoiceStatus = "PENDING"
	InvoiceSent      InvoiceStatus = "SENT"
	InvoicePartial   InvoiceStatus = "PARTIAL"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceOverdue   InvoiceStatus = "OVERDUE"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// invoiceStatuses is the closed set of legal status values.
var invoiceStatuses = map[InvoiceStatus]struct{}{
	InvoiceDraft:     {},
	InvoicePending:   {},
	InvoiceSent:      {},
	InvoicePartial:   {},
	InvoicePaid:      {},
	InvoiceOverdue:   {},
	InvoiceCancelled: {},
}

// IsValid reports whether s is a known invoice status.
func (s InvoiceStatus) IsValid() bool {
	_, ok := invoiceStatuses[s]
	return ok
}

// IsTerminal reports whether s forbids any further operator-directed status
// transition. Paid and Cancelled are terminal.
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoicePaid || s == InvoiceCancelled
}

// CanTransitionTo reports whether an operator-directed transition from s to
// next is legal. Any non-terminal state may move to any known state
// (re-asserting the current state is a legal no-op); terminal states move
// nowhere.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	if !next.IsValid() {
		return false
	}
	return !s.IsTerminal()
}

// RecurrencePattern is the unit step between generated instances of a
// recurring invoice.
type RecurrencePattern string

const (
	RecurDaily     RecurrencePattern = "DAILY"
	RecurWeekly    RecurrencePattern = "WEEKLY"
	RecurMonthly   RecurrencePattern = "MONTHLY"
	RecurQuarterly RecurrencePattern = "QUARTERLY"
	RecurYearly    RecurrencePattern = "YEARLY"
)

// IsValid reports whether p is a known recurrence pattern.
func (p RecurrencePattern) IsValid() bool {
	switch p {
	case RecurDaily, RecurWeekly, RecurMonthly, RecurQuarterly, RecurYearly:
		return true
	}
	return false
}

// Next advances a date by one unit of the pattern. Calendar-month arithmetic
// follows time.AddDate normalization (Jan 31 + 1 month = Mar 2/3).
func (p RecurrencePattern) Next(from time.Time) time.Time {
	switch p {
	case RecurDaily:
		return from.AddDate(0, 0, 1)
	case RecurWeekly:
		return from.AddDate(0, 0, 7)
	case RecurMonthly:
		return from.AddDate(0, 1, 0)
	case RecurQuarterly:
		return from.AddDate(0, 3, 0)
	case RecurYearly:
		return from.AddDate(1, 0, 0)
	}
	return from
}

// Invoice is a billing document. SubTotal, TaxAmount, DiscountAmount and
// PaidAmount are inputs; TotalAmount and BalanceAmount are derived and must
// only ever be written by the recompute pipeline.
type Invoice struct {
	InvoiceID    string        `json:"invoiceID"` // Primary Key (e.g., UUID)
	InvoiceNo    string        `json:"invoiceNo"` // Assigned at creation, immutable
	Status       InvoiceStatus `json:"status"`
	InvoiceDate  time.Time     `json:"invoiceDate"`
	DueDate      time.Time     `json:"dueDate"`
	PeriodFrom   *time.Time    `json:"periodFrom"`
	PeriodTo     *time.Time    `json:"periodTo"`
	CurrencyCode string        `json:"currencyCode"`
	// ExchangeRate converts this invoice's currency to the configured base
	// currency; informational for reporting, never part of the pipeline.
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	TaxID        *string         `json:"taxID"`

	SubTotal       Money `json:"subTotal"`
	TaxAmount      Money `json:"taxAmount"`
	DiscountAmount Money `json:"discountAmount"`
	TotalAmount    Money `json:"totalAmount"`
	PaidAmount     Money `json:"paidAmount"`
	BalanceAmount  Money `json:"balanceAmount"`

	IsRecurring       bool               `json:"isRecurring"`
	RecurrencePattern *RecurrencePattern `json:"recurrencePattern"`
	NextInvoiceDate   *time.Time         `json:"nextInvoiceDate"`

	// Version supports optimistic concurrency at the persistence boundary.
	Version int64 `json:"version"`
	AuditFields
}

// IsOverdue is the derived overdue view: outstanding balance past the due
// date on a document that is neither paid nor cancelled. It is independent of
// the persisted Status so list filters stay correct even when a caller never
// persisted an OVERDUE status.
func (inv Invoice) IsOverdue(asOf time.Time) bool {
	if inv.Status == InvoicePaid || inv.Status == InvoiceCancelled {
		return false
	}
	return inv.BalanceAmount.IsPositive() && inv.DueDate.Before(asOf)
}

// MonetaryEditAllowed reports whether the invoice's monetary input fields may
// still be changed.
func (inv Invoice) MonetaryEditAllowed() bool {
	return inv.Status != InvoicePaid && inv.Status != InvoiceCancelled
}

/// IsDeletable reports whether the invoice may be removed: never once any
// payment has been taken against it or it has been marked paid.
func (inv Invoice) IsDeletable() bool {
	return inv.Status != InvoicePaid && !inv.PaidAmount.IsPositive()
}
