package dto

import (
	"time"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest defines the data needed to create a new invoice in
// Draft status. Derived fields (total, balance) are never accepted as input.
type CreateInvoiceRequest struct {
	InvoiceNo      string           `json:"invoiceNo" binding:"required"`
	InvoiceDate    time.Time        `json:"invoiceDate" binding:"required"`
	DueDate        time.Time        `json:"dueDate" binding:"required"`
	PeriodFrom     *time.Time       `json:"periodFrom"`
	PeriodTo       *time.Time       `json:"periodTo"`
	CurrencyCode   string           `json:"currencyCode" binding:"required,uppercase,len=3"`
	ExchangeRate   decimal.Decimal  `json:"exchangeRate"`
	TaxID          *string          `json:"taxID"`
	SubTotal       decimal.Decimal  `json:"subTotal" binding:"required"`
	TaxAmount      *decimal.Decimal `json:"taxAmount"` // ignored when taxID is set
	DiscountAmount *decimal.Decimal `json:"discountAmount"`

	IsRecurring       bool                      `json:"isRecurring"`
	RecurrencePattern *domain.RecurrencePattern `json:"recurrencePattern"`
	NextInvoiceDate   *time.Time                `json:"nextInvoiceDate"`
}

// UpdateInvoiceAmountsRequest defines a partial edit of the invoice's
// monetary input fields. Nil fields keep their current value.
type UpdateInvoiceAmountsRequest struct {
	SubTotal       *decimal.Decimal `json:"subTotal"`
	TaxAmount      *decimal.Decimal `json:"taxAmount"`
	DiscountAmount *decimal.Decimal `json:"discountAmount"`
	TaxID          *string          `json:"taxID"`
}

// TransitionInvoiceStatusRequest asks for an operator-directed status change.
type TransitionInvoiceStatusRequest struct {
	Status domain.InvoiceStatus `json:"status" binding:"required"`
}

// ListInvoicesParams carries list-screen filters.
type ListInvoicesParams struct {
	Limit       int
	Offset      int
	OverdueOnly bool
	AsOf        time.Time
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID         string                    `json:"invoiceID"`
	InvoiceNo         string                    `json:"invoiceNo"`
	Status            domain.InvoiceStatus      `json:"status"`
	InvoiceDate       time.Time                 `json:"invoiceDate"`
	DueDate           time.Time                 `json:"dueDate"`
	PeriodFrom        *time.Time                `json:"periodFrom,omitempty"`
	PeriodTo          *time.Time                `json:"periodTo,omitempty"`
	CurrencyCode      string                    `json:"currencyCode"`
	ExchangeRate      decimal.Decimal           `json:"exchangeRate"`
	TaxID             *string                   `json:"taxID,omitempty"`
	SubTotal          decimal.Decimal           `json:"subTotal"`
	TaxAmount         decimal.Decimal           `json:"taxAmount"`
	DiscountAmount    decimal.Decimal           `json:"discountAmount"`
	TotalAmount       decimal.Decimal           `json:"totalAmount"`
	PaidAmount        decimal.Decimal           `json:"paidAmount"`
	BalanceAmount     decimal.Decimal           `json:"balanceAmount"`
	IsRecurring       bool                      `json:"isRecurring"`
	RecurrencePattern *domain.RecurrencePattern `json:"recurrencePattern,omitempty"`
	NextInvoiceDate   *time.Time                `json:"nextInvoiceDate,omitempty"`
	IsOverdue         bool                      `json:"isOverdue"`
	Version           int64                     `json:"version"`
	CreatedAt         time.Time                 `json:"createdAt"`
	LastUpdatedAt     time.Time                 `json:"lastUpdatedAt"`
}

// ToInvoiceResponse converts a domain.Invoice to an InvoiceResponse DTO.
// asOf drives the derived overdue flag.
func ToInvoiceResponse(inv *domain.Invoice, asOf time.Time) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:         inv.InvoiceID,
		InvoiceNo:         inv.InvoiceNo,
		Status:            inv.Status,
		InvoiceDate:       inv.InvoiceDate,
		DueDate:           inv.DueDate,
		PeriodFrom:        inv.PeriodFrom,
		PeriodTo:          inv.PeriodTo,
		CurrencyCode:      inv.CurrencyCode,
		ExchangeRate:      inv.ExchangeRate,
		TaxID:             inv.TaxID,
		SubTotal:          inv.SubTotal.Decimal(),
		TaxAmount:         inv.TaxAmount.Decimal(),
		DiscountAmount:    inv.DiscountAmount.Decimal(),
		TotalAmount:       inv.TotalAmount.Decimal(),
		PaidAmount:        inv.PaidAmount.Decimal(),
		BalanceAmount:     inv.BalanceAmount.Decimal(),
		IsRecurring:       inv.IsRecurring,
		RecurrencePattern: inv.RecurrencePattern,
		NextInvoiceDate:   inv.NextInvoiceDate,
		IsOverdue:         inv.IsOverdue(asOf),
		Version:           inv.Version,
		CreatedAt:         inv.CreatedAt,
		LastUpdatedAt:     inv.LastUpdatedAt,
	}
}

// ToListInvoiceResponse converts a slice of invoices.
func ToListInvoiceResponse(invoices []domain.Invoice, asOf time.Time) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i], asOf)
	}
	return res
}

// PaymentSummaryResponse defines the reconciliation aggregate returned to the
// caller.
type PaymentSummaryResponse struct {
	TotalPaid              decimal.Decimal `json:"totalPaid"`
	PendingAmount          decimal.Decimal `json:"pendingAmount"`
	ReceiptCount           int             `json:"receiptCount"`
	PendingCount           int             `json:"pendingCount"`
	PaymentProgressPercent decimal.Decimal `json:"paymentProgressPercent"`
}

// ToPaymentSummaryResponse converts a domain.PaymentSummary.
func ToPaymentSummaryResponse(s *domain.PaymentSummary) PaymentSummaryResponse {
	return PaymentSummaryResponse{
		TotalPaid:              s.TotalPaid.Decimal(),
		PendingAmount:          s.PendingAmount.Decimal(),
		ReceiptCount:           s.ReceiptCount,
		PendingCount:           s.PendingCount,
		PaymentProgressPercent: s.PaymentProgressPercent,
	}
}
