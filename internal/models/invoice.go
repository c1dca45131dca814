package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice mirrors the invoices table. Monetary columns are stored as integer
// minor units; AmountPrecision records the decimal places they were written
// with so rows stay readable even if the currency's precision later changes.
type Invoice struct {
	InvoiceID    string          `json:"invoiceID"` // Primary Key (e.g., UUID)
	InvoiceNo    string          `json:"invoiceNo"` // Unique
	Status       string          `json:"status"`
	InvoiceDate  time.Time       `json:"invoiceDate"`
	DueDate      time.Time       `json:"dueDate"`
	PeriodFrom   *time.Time      `json:"periodFrom"`
	PeriodTo     *time.Time      `json:"periodTo"`
	CurrencyCode string          `json:"currencyCode"` // FK -> Currency.currencyCode
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	TaxID        *string         `json:"taxID"` // FK -> Tax.taxID

	SubTotal        int64 `json:"subTotal"`
	TaxAmount       int64 `json:"taxAmount"`
	DiscountAmount  int64 `json:"discountAmount"`
	TotalAmount     int64 `json:"totalAmount"`
	PaidAmount      int64 `json:"paidAmount"`
	BalanceAmount   int64 `json:"balanceAmount"`
	AmountPrecision int32 `json:"amountPrecision"`

	IsRecurring       bool       `json:"isRecurring"`
	RecurrencePattern *string    `json:"recurrencePattern"`
	NextInvoiceDate   *time.Time `json:"nextInvoiceDate"`

	Version int64 `json:"version"`
	AuditFields
}
