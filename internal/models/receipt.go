package models

import "time"

// Receipt mirrors the receipts table.
type Receipt struct {
	ReceiptID       string    `json:"receiptID"` // Primary Key (e.g., UUID)
	InvoiceID       string    `json:"invoiceID"` // FK -> Invoice.invoiceID
	ReceivedAmount  int64     `json:"receivedAmount"`
	CurrencyCode    string    `json:"currencyCode"`
	AmountPrecision int32     `json:"amountPrecision"`
	Status          string    `json:"status"`
	ReceiptDate     time.Time `json:"receiptDate"`
	Reference       string    `json:"reference"`
	Version         int64     `json:"version"`
	AuditFields
}
