package domain

import "time"

// ReceiptStatus indicates how far an incoming payment has progressed.
type ReceiptStatus string

const (
	ReceiptReceived  ReceiptStatus = "RECEIVED"
	ReceiptDeposited ReceiptStatus = "DEPOSITED"
	ReceiptCleared   ReceiptStatus = "CLEARED"
	ReceiptBounced   ReceiptStatus = "BOUNCED"
	ReceiptCancelled ReceiptStatus = "CANCELLED"
	ReceiptReversed  ReceiptStatus = "REVERSED"
)

// IsValid reports whether s is a known receipt status.
func (s ReceiptStatus) IsValid() bool {
	switch s {
	case ReceiptReceived, ReceiptDeposited, ReceiptCleared, ReceiptBounced, ReceiptCancelled, ReceiptReversed:
		return true
	}
	return false
}

// Receipt records an incoming payment against an invoice. It is owned by the
// invoice it pays; ReceivedAmount is immutable once the receipt has cleared.
type Receipt struct {
	ReceiptID      string        `json:"receiptID"` // Primary Key (e.g., UUID)
	InvoiceID      string        `json:"invoiceID"` // FK -> Invoice.invoiceID
	ReceivedAmount Money         `json:"receivedAmount"`
	Status         ReceiptStatus `json:"status"`
	ReceiptDate    time.Time     `json:"receiptDate"`
	Reference      string        `json:"reference"` // bank/cheque reference, nullable
	Version        int64         `json:"version"`
	AuditFields
}

// IsSettled reports whether the receipt's amount counts toward the invoice's
// PaidAmount. Clearing policy: only CLEARED money is settled; RECEIVED and
// DEPOSITED amounts stay pending and never reduce the balance.
func (r Receipt) IsSettled() bool {
	return r.Status == ReceiptCleared
}

// IsPending reports whether the receipt's amount counts toward the pending
// (not yet cleared) total.
func (r Receipt) IsPending() bool {
	return r.Status == ReceiptReceived || r.Status == ReceiptDeposited
}

// IsExcluded reports whether the receipt is ignored entirely by
// reconciliation.
func (r Receipt) IsExcluded() bool {
	return r.Status == ReceiptCancelled || r.Status == ReceiptBounced || r.Status == ReceiptReversed
}

// AmountMutable reports whether ReceivedAmount may still change.
func (r Receipt) AmountMutable() bool {
	return r.Status != ReceiptCleared
}
