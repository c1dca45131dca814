package domain

import "github.com/shopspring/decimal"

// PaymentSummary is the aggregate view produced by reconciling an invoice's
// receipts against its total.
type PaymentSummary struct {
	// TotalPaid is the sum of settled (cleared) receipt amounts.
	TotalPaid Money `json:"totalPaid"`
	// PendingAmount is the sum of received/deposited receipt amounts that
	// have not yet cleared. Pending money never reduces the balance.
	PendingAmount Money `json:"pendingAmount"`
	// ReceiptCount counts receipts that contributed to TotalPaid.
	ReceiptCount int `json:"receiptCount"`
	// PendingCount counts receipts that contributed to PendingAmount.
	PendingCount int `json:"pendingCount"`
	// PaymentProgressPercent is totalPaid / TotalAmount * 100, zero when the
	// invoice total is zero.
	PaymentProgressPercent decimal.Decimal `json:"paymentProgressPercent"`
}
