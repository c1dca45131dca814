package dto

import (
	"time"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReceiptRequest defines the data needed to record an incoming payment
// against an invoice. Status defaults to RECEIVED when omitted.
type CreateReceiptRequest struct {
	ReceivedAmount decimal.Decimal       `json:"receivedAmount" binding:"required"`
	Status         *domain.ReceiptStatus `json:"status"`
	ReceiptDate    time.Time             `json:"receiptDate" binding:"required"`
	Reference      string                `json:"reference"`
}

// UpdateReceiptStatusRequest moves a receipt through its payment states.
type UpdateReceiptStatusRequest struct {
	Status domain.ReceiptStatus `json:"status" binding:"required"`
}

// ReceiptResponse defines the data returned for a receipt.
type ReceiptResponse struct {
	ReceiptID      string               `json:"receiptID"`
	InvoiceID      string               `json:"invoiceID"`
	ReceivedAmount decimal.Decimal      `json:"receivedAmount"`
	CurrencyCode   string               `json:"currencyCode"`
	Status         domain.ReceiptStatus `json:"status"`
	ReceiptDate    time.Time            `json:"receiptDate"`
	Reference      string               `json:"reference,omitempty"`
	Version        int64                `json:"version"`
	CreatedAt      time.Time            `json:"createdAt"`
	LastUpdatedAt  time.Time            `json:"lastUpdatedAt"`
}

// ToReceiptResponse converts a domain.Receipt to a ReceiptResponse DTO.
func ToReceiptResponse(r *domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ReceiptID:      r.ReceiptID,
		InvoiceID:      r.InvoiceID,
		ReceivedAmount: r.ReceivedAmount.Decimal(),
		CurrencyCode:   r.ReceivedAmount.CurrencyCode(),
		Status:         r.Status,
		ReceiptDate:    r.ReceiptDate,
		Reference:      r.Reference,
		Version:        r.Version,
		CreatedAt:      r.CreatedAt,
		LastUpdatedAt:  r.LastUpdatedAt,
	}
}

// ToListReceiptResponse converts a slice of receipts.
func ToListReceiptResponse(receipts []domain.Receipt) []ReceiptResponse {
	res := make([]ReceiptResponse, len(receipts))
	for i := range receipts {
		res[i] = ToReceiptResponse(&receipts[i])
	}
	return res
}
