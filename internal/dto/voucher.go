package dto

import (
	"time"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// VoucherLineRequest is one allocation row in a voucher create/update request.
// Cost-center levels are optional; when any level is set the line's own chain
// overrides the header's.
type VoucherLineRequest struct {
	AccountID     string           `json:"accountID" binding:"required"`
	Amount        decimal.Decimal  `json:"amount" binding:"required"`
	TaxPercentage *decimal.Decimal `json:"taxPercentage"`
	CostCenter1ID *string          `json:"costCenter1ID"`
	CostCenter2ID *string          `json:"costCenter2ID"`
	CostCenter3ID *string          `json:"costCenter3ID"`
	CostCenter4ID *string          `json:"costCenter4ID"`
	Description   string           `json:"description"`
}

// CreateVoucherRequest defines the data needed to create a payment voucher.
// The payment-type specific fields are flat on the wire and assembled into
// the matching instrument variant by the service; which ones are required
// depends on paymentType.
type CreateVoucherRequest struct {
	VoucherNo    string             `json:"voucherNo"` // auto-generated when empty
	VoucherDate  time.Time          `json:"voucherDate" binding:"required"`
	TotalAmount  decimal.Decimal    `json:"totalAmount" binding:"required"`
	CurrencyCode string             `json:"currencyCode" binding:"required,uppercase,len=3"`
	ExchangeRate decimal.Decimal    `json:"exchangeRate"`
	TaxID        *string            `json:"taxID"`
	PaymentType  domain.PaymentType `json:"paymentType" binding:"required"`

	ChequeNo       string     `json:"chequeNo"`
	ChequeDate     *time.Time `json:"chequeDate"`
	BankName       string     `json:"bankName"`
	AccountNo      string     `json:"accountNo"`
	TransferRef    string     `json:"transferRef"`
	SwiftCode      string     `json:"swiftCode"`
	TransactionRef string     `json:"transactionRef"`
	CardLast4      string     `json:"cardLast4"`
	AuthCode       string     `json:"authCode"`

	CostCenter1ID          *string `json:"costCenter1ID"`
	CostCenter2ID          *string `json:"costCenter2ID"`
	CostCenter3ID          *string `json:"costCenter3ID"`
	CostCenter4ID          *string `json:"costCenter4ID"`
	CopyCostCentersToLines bool    `json:"copyCostCentersToLines"`

	Lines         []VoucherLineRequest `json:"lines" binding:"required,min=1,dive"`
	AttachmentIDs []string             `json:"attachmentIDs"`
}

// UpdateVoucherRequest carries the mutable portion of a voucher for in-place
// edits while the document is Draft or Pending.
type UpdateVoucherRequest struct {
	VoucherDate  time.Time          `json:"voucherDate" binding:"required"`
	TotalAmount  decimal.Decimal    `json:"totalAmount" binding:"required"`
	TaxID        *string            `json:"taxID"`
	PaymentType  domain.PaymentType `json:"paymentType" binding:"required"`

	ChequeNo       string     `json:"chequeNo"`
	ChequeDate     *time.Time `json:"chequeDate"`
	BankName       string     `json:"bankName"`
	AccountNo      string     `json:"accountNo"`
	TransferRef    string     `json:"transferRef"`
	SwiftCode      string     `json:"swiftCode"`
	TransactionRef string     `json:"transactionRef"`
	CardLast4      string     `json:"cardLast4"`
	AuthCode       string     `json:"authCode"`

	CostCenter1ID          *string `json:"costCenter1ID"`
	CostCenter2ID          *string `json:"costCenter2ID"`
	CostCenter3ID          *string `json:"costCenter3ID"`
	CostCenter4ID          *string `json:"costCenter4ID"`
	CopyCostCentersToLines bool    `json:"copyCostCentersToLines"`

	Lines         []VoucherLineRequest `json:"lines" binding:"required,min=1,dive"`
	AttachmentIDs []string             `json:"attachmentIDs"`
}

// UpdateVoucherStatusRequest moves a voucher through its payment states.
type UpdateVoucherStatusRequest struct {
	Status domain.VoucherStatus `json:"status" binding:"required"`
}

// VoucherLineResponse defines the data returned for one voucher line.
type VoucherLineResponse struct {
	LineID        string           `json:"lineID"`
	AccountID     string           `json:"accountID"`
	Amount        decimal.Decimal  `json:"amount"`
	TaxPercentage *decimal.Decimal `json:"taxPercentage,omitempty"`
	TaxAmount     decimal.Decimal  `json:"taxAmount"`
	CostCenter1ID *string          `json:"costCenter1ID,omitempty"`
	CostCenter2ID *string          `json:"costCenter2ID,omitempty"`
	CostCenter3ID *string          `json:"costCenter3ID,omitempty"`
	CostCenter4ID *string          `json:"costCenter4ID,omitempty"`
	Description   string           `json:"description,omitempty"`
}

// VoucherResponse defines the data returned for a payment voucher.
type VoucherResponse struct {
	VoucherNo              string                `json:"voucherNo"`
	VoucherDate            time.Time             `json:"voucherDate"`
	Status                 domain.VoucherStatus  `json:"status"`
	TotalAmount            decimal.Decimal       `json:"totalAmount"`
	CurrencyCode           string                `json:"currencyCode"`
	ExchangeRate           decimal.Decimal       `json:"exchangeRate"`
	TaxID                  *string               `json:"taxID,omitempty"`
	PaymentType            domain.PaymentType    `json:"paymentType"`
	Instrument             any                   `json:"instrument,omitempty"`
	CostCenter1ID          *string               `json:"costCenter1ID,omitempty"`
	CostCenter2ID          *string               `json:"costCenter2ID,omitempty"`
	CostCenter3ID          *string               `json:"costCenter3ID,omitempty"`
	CostCenter4ID          *string               `json:"costCenter4ID,omitempty"`
	CopyCostCentersToLines bool                  `json:"copyCostCentersToLines"`
	Lines                  []VoucherLineResponse `json:"lines"`
	AttachmentIDs          []string              `json:"attachmentIDs,omitempty"`
	ReversalOf             *string               `json:"reversalOf,omitempty"`
	Version                int64                 `json:"version"`
	CreatedAt              time.Time             `json:"createdAt"`
	LastUpdatedAt          time.Time             `json:"lastUpdatedAt"`
}

// ToVoucherLineResponse converts a domain.VoucherLine.
func ToVoucherLineResponse(line *domain.VoucherLine) VoucherLineResponse {
	return VoucherLineResponse{
		LineID:        line.LineID,
		AccountID:     line.AccountID,
		Amount:        line.Amount.Decimal(),
		TaxPercentage: line.TaxPercentage,
		TaxAmount:     line.TaxAmount.Decimal(),
		CostCenter1ID: line.CostCenters.Level1ID,
		CostCenter2ID: line.CostCenters.Level2ID,
		CostCenter3ID: line.CostCenters.Level3ID,
		CostCenter4ID: line.CostCenters.Level4ID,
		Description:   line.Description,
	}
}

// ToVoucherResponse converts a domain.PaymentVoucher to a VoucherResponse DTO.
func ToVoucherResponse(v *domain.PaymentVoucher) VoucherResponse {
	lines := make([]VoucherLineResponse, len(v.Lines))
	for i := range v.Lines {
		lines[i] = ToVoucherLineResponse(&v.Lines[i])
	}
	return VoucherResponse{
		VoucherNo:              v.VoucherNo,
		VoucherDate:            v.VoucherDate,
		Status:                 v.Status,
		TotalAmount:            v.TotalAmount.Decimal(),
		CurrencyCode:           v.CurrencyCode,
		ExchangeRate:           v.ExchangeRate,
		TaxID:                  v.TaxID,
		PaymentType:            v.PaymentType,
		Instrument:             v.Instrument,
		CostCenter1ID:          v.CostCenters.Level1ID,
		CostCenter2ID:          v.CostCenters.Level2ID,
		CostCenter3ID:          v.CostCenters.Level3ID,
		CostCenter4ID:          v.CostCenters.Level4ID,
		CopyCostCentersToLines: v.CopyCostCentersToLines,
		Lines:                  lines,
		AttachmentIDs:          v.AttachmentIDs,
		ReversalOf:             v.ReversalOf,
		Version:                v.Version,
		CreatedAt:              v.CreatedAt,
		LastUpdatedAt:          v.LastUpdatedAt,
	}
}

// ToListVoucherResponse converts a slice of vouchers.
func ToListVoucherResponse(vouchers []domain.PaymentVoucher) []VoucherResponse {
	res := make([]VoucherResponse, len(vouchers))
	for i := range vouchers {
		res[i] = ToVoucherResponse(&vouchers[i])
	}
	return res
}
