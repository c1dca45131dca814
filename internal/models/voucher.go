package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentVoucher mirrors the payment_vouchers table. The payment-type
// specific detail fields are stored as a JSONB document alongside the
// discriminating payment_type column.
type PaymentVoucher struct {
	VoucherNo       string          `json:"voucherNo"` // Primary Key
	VoucherDate     time.Time       `json:"voucherDate"`
	Status          string          `json:"status"`
	TotalAmount     int64           `json:"totalAmount"`
	CurrencyCode    string          `json:"currencyCode"` // FK -> Currency.currencyCode
	AmountPrecision int32           `json:"amountPrecision"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	TaxID           *string         `json:"taxID"` // FK -> Tax.taxID

	PaymentType    string `json:"paymentType"`
	InstrumentJSON []byte `json:"instrumentJSON"`

	CostCenter1ID          *string `json:"costCenter1ID"`
	CostCenter2ID          *string `json:"costCenter2ID"`
	CostCenter3ID          *string `json:"costCenter3ID"`
	CostCenter4ID          *string `json:"costCenter4ID"`
	CopyCostCentersToLines bool    `json:"copyCostCentersToLines"`

	AttachmentIDs []string `json:"attachmentIDs"`
	ReversalOf    *string  `json:"reversalOf"` // FK -> PaymentVoucher.voucherNo
	Version       int64    `json:"version"`
	AuditFields
}

// VoucherLine mirrors the voucher_lines table.
type VoucherLine struct {
	LineID        string           `json:"lineID"`    // Primary Key (e.g., UUID)
	VoucherNo     string           `json:"voucherNo"` // FK -> PaymentVoucher.voucherNo
	LineNo        int              `json:"lineNo"`    // display order within the voucher
	AccountID     string           `json:"accountID"`
	Amount        int64            `json:"amount"`
	TaxPercentage *decimal.Decimal `json:"taxPercentage"`
	TaxAmount     int64            `json:"taxAmount"`

	CostCenter1ID *string `json:"costCenter1ID"`
	CostCenter2ID *string `json:"costCenter2ID"`
	CostCenter3ID *string `json:"costCenter3ID"`
	CostCenter4ID *string `json:"costCenter4ID"`

	Description string `json:"description"`
}
