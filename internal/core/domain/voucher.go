package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType classifies how a voucher was paid.
type PaymentType string

const (
	PaymentCash         PaymentType = "CASH"
	PaymentCheque       PaymentType = "CHEQUE"
	PaymentBankTransfer PaymentType = "BANK_TRANSFER"
	PaymentOnline       PaymentType = "ONLINE"
	PaymentWireTransfer PaymentType = "WIRE_TRANSFER"
	PaymentCreditCard   PaymentType = "CREDIT_CARD"
	PaymentDebitCard    PaymentType = "DEBIT_CARD"
)

// IsValid reports whether t is a known payment type.
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentCash, PaymentCheque, PaymentBankTransfer, PaymentOnline,
		PaymentWireTransfer, PaymentCreditCard, PaymentDebitCard:
		return true
	}
	return false
}

// PaymentInstrument carries the details that are only required for a
// particular payment type. Each variant validates its own required fields, so
// "cheque number required only for cheques" lives in the type, not in a flat
// struct of optionals.
type PaymentInstrument interface {
	PaymentType() PaymentType
	Validate() error
}

// CashPayment needs no further detail.
type CashPayment struct{}

func (CashPayment) PaymentType() PaymentType { return PaymentCash }
func (CashPayment) Validate() error          { return nil }

// ChequePayment requires the cheque number, date and drawee bank.
type ChequePayment struct {
	ChequeNo   string    `json:"chequeNo"`
	ChequeDate time.Time `json:"chequeDate"`
	BankName   string    `json:"bankName"`
}

func (ChequePayment) PaymentType() PaymentType { return PaymentCheque }

func (p ChequePayment) Validate() error {
	if p.ChequeNo == "" {
		return fmt.Errorf("cheque number is required for cheque payments")
	}
	if p.ChequeDate.IsZero() {
		return fmt.Errorf("cheque date is required for cheque payments")
	}
	if p.BankName == "" {
		return fmt.Errorf("bank name is required for cheque payments")
	}
	return nil
}

// BankTransferPayment requires the bank and a transfer reference.
type BankTransferPayment struct {
	BankName    string `json:"bankName"`
	AccountNo   string `json:"accountNo"`
	TransferRef string `json:"transferRef"`
}

func (BankTransferPayment) PaymentType() PaymentType { return PaymentBankTransfer }

func (p BankTransferPayment) Validate() error {
	if p.BankName == "" {
		return fmt.Errorf("bank name is required for bank transfers")
	}
	if p.TransferRef == "" {
		return fmt.Errorf("transfer reference is required for bank transfers")
	}
	return nil
}

// WireTransferPayment requires bank, SWIFT code and a transfer reference.
type WireTransferPayment struct {
	BankName    string `json:"bankName"`
	SwiftCode   string `json:"swiftCode"`
	TransferRef string `json:"transferRef"`
}

func (WireTransferPayment) PaymentType() PaymentType { return PaymentWireTransfer }

func (p WireTransferPayment) Validate() error {
	if p.BankName == "" {
		return fmt.Errorf("bank name is required for wire transfers")
	}
	if p.SwiftCode == "" {
		return fmt.Errorf("SWIFT code is required for wire transfers")
	}
	if p.TransferRef == "" {
		return fmt.Errorf("transfer reference is required for wire transfers")
	}
	return nil
}

// OnlinePayment requires the gateway transaction reference.
type OnlinePayment struct {
	TransactionRef string `json:"transactionRef"`
}

func (OnlinePayment) PaymentType() PaymentType { return PaymentOnline }

func (p OnlinePayment) Validate() error {
	if p.TransactionRef == "" {
		return fmt.Errorf("transaction reference is required for online payments")
	}
	return nil
}

// CardPayment covers credit and debit cards.
type CardPayment struct {
	Kind      PaymentType `json:"kind"` // CREDIT_CARD or DEBIT_CARD
	CardLast4 string      `json:"cardLast4"`
	AuthCode  string      `json:"authCode"`
}

func (p CardPayment) PaymentType() PaymentType { return p.Kind }

func (p CardPayment) Validate() error {
	if p.Kind != PaymentCreditCard && p.Kind != PaymentDebitCard {
		return fmt.Errorf("card payment kind must be CREDIT_CARD or DEBIT_CARD")
	}
	if len(p.CardLast4) != 4 {
		return fmt.Errorf("card last four digits are required for card payments")
	}
	return nil
}

// VoucherStatus indicates the lifecycle state of a payment voucher.
type VoucherStatus string

const (
	VoucherDraft     VoucherStatus = "DRAFT"
	VoucherPending   VoucherStatus = "PENDING"
	VoucherPaid      VoucherStatus = "PAID"
	VoucherRejected  VoucherStatus = "REJECTED"
	VoucherCancelled VoucherStatus = "CANCELLED"
	VoucherReversed  VoucherStatus = "REVERSED"
)

// IsValid reports whether s is a known voucher status.
func (s VoucherStatus) IsValid() bool {
	switch s {
	case VoucherDraft, VoucherPending, VoucherPaid, VoucherRejected, VoucherCancelled, VoucherReversed:
		return true
	}
	return false
}

// VoucherLine is a single allocation row of a payment voucher. It has no
// lifecycle of its own.
type VoucherLine struct {
	LineID        string           `json:"lineID"`
	AccountID     string           `json:"accountID"`
	Amount        Money            `json:"amount"`
	TaxPercentage *decimal.Decimal `json:"taxPercentage"`
	TaxAmount     Money            `json:"taxAmount"`
	// CostCenters overrides the header selection when any level is set.
	CostCenters CostCenterSelection `json:"costCenters"`
	Description string              `json:"description"`
}

// PaymentVoucher is an outgoing-payment document whose lines must sum to the
// header total.
type PaymentVoucher struct {
	VoucherNo    string          `json:"voucherNo"` // Identity, immutable, auto-generated when absent
	VoucherDate  time.Time       `json:"voucherDate"`
	Status       VoucherStatus   `json:"status"`
	TotalAmount  Money           `json:"totalAmount"`
	CurrencyCode string          `json:"currencyCode"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	TaxID        *string         `json:"taxID"`

	PaymentType PaymentType       `json:"paymentType"`
	Instrument  PaymentInstrument `json:"instrument"`

	CostCenters            CostCenterSelection `json:"costCenters"`
	CopyCostCentersToLines bool                `json:"copyCostCentersToLines"`

	Lines         []VoucherLine `json:"lines"`
	AttachmentIDs []string      `json:"attachmentIDs"` // opaque to the engine

	// ReversalOf links a reversal document back to the voucher it reverses.
	ReversalOf *string `json:"reversalOf"`
	Version    int64   `json:"version"`
	AuditFields
}

// IsFrozen reports whether the voucher forbids any mutation. A frozen voucher
// can only be superseded by a reversal document.
func (v PaymentVoucher) IsFrozen() bool {
	return v.Status == VoucherPaid || v.Status == VoucherReversed
}

// IsEditable reports whether the voucher may still be mutated in place.
func (v PaymentVoucher) IsEditable() bool {
	return v.Status == VoucherDraft || v.Status == VoucherPending
}
