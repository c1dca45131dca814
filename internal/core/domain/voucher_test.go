package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
)

func TestPaymentType_IsValid(t *testing.T) {
	valid := []domain.PaymentType{
		domain.PaymentCash, domain.PaymentCheque, domain.PaymentBankTransfer,
		domain.PaymentOnline, domain.PaymentWireTransfer,
		domain.PaymentCreditCard, domain.PaymentDebitCard,
	}
	for _, pt := range valid {
		assert.True(t, pt.IsValid(), "%s should be valid", pt)
	}
	assert.False(t, domain.PaymentType("BARTER").IsValid())
}

func TestPaymentInstrument_Validate(t *testing.T) {
	chequeDate := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		instrument domain.PaymentInstrument
		wantErr    bool
	}{
		{"cash needs nothing", domain.CashPayment{}, false},
		{
			"complete cheque",
			domain.ChequePayment{ChequeNo: "CHQ-100", ChequeDate: chequeDate, BankName: "First Bank"},
			false,
		},
		{
			"cheque without number",
			domain.ChequePayment{ChequeDate: chequeDate, BankName: "First Bank"},
			true,
		},
		{
			"cheque without date",
			domain.ChequePayment{ChequeNo: "CHQ-100", BankName: "First Bank"},
			true,
		},
		{
			"cheque without bank",
			domain.ChequePayment{ChequeNo: "CHQ-100", ChequeDate: chequeDate},
			true,
		},
		{
			"complete bank transfer",
			domain.BankTransferPayment{BankName: "First Bank", TransferRef: "TRF-1"},
			false,
		},
		{
			"bank transfer without reference",
			domain.BankTransferPayment{BankName: "First Bank"},
			true,
		},
		{
			"complete wire transfer",
			domain.WireTransferPayment{BankName: "First Bank", SwiftCode: "FRSTUS33", TransferRef: "WIRE-1"},
			false,
		},
		{
			"wire transfer without swift code",
			domain.WireTransferPayment{BankName: "First Bank", TransferRef: "WIRE-1"},
			true,
		},
		{"online with reference", domain.OnlinePayment{TransactionRef: "TXN-1"}, false},
		{"online without reference", domain.OnlinePayment{}, true},
		{
			"credit card with last four",
			domain.CardPayment{Kind: domain.PaymentCreditCard, CardLast4: "4242"},
			false,
		},
		{
			"card with short last four",
			domain.CardPayment{Kind: domain.PaymentDebitCard, CardLast4: "42"},
			true,
		},
		{
			"card with non-card kind",
			domain.CardPayment{Kind: domain.PaymentCash, CardLast4: "4242"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.instrument.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCardPayment_PaymentType(t *testing.T) {
	credit := domain.CardPayment{Kind: domain.PaymentCreditCard, CardLast4: "4242"}
	assert.Equal(t, domain.PaymentCreditCard, credit.PaymentType())

	debit := domain.CardPayment{Kind: domain.PaymentDebitCard, CardLast4: "4242"}
	assert.Equal(t, domain.PaymentDebitCard, debit.PaymentType())
}

func TestPaymentVoucher_IsFrozen(t *testing.T) {
	assert.True(t, domain.PaymentVoucher{Status: domain.VoucherPaid}.IsFrozen())
	assert.True(t, domain.PaymentVoucher{Status: domain.VoucherReversed}.IsFrozen())
	assert.False(t, domain.PaymentVoucher{Status: domain.VoucherDraft}.IsFrozen())
	assert.False(t, domain.PaymentVoucher{Status: domain.VoucherRejected}.IsFrozen())
}

func TestPaymentVoucher_IsEditable(t *testing.T) {
	assert.True(t, domain.PaymentVoucher{Status: domain.VoucherDraft}.IsEditable())
	assert.True(t, domain.PaymentVoucher{Status: domain.VoucherPending}.IsEditable())
	assert.False(t, domain.PaymentVoucher{Status: domain.VoucherPaid}.IsEditable())
	assert.False(t, domain.PaymentVoucher{Status: domain.VoucherRejected}.IsEditable())
	assert.False(t, domain.PaymentVoucher{Status: domain.VoucherCancelled}.IsEditable())
}

func TestVoucherStatus_IsValid(t *testing.T) {
	assert.True(t, domain.VoucherDraft.IsValid())
	assert.True(t, domain.VoucherReversed.IsValid())
	assert.False(t, domain.VoucherStatus("ARCHIVED").IsValid())
}
