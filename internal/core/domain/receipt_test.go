package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
)

func TestReceipt_ClearingPolicy(t *testing.T) {
	tests := []struct {
		status   domain.ReceiptStatus
		settled  bool
		pending  bool
		excluded bool
	}{
		{domain.ReceiptReceived, false, true, false},
		{domain.ReceiptDeposited, false, true, false},
		{domain.ReceiptCleared, true, false, false},
		{domain.ReceiptBounced, false, false, true},
		{domain.ReceiptCancelled, false, false, true},
		{domain.ReceiptReversed, false, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			r := domain.Receipt{Status: tt.status}
			assert.Equal(t, tt.settled, r.IsSettled())
			assert.Equal(t, tt.pending, r.IsPending())
			assert.Equal(t, tt.excluded, r.IsExcluded())
		})
	}
}

func TestReceipt_AmountMutable(t *testing.T) {
	assert.True(t, domain.Receipt{Status: domain.ReceiptReceived}.AmountMutable())
	assert.True(t, domain.Receipt{Status: domain.ReceiptDeposited}.AmountMutable())
	assert.False(t, domain.Receipt{Status: domain.ReceiptCleared}.AmountMutable())
}

func TestReceiptStatus_IsValid(t *testing.T) {
	assert.True(t, domain.ReceiptCleared.IsValid())
	assert.True(t, domain.ReceiptBounced.IsValid())
	assert.False(t, domain.ReceiptStatus("PENDING").IsValid())
}
