package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/apperrors"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	portssvc "github.com/LeaseFlowHQ/leaseflow_backend/internal/core/ports/services"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/services"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/dto"
)

// --- Mock ReceiptRepository ---
type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) UpdateReceipt(ctx context.Context, receipt domain.Receipt, expectedVersion int64) error {
	args := m.Called(ctx, receipt, expectedVersion)
	return args.Error(0)
}

func (m *MockReceiptRepository) FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindReceiptsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Receipt, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockReceiptRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockReceiptRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func receipt(id string, status domain.ReceiptStatus, minorUnits int64) domain.Receipt {
	return domain.Receipt{
		ReceiptID:      id,
		ReceivedAmount: usdMinor(minorUnits),
		Status:         status,
	}
}

// --- Pure aggregation tests ---

func TestSummarizeReceipts(t *testing.T) {
	invoice := domain.Invoice{TotalAmount: usdMinor(105000)}
	receipts := []domain.Receipt{
		receipt("r1", domain.ReceiptCleared, 50000),
		receipt("r2", domain.ReceiptDeposited, 20000),
		receipt("r3", domain.ReceiptReceived, 10000),
		receipt("r4", domain.ReceiptBounced, 99900),
		receipt("r5", domain.ReceiptCancelled, 12300),
		receipt("r1", domain.ReceiptCleared, 50000), // duplicate, must not double-count
	}

	summary, err := services.SummarizeReceipts(invoice, receipts)

	require.NoError(t, err)
	assert.Equal(t, int64(50000), summary.TotalPaid.MinorUnits())
	assert.Equal(t, int64(30000), summary.PendingAmount.MinorUnits())
	assert.Equal(t, 1, summary.ReceiptCount)
	assert.Equal(t, 2, summary.PendingCount)
	// 500.00 / 1050.00 * 100 rounded to 2 places
	assert.True(t, summary.PaymentProgressPercent.Equal(decimal.RequireFromString("47.62")),
		"progress: got %s", summary.PaymentProgressPercent)
}

func TestSummarizeReceipts_ZeroTotalInvoice(t *testing.T) {
	invoice := domain.Invoice{TotalAmount: usdMinor(0)}
	receipts := []domain.Receipt{receipt("r1", domain.ReceiptCleared, 5000)}

	summary, err := services.SummarizeReceipts(invoice, receipts)

	require.NoError(t, err)
	assert.True(t, summary.PaymentProgressPercent.IsZero(),
		"progress must be zero for a zero-total invoice, got %s", summary.PaymentProgressPercent)
}

func TestApplyReceipts_StatusAutomation(t *testing.T) {
	base := domain.Invoice{
		Status:      domain.InvoiceSent,
		SubTotal:    usdMinor(105000),
		TotalAmount: usdMinor(105000),
	}

	tests := []struct {
		name        string
		status      domain.InvoiceStatus
		receipts    []domain.Receipt
		wantStatus  domain.InvoiceStatus
		wantPaid    int64
		wantBalance int64
	}{
		{
			name:        "full settlement marks paid",
			status:      domain.InvoiceSent,
			receipts:    []domain.Receipt{receipt("r1", domain.ReceiptCleared, 105000)},
			wantStatus:  domain.InvoicePaid,
			wantPaid:    105000,
			wantBalance: 0,
		},
		{
			name:        "partial settlement marks partial",
			status:      domain.InvoiceSent,
			receipts:    []domain.Receipt{receipt("r1", domain.ReceiptCleared, 40000)},
			wantStatus:  domain.InvoicePartial,
			wantPaid:    40000,
			wantBalance: 65000,
		},
		{
			name:        "pending receipts never settle",
			status:      domain.InvoiceSent,
			receipts:    []domain.Receipt{receipt("r1", domain.ReceiptDeposited, 105000)},
			wantStatus:  domain.InvoiceSent,
			wantPaid:    0,
			wantBalance: 105000,
		},
		{
			name:        "all payments bounced reverts partial to sent",
			status:      domain.InvoicePartial,
			receipts:    []domain.Receipt{receipt("r1", domain.ReceiptBounced, 40000)},
			wantStatus:  domain.InvoiceSent,
			wantPaid:    0,
			wantBalance: 105000,
		},
		{
			name:        "overpayment still marks paid",
			status:      domain.InvoiceSent,
			receipts:    []domain.Receipt{receipt("r1", domain.ReceiptCleared, 120000)},
			wantStatus:  domain.InvoicePaid,
			wantPaid:    120000,
			wantBalance: 0,
		},
		{
			name:        "cancelled invoice status untouched",
			status:      domain.InvoiceCancelled,
			receipts:    []domain.Receipt{receipt("r1", domain.ReceiptCleared, 105000)},
			wantStatus:  domain.InvoiceCancelled,
			wantPaid:    105000,
			wantBalance: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := base
			inv.Status = tt.status

			updated, _, err := services.ApplyReceipts(inv, tt.receipts)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, updated.Status)
			assert.Equal(t, tt.wantPaid, updated.PaidAmount.MinorUnits())
			assert.Equal(t, tt.wantBalance, updated.BalanceAmount.MinorUnits())
		})
	}
}

// --- Test Suite ---
type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockReceiptRepo *MockReceiptRepository
	service         portssvc.ReconciliationSvcFacade
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockReceiptRepo = new(MockReceiptRepository)
	suite.service = services.NewReconciliationService(suite.mockInvoiceRepo, suite.mockReceiptRepo)
}

// --- Test Cases ---

func (suite *ReconciliationServiceTestSuite) TestReconcileInvoice_Success() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	updaterUserID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:     invoiceID,
		Status:        domain.InvoiceSent,
		SubTotal:      usdMinor(105000),
		TotalAmount:   usdMinor(105000),
		PaidAmount:    usdMinor(0),
		BalanceAmount: usdMinor(105000),
		Version:       2,
	}
	receipts := []domain.Receipt{receipt("r1", domain.ReceiptCleared, 105000)}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(invoice, nil).Once()
	suite.mockReceiptRepo.On("FindReceiptsByInvoiceID", ctx, invoiceID).Return(receipts, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.InvoicePaid &&
			inv.PaidAmount.MinorUnits() == 105000 &&
			inv.BalanceAmount.IsZero() &&
			inv.Version == 3 &&
			inv.LastUpdatedBy == updaterUserID
	}), int64(2)).Return(nil).Once()

	updated, summary, err := suite.service.ReconcileInvoice(ctx, invoiceID, updaterUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Require().NotNil(summary)
	suite.Equal(domain.InvoicePaid, updated.Status)
	suite.Equal(int64(105000), summary.TotalPaid.MinorUnits())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockReceiptRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestReconcileInvoice_NoChangeSkipsWrite() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:     invoiceID,
		Status:        domain.InvoiceSent,
		SubTotal:      usdMinor(105000),
		TotalAmount:   usdMinor(105000),
		PaidAmount:    usdMinor(0),
		BalanceAmount: usdMinor(105000),
		Version:       2,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(invoice, nil).Once()
	suite.mockReceiptRepo.On("FindReceiptsByInvoiceID", ctx, invoiceID).Return([]domain.Receipt{}, nil).Once()

	updated, summary, err := suite.service.ReconcileInvoice(ctx, invoiceID, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Require().NotNil(summary)
	suite.Equal(int64(2), updated.Version, "unchanged reconciliation must not bump the version")
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestReconcileInvoice_RevertsToSentWhenPaymentsVanish() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:     invoiceID,
		Status:        domain.InvoicePartial,
		SubTotal:      usdMinor(105000),
		TotalAmount:   usdMinor(105000),
		PaidAmount:    usdMinor(40000),
		BalanceAmount: usdMinor(65000),
		Version:       3,
	}
	receipts := []domain.Receipt{receipt("r1", domain.ReceiptBounced, 40000)}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(invoice, nil).Once()
	suite.mockReceiptRepo.On("FindReceiptsByInvoiceID", ctx, invoiceID).Return(receipts, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.InvoiceSent &&
			inv.PaidAmount.IsZero() &&
			inv.BalanceAmount.MinorUnits() == 105000
	}), int64(3)).Return(nil).Once()

	updated, _, err := suite.service.ReconcileInvoice(ctx, invoiceID, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceSent, updated.Status)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestAddReceipt_Success() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	creatorUserID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:   invoiceID,
		Status:      domain.InvoiceSent,
		TotalAmount: usdMinor(105000),
	}
	req := dto.CreateReceiptRequest{
		ReceivedAmount: decimal.NewFromInt(500),
		ReceiptDate:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Reference:      "CHQ-42",
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(invoice, nil).Once()
	suite.mockReceiptRepo.On("SaveReceipt", ctx, mock.MatchedBy(func(r domain.Receipt) bool {
		return r.InvoiceID == invoiceID &&
			r.ReceivedAmount.MinorUnits() == 50000 &&
			r.Status == domain.ReceiptReceived &&
			r.Reference == "CHQ-42" &&
			r.Version == 1 &&
			r.CreatedBy == creatorUserID
	})).Return(nil).Once()

	saved, err := suite.service.AddReceipt(ctx, invoiceID, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(saved)
	suite.Equal(domain.ReceiptReceived, saved.Status, "status defaults to RECEIVED")
	suite.mockReceiptRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestAddReceipt_ExplicitStatus() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{InvoiceID: invoiceID, Status: domain.InvoiceSent, TotalAmount: usdMinor(105000)}
	status := domain.ReceiptCleared
	req := dto.CreateReceiptRequest{
		ReceivedAmount: decimal.NewFromInt(500),
		Status:         &status,
		ReceiptDate:    time.Now(),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(invoice, nil).Once()
	suite.mockReceiptRepo.On("SaveReceipt", ctx, mock.MatchedBy(func(r domain.Receipt) bool {
		return r.Status == domain.ReceiptCleared
	})).Return(nil).Once()

	saved, err := suite.service.AddReceipt(ctx, invoiceID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.ReceiptCleared, saved.Status)
}

func (suite *ReconciliationServiceTestSuite) TestAddReceipt_CancelledInvoiceRejected() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{InvoiceID: invoiceID, Status: domain.InvoiceCancelled, TotalAmount: usdMinor(105000)}
	req := dto.CreateReceiptRequest{ReceivedAmount: decimal.NewFromInt(500), ReceiptDate: time.Now()}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(invoice, nil).Once()

	saved, err := suite.service.AddReceipt(ctx, invoiceID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(saved)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReceiptRepo.AssertNotCalled(suite.T(), "SaveReceipt", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestAddReceipt_NonPositiveAmountRejected() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{InvoiceID: invoiceID, Status: domain.InvoiceSent, TotalAmount: usdMinor(105000)}
	req := dto.CreateReceiptRequest{ReceivedAmount: decimal.Zero, ReceiptDate: time.Now()}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(invoice, nil).Once()

	saved, err := suite.service.AddReceipt(ctx, invoiceID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(saved)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReconciliationServiceTestSuite) TestUpdateReceiptStatus_Success() {
	ctx := context.Background()
	receiptID := uuid.NewString()
	updaterUserID := uuid.NewString()
	existing := &domain.Receipt{
		ReceiptID:      receiptID,
		InvoiceID:      uuid.NewString(),
		ReceivedAmount: usdMinor(50000),
		Status:         domain.ReceiptDeposited,
		Version:        1,
	}

	suite.mockReceiptRepo.On("FindReceiptByID", ctx, receiptID).Return(existing, nil).Once()
	suite.mockReceiptRepo.On("UpdateReceipt", ctx, mock.MatchedBy(func(r domain.Receipt) bool {
		return r.Status == domain.ReceiptCleared && r.Version == 2 && r.LastUpdatedBy == updaterUserID
	}), int64(1)).Return(nil).Once()

	updated, err := suite.service.UpdateReceiptStatus(ctx, receiptID, domain.ReceiptCleared, updaterUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReceiptCleared, updated.Status)
	suite.mockReceiptRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestUpdateReceiptStatus_UnknownStatus() {
	ctx := context.Background()

	updated, err := suite.service.UpdateReceiptStatus(ctx, uuid.NewString(), domain.ReceiptStatus("WIRED"), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReceiptRepo.AssertNotCalled(suite.T(), "FindReceiptByID", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestListReceipts_Success() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	expected := []domain.Receipt{receipt("r1", domain.ReceiptReceived, 1000)}

	suite.mockReceiptRepo.On("FindReceiptsByInvoiceID", ctx, invoiceID).Return(expected, nil).Once()

	receipts, err := suite.service.ListReceipts(ctx, invoiceID)

	suite.Require().NoError(err)
	suite.Equal(expected, receipts)
}

// --- Run Suite ---
func TestReconciliationService(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
