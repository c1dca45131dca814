package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/apperrors"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	portssvc "github.com/LeaseFlowHQ/leaseflow_backend/internal/core/ports/services"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/services"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/dto"
)

// --- Test Suite ---
type TaxServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTaxRepository
	service  portssvc.TaxSvcFacade
}

func (suite *TaxServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTaxRepository)
	suite.service = services.NewTaxService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *TaxServiceTestSuite) TestCreateTax_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateTaxRequest{Name: "VAT 5%", RatePercent: decimal.NewFromInt(5)}

	suite.mockRepo.On("SaveTax", ctx, mock.MatchedBy(func(tax domain.Tax) bool {
		return tax.Name == "VAT 5%" && tax.RatePercent.Equal(decimal.NewFromInt(5)) &&
			!tax.IsInclusive && tax.CreatedBy == creatorUserID
	})).Return(nil).Once()

	tax, err := suite.service.CreateTax(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(tax)
	suite.NotEmpty(tax.TaxID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TaxServiceTestSuite) TestCreateTax_Inclusive() {
	ctx := context.Background()
	req := dto.CreateTaxRequest{Name: "Service Tax", RatePercent: decimal.NewFromInt(10), IsInclusive: true}

	suite.mockRepo.On("SaveTax", ctx, mock.MatchedBy(func(tax domain.Tax) bool {
		return tax.IsInclusive
	})).Return(nil).Once()

	tax, err := suite.service.CreateTax(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(tax.IsInclusive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TaxServiceTestSuite) TestCreateTax_NegativeRate() {
	ctx := context.Background()
	req := dto.CreateTaxRequest{Name: "Bad", RatePercent: decimal.NewFromInt(-1)}

	tax, err := suite.service.CreateTax(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(tax)
	suite.ErrorIs(err, apperrors.ErrInvalidRate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTax", mock.Anything, mock.Anything)
}

func (suite *TaxServiceTestSuite) TestCreateTax_SaveError() {
	ctx := context.Background()
	req := dto.CreateTaxRequest{Name: "VAT", RatePercent: decimal.NewFromInt(15)}

	suite.mockRepo.On("SaveTax", ctx, mock.AnythingOfType("domain.Tax")).Return(assert.AnError).Once()

	tax, err := suite.service.CreateTax(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(tax)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *TaxServiceTestSuite) TestGetTaxByID_Success() {
	ctx := context.Background()
	taxID := uuid.NewString()
	expected := &domain.Tax{TaxID: taxID, Name: "VAT 5%", RatePercent: decimal.NewFromInt(5)}

	suite.mockRepo.On("FindTaxByID", ctx, taxID).Return(expected, nil).Once()

	tax, err := suite.service.GetTaxByID(ctx, taxID)

	suite.Require().NoError(err)
	suite.Equal(expected, tax)
}

func (suite *TaxServiceTestSuite) TestGetTaxByID_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindTaxByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	tax, err := suite.service.GetTaxByID(ctx, "missing")

	suite.Require().Error(err)
	suite.Nil(tax)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TaxServiceTestSuite) TestListTaxes_Success() {
	ctx := context.Background()
	expected := []domain.Tax{
		{TaxID: uuid.NewString(), Name: "VAT 5%", RatePercent: decimal.NewFromInt(5)},
		{TaxID: uuid.NewString(), Name: "Zero Rated", RatePercent: decimal.Zero},
	}

	suite.mockRepo.On("ListTaxes", ctx).Return(expected, nil).Once()

	taxes, err := suite.service.ListTaxes(ctx)

	suite.Require().NoError(err)
	suite.Len(taxes, 2)
	suite.Equal(expected, taxes)
}

// --- Run Suite ---
func TestTaxService(t *testing.T) {
	suite.Run(t, new(TaxServiceTestSuite))
}
