package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/apperrors"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	portssvc "github.com/LeaseFlowHQ/leaseflow_backend/internal/core/ports/services"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/services"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/dto"
)

// --- Mock CostCenterRepository ---
type MockCostCenterRepository struct {
	mock.Mock
}

func (m *MockCostCenterRepository) SaveCostCenter(ctx context.Context, costCenter domain.CostCenter) error {
	args := m.Called(ctx, costCenter)
	return args.Error(0)
}

func (m *MockCostCenterRepository) FindCostCenterByID(ctx context.Context, costCenterID string) (*domain.CostCenter, error) {
	args := m.Called(ctx, costCenterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostCenter), args.Error(1)
}

func (m *MockCostCenterRepository) FindCostCentersByIDs(ctx context.Context, costCenterIDs []string) (map[string]domain.CostCenter, error) {
	args := m.Called(ctx, costCenterIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.CostCenter), args.Error(1)
}

func (m *MockCostCenterRepository) ListChildren(ctx context.Context, level int, parentID *string) ([]domain.CostCenter, error) {
	args := m.Called(ctx, level, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostCenter), args.Error(1)
}

func (m *MockCostCenterRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockCostCenterRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCostCenterRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Test Suite ---
type CostCenterServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCostCenterRepository
	service  portssvc.CostCenterSvcFacade
}

func (suite *CostCenterServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCostCenterRepository)
	suite.service = services.NewCostCenterService(suite.mockRepo)
}

func strPtr(s string) *string {
	return &s
}

// --- Test Cases ---

func (suite *CostCenterServiceTestSuite) TestCreateCostCenter_Level1Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateCostCenterRequest{Level: 1, Code: "PROP", Name: "Properties"}

	suite.mockRepo.On("SaveCostCenter", ctx, mock.MatchedBy(func(cc domain.CostCenter) bool {
		return cc.Level == 1 && cc.ParentID == nil && cc.Code == "PROP" && cc.CreatedBy == creatorUserID
	})).Return(nil).Once()

	costCenter, err := suite.service.CreateCostCenter(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(costCenter)
	suite.NotEmpty(costCenter.CostCenterID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CostCenterServiceTestSuite) TestCreateCostCenter_Level1WithParentRejected() {
	ctx := context.Background()
	req := dto.CreateCostCenterRequest{ParentID: strPtr("cc-x"), Level: 1, Code: "PROP", Name: "Properties"}

	costCenter, err := suite.service.CreateCostCenter(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(costCenter)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCostCenter", mock.Anything, mock.Anything)
}

func (suite *CostCenterServiceTestSuite) TestCreateCostCenter_ChildSuccess() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateCostCenterRequest{ParentID: &parentID, Level: 2, Code: "BLDG-A", Name: "Building A"}

	suite.mockRepo.On("FindCostCenterByID", ctx, parentID).
		Return(&domain.CostCenter{CostCenterID: parentID, Level: 1}, nil).Once()
	suite.mockRepo.On("SaveCostCenter", ctx, mock.MatchedBy(func(cc domain.CostCenter) bool {
		return cc.Level == 2 && cc.ParentID != nil && *cc.ParentID == parentID
	})).Return(nil).Once()

	costCenter, err := suite.service.CreateCostCenter(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(costCenter)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CostCenterServiceTestSuite) TestCreateCostCenter_MissingParent() {
	ctx := context.Background()
	req := dto.CreateCostCenterRequest{Level: 3, Code: "FLR-1", Name: "Floor 1"}

	costCenter, err := suite.service.CreateCostCenter(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(costCenter)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
}

func (suite *CostCenterServiceTestSuite) TestCreateCostCenter_ParentNotFound() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateCostCenterRequest{ParentID: &parentID, Level: 2, Code: "BLDG-B", Name: "Building B"}

	suite.mockRepo.On("FindCostCenterByID", ctx, parentID).Return(nil, apperrors.ErrNotFound).Once()

	costCenter, err := suite.service.CreateCostCenter(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(costCenter)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
}

func (suite *CostCenterServiceTestSuite) TestCreateCostCenter_ParentWrongLevel() {
	ctx := context.Background()
	parentID := uuid.NewString()
	// Parent is level 1 but the new node claims level 3.
	req := dto.CreateCostCenterRequest{ParentID: &parentID, Level: 3, Code: "FLR-2", Name: "Floor 2"}

	suite.mockRepo.On("FindCostCenterByID", ctx, parentID).
		Return(&domain.CostCenter{CostCenterID: parentID, Level: 1}, nil).Once()

	costCenter, err := suite.service.CreateCostCenter(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(costCenter)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCostCenter", mock.Anything, mock.Anything)
}

func (suite *CostCenterServiceTestSuite) TestResolveOptions_Level1() {
	ctx := context.Background()
	expected := []domain.CostCenter{{CostCenterID: "cc-1", Level: 1}}

	suite.mockRepo.On("ListChildren", ctx, 1, (*string)(nil)).Return(expected, nil).Once()

	options, err := suite.service.ResolveOptions(ctx, 1, nil)

	suite.Require().NoError(err)
	suite.Equal(expected, options)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CostCenterServiceTestSuite) TestResolveOptions_Level2WithChain() {
	ctx := context.Background()
	parent := "cc-prop"
	expected := []domain.CostCenter{{CostCenterID: "cc-bldg", Level: 2, ParentID: &parent}}

	suite.mockRepo.On("FindCostCentersByIDs", ctx, []string{parent}).
		Return(map[string]domain.CostCenter{parent: {CostCenterID: parent, Level: 1}}, nil).Once()
	suite.mockRepo.On("ListChildren", ctx, 2, &parent).Return(expected, nil).Once()

	options, err := suite.service.ResolveOptions(ctx, 2, []string{parent})

	suite.Require().NoError(err)
	suite.Equal(expected, options)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CostCenterServiceTestSuite) TestResolveOptions_WrongChainLength() {
	ctx := context.Background()

	options, err := suite.service.ResolveOptions(ctx, 3, []string{"cc-prop"})

	suite.Require().Error(err)
	suite.Nil(options)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListChildren", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CostCenterServiceTestSuite) TestResolveOptions_BrokenChain() {
	ctx := context.Background()
	chain := []string{"cc-prop", "cc-bldg"}

	suite.mockRepo.On("FindCostCentersByIDs", ctx, chain).
		Return(map[string]domain.CostCenter{
			"cc-prop": {CostCenterID: "cc-prop", Level: 1},
			"cc-bldg": {CostCenterID: "cc-bldg", Level: 2, ParentID: strPtr("cc-other")},
		}, nil).Once()

	options, err := suite.service.ResolveOptions(ctx, 3, chain)

	suite.Require().Error(err)
	suite.Nil(options)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
}

func (suite *CostCenterServiceTestSuite) TestResolveOptions_LevelOutOfRange() {
	ctx := context.Background()

	_, err := suite.service.ResolveOptions(ctx, 5, []string{"a", "b", "c", "d"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CostCenterServiceTestSuite) TestSelect_Level1Success() {
	ctx := context.Background()
	id := "cc-prop"

	suite.mockRepo.On("FindCostCenterByID", ctx, id).
		Return(&domain.CostCenter{CostCenterID: id, Level: 1}, nil).Once()

	selection, err := suite.service.Select(ctx, domain.CostCenterSelection{}, 1, &id)

	suite.Require().NoError(err)
	suite.Require().NotNil(selection.Level1ID)
	suite.Equal(id, *selection.Level1ID)
}

func (suite *CostCenterServiceTestSuite) TestSelect_ClearsDeeperLevels() {
	ctx := context.Background()
	current := domain.CostCenterSelection{
		Level1ID: strPtr("cc-prop"),
		Level2ID: strPtr("cc-bldg"),
		Level3ID: strPtr("cc-flr"),
	}
	newL2 := "cc-bldg-2"

	suite.mockRepo.On("FindCostCenterByID", ctx, newL2).
		Return(&domain.CostCenter{CostCenterID: newL2, Level: 2, ParentID: strPtr("cc-prop")}, nil).Once()

	selection, err := suite.service.Select(ctx, current, 2, &newL2)

	suite.Require().NoError(err)
	suite.Equal(newL2, *selection.Level2ID)
	suite.Nil(selection.Level3ID)
	suite.Nil(selection.Level4ID)
}

func (suite *CostCenterServiceTestSuite) TestSelect_NotChildOfParent() {
	ctx := context.Background()
	current := domain.CostCenterSelection{Level1ID: strPtr("cc-prop")}
	stray := "cc-stray"

	suite.mockRepo.On("FindCostCenterByID", ctx, stray).
		Return(&domain.CostCenter{CostCenterID: stray, Level: 2, ParentID: strPtr("cc-other")}, nil).Once()

	_, err := suite.service.Select(ctx, current, 2, &stray)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
}

func (suite *CostCenterServiceTestSuite) TestSelect_WrongLevelNode() {
	ctx := context.Background()
	current := domain.CostCenterSelection{Level1ID: strPtr("cc-prop")}
	deep := "cc-deep"

	suite.mockRepo.On("FindCostCenterByID", ctx, deep).
		Return(&domain.CostCenter{CostCenterID: deep, Level: 3}, nil).Once()

	_, err := suite.service.Select(ctx, current, 2, &deep)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
}

func (suite *CostCenterServiceTestSuite) TestSelect_MissingParentLevel() {
	ctx := context.Background()
	id := "cc-bldg"

	_, err := suite.service.Select(ctx, domain.CostCenterSelection{}, 2, &id)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindCostCenterByID", mock.Anything, mock.Anything)
}

func (suite *CostCenterServiceTestSuite) TestSelect_ClearLevel() {
	ctx := context.Background()
	current := domain.CostCenterSelection{
		Level1ID: strPtr("cc-prop"),
		Level2ID: strPtr("cc-bldg"),
	}

	selection, err := suite.service.Select(ctx, current, 2, nil)

	suite.Require().NoError(err)
	suite.Nil(selection.Level2ID)
	suite.Equal("cc-prop", *selection.Level1ID)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindCostCenterByID", mock.Anything, mock.Anything)
}

func (suite *CostCenterServiceTestSuite) TestValidateSelection_EmptyOK() {
	ctx := context.Background()

	err := suite.service.ValidateSelection(ctx, domain.CostCenterSelection{})

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindCostCentersByIDs", mock.Anything, mock.Anything)
}

func (suite *CostCenterServiceTestSuite) TestValidateSelection_GapRejected() {
	ctx := context.Background()
	selection := domain.CostCenterSelection{Level2ID: strPtr("cc-bldg")}

	err := suite.service.ValidateSelection(ctx, selection)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
}

func (suite *CostCenterServiceTestSuite) TestValidateSelection_FullChainOK() {
	ctx := context.Background()
	selection := domain.CostCenterSelection{
		Level1ID: strPtr("cc-prop"),
		Level2ID: strPtr("cc-bldg"),
	}

	suite.mockRepo.On("FindCostCentersByIDs", ctx, []string{"cc-prop", "cc-bldg"}).
		Return(map[string]domain.CostCenter{
			"cc-prop": {CostCenterID: "cc-prop", Level: 1},
			"cc-bldg": {CostCenterID: "cc-bldg", Level: 2, ParentID: strPtr("cc-prop")},
		}, nil).Once()

	err := suite.service.ValidateSelection(ctx, selection)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CostCenterServiceTestSuite) TestValidateSelection_UnknownNode() {
	ctx := context.Background()
	selection := domain.CostCenterSelection{Level1ID: strPtr("cc-ghost")}

	suite.mockRepo.On("FindCostCentersByIDs", ctx, []string{"cc-ghost"}).
		Return(map[string]domain.CostCenter{}, nil).Once()

	err := suite.service.ValidateSelection(ctx, selection)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
}

// --- Run Suite ---
func TestCostCenterService(t *testing.T) {
	suite.Run(t, new(CostCenterServiceTestSuite))
}
