package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fbangoura/bakery_ledger_app/internal/apperrors"
	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	portssvc "github.com/fbangoura/bakery_ledger_app/internal/core/ports/services"
	"github.com/fbangoura/bakery_ledger_app/internal/core/services"
	"github.com/fbangoura/bakery_ledger_app/internal/dto"
)

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockReconRepo     *MockReconciliationRepository
	mockInventoryRepo *MockInventoryRepository
	mockUsers         *MockUserReader
	service           portssvc.ReconciliationSvcFacade

	restaurantID string
	userID       string
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockReconRepo = new(MockReconciliationRepository)
	suite.mockInventoryRepo = new(MockInventoryRepository)
	suite.mockUsers = new(MockUserReader)
	suite.service = services.NewReconciliationService(suite.mockReconRepo, suite.mockInventoryRepo, suite.mockUsers)

	suite.restaurantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.mockUsers.On("GetUserByID", mock.Anything, suite.userID).
		Return(&domain.User{UserID: suite.userID, Name: "Mariama"}, nil).Maybe()
}

func (suite *ReconciliationServiceTestSuite) item(stock int64) domain.InventoryItem {
	return domain.InventoryItem{
		ItemID:       uuid.NewString(),
		RestaurantID: suite.restaurantID,
		Name:         "Butter",
		Unit:         "kg",
		CurrentStock: decimal.NewFromInt(stock),
		IsActive:     true,
	}
}

func (suite *ReconciliationServiceTestSuite) TestCreate_SnapshotsSystemStockAndVariance() {
	ctx := context.Background()
	butter := suite.item(40)
	yeast := suite.item(12)

	suite.mockInventoryRepo.On("FindItemByID", ctx, butter.ItemID).Return(&butter, nil).Once()
	suite.mockInventoryRepo.On("FindItemByID", ctx, yeast.ItemID).Return(&yeast, nil).Once()
	suite.mockReconRepo.On("SaveReconciliation", ctx, mock.AnythingOfType("domain.StockReconciliation")).Return(nil).Once()

	req := dto.CreateReconciliationRequest{
		Notes: "Month end count",
		Items: []dto.ReconciliationCountItem{
			{ItemID: butter.ItemID, PhysicalCount: decimal.NewFromInt(37)},
			{ItemID: yeast.ItemID, PhysicalCount: decimal.NewFromInt(12)},
		},
	}
	recon, err := suite.service.CreateReconciliation(ctx, suite.restaurantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReconciliationPending, recon.Status)
	suite.Require().Len(recon.Items, 2)

	suite.True(recon.Items[0].SystemStock.Equal(decimal.NewFromInt(40)))
	suite.True(recon.Items[0].Variance.Equal(decimal.NewFromInt(-3)))
	suite.True(recon.Items[1].Variance.IsZero())
	suite.False(recon.Items[0].AdjustmentApplied)
}

func (suite *ReconciliationServiceTestSuite) TestCreate_DuplicateItemRejected() {
	ctx := context.Background()
	butter := suite.item(40)

	suite.mockInventoryRepo.On("FindItemByID", ctx, butter.ItemID).Return(&butter, nil).Maybe()

	req := dto.CreateReconciliationRequest{
		Items: []dto.ReconciliationCountItem{
			{ItemID: butter.ItemID, PhysicalCount: decimal.NewFromInt(37)},
			{ItemID: butter.ItemID, PhysicalCount: decimal.NewFromInt(38)},
		},
	}
	_, err := suite.service.CreateReconciliation(ctx, suite.restaurantID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "SaveReconciliation", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestApprove_PassesApproverName() {
	ctx := context.Background()
	recon := &domain.StockReconciliation{
		ReconciliationID: uuid.NewString(),
		RestaurantID:     suite.restaurantID,
		Status:           domain.ReconciliationPending,
	}

	approved := *recon
	approved.Status = domain.ReconciliationApproved

	suite.mockReconRepo.On("FindReconciliationByID", ctx, recon.ReconciliationID).Return(recon, nil).Once()
	suite.mockReconRepo.On("ApproveReconciliation", ctx, recon.ReconciliationID, suite.userID, "Mariama", mock.AnythingOfType("time.Time")).
		Return(&approved, nil).Once()

	result, err := suite.service.Approve(ctx, suite.restaurantID, recon.ReconciliationID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReconciliationApproved, result.Status)
	suite.mockReconRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestApprove_AlreadyProcessed() {
	ctx := context.Background()
	recon := &domain.StockReconciliation{
		ReconciliationID: uuid.NewString(),
		RestaurantID:     suite.restaurantID,
		Status:           domain.ReconciliationApproved,
	}

	suite.mockReconRepo.On("FindReconciliationByID", ctx, recon.ReconciliationID).Return(recon, nil).Once()
	suite.mockReconRepo.On("ApproveReconciliation", ctx, recon.ReconciliationID, suite.userID, "Mariama", mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrAlreadyProcessed).Once()

	_, err := suite.service.Approve(ctx, suite.restaurantID, recon.ReconciliationID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrAlreadyProcessed)
}

func (suite *ReconciliationServiceTestSuite) TestReject_DoesNotTouchInventory() {
	ctx := context.Background()
	recon := &domain.StockReconciliation{
		ReconciliationID: uuid.NewString(),
		RestaurantID:     suite.restaurantID,
		Status:           domain.ReconciliationPending,
	}

	rejected := *recon
	rejected.Status = domain.ReconciliationRejected

	suite.mockReconRepo.On("FindReconciliationByID", ctx, recon.ReconciliationID).Return(recon, nil).Once()
	suite.mockReconRepo.On("RejectReconciliation", ctx, recon.ReconciliationID, suite.userID, "Mariama", mock.AnythingOfType("time.Time")).
		Return(&rejected, nil).Once()

	result, err := suite.service.Reject(ctx, suite.restaurantID, recon.ReconciliationID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReconciliationRejected, result.Status)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "ApplyMovement", mock.Anything, mock.Anything)
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
