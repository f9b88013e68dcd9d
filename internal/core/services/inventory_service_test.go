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

type InventoryServiceTestSuite struct {
	suite.Suite
	mockInventoryRepo  *MockInventoryRepository
	mockRestaurantRepo *MockRestaurantRepository
	mockUsers          *MockUserReader
	service            portssvc.InventorySvcFacade

	restaurantID string
	userID       string
	flour        domain.InventoryItem
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.mockInventoryRepo = new(MockInventoryRepository)
	suite.mockRestaurantRepo = new(MockRestaurantRepository)
	suite.mockUsers = new(MockUserReader)
	suite.service = services.NewInventoryService(suite.mockInventoryRepo, suite.mockRestaurantRepo, suite.mockUsers)

	suite.restaurantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.flour = domain.InventoryItem{
		ItemID:       uuid.NewString(),
		RestaurantID: suite.restaurantID,
		Name:         "Wheat Flour",
		Category:     "BAKING",
		Unit:         "kg",
		CurrentStock: decimal.NewFromInt(50),
		UnitCostGNF:  decimal.NewFromInt(9000),
		IsActive:     true,
	}

	suite.mockUsers.On("GetUserByID", mock.Anything, suite.userID).
		Return(&domain.User{UserID: suite.userID, Name: "Sekou"}, nil).Maybe()
}

func (suite *InventoryServiceTestSuite) TestCreateItem_DuplicateNameCategory() {
	ctx := context.Background()
	req := dto.CreateItemRequest{
		Name:        "Wheat Flour",
		Category:    "BAKING",
		Unit:        "kg",
		UnitCostGNF: decimal.NewFromInt(9000),
	}

	suite.mockInventoryRepo.On("FindItemByNameAndCategory", ctx, suite.restaurantID, "Wheat Flour", "BAKING").
		Return(&suite.flour, nil).Once()

	_, err := suite.service.CreateItem(ctx, suite.restaurantID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "SaveItem")
}

func (suite *InventoryServiceTestSuite) TestApplyMovement_NegativeQuantityAllowed() {
	ctx := context.Background()
	// A WASTE entry larger than stock passes through; the movement primitive
	// does not police availability.
	req := dto.ApplyMovementRequest{
		ItemID:   suite.flour.ItemID,
		Type:     string(domain.MovementWaste),
		Quantity: decimal.NewFromInt(-60),
		Reason:   "Rain damage",
	}

	after := suite.flour
	after.CurrentStock = decimal.NewFromInt(-10)

	suite.mockInventoryRepo.On("FindItemByID", ctx, suite.flour.ItemID).Return(&suite.flour, nil).Once()
	suite.mockInventoryRepo.On("ApplyMovement", ctx, mock.AnythingOfType("domain.StockMovement")).Return(&after, nil).Once()

	movement, item, err := suite.service.ApplyMovement(ctx, suite.restaurantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(movement.Quantity.Equal(decimal.NewFromInt(-60)))
	suite.True(item.CurrentStock.Equal(decimal.NewFromInt(-10)))
}

func (suite *InventoryServiceTestSuite) TestApplyMovement_ZeroQuantity() {
	ctx := context.Background()
	req := dto.ApplyMovementRequest{
		ItemID:   suite.flour.ItemID,
		Type:     string(domain.MovementAdjustment),
		Quantity: decimal.Zero,
	}

	_, _, err := suite.service.ApplyMovement(ctx, suite.restaurantID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InventoryServiceTestSuite) TestProductionDeductions_Success() {
	ctx := context.Background()
	sugar := domain.InventoryItem{
		ItemID:       uuid.NewString(),
		RestaurantID: suite.restaurantID,
		Name:         "Sugar",
		Unit:         "kg",
		CurrentStock: decimal.NewFromInt(20),
	}
	productionLogID := uuid.NewString()

	suite.mockInventoryRepo.On("FindItemByID", ctx, suite.flour.ItemID).Return(&suite.flour, nil).Once()
	suite.mockInventoryRepo.On("FindItemByID", ctx, sugar.ItemID).Return(&sugar, nil).Once()
	suite.mockInventoryRepo.On("ApplyMovements", ctx, mock.AnythingOfType("[]domain.StockMovement")).
		Run(func(args mock.Arguments) {
			movements := args.Get(1).([]domain.StockMovement)
			suite.Require().Len(movements, 2)
			for _, movement := range movements {
				suite.Equal(domain.MovementUsage, movement.Type)
				suite.True(movement.Quantity.IsNegative())
				suite.Require().NotNil(movement.ProductionLogID)
				suite.Equal(productionLogID, *movement.ProductionLogID)
			}
		}).
		Return(nil).Once()

	req := dto.ProductionDeductionRequest{
		ProductionLogID: productionLogID,
		Ingredients: []dto.IngredientUsage{
			{ItemID: suite.flour.ItemID, Quantity: decimal.NewFromInt(10)},
			{ItemID: sugar.ItemID, Quantity: decimal.NewFromInt(5)},
		},
	}
	movements, err := suite.service.ApplyProductionDeductions(ctx, suite.restaurantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Len(movements, 2)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestProductionDeductions_InsufficientStockFailsWholeBatch() {
	ctx := context.Background()
	sugar := domain.InventoryItem{
		ItemID:       uuid.NewString(),
		RestaurantID: suite.restaurantID,
		Name:         "Sugar",
		Unit:         "kg",
		CurrentStock: decimal.NewFromInt(2),
	}

	suite.mockInventoryRepo.On("FindItemByID", ctx, suite.flour.ItemID).Return(&suite.flour, nil).Once()
	suite.mockInventoryRepo.On("FindItemByID", ctx, sugar.ItemID).Return(&sugar, nil).Once()

	req := dto.ProductionDeductionRequest{
		ProductionLogID: uuid.NewString(),
		Ingredients: []dto.IngredientUsage{
			{ItemID: suite.flour.ItemID, Quantity: decimal.NewFromInt(10)},
			{ItemID: sugar.ItemID, Quantity: decimal.NewFromInt(5)},
		},
	}
	_, err := suite.service.ApplyProductionDeductions(ctx, suite.restaurantID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "ApplyMovements", mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestReverseProductionDeductions() {
	ctx := context.Background()
	productionLogID := uuid.NewString()

	suite.mockInventoryRepo.On("ReverseProductionDeductions", ctx, suite.restaurantID, productionLogID).
		Return(3, nil).Once()

	reversed, err := suite.service.ReverseProductionDeductions(ctx, suite.restaurantID, productionLogID)

	suite.Require().NoError(err)
	suite.Equal(3, reversed)
}

func (suite *InventoryServiceTestSuite) TestTransfer_Success() {
	ctx := context.Background()
	source := domain.Restaurant{RestaurantID: suite.restaurantID, Name: "Boulangerie Kaloum"}
	target := domain.Restaurant{RestaurantID: uuid.NewString(), Name: "Boulangerie Ratoma"}

	suite.mockInventoryRepo.On("FindItemByID", ctx, suite.flour.ItemID).Return(&suite.flour, nil).Once()
	suite.mockRestaurantRepo.On("FindRestaurantByID", ctx, source.RestaurantID).Return(&source, nil).Once()
	suite.mockRestaurantRepo.On("FindRestaurantByID", ctx, target.RestaurantID).Return(&target, nil).Once()
	suite.mockInventoryRepo.On("SaveTransfer", ctx,
		mock.AnythingOfType("domain.InventoryTransfer"),
		mock.AnythingOfType("domain.StockMovement"),
		mock.AnythingOfType("domain.StockMovement"),
		mock.AnythingOfType("domain.InventoryItem")).
		Run(func(args mock.Arguments) {
			transfer := args.Get(1).(domain.InventoryTransfer)
			outMovement := args.Get(2).(domain.StockMovement)
			inMovement := args.Get(3).(domain.StockMovement)
			template := args.Get(4).(domain.InventoryItem)

			suite.Equal(domain.MovementTransferOut, outMovement.Type)
			suite.True(outMovement.Quantity.Equal(decimal.NewFromInt(-15)))
			suite.Equal(domain.MovementTransferIn, inMovement.Type)
			suite.True(inMovement.Quantity.Equal(decimal.NewFromInt(15)))
			suite.Require().NotNil(inMovement.UnitCost)
			suite.True(inMovement.UnitCost.Equal(suite.flour.UnitCostGNF))

			suite.Contains(transfer.Reason, "Boulangerie Kaloum")
			suite.Contains(transfer.Reason, "Boulangerie Ratoma")

			// Target template starts at zero stock with the source's settings.
			suite.True(template.CurrentStock.IsZero())
			suite.Equal(suite.flour.Name, template.Name)
			suite.Equal(target.RestaurantID, template.RestaurantID)
		}).
		Return(&domain.InventoryTransfer{TransferID: uuid.NewString(), Quantity: decimal.NewFromInt(15)}, nil).Once()

	req := dto.TransferRequest{
		SourceItemID:       suite.flour.ItemID,
		TargetRestaurantID: target.RestaurantID,
		Quantity:           decimal.NewFromInt(15),
	}
	transfer, err := suite.service.Transfer(ctx, suite.restaurantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(transfer)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestTransfer_SameRestaurant() {
	ctx := context.Background()
	req := dto.TransferRequest{
		SourceItemID:       suite.flour.ItemID,
		TargetRestaurantID: suite.restaurantID,
		Quantity:           decimal.NewFromInt(5),
	}

	_, err := suite.service.Transfer(ctx, suite.restaurantID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidTransfer)
}

func (suite *InventoryServiceTestSuite) TestTransfer_InsufficientStock() {
	ctx := context.Background()

	suite.mockInventoryRepo.On("FindItemByID", ctx, suite.flour.ItemID).Return(&suite.flour, nil).Once()

	req := dto.TransferRequest{
		SourceItemID:       suite.flour.ItemID,
		TargetRestaurantID: uuid.NewString(),
		Quantity:           decimal.NewFromInt(51),
	}
	_, err := suite.service.Transfer(ctx, suite.restaurantID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "SaveTransfer",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
