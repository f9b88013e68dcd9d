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

type DebtServiceTestSuite struct {
	suite.Suite
	mockDebtRepo     *MockDebtRepository
	mockCustomerRepo *MockCustomerRepository
	mockUsers        *MockUserReader
	service          portssvc.DebtSvcFacade

	restaurantID string
	userID       string
	customer     domain.Customer
}

func (suite *DebtServiceTestSuite) SetupTest() {
	suite.mockDebtRepo = new(MockDebtRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockUsers = new(MockUserReader)
	suite.service = services.NewDebtService(suite.mockDebtRepo, suite.mockCustomerRepo, suite.mockUsers)

	suite.restaurantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.customer = domain.Customer{
		CustomerID:   uuid.NewString(),
		RestaurantID: suite.restaurantID,
		Name:         "Mamadou Diallo",
		IsActive:     true,
	}

	suite.mockUsers.On("GetUserByID", mock.Anything, suite.userID).
		Return(&domain.User{UserID: suite.userID, Name: "Fatou"}, nil).Maybe()
}

func (suite *DebtServiceTestSuite) newDebt(principal, paid int64, status domain.DebtStatus) *domain.Debt {
	principalDec := decimal.NewFromInt(principal)
	paidDec := decimal.NewFromInt(paid)
	return &domain.Debt{
		DebtID:          uuid.NewString(),
		RestaurantID:    suite.restaurantID,
		CustomerID:      suite.customer.CustomerID,
		PrincipalAmount: principalDec,
		PaidAmount:      paidDec,
		RemainingAmount: principalDec.Sub(paidDec),
		Status:          status,
	}
}

func (suite *DebtServiceTestSuite) TestCreateDebt_Success() {
	ctx := context.Background()
	req := dto.CreateDebtRequest{
		CustomerID:      suite.customer.CustomerID,
		PrincipalAmount: decimal.NewFromInt(500000),
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockDebtRepo.On("SaveDebt", ctx, mock.AnythingOfType("domain.Debt")).Return(nil).Once()

	debt, err := suite.service.CreateDebt(ctx, suite.restaurantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(debt)
	suite.Equal(domain.DebtOutstanding, debt.Status)
	suite.True(debt.RemainingAmount.Equal(req.PrincipalAmount))
	suite.True(debt.PaidAmount.IsZero())
	suite.Equal("Fatou", debt.CreatedByName)
	suite.mockDebtRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestCreateDebt_NonPositivePrincipal() {
	ctx := context.Background()
	req := dto.CreateDebtRequest{
		CustomerID:      suite.customer.CustomerID,
		PrincipalAmount: decimal.Zero,
	}

	_, err := suite.service.CreateDebt(ctx, suite.restaurantID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "SaveDebt", mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestCreateDebt_CreditLimitExceeded() {
	ctx := context.Background()
	limit := decimal.NewFromInt(1000000)
	customer := suite.customer
	customer.CreditLimit = &limit

	req := dto.CreateDebtRequest{
		CustomerID:      customer.CustomerID,
		PrincipalAmount: decimal.NewFromInt(400000),
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(&customer, nil).Once()
	// Existing exposure of 700k plus 400k breaks the 1M limit.
	suite.mockDebtRepo.On("SumOutstandingRemaining", ctx, customer.CustomerID).
		Return(decimal.NewFromInt(700000), nil).Once()

	_, err := suite.service.CreateDebt(ctx, suite.restaurantID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrCreditLimitExceeded)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "SaveDebt", mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestCreateDebt_WithinCreditLimit() {
	ctx := context.Background()
	limit := decimal.NewFromInt(1000000)
	customer := suite.customer
	customer.CreditLimit = &limit

	req := dto.CreateDebtRequest{
		CustomerID:      customer.CustomerID,
		PrincipalAmount: decimal.NewFromInt(300000),
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(&customer, nil).Once()
	suite.mockDebtRepo.On("SumOutstandingRemaining", ctx, customer.CustomerID).
		Return(decimal.NewFromInt(700000), nil).Once()
	suite.mockDebtRepo.On("SaveDebt", ctx, mock.AnythingOfType("domain.Debt")).Return(nil).Once()

	debt, err := suite.service.CreateDebt(ctx, suite.restaurantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(debt)
}

func (suite *DebtServiceTestSuite) TestRecordPayment_PartialThenStatusFromRepo() {
	ctx := context.Background()
	debt := suite.newDebt(100000, 0, domain.DebtOutstanding)

	updated := *debt
	updated.PaidAmount = decimal.NewFromInt(40000)
	updated.RemainingAmount = decimal.NewFromInt(60000)
	updated.Status = domain.DebtPartiallyPaid

	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()
	suite.mockDebtRepo.On("SaveDebtPayment", ctx, mock.AnythingOfType("domain.DebtPayment"), mock.AnythingOfType("time.Time")).
		Return(&updated, nil).Once()

	req := dto.RecordDebtPaymentRequest{
		Amount:        decimal.NewFromInt(40000),
		PaymentMethod: string(domain.MethodCash),
	}
	payment, result, err := suite.service.RecordPayment(ctx, suite.restaurantID, debt.DebtID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Equal(domain.DebtPartiallyPaid, result.Status)
	suite.True(payment.Amount.Equal(req.Amount))
	suite.NotEmpty(payment.ReceiptNumber)
	suite.Contains(payment.ReceiptNumber, "RCP-")
	suite.mockDebtRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestRecordPayment_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.RecordDebtPaymentRequest{
		Amount:        decimal.NewFromInt(-10),
		PaymentMethod: string(domain.MethodCash),
	}

	_, _, err := suite.service.RecordPayment(ctx, suite.restaurantID, uuid.NewString(), req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "SaveDebtPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestRecordPayment_ExceedsRemaining() {
	ctx := context.Background()
	debt := suite.newDebt(100000, 40000, domain.DebtPartiallyPaid)

	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()
	suite.mockDebtRepo.On("SaveDebtPayment", ctx, mock.AnythingOfType("domain.DebtPayment"), mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrAmountExceedsRemaining).Once()

	req := dto.RecordDebtPaymentRequest{
		Amount:        decimal.NewFromInt(60001),
		PaymentMethod: string(domain.MethodCash),
	}
	_, _, err := suite.service.RecordPayment(ctx, suite.restaurantID, debt.DebtID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrAmountExceedsRemaining)
}

func (suite *DebtServiceTestSuite) TestRecordPayment_WrittenOffDebt() {
	ctx := context.Background()
	debt := suite.newDebt(100000, 0, domain.DebtWrittenOff)

	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()
	suite.mockDebtRepo.On("SaveDebtPayment", ctx, mock.AnythingOfType("domain.DebtPayment"), mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrInvalidState).Once()

	req := dto.RecordDebtPaymentRequest{
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: string(domain.MethodCash),
	}
	_, _, err := suite.service.RecordPayment(ctx, suite.restaurantID, debt.DebtID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *DebtServiceTestSuite) TestRecordPayment_OtherRestaurantHidden() {
	ctx := context.Background()
	debt := suite.newDebt(100000, 0, domain.DebtOutstanding)
	debt.RestaurantID = uuid.NewString()

	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()

	req := dto.RecordDebtPaymentRequest{
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: string(domain.MethodCash),
	}
	_, _, err := suite.service.RecordPayment(ctx, suite.restaurantID, debt.DebtID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DebtServiceTestSuite) TestUpdatePrincipal_Success() {
	ctx := context.Background()
	debt := suite.newDebt(100000, 40000, domain.DebtPartiallyPaid)

	updated := *debt
	updated.PrincipalAmount = decimal.NewFromInt(150000)
	updated.RemainingAmount = decimal.NewFromInt(110000)

	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()
	suite.mockDebtRepo.On("UpdateDebtPrincipal", ctx, debt.DebtID, decimal.NewFromInt(150000), suite.userID, mock.AnythingOfType("time.Time")).
		Return(&updated, nil).Once()

	result, err := suite.service.UpdatePrincipal(ctx, suite.restaurantID, debt.DebtID,
		dto.UpdateDebtPrincipalRequest{PrincipalAmount: decimal.NewFromInt(150000)}, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.RemainingAmount.Equal(decimal.NewFromInt(110000)))
	// Status stays whatever it was; the principal edit path never re-derives it.
	suite.Equal(domain.DebtPartiallyPaid, result.Status)
}

func (suite *DebtServiceTestSuite) TestUpdatePrincipal_BelowPaid() {
	ctx := context.Background()
	debt := suite.newDebt(100000, 40000, domain.DebtPartiallyPaid)

	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()
	suite.mockDebtRepo.On("UpdateDebtPrincipal", ctx, debt.DebtID, decimal.NewFromInt(30000), suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrInvalidPrincipal).Once()

	_, err := suite.service.UpdatePrincipal(ctx, suite.restaurantID, debt.DebtID,
		dto.UpdateDebtPrincipalRequest{PrincipalAmount: decimal.NewFromInt(30000)}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidPrincipal)
}

func (suite *DebtServiceTestSuite) TestWriteOff_Success() {
	ctx := context.Background()
	debt := suite.newDebt(100000, 20000, domain.DebtPartiallyPaid)

	updated := *debt
	updated.Status = domain.DebtWrittenOff

	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()
	suite.mockDebtRepo.On("WriteOffDebt", ctx, debt.DebtID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(&updated, nil).Once()

	result, err := suite.service.WriteOff(ctx, suite.restaurantID, debt.DebtID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.DebtWrittenOff, result.Status)
}

func (suite *DebtServiceTestSuite) TestDeleteDebt_WithPayments() {
	ctx := context.Background()
	debt := suite.newDebt(100000, 40000, domain.DebtPartiallyPaid)

	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()
	suite.mockDebtRepo.On("CountPaymentsByDebt", ctx, debt.DebtID).Return(int64(2), nil).Once()

	err := suite.service.DeleteDebt(ctx, suite.restaurantID, debt.DebtID)

	suite.ErrorIs(err, apperrors.ErrHasPayments)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "DeleteDebt", mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestDeleteDebt_NoPayments() {
	ctx := context.Background()
	debt := suite.newDebt(100000, 0, domain.DebtOutstanding)

	suite.mockDebtRepo.On("FindDebtByID", ctx, debt.DebtID).Return(debt, nil).Once()
	suite.mockDebtRepo.On("CountPaymentsByDebt", ctx, debt.DebtID).Return(int64(0), nil).Once()
	suite.mockDebtRepo.On("DeleteDebt", ctx, debt.DebtID).Return(nil).Once()

	err := suite.service.DeleteDebt(ctx, suite.restaurantID, debt.DebtID)

	suite.NoError(err)
	suite.mockDebtRepo.AssertExpectations(suite.T())
}

func TestDebtServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DebtServiceTestSuite))
}
