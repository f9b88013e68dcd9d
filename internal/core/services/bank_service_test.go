package services_test

import (
	"context"
	"testing"
	"time"

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

type BankTransactionServiceTestSuite struct {
	suite.Suite
	mockBankRepo *MockBankTransactionRepository
	mockUsers    *MockUserReader
	service      portssvc.BankTransactionSvcFacade

	restaurantID string
	userID       string
}

func (suite *BankTransactionServiceTestSuite) SetupTest() {
	suite.mockBankRepo = new(MockBankTransactionRepository)
	suite.mockUsers = new(MockUserReader)
	suite.service = services.NewBankTransactionService(suite.mockBankRepo, suite.mockUsers)

	suite.restaurantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.mockUsers.On("GetUserByID", mock.Anything, suite.userID).
		Return(&domain.User{UserID: suite.userID, Name: "Ibrahima"}, nil).Maybe()
}

func (suite *BankTransactionServiceTestSuite) validRequest() dto.RecordBankTransactionRequest {
	return dto.RecordBankTransactionRequest{
		Amount: decimal.NewFromInt(150000),
		Type:   string(domain.Deposit),
		Method: string(domain.MethodCash),
		Reason: string(domain.ReasonSalesDeposit),
	}
}

func (suite *BankTransactionServiceTestSuite) TestRecordTransaction_CreatesPending() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.mockBankRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.BankTransaction")).Return(nil).Once()

	txn, err := suite.service.RecordTransaction(ctx, suite.restaurantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.TxnPending, txn.Status)
	suite.Nil(txn.ConfirmedAt)
	suite.Equal(suite.restaurantID, txn.RestaurantID)
	suite.mockBankRepo.AssertExpectations(suite.T())
}

func (suite *BankTransactionServiceTestSuite) TestRecordTransaction_InvalidEnums() {
	ctx := context.Background()

	for _, tc := range []struct {
		name   string
		mutate func(*dto.RecordBankTransactionRequest)
	}{
		{"bad type", func(r *dto.RecordBankTransactionRequest) { r.Type = "SIDEWAYS" }},
		{"bad method", func(r *dto.RecordBankTransactionRequest) { r.Method = "CHECK" }},
		{"bad reason", func(r *dto.RecordBankTransactionRequest) { r.Reason = "LOTTERY" }},
		{"zero amount", func(r *dto.RecordBankTransactionRequest) { r.Amount = decimal.Zero }},
	} {
		req := suite.validRequest()
		tc.mutate(&req)
		_, err := suite.service.RecordTransaction(ctx, suite.restaurantID, req, suite.userID)
		suite.ErrorIs(err, apperrors.ErrValidation, tc.name)
	}
	suite.mockBankRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *BankTransactionServiceTestSuite) TestRecordTransaction_DuplicateSaleLink() {
	ctx := context.Background()
	saleID := uuid.NewString()
	req := suite.validRequest()
	req.SaleID = &saleID

	existing := &domain.BankTransaction{TransactionID: uuid.NewString(), SaleID: &saleID}
	suite.mockBankRepo.On("FindTransactionBySaleID", ctx, saleID).Return(existing, nil).Once()

	_, err := suite.service.RecordTransaction(ctx, suite.restaurantID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockBankRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *BankTransactionServiceTestSuite) TestRecordTransaction_DuplicateDebtPaymentLink() {
	ctx := context.Background()
	debtPaymentID := uuid.NewString()
	req := suite.validRequest()
	req.Reason = string(domain.ReasonDebtCollection)
	req.DebtPaymentID = &debtPaymentID

	existing := &domain.BankTransaction{TransactionID: uuid.NewString(), DebtPaymentID: &debtPaymentID}
	suite.mockBankRepo.On("FindTransactionByDebtPaymentID", ctx, debtPaymentID).Return(existing, nil).Once()

	_, err := suite.service.RecordTransaction(ctx, suite.restaurantID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *BankTransactionServiceTestSuite) TestRecordTransaction_BothLinksRejected() {
	ctx := context.Background()
	saleID := uuid.NewString()
	debtPaymentID := uuid.NewString()
	req := suite.validRequest()
	req.SaleID = &saleID
	req.DebtPaymentID = &debtPaymentID

	_, err := suite.service.RecordTransaction(ctx, suite.restaurantID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BankTransactionServiceTestSuite) TestRecordTransaction_FreshSaleLinkAllowed() {
	ctx := context.Background()
	saleID := uuid.NewString()
	req := suite.validRequest()
	req.SaleID = &saleID

	suite.mockBankRepo.On("FindTransactionBySaleID", ctx, saleID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBankRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.BankTransaction")).Return(nil).Once()

	txn, err := suite.service.RecordTransaction(ctx, suite.restaurantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(saleID, *txn.SaleID)
}

func (suite *BankTransactionServiceTestSuite) TestConfirmTransaction_Success() {
	ctx := context.Background()
	txn := &domain.BankTransaction{
		TransactionID: uuid.NewString(),
		RestaurantID:  suite.restaurantID,
		Status:        domain.TxnPending,
		Amount:        decimal.NewFromInt(5000),
		Type:          domain.Deposit,
	}

	suite.mockBankRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockBankRepo.On("MarkTransactionConfirmed", ctx, txn.TransactionID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	confirmed, err := suite.service.ConfirmTransaction(ctx, suite.restaurantID, txn.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.TxnConfirmed, confirmed.Status)
	suite.NotNil(confirmed.ConfirmedAt)
}

func (suite *BankTransactionServiceTestSuite) TestConfirmTransaction_AlreadyConfirmed() {
	ctx := context.Background()
	confirmedAt := time.Now().Add(-time.Hour)
	txn := &domain.BankTransaction{
		TransactionID: uuid.NewString(),
		RestaurantID:  suite.restaurantID,
		Status:        domain.TxnConfirmed,
		ConfirmedAt:   &confirmedAt,
	}

	suite.mockBankRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockBankRepo.On("MarkTransactionConfirmed", ctx, txn.TransactionID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrInvalidState).Once()

	_, err := suite.service.ConfirmTransaction(ctx, suite.restaurantID, txn.TransactionID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *BankTransactionServiceTestSuite) TestConfirmTransaction_NotFound() {
	ctx := context.Background()
	transactionID := uuid.NewString()

	suite.mockBankRepo.On("FindTransactionByID", ctx, transactionID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ConfirmTransaction(ctx, suite.restaurantID, transactionID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestBankTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BankTransactionServiceTestSuite))
}
