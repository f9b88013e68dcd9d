package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	portsrepo "github.com/fbangoura/bakery_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/fbangoura/bakery_ledger_app/internal/core/ports/services"
)

// --- Mock UserReaderSvc ---

type MockUserReader struct {
	mock.Mock
}

var _ portssvc.UserReaderSvc = (*MockUserReader)(nil)

func (m *MockUserReader) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock BankTransactionRepository ---

type MockBankTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.BankTransactionRepositoryFacade = (*MockBankTransactionRepository)(nil)

func (m *MockBankTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) FindTransactionBySaleID(ctx context.Context, saleID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) FindTransactionByDebtPaymentID(ctx context.Context, debtPaymentID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, debtPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) ListTransactionsByRestaurant(ctx context.Context, restaurantID string, from, to time.Time) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, restaurantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) ListConfirmedTransactions(ctx context.Context, restaurantID string, upTo time.Time) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, restaurantID, upTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) SaveTransaction(ctx context.Context, txn domain.BankTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockBankTransactionRepository) MarkTransactionConfirmed(ctx context.Context, transactionID string, confirmedBy string, confirmedAt time.Time) error {
	args := m.Called(ctx, transactionID, confirmedBy, confirmedAt)
	return args.Error(0)
}

// --- Mock DebtRepository ---

type MockDebtRepository struct {
	mock.Mock
}

var _ portsrepo.DebtRepositoryFacade = (*MockDebtRepository)(nil)

func (m *MockDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	args := m.Called(ctx, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) ListDebtsByRestaurant(ctx context.Context, restaurantID string, status *domain.DebtStatus) ([]domain.Debt, error) {
	args := m.Called(ctx, restaurantID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) ListDebtsByCustomer(ctx context.Context, customerID string) ([]domain.Debt, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) SumOutstandingRemaining(ctx context.Context, customerID string) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockDebtRepository) CountPaymentsByDebt(ctx context.Context, debtID string) (int64, error) {
	args := m.Called(ctx, debtID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDebtRepository) ListPaymentsByDebt(ctx context.Context, debtID string) ([]domain.DebtPayment, error) {
	args := m.Called(ctx, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DebtPayment), args.Error(1)
}

func (m *MockDebtRepository) SaveDebt(ctx context.Context, debt domain.Debt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}

func (m *MockDebtRepository) SaveDebtPayment(ctx context.Context, payment domain.DebtPayment, now time.Time) (*domain.Debt, error) {
	args := m.Called(ctx, payment, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) UpdateDebtPrincipal(ctx context.Context, debtID string, newPrincipal decimal.Decimal, updatedBy string, now time.Time) (*domain.Debt, error) {
	args := m.Called(ctx, debtID, newPrincipal, updatedBy, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) WriteOffDebt(ctx context.Context, debtID string, updatedBy string, now time.Time) (*domain.Debt, error) {
	args := m.Called(ctx, debtID, updatedBy, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) DeleteDebt(ctx context.Context, debtID string) error {
	args := m.Called(ctx, debtID)
	return args.Error(0)
}

// --- Mock CustomerRepository ---

type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomersByRestaurant(ctx context.Context, restaurantID string) ([]domain.Customer, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

// --- Mock ExpenseRepository ---

type MockExpenseRepository struct {
	mock.Mock
}

var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByRestaurant(ctx context.Context, restaurantID string, approval *domain.ExpenseApprovalStatus) ([]domain.Expense, error) {
	args := m.Called(ctx, restaurantID, approval)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListPaymentsByExpense(ctx context.Context, expenseID string) ([]domain.ExpensePayment, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpensePayment), args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateApprovalStatus(ctx context.Context, expenseID string, status domain.ExpenseApprovalStatus, approverID string, now time.Time) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, status, approverID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SaveExpensePayment(ctx context.Context, payment domain.ExpensePayment, txn domain.BankTransaction, now time.Time) (*domain.Expense, error) {
	args := m.Called(ctx, payment, txn, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

// --- Mock InventoryRepository ---

type MockInventoryRepository struct {
	mock.Mock
}

var _ portsrepo.InventoryRepositoryFacade = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) FindItemByNameAndCategory(ctx context.Context, restaurantID, name, category string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, restaurantID, name, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ListItemsByRestaurant(ctx context.Context, restaurantID string) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ListMovementsByItem(ctx context.Context, itemID string) ([]domain.StockMovement, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

func (m *MockInventoryRepository) ListMovementsByProductionLog(ctx context.Context, productionLogID string) ([]domain.StockMovement, error) {
	args := m.Called(ctx, productionLogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

func (m *MockInventoryRepository) SaveItem(ctx context.Context, item domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) ApplyMovement(ctx context.Context, movement domain.StockMovement) (*domain.InventoryItem, error) {
	args := m.Called(ctx, movement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ApplyMovements(ctx context.Context, movements []domain.StockMovement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

func (m *MockInventoryRepository) ReverseProductionDeductions(ctx context.Context, restaurantID, productionLogID string) (int, error) {
	args := m.Called(ctx, restaurantID, productionLogID)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryRepository) SaveTransfer(ctx context.Context, transfer domain.InventoryTransfer, outMovement, inMovement domain.StockMovement, targetItem domain.InventoryItem) (*domain.InventoryTransfer, error) {
	args := m.Called(ctx, transfer, outMovement, inMovement, targetItem)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryTransfer), args.Error(1)
}

// --- Mock ReconciliationRepository ---

type MockReconciliationRepository struct {
	mock.Mock
}

var _ portsrepo.ReconciliationRepositoryFacade = (*MockReconciliationRepository)(nil)

func (m *MockReconciliationRepository) FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.StockReconciliation, error) {
	args := m.Called(ctx, reconciliationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockReconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) ListReconciliationsByRestaurant(ctx context.Context, restaurantID string) ([]domain.StockReconciliation, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockReconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) SaveReconciliation(ctx context.Context, recon domain.StockReconciliation) error {
	args := m.Called(ctx, recon)
	return args.Error(0)
}

func (m *MockReconciliationRepository) ApproveReconciliation(ctx context.Context, reconciliationID, approverID, approverName string, now time.Time) (*domain.StockReconciliation, error) {
	args := m.Called(ctx, reconciliationID, approverID, approverName, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockReconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) RejectReconciliation(ctx context.Context, reconciliationID, approverID, approverName string, now time.Time) (*domain.StockReconciliation, error) {
	args := m.Called(ctx, reconciliationID, approverID, approverName, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockReconciliation), args.Error(1)
}

// --- Mock RestaurantRepository ---

type MockRestaurantRepository struct {
	mock.Mock
}

var _ portsrepo.RestaurantRepositoryFacade = (*MockRestaurantRepository)(nil)

func (m *MockRestaurantRepository) SaveRestaurant(ctx context.Context, restaurant domain.Restaurant) error {
	args := m.Called(ctx, restaurant)
	return args.Error(0)
}

func (m *MockRestaurantRepository) FindRestaurantByID(ctx context.Context, restaurantID string) (*domain.Restaurant, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Restaurant), args.Error(1)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
