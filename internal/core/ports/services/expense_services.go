package services

import (
	"context"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	"github.com/fbangoura/bakery_ledger_app/internal/dto"
)

// ExpenseSvcFacade exposes the expense liability operations.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, restaurantID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error)

	ApproveExpense(ctx context.Context, restaurantID, expenseID, approverUserID string) (*domain.Expense, error)

	RejectExpense(ctx context.Context, restaurantID, expenseID, approverUserID string) (*domain.Expense, error)

	GetExpenseByID(ctx context.Context, restaurantID, expenseID string) (*domain.Expense, error)

	ListExpenses(ctx context.Context, restaurantID string, approval *domain.ExpenseApprovalStatus) ([]domain.Expense, error)

	ListExpensePayments(ctx context.Context, restaurantID, expenseID string) ([]domain.ExpensePayment, error)

	// RecordExpensePayment atomically creates the CONFIRMED withdrawal bank
	// transaction, the payment row and the expense's updated totals/status.
	RecordExpensePayment(ctx context.Context, restaurantID, expenseID string, req dto.RecordExpensePaymentRequest, creatorUserID string) (*domain.ExpensePayment, *domain.Expense, error)
}
