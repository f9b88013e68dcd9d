package repositories

import (
	"context"
	"time"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
)

// ExpenseReader defines read operations for expenses and their payments.
type ExpenseReader interface {
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	ListExpensesByRestaurant(ctx context.Context, restaurantID string, approval *domain.ExpenseApprovalStatus) ([]domain.Expense, error)

	ListPaymentsByExpense(ctx context.Context, expenseID string) ([]domain.ExpensePayment, error)
}

// ExpenseWriter defines write operations for expenses.
type ExpenseWriter interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateApprovalStatus moves a PENDING expense to APPROVED or REJECTED.
	// Errors: ErrNotFound, ErrInvalidState when not pending.
	UpdateApprovalStatus(ctx context.Context, expenseID string, status domain.ExpenseApprovalStatus, approverID string, now time.Time) (*domain.Expense, error)

	// SaveExpensePayment atomically writes the generated CONFIRMED withdrawal
	// bank transaction, the expense payment row and the expense's updated
	// totals/payment status/fullyPaidAt. The expense row is re-read FOR UPDATE
	// before the bounds are validated.
	// Errors: ErrNotFound, ErrNotApproved, ErrAlreadyPaid, ErrAmountExceedsRemaining.
	SaveExpensePayment(ctx context.Context, payment domain.ExpensePayment, txn domain.BankTransaction, now time.Time) (*domain.Expense, error)
}

// ExpenseRepositoryFacade combines all expense repository interfaces.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
