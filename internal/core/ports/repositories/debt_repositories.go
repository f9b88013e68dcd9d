package repositories

import (
	"context"
	"time"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DebtReader defines read operations for debts and their payments.
type DebtReader interface {
	FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error)

	ListDebtsByRestaurant(ctx context.Context, restaurantID string, status *domain.DebtStatus) ([]domain.Debt, error)

	ListDebtsByCustomer(ctx context.Context, customerID string) ([]domain.Debt, error)

	// SumOutstandingRemaining sums RemainingAmount over the customer's debts in
	// OUTSTANDING, PARTIALLY_PAID or OVERDUE status (the credit exposure).
	SumOutstandingRemaining(ctx context.Context, customerID string) (decimal.Decimal, error)

	CountPaymentsByDebt(ctx context.Context, debtID string) (int64, error)

	ListPaymentsByDebt(ctx context.Context, debtID string) ([]domain.DebtPayment, error)
}

// DebtWriter defines write operations for debts. The multi-step operations run
// as one database transaction each, re-reading the debt row FOR UPDATE before
// validating bounds.
type DebtWriter interface {
	SaveDebt(ctx context.Context, debt domain.Debt) error

	// SaveDebtPayment atomically inserts the payment, bumps paid/remaining and
	// re-derives the status. Returns the updated debt.
	// Errors: ErrNotFound, ErrInvalidState (written off), ErrAmountExceedsRemaining.
	SaveDebtPayment(ctx context.Context, payment domain.DebtPayment, now time.Time) (*domain.Debt, error)

	// UpdateDebtPrincipal changes the principal and recomputes remaining.
	// The status is intentionally left untouched on this path; it is only
	// re-derived when a payment is recorded.
	// Errors: ErrNotFound, ErrInvalidPrincipal.
	UpdateDebtPrincipal(ctx context.Context, debtID string, newPrincipal decimal.Decimal, updatedBy string, now time.Time) (*domain.Debt, error)

	// WriteOffDebt marks the debt WRITTEN_OFF. Errors: ErrNotFound, ErrInvalidState.
	WriteOffDebt(ctx context.Context, debtID string, updatedBy string, now time.Time) (*domain.Debt, error)

	// DeleteDebt removes a debt that has no payments. Errors: ErrNotFound, ErrHasPayments.
	DeleteDebt(ctx context.Context, debtID string) error
}

// DebtRepositoryFacade combines all debt repository interfaces.
type DebtRepositoryFacade interface {
	DebtReader
	DebtWriter
}
