package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fbangoura/bakery_ledger_app/internal/apperrors"
	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	portsrepo "github.com/fbangoura/bakery_ledger_app/internal/core/ports/repositories"
)

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expenses.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `
	expense_id, restaurant_id, category, description, amount_gnf, total_paid_amount,
	payment_status, approval_status, approved_by, approved_at, fully_paid_at,
	created_at, created_by, created_by_name, last_updated_at, last_updated_by
`

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var expense domain.Expense
	err := row.Scan(
		&expense.ExpenseID,
		&expense.RestaurantID,
		&expense.Category,
		&expense.Description,
		&expense.AmountGNF,
		&expense.TotalPaidAmount,
		&expense.PaymentStatus,
		&expense.ApprovalStatus,
		&expense.ApprovedBy,
		&expense.ApprovedAt,
		&expense.FullyPaidAt,
		&expense.CreatedAt,
		&expense.CreatedBy,
		&expense.CreatedByName,
		&expense.LastUpdatedAt,
		&expense.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}
	return &expense, nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	return scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
}

func (r *PgxExpenseRepository) ListExpensesByRestaurant(ctx context.Context, restaurantID string, approval *domain.ExpenseApprovalStatus) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE restaurant_id = $1`
	args := []any{restaurantID}
	if approval != nil {
		query += ` AND approval_status = $2`
		args = append(args, *approval)
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]domain.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}
	return expenses, nil
}

func (r *PgxExpenseRepository) ListPaymentsByExpense(ctx context.Context, expenseID string) ([]domain.ExpensePayment, error) {
	query := `
		SELECT payment_id, restaurant_id, expense_id, amount, payment_method,
		       bank_transaction_id, payment_date,
		       created_at, created_by, created_by_name, last_updated_at, last_updated_by
		FROM expense_payments
		WHERE expense_id = $1
		ORDER BY payment_date ASC, created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense payments: %w", err)
	}
	defer rows.Close()

	payments := make([]domain.ExpensePayment, 0)
	for rows.Next() {
		var p domain.ExpensePayment
		err := rows.Scan(
			&p.PaymentID,
			&p.RestaurantID,
			&p.ExpenseID,
			&p.Amount,
			&p.PaymentMethod,
			&p.BankTransactionID,
			&p.PaymentDate,
			&p.CreatedAt,
			&p.CreatedBy,
			&p.CreatedByName,
			&p.LastUpdatedAt,
			&p.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense payments: %w", err)
	}
	return payments, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`
	_, err := r.Pool.Exec(ctx, query,
		expense.ExpenseID,
		expense.RestaurantID,
		expense.Category,
		expense.Description,
		expense.AmountGNF,
		expense.TotalPaidAmount,
		expense.PaymentStatus,
		expense.ApprovalStatus,
		expense.ApprovedBy,
		expense.ApprovedAt,
		expense.FullyPaidAt,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.CreatedByName,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense %s: %w", expense.ExpenseID, err)
	}
	return nil
}

// UpdateApprovalStatus moves a pending expense to APPROVED or REJECTED.
func (r *PgxExpenseRepository) UpdateApprovalStatus(ctx context.Context, expenseID string, status domain.ExpenseApprovalStatus, approverID string, now time.Time) (*domain.Expense, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1 FOR UPDATE;`
	expense, err := scanExpense(tx.QueryRow(ctx, lockQuery, expenseID))
	if err != nil {
		return nil, err
	}
	if expense.ApprovalStatus != domain.ExpensePendingApproval {
		return nil, fmt.Errorf("%w: expense is %s", apperrors.ErrInvalidState, expense.ApprovalStatus)
	}

	expense.ApprovalStatus = status
	expense.ApprovedBy = &approverID
	expense.ApprovedAt = &now
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = approverID

	updateQuery := `
		UPDATE expenses
		SET approval_status = $1, approved_by = $2, approved_at = $3, last_updated_at = $4, last_updated_by = $5
		WHERE expense_id = $6;`
	_, err = tx.Exec(ctx, updateQuery,
		expense.ApprovalStatus, expense.ApprovedBy, expense.ApprovedAt,
		expense.LastUpdatedAt, expense.LastUpdatedBy, expense.ExpenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense approval %s: %w", expenseID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return expense, nil
}

// SaveExpensePayment writes the generated withdrawal transaction, the payment
// row and the expense's new totals in one database transaction. The expense is
// locked and re-read first so the approval gate and the bound check both run
// against current state.
func (r *PgxExpenseRepository) SaveExpensePayment(ctx context.Context, payment domain.ExpensePayment, txn domain.BankTransaction, now time.Time) (*domain.Expense, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1 FOR UPDATE;`
	expense, err := scanExpense(tx.QueryRow(ctx, lockQuery, payment.ExpenseID))
	if err != nil {
		return nil, err
	}

	if expense.ApprovalStatus != domain.ExpenseApproved {
		return nil, fmt.Errorf("%w: expense is %s", apperrors.ErrNotApproved, expense.ApprovalStatus)
	}
	if expense.PaymentStatus == domain.ExpensePaid {
		return nil, fmt.Errorf("%w: expense is fully paid", apperrors.ErrAlreadyPaid)
	}
	if payment.Amount.GreaterThan(expense.RemainingAmount()) {
		return nil, fmt.Errorf("%w: payment %s exceeds remaining %s",
			apperrors.ErrAmountExceedsRemaining, payment.Amount.String(), expense.RemainingAmount().String())
	}

	txnQuery := `
		INSERT INTO bank_transactions (` + bankTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`
	_, err = tx.Exec(ctx, txnQuery,
		txn.TransactionID,
		txn.RestaurantID,
		txn.Date,
		txn.Amount,
		txn.Type,
		txn.Method,
		txn.Reason,
		txn.Status,
		txn.SaleID,
		txn.DebtPaymentID,
		txn.ExpensePaymentID,
		txn.ConfirmedAt,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.CreatedByName,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert expense payment transaction %s: %w", txn.TransactionID, err)
	}

	paymentQuery := `
		INSERT INTO expense_payments (
			payment_id, restaurant_id, expense_id, amount, payment_method,
			bank_transaction_id, payment_date,
			created_at, created_by, created_by_name, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	_, err = tx.Exec(ctx, paymentQuery,
		payment.PaymentID,
		payment.RestaurantID,
		payment.ExpenseID,
		payment.Amount,
		payment.PaymentMethod,
		payment.BankTransactionID,
		payment.PaymentDate,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.CreatedByName,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert expense payment %s: %w", payment.PaymentID, err)
	}

	expense.ApplyPayment(payment.Amount, now)
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = payment.CreatedBy

	updateQuery := `
		UPDATE expenses
		SET total_paid_amount = $1, payment_status = $2, fully_paid_at = $3, last_updated_at = $4, last_updated_by = $5
		WHERE expense_id = $6;`
	_, err = tx.Exec(ctx, updateQuery,
		expense.TotalPaidAmount, expense.PaymentStatus, expense.FullyPaidAt,
		expense.LastUpdatedAt, expense.LastUpdatedBy, expense.ExpenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense totals %s: %w", expense.ExpenseID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return expense, nil
}
