package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fbangoura/bakery_ledger_app/internal/apperrors"
	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	portsrepo "github.com/fbangoura/bakery_ledger_app/internal/core/ports/repositories"
)

type PgxDebtRepository struct {
	BaseRepository
}

// newPgxDebtRepository creates a new repository for debts and debt payments.
func newPgxDebtRepository(pool *pgxpool.Pool) portsrepo.DebtRepositoryFacade {
	return &PgxDebtRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DebtRepositoryFacade = (*PgxDebtRepository)(nil)

const debtColumns = `
	debt_id, restaurant_id, customer_id, sale_id, principal_amount, paid_amount,
	remaining_amount, due_date, status, notes,
	created_at, created_by, created_by_name, last_updated_at, last_updated_by
`

func scanDebt(row pgx.Row) (*domain.Debt, error) {
	var debt domain.Debt
	err := row.Scan(
		&debt.DebtID,
		&debt.RestaurantID,
		&debt.CustomerID,
		&debt.SaleID,
		&debt.PrincipalAmount,
		&debt.PaidAmount,
		&debt.RemainingAmount,
		&debt.DueDate,
		&debt.Status,
		&debt.Notes,
		&debt.CreatedAt,
		&debt.CreatedBy,
		&debt.CreatedByName,
		&debt.LastUpdatedAt,
		&debt.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan debt: %w", err)
	}
	return &debt, nil
}

func (r *PgxDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE debt_id = $1;`
	return scanDebt(r.Pool.QueryRow(ctx, query, debtID))
}

func (r *PgxDebtRepository) ListDebtsByRestaurant(ctx context.Context, restaurantID string, status *domain.DebtStatus) ([]domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE restaurant_id = $1`
	args := []any{restaurantID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts: %w", err)
	}
	defer rows.Close()
	return collectDebts(rows)
}

func (r *PgxDebtRepository) ListDebtsByCustomer(ctx context.Context, customerID string) ([]domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE customer_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts: %w", err)
	}
	defer rows.Close()
	return collectDebts(rows)
}

func collectDebts(rows pgx.Rows) ([]domain.Debt, error) {
	debts := make([]domain.Debt, 0)
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, *debt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debts: %w", err)
	}
	return debts, nil
}

// SumOutstandingRemaining is the customer's current credit exposure.
func (r *PgxDebtRepository) SumOutstandingRemaining(ctx context.Context, customerID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(remaining_amount), 0)
		FROM debts
		WHERE customer_id = $1 AND status = ANY($2);`
	statuses := make([]string, len(domain.OutstandingDebtStatuses))
	for i, s := range domain.OutstandingDebtStatuses {
		statuses[i] = string(s)
	}

	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, customerID, statuses).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum outstanding debts: %w", err)
	}
	return sum, nil
}

func (r *PgxDebtRepository) CountPaymentsByDebt(ctx context.Context, debtID string) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM debt_payments WHERE debt_id = $1;`, debtID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count debt payments: %w", err)
	}
	return count, nil
}

func (r *PgxDebtRepository) ListPaymentsByDebt(ctx context.Context, debtID string) ([]domain.DebtPayment, error) {
	query := `
		SELECT payment_id, restaurant_id, debt_id, customer_id, amount, payment_method,
		       payment_date, receipt_number,
		       created_at, created_by, created_by_name, last_updated_at, last_updated_by
		FROM debt_payments
		WHERE debt_id = $1
		ORDER BY payment_date ASC, created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, debtID)
	if err != nil {
		return nil, fmt.Errorf("failed to query debt payments: %w", err)
	}
	defer rows.Close()

	payments := make([]domain.DebtPayment, 0)
	for rows.Next() {
		var p domain.DebtPayment
		err := rows.Scan(
			&p.PaymentID,
			&p.RestaurantID,
			&p.DebtID,
			&p.CustomerID,
			&p.Amount,
			&p.PaymentMethod,
			&p.PaymentDate,
			&p.ReceiptNumber,
			&p.CreatedAt,
			&p.CreatedBy,
			&p.CreatedByName,
			&p.LastUpdatedAt,
			&p.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debt payments: %w", err)
	}
	return payments, nil
}

func (r *PgxDebtRepository) SaveDebt(ctx context.Context, debt domain.Debt) error {
	query := `
		INSERT INTO debts (` + debtColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`
	_, err := r.Pool.Exec(ctx, query,
		debt.DebtID,
		debt.RestaurantID,
		debt.CustomerID,
		debt.SaleID,
		debt.PrincipalAmount,
		debt.PaidAmount,
		debt.RemainingAmount,
		debt.DueDate,
		debt.Status,
		debt.Notes,
		debt.CreatedAt,
		debt.CreatedBy,
		debt.CreatedByName,
		debt.LastUpdatedAt,
		debt.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert debt %s: %w", debt.DebtID, err)
	}
	return nil
}

// SaveDebtPayment inserts the payment and moves the debt's totals and status
// in one database transaction. The debt row is locked and re-read first, so
// the bound check always runs against the current remaining amount.
func (r *PgxDebtRepository) SaveDebtPayment(ctx context.Context, payment domain.DebtPayment, now time.Time) (*domain.Debt, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + debtColumns + ` FROM debts WHERE debt_id = $1 FOR UPDATE;`
	debt, err := scanDebt(tx.QueryRow(ctx, lockQuery, payment.DebtID))
	if err != nil {
		return nil, err
	}

	if debt.Status == domain.DebtWrittenOff {
		return nil, fmt.Errorf("%w: debt is written off", apperrors.ErrInvalidState)
	}
	if payment.Amount.GreaterThan(debt.RemainingAmount) {
		return nil, fmt.Errorf("%w: payment %s exceeds remaining %s",
			apperrors.ErrAmountExceedsRemaining, payment.Amount.String(), debt.RemainingAmount.String())
	}

	insertQuery := `
		INSERT INTO debt_payments (
			payment_id, restaurant_id, debt_id, customer_id, amount, payment_method,
			payment_date, receipt_number,
			created_at, created_by, created_by_name, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`
	_, err = tx.Exec(ctx, insertQuery,
		payment.PaymentID,
		payment.RestaurantID,
		payment.DebtID,
		payment.CustomerID,
		payment.Amount,
		payment.PaymentMethod,
		payment.PaymentDate,
		payment.ReceiptNumber,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.CreatedByName,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert debt payment %s: %w", payment.PaymentID, err)
	}

	debt.PaidAmount = debt.PaidAmount.Add(payment.Amount)
	debt.RemainingAmount = debt.PrincipalAmount.Sub(debt.PaidAmount)
	debt.Status = domain.DeriveDebtStatus(debt.PrincipalAmount, debt.PaidAmount, debt.DueDate, now)
	debt.LastUpdatedAt = now
	debt.LastUpdatedBy = payment.CreatedBy

	updateQuery := `
		UPDATE debts
		SET paid_amount = $1, remaining_amount = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE debt_id = $6;`
	_, err = tx.Exec(ctx, updateQuery,
		debt.PaidAmount, debt.RemainingAmount, debt.Status, debt.LastUpdatedAt, debt.LastUpdatedBy, debt.DebtID)
	if err != nil {
		return nil, fmt.Errorf("failed to update debt %s: %w", debt.DebtID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return debt, nil
}

// UpdateDebtPrincipal changes the principal and recomputes remaining under
// lock. The status column is untouched on this path.
func (r *PgxDebtRepository) UpdateDebtPrincipal(ctx context.Context, debtID string, newPrincipal decimal.Decimal, updatedBy string, now time.Time) (*domain.Debt, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + debtColumns + ` FROM debts WHERE debt_id = $1 FOR UPDATE;`
	debt, err := scanDebt(tx.QueryRow(ctx, lockQuery, debtID))
	if err != nil {
		return nil, err
	}

	if newPrincipal.LessThan(debt.PaidAmount) {
		return nil, fmt.Errorf("%w: new principal %s is below paid %s",
			apperrors.ErrInvalidPrincipal, newPrincipal.String(), debt.PaidAmount.String())
	}

	debt.PrincipalAmount = newPrincipal
	debt.RemainingAmount = newPrincipal.Sub(debt.PaidAmount)
	debt.LastUpdatedAt = now
	debt.LastUpdatedBy = updatedBy

	updateQuery := `
		UPDATE debts
		SET principal_amount = $1, remaining_amount = $2, last_updated_at = $3, last_updated_by = $4
		WHERE debt_id = $5;`
	_, err = tx.Exec(ctx, updateQuery,
		debt.PrincipalAmount, debt.RemainingAmount, debt.LastUpdatedAt, debt.LastUpdatedBy, debt.DebtID)
	if err != nil {
		return nil, fmt.Errorf("failed to update debt principal %s: %w", debtID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return debt, nil
}

func (r *PgxDebtRepository) WriteOffDebt(ctx context.Context, debtID string, updatedBy string, now time.Time) (*domain.Debt, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + debtColumns + ` FROM debts WHERE debt_id = $1 FOR UPDATE;`
	debt, err := scanDebt(tx.QueryRow(ctx, lockQuery, debtID))
	if err != nil {
		return nil, err
	}
	if debt.Status == domain.DebtWrittenOff {
		return nil, fmt.Errorf("%w: debt is already written off", apperrors.ErrInvalidState)
	}

	debt.Status = domain.DebtWrittenOff
	debt.LastUpdatedAt = now
	debt.LastUpdatedBy = updatedBy

	updateQuery := `UPDATE debts SET status = $1, last_updated_at = $2, last_updated_by = $3 WHERE debt_id = $4;`
	if _, err := tx.Exec(ctx, updateQuery, debt.Status, debt.LastUpdatedAt, debt.LastUpdatedBy, debt.DebtID); err != nil {
		return nil, fmt.Errorf("failed to write off debt %s: %w", debtID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return debt, nil
}

// DeleteDebt removes a debt with no payments. The payment count check runs in
// the same transaction as the delete.
func (r *PgxDebtRepository) DeleteDebt(ctx context.Context, debtID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + debtColumns + ` FROM debts WHERE debt_id = $1 FOR UPDATE;`
	if _, err := scanDebt(tx.QueryRow(ctx, lockQuery, debtID)); err != nil {
		return err
	}

	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM debt_payments WHERE debt_id = $1;`, debtID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count debt payments: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %d payment(s) recorded", apperrors.ErrHasPayments, count)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM debts WHERE debt_id = $1;`, debtID); err != nil {
		return fmt.Errorf("failed to delete debt %s: %w", debtID, err)
	}

	return r.Commit(ctx, tx)
}
