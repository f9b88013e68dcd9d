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

type PgxBankTransactionRepository struct {
	BaseRepository
}

// newPgxBankTransactionRepository creates a new repository for the bank transaction journal.
func newPgxBankTransactionRepository(pool *pgxpool.Pool) portsrepo.BankTransactionRepositoryFacade {
	return &PgxBankTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankTransactionRepositoryFacade = (*PgxBankTransactionRepository)(nil)

const bankTransactionColumns = `
	transaction_id, restaurant_id, transaction_date, amount, transaction_type,
	payment_method, reason, status, sale_id, debt_payment_id, expense_payment_id,
	confirmed_at, created_at, created_by, created_by_name, last_updated_at, last_updated_by
`

func scanBankTransaction(row pgx.Row) (*domain.BankTransaction, error) {
	var txn domain.BankTransaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.RestaurantID,
		&txn.Date,
		&txn.Amount,
		&txn.Type,
		&txn.Method,
		&txn.Reason,
		&txn.Status,
		&txn.SaleID,
		&txn.DebtPaymentID,
		&txn.ExpensePaymentID,
		&txn.ConfirmedAt,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.CreatedByName,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan bank transaction: %w", err)
	}
	return &txn, nil
}

func (r *PgxBankTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error) {
	query := `SELECT ` + bankTransactionColumns + ` FROM bank_transactions WHERE transaction_id = $1;`
	return scanBankTransaction(r.Pool.QueryRow(ctx, query, transactionID))
}

func (r *PgxBankTransactionRepository) FindTransactionBySaleID(ctx context.Context, saleID string) (*domain.BankTransaction, error) {
	query := `SELECT ` + bankTransactionColumns + ` FROM bank_transactions WHERE sale_id = $1;`
	return scanBankTransaction(r.Pool.QueryRow(ctx, query, saleID))
}

func (r *PgxBankTransactionRepository) FindTransactionByDebtPaymentID(ctx context.Context, debtPaymentID string) (*domain.BankTransaction, error) {
	query := `SELECT ` + bankTransactionColumns + ` FROM bank_transactions WHERE debt_payment_id = $1;`
	return scanBankTransaction(r.Pool.QueryRow(ctx, query, debtPaymentID))
}

func (r *PgxBankTransactionRepository) ListTransactionsByRestaurant(ctx context.Context, restaurantID string, from, to time.Time) ([]domain.BankTransaction, error) {
	query := `SELECT ` + bankTransactionColumns + `
		FROM bank_transactions
		WHERE restaurant_id = $1 AND transaction_date >= $2 AND transaction_date <= $3
		ORDER BY transaction_date DESC, created_at DESC;`
	return r.queryTransactions(ctx, query, restaurantID, from, to)
}

// ListConfirmedTransactions feeds the balance reconstruction fold: every
// confirmed row up to the cutoff, oldest first.
func (r *PgxBankTransactionRepository) ListConfirmedTransactions(ctx context.Context, restaurantID string, upTo time.Time) ([]domain.BankTransaction, error) {
	query := `SELECT ` + bankTransactionColumns + `
		FROM bank_transactions
		WHERE restaurant_id = $1 AND status = $2 AND transaction_date <= $3
		ORDER BY transaction_date ASC, created_at ASC;`
	return r.queryTransactions(ctx, query, restaurantID, domain.TxnConfirmed, upTo)
}

func (r *PgxBankTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.BankTransaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]domain.BankTransaction, 0)
	for rows.Next() {
		txn, err := scanBankTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank transactions: %w", err)
	}
	return txns, nil
}

func (r *PgxBankTransactionRepository) SaveTransaction(ctx context.Context, txn domain.BankTransaction) error {
	query := `
		INSERT INTO bank_transactions (` + bankTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`
	_, err := r.Pool.Exec(ctx, query,
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
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction link already used", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert bank transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// MarkTransactionConfirmed performs the guarded PENDING -> CONFIRMED update.
// The status predicate sits in the UPDATE itself so two concurrent confirms
// cannot both succeed.
func (r *PgxBankTransactionRepository) MarkTransactionConfirmed(ctx context.Context, transactionID string, confirmedBy string, confirmedAt time.Time) error {
	query := `
		UPDATE bank_transactions
		SET status = $1, confirmed_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE transaction_id = $4 AND status = $5;`
	tag, err := r.Pool.Exec(ctx, query, domain.TxnConfirmed, confirmedAt, confirmedBy, transactionID, domain.TxnPending)
	if err != nil {
		return fmt.Errorf("failed to confirm bank transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing row from one that is no longer pending.
		var status domain.TransactionStatus
		err := r.Pool.QueryRow(ctx, `SELECT status FROM bank_transactions WHERE transaction_id = $1;`, transactionID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to re-check bank transaction %s: %w", transactionID, err)
		}
		return fmt.Errorf("%w: transaction is %s", apperrors.ErrInvalidState, status)
	}
	return nil
}
