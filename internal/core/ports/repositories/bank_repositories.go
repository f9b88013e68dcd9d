package repositories

import (
	"context"
	"time"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
)

// BankTransactionReader defines read operations for the bank transaction journal.
type BankTransactionReader interface {
	// FindTransactionByID retrieves a single transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error)

	// FindTransactionBySaleID retrieves the transaction linked to a sale, if any.
	FindTransactionBySaleID(ctx context.Context, saleID string) (*domain.BankTransaction, error)

	// FindTransactionByDebtPaymentID retrieves the transaction linked to a debt payment, if any.
	FindTransactionByDebtPaymentID(ctx context.Context, debtPaymentID string) (*domain.BankTransaction, error)

	// ListTransactionsByRestaurant retrieves transactions whose date falls in [from, to], newest first.
	ListTransactionsByRestaurant(ctx context.Context, restaurantID string, from, to time.Time) ([]domain.BankTransaction, error)

	// ListConfirmedTransactions retrieves all CONFIRMED transactions with date <= upTo,
	// in ascending date order. This is the balance reconstruction input: the fold
	// needs the full ordered history, not just the query window.
	ListConfirmedTransactions(ctx context.Context, restaurantID string, upTo time.Time) ([]domain.BankTransaction, error)
}

// BankTransactionWriter defines write operations for the bank transaction journal.
type BankTransactionWriter interface {
	// SaveTransaction inserts a new transaction row.
	SaveTransaction(ctx context.Context, txn domain.BankTransaction) error

	// MarkTransactionConfirmed transitions PENDING -> CONFIRMED and stamps
	// confirmedAt. Returns apperrors.ErrInvalidState when the row exists but is
	// not PENDING, apperrors.ErrNotFound when it does not exist.
	MarkTransactionConfirmed(ctx context.Context, transactionID string, confirmedBy string, confirmedAt time.Time) error
}

// BankTransactionRepositoryFacade combines all bank transaction repository interfaces.
type BankTransactionRepositoryFacade interface {
	BankTransactionReader
	BankTransactionWriter
}
