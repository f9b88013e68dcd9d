package services

import (
	"context"
	"time"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	"github.com/fbangoura/bakery_ledger_app/internal/dto"
)

// BankTransactionSvcFacade exposes the bank transaction journal operations.
type BankTransactionSvcFacade interface {
	// RecordTransaction creates a PENDING transaction after validating the
	// amount, the enums and the 1:1 sale/debt-payment linkage.
	RecordTransaction(ctx context.Context, restaurantID string, req dto.RecordBankTransactionRequest, creatorUserID string) (*domain.BankTransaction, error)

	// ConfirmTransaction transitions PENDING -> CONFIRMED. Confirming an
	// already confirmed transaction fails with ErrInvalidState.
	ConfirmTransaction(ctx context.Context, restaurantID, transactionID, confirmerUserID string) (*domain.BankTransaction, error)

	GetTransactionByID(ctx context.Context, restaurantID, transactionID string) (*domain.BankTransaction, error)

	ListTransactions(ctx context.Context, restaurantID string, from, to time.Time) ([]domain.BankTransaction, error)
}
