package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fbangoura/bakery_ledger_app/internal/apperrors"
	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	portsrepo "github.com/fbangoura/bakery_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/fbangoura/bakery_ledger_app/internal/core/ports/services"
	"github.com/fbangoura/bakery_ledger_app/internal/dto"
)

// bankTransactionService provides the append-only bank transaction journal.
type bankTransactionService struct {
	BaseService
	bankRepo portsrepo.BankTransactionRepositoryFacade
}

// NewBankTransactionService creates a new bank transaction service.
func NewBankTransactionService(bankRepo portsrepo.BankTransactionRepositoryFacade, users portssvc.UserReaderSvc) portssvc.BankTransactionSvcFacade {
	return &bankTransactionService{
		BaseService: BaseService{Users: users},
		bankRepo:    bankRepo,
	}
}

var _ portssvc.BankTransactionSvcFacade = (*bankTransactionService)(nil)

// RecordTransaction validates the payload and inserts a PENDING journal row.
func (s *bankTransactionService) RecordTransaction(ctx context.Context, restaurantID string, req dto.RecordBankTransactionRequest, creatorUserID string) (*domain.BankTransaction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	txnType := domain.TransactionType(req.Type)
	if !txnType.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type '%s'", apperrors.ErrValidation, req.Type)
	}
	method := domain.PaymentMethod(req.Method)
	if !method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method '%s'", apperrors.ErrValidation, req.Method)
	}
	reason := domain.TransactionReason(req.Reason)
	if !reason.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction reason '%s'", apperrors.ErrValidation, req.Reason)
	}

	if req.SaleID != nil && req.DebtPaymentID != nil {
		return nil, fmt.Errorf("%w: a transaction may link to a sale or a debt payment, not both", apperrors.ErrValidation)
	}

	// One journal row per sale / debt payment. The database enforces this with
	// unique indexes too; checking here gives the caller a clean error.
	if req.SaleID != nil {
		existing, err := s.bankRepo.FindTransactionBySaleID(ctx, *req.SaleID)
		if err != nil && !isNotFound(err) {
			return nil, fmt.Errorf("failed to check sale linkage: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: sale %s already has a bank transaction", apperrors.ErrDuplicate, *req.SaleID)
		}
	}
	if req.DebtPaymentID != nil {
		existing, err := s.bankRepo.FindTransactionByDebtPaymentID(ctx, *req.DebtPaymentID)
		if err != nil && !isNotFound(err) {
			return nil, fmt.Errorf("failed to check debt payment linkage: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: debt payment %s already has a bank transaction", apperrors.ErrDuplicate, *req.DebtPaymentID)
		}
	}

	now := time.Now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}

	txn := domain.BankTransaction{
		TransactionID: uuid.NewString(),
		RestaurantID:  restaurantID,
		Date:          date,
		Amount:        req.Amount,
		Type:          txnType,
		Method:        method,
		Reason:        reason,
		Status:        domain.TxnPending,
		SaleID:        req.SaleID,
		DebtPaymentID: req.DebtPaymentID,
		AuditFields:   s.newAuditFields(ctx, creatorUserID, now),
	}

	if err := s.bankRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save bank transaction")
		return nil, fmt.Errorf("failed to save bank transaction: %w", err)
	}

	s.LogInfo(ctx, "Bank transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

// ConfirmTransaction transitions a PENDING transaction to CONFIRMED.
func (s *bankTransactionService) ConfirmTransaction(ctx context.Context, restaurantID, transactionID, confirmerUserID string) (*domain.BankTransaction, error) {
	txn, err := s.findScoped(ctx, restaurantID, transactionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.bankRepo.MarkTransactionConfirmed(ctx, txn.TransactionID, confirmerUserID, now); err != nil {
		return nil, err
	}

	txn.Status = domain.TxnConfirmed
	txn.ConfirmedAt = &now
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = confirmerUserID

	s.LogInfo(ctx, "Bank transaction confirmed", slog.String("transaction_id", transactionID))
	return txn, nil
}

func (s *bankTransactionService) GetTransactionByID(ctx context.Context, restaurantID, transactionID string) (*domain.BankTransaction, error) {
	return s.findScoped(ctx, restaurantID, transactionID)
}

func (s *bankTransactionService) ListTransactions(ctx context.Context, restaurantID string, from, to time.Time) ([]domain.BankTransaction, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: 'to' date precedes 'from' date", apperrors.ErrValidation)
	}
	txns, err := s.bankRepo.ListTransactionsByRestaurant(ctx, restaurantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank transactions: %w", err)
	}
	return txns, nil
}

// findScoped loads a transaction and hides rows of other restaurants.
func (s *bankTransactionService) findScoped(ctx context.Context, restaurantID, transactionID string) (*domain.BankTransaction, error) {
	txn, err := s.bankRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.RestaurantID != restaurantID {
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}
