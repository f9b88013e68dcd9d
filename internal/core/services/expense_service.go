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

// expenseService manages the approval-gated expense liabilities.
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, users portssvc.UserReaderSvc) portssvc.ExpenseSvcFacade {
	return &expenseService{
		BaseService: BaseService{Users: users},
		expenseRepo: expenseRepo,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// CreateExpense registers a liability in PENDING approval state.
func (s *expenseService) CreateExpense(ctx context.Context, restaurantID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	if req.AmountGNF.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:       uuid.NewString(),
		RestaurantID:    restaurantID,
		Category:        req.Category,
		Description:     req.Description,
		AmountGNF:       req.AmountGNF,
		TotalPaidAmount: decimal.Zero,
		PaymentStatus:   domain.ExpenseUnpaid,
		ApprovalStatus:  domain.ExpensePendingApproval,
		AuditFields:     s.newAuditFields(ctx, creatorUserID, now),
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense")
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	s.LogInfo(ctx, "Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("category", expense.Category),
		slog.String("amount", expense.AmountGNF.String()))
	return &expense, nil
}

func (s *expenseService) ApproveExpense(ctx context.Context, restaurantID, expenseID, approverUserID string) (*domain.Expense, error) {
	return s.decide(ctx, restaurantID, expenseID, approverUserID, domain.ExpenseApproved)
}

func (s *expenseService) RejectExpense(ctx context.Context, restaurantID, expenseID, approverUserID string) (*domain.Expense, error) {
	return s.decide(ctx, restaurantID, expenseID, approverUserID, domain.ExpenseRejected)
}

func (s *expenseService) decide(ctx context.Context, restaurantID, expenseID, approverUserID string, status domain.ExpenseApprovalStatus) (*domain.Expense, error) {
	if _, err := s.findScoped(ctx, restaurantID, expenseID); err != nil {
		return nil, err
	}
	updated, err := s.expenseRepo.UpdateApprovalStatus(ctx, expenseID, status, approverUserID, time.Now())
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Expense approval decided",
		slog.String("expense_id", expenseID),
		slog.String("approval_status", string(status)))
	return updated, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, restaurantID, expenseID string) (*domain.Expense, error) {
	return s.findScoped(ctx, restaurantID, expenseID)
}

func (s *expenseService) ListExpenses(ctx context.Context, restaurantID string, approval *domain.ExpenseApprovalStatus) ([]domain.Expense, error) {
	expenses, err := s.expenseRepo.ListExpensesByRestaurant(ctx, restaurantID, approval)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

func (s *expenseService) ListExpensePayments(ctx context.Context, restaurantID, expenseID string) ([]domain.ExpensePayment, error) {
	if _, err := s.findScoped(ctx, restaurantID, expenseID); err != nil {
		return nil, err
	}
	payments, err := s.expenseRepo.ListPaymentsByExpense(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense payments: %w", err)
	}
	return payments, nil
}

// RecordExpensePayment pays part or all of an approved expense. The payment,
// its confirmed withdrawal bank transaction and the expense's updated totals
// are written in one repository transaction; the repository re-checks every
// bound under row lock.
func (s *expenseService) RecordExpensePayment(ctx context.Context, restaurantID, expenseID string, req dto.RecordExpensePaymentRequest, creatorUserID string) (*domain.ExpensePayment, *domain.Expense, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	method := domain.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown payment method '%s'", apperrors.ErrValidation, req.PaymentMethod)
	}

	expense, err := s.findScoped(ctx, restaurantID, expenseID)
	if err != nil {
		return nil, nil, err
	}

	// Fast failures before opening the write transaction.
	if expense.ApprovalStatus != domain.ExpenseApproved {
		return nil, nil, fmt.Errorf("%w: expense %s is %s", apperrors.ErrNotApproved, expenseID, expense.ApprovalStatus)
	}
	if expense.PaymentStatus == domain.ExpensePaid {
		return nil, nil, fmt.Errorf("%w: expense %s", apperrors.ErrAlreadyPaid, expenseID)
	}
	if req.Amount.GreaterThan(expense.RemainingAmount()) {
		return nil, nil, fmt.Errorf("%w: payment %s exceeds remaining %s",
			apperrors.ErrAmountExceedsRemaining, req.Amount.String(), expense.RemainingAmount().String())
	}

	now := time.Now()
	audit := s.newAuditFields(ctx, creatorUserID, now)
	paymentID := uuid.NewString()

	// Expense money leaving the till is a fact, not a proposal: the generated
	// withdrawal is born CONFIRMED rather than passing through PENDING.
	txn := domain.BankTransaction{
		TransactionID:    uuid.NewString(),
		RestaurantID:     restaurantID,
		Date:             now,
		Amount:           req.Amount,
		Type:             domain.Withdrawal,
		Method:           method,
		Reason:           domain.ReasonExpensePayment,
		Status:           domain.TxnConfirmed,
		ExpensePaymentID: &paymentID,
		ConfirmedAt:      &now,
		AuditFields:      audit,
	}

	payment := domain.ExpensePayment{
		PaymentID:         paymentID,
		RestaurantID:      restaurantID,
		ExpenseID:         expenseID,
		Amount:            req.Amount,
		PaymentMethod:     method,
		BankTransactionID: txn.TransactionID,
		PaymentDate:       now,
		AuditFields:       audit,
	}

	updated, err := s.expenseRepo.SaveExpensePayment(ctx, payment, txn, now)
	if err != nil {
		return nil, nil, err
	}

	s.LogInfo(ctx, "Expense payment recorded",
		slog.String("expense_id", expenseID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("bank_transaction_id", txn.TransactionID),
		slog.String("payment_status", string(updated.PaymentStatus)))
	return &payment, updated, nil
}

func (s *expenseService) findScoped(ctx context.Context, restaurantID, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.RestaurantID != restaurantID {
		return nil, apperrors.ErrNotFound
	}
	return expense, nil
}
