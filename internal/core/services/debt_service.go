package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fbangoura/bakery_ledger_app/internal/apperrors"
	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	portsrepo "github.com/fbangoura/bakery_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/fbangoura/bakery_ledger_app/internal/core/ports/services"
	"github.com/fbangoura/bakery_ledger_app/internal/dto"
)

// debtService manages customer receivables and their payments.
type debtService struct {
	BaseService
	debtRepo     portsrepo.DebtRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewDebtService creates a new debt service.
func NewDebtService(debtRepo portsrepo.DebtRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade, users portssvc.UserReaderSvc) portssvc.DebtSvcFacade {
	return &debtService{
		BaseService:  BaseService{Users: users},
		debtRepo:     debtRepo,
		customerRepo: customerRepo,
	}
}

var _ portssvc.DebtSvcFacade = (*debtService)(nil)

// CreateDebt opens a receivable. When the customer has a credit limit, the new
// principal plus the customer's outstanding exposure must stay within it.
func (s *debtService) CreateDebt(ctx context.Context, restaurantID string, req dto.CreateDebtRequest, creatorUserID string) (*domain.Debt, error) {
	if req.PrincipalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: principal amount must be positive", apperrors.ErrValidation)
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer.RestaurantID != restaurantID {
		return nil, apperrors.ErrNotFound
	}

	if customer.CreditLimit != nil {
		exposure, err := s.debtRepo.SumOutstandingRemaining(ctx, customer.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("failed to compute credit exposure: %w", err)
		}
		if exposure.Add(req.PrincipalAmount).GreaterThan(*customer.CreditLimit) {
			return nil, fmt.Errorf("%w: outstanding %s plus new debt %s exceeds limit %s",
				apperrors.ErrCreditLimitExceeded, exposure.String(), req.PrincipalAmount.String(), customer.CreditLimit.String())
		}
	}

	now := time.Now()
	debt := domain.Debt{
		DebtID:          uuid.NewString(),
		RestaurantID:    restaurantID,
		CustomerID:      req.CustomerID,
		SaleID:          req.SaleID,
		PrincipalAmount: req.PrincipalAmount,
		PaidAmount:      decimal.Zero,
		RemainingAmount: req.PrincipalAmount,
		DueDate:         req.DueDate,
		Status:          domain.DebtOutstanding,
		Notes:           req.Notes,
		AuditFields:     s.newAuditFields(ctx, creatorUserID, now),
	}

	if err := s.debtRepo.SaveDebt(ctx, debt); err != nil {
		s.LogError(ctx, err, "Failed to save debt")
		return nil, fmt.Errorf("failed to save debt: %w", err)
	}

	s.LogInfo(ctx, "Debt created",
		slog.String("debt_id", debt.DebtID),
		slog.String("customer_id", debt.CustomerID),
		slog.String("principal", debt.PrincipalAmount.String()))
	return &debt, nil
}

func (s *debtService) GetDebtByID(ctx context.Context, restaurantID, debtID string) (*domain.Debt, error) {
	return s.findScoped(ctx, restaurantID, debtID)
}

func (s *debtService) ListDebts(ctx context.Context, restaurantID string, status *domain.DebtStatus) ([]domain.Debt, error) {
	debts, err := s.debtRepo.ListDebtsByRestaurant(ctx, restaurantID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	return debts, nil
}

// ListDebtsByCustomer returns the customer's debts, written-off ones included.
func (s *debtService) ListDebtsByCustomer(ctx context.Context, restaurantID, customerID string) ([]domain.Debt, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer.RestaurantID != restaurantID {
		return nil, apperrors.ErrNotFound
	}
	debts, err := s.debtRepo.ListDebtsByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer debts: %w", err)
	}
	return debts, nil
}

func (s *debtService) ListPayments(ctx context.Context, restaurantID, debtID string) ([]domain.DebtPayment, error) {
	if _, err := s.findScoped(ctx, restaurantID, debtID); err != nil {
		return nil, err
	}
	payments, err := s.debtRepo.ListPaymentsByDebt(ctx, debtID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debt payments: %w", err)
	}
	return payments, nil
}

// RecordPayment writes the payment and the debt's updated totals in one
// repository transaction. The bounds are validated again under row lock there.
func (s *debtService) RecordPayment(ctx context.Context, restaurantID, debtID string, req dto.RecordDebtPaymentRequest, creatorUserID string) (*domain.DebtPayment, *domain.Debt, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	method := domain.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown payment method '%s'", apperrors.ErrValidation, req.PaymentMethod)
	}

	debt, err := s.findScoped(ctx, restaurantID, debtID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	payment := domain.DebtPayment{
		PaymentID:     uuid.NewString(),
		RestaurantID:  restaurantID,
		DebtID:        debt.DebtID,
		CustomerID:    debt.CustomerID,
		Amount:        req.Amount,
		PaymentMethod: method,
		PaymentDate:   paymentDate,
		ReceiptNumber: newReceiptNumber(paymentDate),
		AuditFields:   s.newAuditFields(ctx, creatorUserID, now),
	}

	updated, err := s.debtRepo.SaveDebtPayment(ctx, payment, now)
	if err != nil {
		return nil, nil, err
	}

	s.LogInfo(ctx, "Debt payment recorded",
		slog.String("debt_id", debt.DebtID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("amount", payment.Amount.String()),
		slog.String("new_status", string(updated.Status)))
	return &payment, updated, nil
}

// UpdatePrincipal edits the principal and recomputes remaining. The status is
// left as it stands; it only moves when a payment comes in.
func (s *debtService) UpdatePrincipal(ctx context.Context, restaurantID, debtID string, req dto.UpdateDebtPrincipalRequest, updaterUserID string) (*domain.Debt, error) {
	if req.PrincipalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: principal amount must be positive", apperrors.ErrValidation)
	}
	if _, err := s.findScoped(ctx, restaurantID, debtID); err != nil {
		return nil, err
	}

	updated, err := s.debtRepo.UpdateDebtPrincipal(ctx, debtID, req.PrincipalAmount, updaterUserID, time.Now())
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Debt principal updated",
		slog.String("debt_id", debtID),
		slog.String("principal", req.PrincipalAmount.String()))
	return updated, nil
}

// WriteOff marks the debt WRITTEN_OFF. Payments are rejected from then on.
func (s *debtService) WriteOff(ctx context.Context, restaurantID, debtID, updaterUserID string) (*domain.Debt, error) {
	if _, err := s.findScoped(ctx, restaurantID, debtID); err != nil {
		return nil, err
	}
	updated, err := s.debtRepo.WriteOffDebt(ctx, debtID, updaterUserID, time.Now())
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Debt written off", slog.String("debt_id", debtID))
	return updated, nil
}

// DeleteDebt removes a debt with no payment history.
func (s *debtService) DeleteDebt(ctx context.Context, restaurantID, debtID string) error {
	if _, err := s.findScoped(ctx, restaurantID, debtID); err != nil {
		return err
	}
	count, err := s.debtRepo.CountPaymentsByDebt(ctx, debtID)
	if err != nil {
		return fmt.Errorf("failed to count debt payments: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %d payment(s) recorded", apperrors.ErrHasPayments, count)
	}
	if err := s.debtRepo.DeleteDebt(ctx, debtID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Debt deleted", slog.String("debt_id", debtID))
	return nil
}

func (s *debtService) findScoped(ctx context.Context, restaurantID, debtID string) (*domain.Debt, error) {
	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if debt.RestaurantID != restaurantID {
		return nil, apperrors.ErrNotFound
	}
	return debt, nil
}

// newReceiptNumber builds a human-quotable receipt reference for a payment.
func newReceiptNumber(paymentDate time.Time) string {
	short := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("RCP-%s-%s", paymentDate.Format("20060102"), strings.ToUpper(short))
}
