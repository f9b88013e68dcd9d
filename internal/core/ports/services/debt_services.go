package services

import (
	"context"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	"github.com/fbangoura/bakery_ledger_app/internal/dto"
)

// DebtSvcFacade exposes the customer receivable operations.
type DebtSvcFacade interface {
	// CreateDebt opens a receivable, enforcing the customer's credit limit when set.
	CreateDebt(ctx context.Context, restaurantID string, req dto.CreateDebtRequest, creatorUserID string) (*domain.Debt, error)

	GetDebtByID(ctx context.Context, restaurantID, debtID string) (*domain.Debt, error)

	ListDebts(ctx context.Context, restaurantID string, status *domain.DebtStatus) ([]domain.Debt, error)

	// ListDebtsByCustomer returns one customer's full debt history.
	ListDebtsByCustomer(ctx context.Context, restaurantID, customerID string) ([]domain.Debt, error)

	ListPayments(ctx context.Context, restaurantID, debtID string) ([]domain.DebtPayment, error)

	// RecordPayment atomically writes the payment and the debt's updated
	// paid/remaining/status. Returns both.
	RecordPayment(ctx context.Context, restaurantID, debtID string, req dto.RecordDebtPaymentRequest, creatorUserID string) (*domain.DebtPayment, *domain.Debt, error)

	// UpdatePrincipal edits the principal; the new value may not undercut the
	// amount already paid.
	UpdatePrincipal(ctx context.Context, restaurantID, debtID string, req dto.UpdateDebtPrincipalRequest, updaterUserID string) (*domain.Debt, error)

	// WriteOff marks the debt WRITTEN_OFF; no further payments are accepted.
	WriteOff(ctx context.Context, restaurantID, debtID, updaterUserID string) (*domain.Debt, error)

	// DeleteDebt removes a debt with zero payments.
	DeleteDebt(ctx context.Context, restaurantID, debtID string) error
}
