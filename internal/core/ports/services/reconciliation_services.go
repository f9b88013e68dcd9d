package services

import (
	"context"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	"github.com/fbangoura/bakery_ledger_app/internal/dto"
)

// ReconciliationSvcFacade exposes the stock reconciliation operations.
type ReconciliationSvcFacade interface {
	// CreateReconciliation snapshots system stock for every counted item and
	// persists the PENDING reconciliation with its variances.
	CreateReconciliation(ctx context.Context, restaurantID string, req dto.CreateReconciliationRequest, creatorUserID string) (*domain.StockReconciliation, error)

	GetReconciliationByID(ctx context.Context, restaurantID, reconciliationID string) (*domain.StockReconciliation, error)

	ListReconciliations(ctx context.Context, restaurantID string) ([]domain.StockReconciliation, error)

	// Approve applies every non-zero variance as an ADJUSTMENT movement and
	// forces counted items to their physical count. Terminal.
	Approve(ctx context.Context, restaurantID, reconciliationID, approverUserID string) (*domain.StockReconciliation, error)

	// Reject closes the reconciliation without touching stock. Terminal.
	Reject(ctx context.Context, restaurantID, reconciliationID, approverUserID string) (*domain.StockReconciliation, error)
}
