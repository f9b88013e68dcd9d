package repositories

import (
	"context"
	"time"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
)

// ReconciliationReader defines read operations for stock reconciliations.
type ReconciliationReader interface {
	// FindReconciliationByID retrieves a reconciliation with its items.
	FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.StockReconciliation, error)

	ListReconciliationsByRestaurant(ctx context.Context, restaurantID string) ([]domain.StockReconciliation, error)
}

// ReconciliationWriter defines write operations for stock reconciliations.
type ReconciliationWriter interface {
	// SaveReconciliation inserts the PENDING header and all its items in one transaction.
	SaveReconciliation(ctx context.Context, recon domain.StockReconciliation) error

	// ApproveReconciliation atomically: locks the header (must be PENDING, else
	// ErrAlreadyProcessed), writes an ADJUSTMENT movement for every line with a
	// non-zero variance, forces each counted item's currentStock to its
	// physicalCount, marks every line applied and stamps the header APPROVED.
	ApproveReconciliation(ctx context.Context, reconciliationID, approverID, approverName string, now time.Time) (*domain.StockReconciliation, error)

	// RejectReconciliation stamps the header REJECTED without touching stock.
	// Errors: ErrNotFound, ErrAlreadyProcessed.
	RejectReconciliation(ctx context.Context, reconciliationID, approverID, approverName string, now time.Time) (*domain.StockReconciliation, error)
}

// ReconciliationRepositoryFacade combines all reconciliation repository interfaces.
type ReconciliationRepositoryFacade interface {
	ReconciliationReader
	ReconciliationWriter
}
