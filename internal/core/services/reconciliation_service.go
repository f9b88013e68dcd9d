package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fbangoura/bakery_ledger_app/internal/apperrors"
	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	portsrepo "github.com/fbangoura/bakery_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/fbangoura/bakery_ledger_app/internal/core/ports/services"
	"github.com/fbangoura/bakery_ledger_app/internal/dto"
)

// reconciliationService manages physical stock counts and their approval.
type reconciliationService struct {
	BaseService
	reconciliationRepo portsrepo.ReconciliationRepositoryFacade
	inventoryRepo      portsrepo.InventoryRepositoryFacade
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(reconciliationRepo portsrepo.ReconciliationRepositoryFacade, inventoryRepo portsrepo.InventoryRepositoryFacade, users portssvc.UserReaderSvc) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		BaseService:        BaseService{Users: users},
		reconciliationRepo: reconciliationRepo,
		inventoryRepo:      inventoryRepo,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// CreateReconciliation snapshots system stock per counted item and stores the
// PENDING count. Stock is not touched until approval.
func (s *reconciliationService) CreateReconciliation(ctx context.Context, restaurantID string, req dto.CreateReconciliationRequest, creatorUserID string) (*domain.StockReconciliation, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one counted item is required", apperrors.ErrValidation)
	}

	now := time.Now()
	reconciliationID := uuid.NewString()
	seen := make(map[string]bool, len(req.Items))
	lines := make([]domain.ReconciliationItem, 0, len(req.Items))

	for _, counted := range req.Items {
		if counted.PhysicalCount.IsNegative() {
			return nil, fmt.Errorf("%w: physical count cannot be negative", apperrors.ErrValidation)
		}
		if seen[counted.ItemID] {
			return nil, fmt.Errorf("%w: item %s counted twice", apperrors.ErrValidation, counted.ItemID)
		}
		seen[counted.ItemID] = true

		item, err := s.inventoryRepo.FindItemByID(ctx, counted.ItemID)
		if err != nil {
			return nil, err
		}
		if item.RestaurantID != restaurantID {
			return nil, apperrors.ErrNotFound
		}

		lines = append(lines, domain.ReconciliationItem{
			LineID:           uuid.NewString(),
			ReconciliationID: reconciliationID,
			InventoryItemID:  item.ItemID,
			SystemStock:      item.CurrentStock,
			PhysicalCount:    counted.PhysicalCount,
			Variance:         counted.PhysicalCount.Sub(item.CurrentStock),
		})
	}

	recon := domain.StockReconciliation{
		ReconciliationID: reconciliationID,
		RestaurantID:     restaurantID,
		Status:           domain.ReconciliationPending,
		Notes:            req.Notes,
		Items:            lines,
		AuditFields:      s.newAuditFields(ctx, creatorUserID, now),
	}

	if err := s.reconciliationRepo.SaveReconciliation(ctx, recon); err != nil {
		s.LogError(ctx, err, "Failed to save reconciliation")
		return nil, fmt.Errorf("failed to save reconciliation: %w", err)
	}

	s.LogInfo(ctx, "Stock reconciliation created",
		slog.String("reconciliation_id", recon.ReconciliationID),
		slog.Int("line_count", len(lines)))
	return &recon, nil
}

func (s *reconciliationService) GetReconciliationByID(ctx context.Context, restaurantID, reconciliationID string) (*domain.StockReconciliation, error) {
	return s.findScoped(ctx, restaurantID, reconciliationID)
}

func (s *reconciliationService) ListReconciliations(ctx context.Context, restaurantID string) ([]domain.StockReconciliation, error) {
	recons, err := s.reconciliationRepo.ListReconciliationsByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliations: %w", err)
	}
	return recons, nil
}

// Approve applies the count: every non-zero variance becomes an ADJUSTMENT
// movement and each counted item's stock ends at its physical count, whatever
// moved since the count was taken.
func (s *reconciliationService) Approve(ctx context.Context, restaurantID, reconciliationID, approverUserID string) (*domain.StockReconciliation, error) {
	if _, err := s.findScoped(ctx, restaurantID, reconciliationID); err != nil {
		return nil, err
	}

	approverName := s.resolveUserName(ctx, approverUserID)
	updated, err := s.reconciliationRepo.ApproveReconciliation(ctx, reconciliationID, approverUserID, approverName, time.Now())
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Stock reconciliation approved",
		slog.String("reconciliation_id", reconciliationID),
		slog.String("approved_by", approverUserID))
	return updated, nil
}

// Reject closes the count without touching stock.
func (s *reconciliationService) Reject(ctx context.Context, restaurantID, reconciliationID, approverUserID string) (*domain.StockReconciliation, error) {
	if _, err := s.findScoped(ctx, restaurantID, reconciliationID); err != nil {
		return nil, err
	}

	approverName := s.resolveUserName(ctx, approverUserID)
	updated, err := s.reconciliationRepo.RejectReconciliation(ctx, reconciliationID, approverUserID, approverName, time.Now())
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Stock reconciliation rejected",
		slog.String("reconciliation_id", reconciliationID))
	return updated, nil
}

func (s *reconciliationService) findScoped(ctx context.Context, restaurantID, reconciliationID string) (*domain.StockReconciliation, error) {
	recon, err := s.reconciliationRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return nil, err
	}
	if recon.RestaurantID != restaurantID {
		return nil, apperrors.ErrNotFound
	}
	return recon, nil
}
