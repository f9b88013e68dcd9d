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

// inventoryService manages items and the append-only stock movement ledger.
type inventoryService struct {
	BaseService
	inventoryRepo  portsrepo.InventoryRepositoryFacade
	restaurantRepo portsrepo.RestaurantRepositoryFacade
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade, restaurantRepo portsrepo.RestaurantRepositoryFacade, users portssvc.UserReaderSvc) portssvc.InventorySvcFacade {
	return &inventoryService{
		BaseService:    BaseService{Users: users},
		inventoryRepo:  inventoryRepo,
		restaurantRepo: restaurantRepo,
	}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

func (s *inventoryService) CreateItem(ctx context.Context, restaurantID string, req dto.CreateItemRequest, creatorUserID string) (*domain.InventoryItem, error) {
	if req.CurrentStock.IsNegative() || req.MinStock.IsNegative() || req.ReorderPoint.IsNegative() || req.UnitCostGNF.IsNegative() {
		return nil, fmt.Errorf("%w: stock figures cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	item := domain.InventoryItem{
		ItemID:       uuid.NewString(),
		RestaurantID: restaurantID,
		Name:         strings.TrimSpace(req.Name),
		Category:     strings.TrimSpace(req.Category),
		Unit:         req.Unit,
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
		ReorderPoint: req.ReorderPoint,
		UnitCostGNF:  req.UnitCostGNF,
		IsActive:     true,
		AuditFields:  s.newAuditFields(ctx, creatorUserID, now),
	}
	if item.Name == "" {
		return nil, fmt.Errorf("%w: item name is required", apperrors.ErrValidation)
	}

	existing, err := s.inventoryRepo.FindItemByNameAndCategory(ctx, restaurantID, item.Name, item.Category)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("failed to check item uniqueness: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: item %q already exists in category %q", apperrors.ErrDuplicate, item.Name, item.Category)
	}

	if err := s.inventoryRepo.SaveItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to save inventory item")
		return nil, fmt.Errorf("failed to save inventory item: %w", err)
	}

	s.LogInfo(ctx, "Inventory item created",
		slog.String("item_id", item.ItemID),
		slog.String("name", item.Name))
	return &item, nil
}

func (s *inventoryService) GetItemByID(ctx context.Context, restaurantID, itemID string) (*domain.InventoryItem, error) {
	return s.findScopedItem(ctx, restaurantID, itemID)
}

func (s *inventoryService) ListItems(ctx context.Context, restaurantID string) ([]domain.InventoryItem, error) {
	items, err := s.inventoryRepo.ListItemsByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return items, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, restaurantID, itemID string) ([]domain.StockMovement, error) {
	if _, err := s.findScopedItem(ctx, restaurantID, itemID); err != nil {
		return nil, err
	}
	movements, err := s.inventoryRepo.ListMovementsByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	return movements, nil
}

// ApplyMovement appends one signed movement. Stock may go negative here: this
// is the raw ledger primitive, and the flows that must not overdraw
// (production, transfers) check availability before calling it.
func (s *inventoryService) ApplyMovement(ctx context.Context, restaurantID string, req dto.ApplyMovementRequest, creatorUserID string) (*domain.StockMovement, *domain.InventoryItem, error) {
	movementType := domain.MovementType(req.Type)
	if !movementType.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown movement type '%s'", apperrors.ErrValidation, req.Type)
	}
	if req.Quantity.IsZero() {
		return nil, nil, fmt.Errorf("%w: movement quantity cannot be zero", apperrors.ErrValidation)
	}
	if req.UnitCost != nil && req.UnitCost.IsNegative() {
		return nil, nil, fmt.Errorf("%w: unit cost cannot be negative", apperrors.ErrValidation)
	}

	if _, err := s.findScopedItem(ctx, restaurantID, req.ItemID); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	movement := domain.StockMovement{
		MovementID:      uuid.NewString(),
		RestaurantID:    restaurantID,
		ItemID:          req.ItemID,
		Type:            movementType,
		Quantity:        req.Quantity,
		UnitCost:        req.UnitCost,
		Reason:          req.Reason,
		ProductionLogID: req.ProductionLogID,
		AuditFields:     s.newAuditFields(ctx, creatorUserID, now),
	}

	item, err := s.inventoryRepo.ApplyMovement(ctx, movement)
	if err != nil {
		return nil, nil, err
	}

	s.LogInfo(ctx, "Stock movement applied",
		slog.String("item_id", req.ItemID),
		slog.String("type", string(movementType)),
		slog.String("quantity", req.Quantity.String()),
		slog.String("new_stock", item.CurrentStock.String()))
	return &movement, item, nil
}

// ApplyProductionDeductions writes one USAGE movement per ingredient. Every
// line must be available; one short ingredient fails the whole batch before
// anything is written.
func (s *inventoryService) ApplyProductionDeductions(ctx context.Context, restaurantID string, req dto.ProductionDeductionRequest, creatorUserID string) ([]domain.StockMovement, error) {
	if len(req.Ingredients) == 0 {
		return nil, fmt.Errorf("%w: at least one ingredient is required", apperrors.ErrValidation)
	}

	now := time.Now()
	audit := s.newAuditFields(ctx, creatorUserID, now)
	productionLogID := req.ProductionLogID
	movements := make([]domain.StockMovement, 0, len(req.Ingredients))

	for _, ingredient := range req.Ingredients {
		if ingredient.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: ingredient quantity must be positive", apperrors.ErrValidation)
		}
		item, err := s.findScopedItem(ctx, restaurantID, ingredient.ItemID)
		if err != nil {
			return nil, err
		}
		if item.CurrentStock.LessThan(ingredient.Quantity) {
			return nil, fmt.Errorf("%w: %s has %s %s, production needs %s",
				apperrors.ErrInsufficientStock, item.Name, item.CurrentStock.String(), item.Unit, ingredient.Quantity.String())
		}

		movements = append(movements, domain.StockMovement{
			MovementID:      uuid.NewString(),
			RestaurantID:    restaurantID,
			ItemID:          item.ItemID,
			Type:            domain.MovementUsage,
			Quantity:        ingredient.Quantity.Neg(),
			Reason:          fmt.Sprintf("Production usage (%s)", productionLogID),
			ProductionLogID: &productionLogID,
			AuditFields:     audit,
		})
	}

	if err := s.inventoryRepo.ApplyMovements(ctx, movements); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Production deductions applied",
		slog.String("production_log_id", productionLogID),
		slog.Int("ingredient_count", len(movements)))
	return movements, nil
}

// ListProductionDeductions returns the movements a production log wrote,
// scoped to the restaurant.
func (s *inventoryService) ListProductionDeductions(ctx context.Context, restaurantID, productionLogID string) ([]domain.StockMovement, error) {
	movements, err := s.inventoryRepo.ListMovementsByProductionLog(ctx, productionLogID)
	if err != nil {
		return nil, fmt.Errorf("failed to list production deductions: %w", err)
	}
	scoped := make([]domain.StockMovement, 0, len(movements))
	for _, m := range movements {
		if m.RestaurantID == restaurantID {
			scoped = append(scoped, m)
		}
	}
	return scoped, nil
}

// ReverseProductionDeductions restores the stock a production log consumed and
// removes its movement rows. The production log row itself belongs to the caller.
func (s *inventoryService) ReverseProductionDeductions(ctx context.Context, restaurantID, productionLogID string) (int, error) {
	if productionLogID == "" {
		return 0, fmt.Errorf("%w: production log ID is required", apperrors.ErrValidation)
	}
	reversed, err := s.inventoryRepo.ReverseProductionDeductions(ctx, restaurantID, productionLogID)
	if err != nil {
		return 0, err
	}
	s.LogInfo(ctx, "Production deductions reversed",
		slog.String("production_log_id", productionLogID),
		slog.Int("reversed_count", reversed))
	return reversed, nil
}

// Transfer moves stock to another restaurant. The whole sequence runs in one
// repository transaction; the availability check here is repeated there under
// row lock.
func (s *inventoryService) Transfer(ctx context.Context, restaurantID string, req dto.TransferRequest, creatorUserID string) (*domain.InventoryTransfer, error) {
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transfer quantity must be positive", apperrors.ErrValidation)
	}
	if req.TargetRestaurantID == restaurantID {
		return nil, fmt.Errorf("%w: source and target restaurant are the same", apperrors.ErrInvalidTransfer)
	}

	sourceItem, err := s.findScopedItem(ctx, restaurantID, req.SourceItemID)
	if err != nil {
		return nil, err
	}
	if sourceItem.CurrentStock.LessThan(req.Quantity) {
		return nil, fmt.Errorf("%w: %s has %s %s, transfer needs %s",
			apperrors.ErrInsufficientStock, sourceItem.Name, sourceItem.CurrentStock.String(), sourceItem.Unit, req.Quantity.String())
	}

	sourceRestaurant, err := s.restaurantRepo.FindRestaurantByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	targetRestaurant, err := s.restaurantRepo.FindRestaurantByID(ctx, req.TargetRestaurantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	audit := s.newAuditFields(ctx, creatorUserID, now)
	transferID := uuid.NewString()

	reason := fmt.Sprintf("Transfer from %s to %s", sourceRestaurant.Name, targetRestaurant.Name)
	if note := strings.TrimSpace(req.Reason); note != "" {
		reason = reason + ": " + note
	}

	// Template used only when no name/category match exists at the target;
	// the repository swaps in the matched item otherwise.
	targetItem := domain.InventoryItem{
		ItemID:       uuid.NewString(),
		RestaurantID: targetRestaurant.RestaurantID,
		Name:         sourceItem.Name,
		Category:     sourceItem.Category,
		Unit:         sourceItem.Unit,
		CurrentStock: decimal.Zero,
		MinStock:     sourceItem.MinStock,
		ReorderPoint: sourceItem.ReorderPoint,
		UnitCostGNF:  sourceItem.UnitCostGNF,
		IsActive:     true,
		AuditFields:  audit,
	}

	sourceCost := sourceItem.UnitCostGNF
	outMovement := domain.StockMovement{
		MovementID:   uuid.NewString(),
		RestaurantID: restaurantID,
		ItemID:       sourceItem.ItemID,
		Type:         domain.MovementTransferOut,
		Quantity:     req.Quantity.Neg(),
		Reason:       reason,
		AuditFields:  audit,
	}
	inMovement := domain.StockMovement{
		MovementID:   uuid.NewString(),
		RestaurantID: targetRestaurant.RestaurantID,
		ItemID:       targetItem.ItemID,
		Type:         domain.MovementTransferIn,
		Quantity:     req.Quantity,
		UnitCost:     &sourceCost,
		Reason:       reason,
		AuditFields:  audit,
	}

	transfer := domain.InventoryTransfer{
		TransferID:         transferID,
		SourceRestaurantID: restaurantID,
		TargetRestaurantID: targetRestaurant.RestaurantID,
		SourceItemID:       sourceItem.ItemID,
		TargetItemID:       targetItem.ItemID,
		Quantity:           req.Quantity,
		Reason:             reason,
		AuditFields:        audit,
	}

	saved, err := s.inventoryRepo.SaveTransfer(ctx, transfer, outMovement, inMovement, targetItem)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Inventory transferred",
		slog.String("transfer_id", saved.TransferID),
		slog.String("source_item_id", saved.SourceItemID),
		slog.String("target_item_id", saved.TargetItemID),
		slog.String("quantity", saved.Quantity.String()))
	return saved, nil
}

func (s *inventoryService) findScopedItem(ctx context.Context, restaurantID, itemID string) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.RestaurantID != restaurantID {
		return nil, apperrors.ErrNotFound
	}
	return item, nil
}
