package services

import (
	"context"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	"github.com/fbangoura/bakery_ledger_app/internal/dto"
)

// InventorySvcFacade exposes the stock ledger operations.
type InventorySvcFacade interface {
	CreateItem(ctx context.Context, restaurantID string, req dto.CreateItemRequest, creatorUserID string) (*domain.InventoryItem, error)

	GetItemByID(ctx context.Context, restaurantID, itemID string) (*domain.InventoryItem, error)

	ListItems(ctx context.Context, restaurantID string) ([]domain.InventoryItem, error)

	ListMovements(ctx context.Context, restaurantID, itemID string) ([]domain.StockMovement, error)

	// ApplyMovement appends one signed movement and adjusts the item's stock.
	// Availability is the caller's concern on this primitive; the production
	// and transfer flows carry their own pre-checks.
	ApplyMovement(ctx context.Context, restaurantID string, req dto.ApplyMovementRequest, creatorUserID string) (*domain.StockMovement, *domain.InventoryItem, error)

	// ApplyProductionDeductions writes one USAGE movement per ingredient, all
	// tied to the production log, after checking availability for every line.
	ApplyProductionDeductions(ctx context.Context, restaurantID string, req dto.ProductionDeductionRequest, creatorUserID string) ([]domain.StockMovement, error)

	// ListProductionDeductions returns the USAGE movements a production log wrote.
	ListProductionDeductions(ctx context.Context, restaurantID, productionLogID string) ([]domain.StockMovement, error)

	// ReverseProductionDeductions restores stock deducted by a production log
	// and removes those movement rows. Returns the number of reversed movements.
	ReverseProductionDeductions(ctx context.Context, restaurantID, productionLogID string) (int, error)

	// Transfer moves stock to another restaurant, creating the target item if
	// no name/category match exists there.
	Transfer(ctx context.Context, restaurantID string, req dto.TransferRequest, creatorUserID string) (*domain.InventoryTransfer, error)
}
