package repositories

import (
	"context"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
)

// InventoryReader defines read operations for items, movements and transfers.
type InventoryReader interface {
	FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)

	// FindItemByNameAndCategory resolves an item within a restaurant by its
	// name/category pair (the transfer matching rule). Returns ErrNotFound
	// when no active item matches.
	FindItemByNameAndCategory(ctx context.Context, restaurantID, name, category string) (*domain.InventoryItem, error)

	ListItemsByRestaurant(ctx context.Context, restaurantID string) ([]domain.InventoryItem, error)

	ListMovementsByItem(ctx context.Context, itemID string) ([]domain.StockMovement, error)

	ListMovementsByProductionLog(ctx context.Context, productionLogID string) ([]domain.StockMovement, error)
}

// InventoryWriter defines write operations for the stock ledger. Each
// multi-step operation is one database transaction; item rows are locked
// FOR UPDATE before their stock is read or changed.
type InventoryWriter interface {
	SaveItem(ctx context.Context, item domain.InventoryItem) error

	// ApplyMovement appends one movement row and adjusts the item's current
	// stock by the signed quantity in the same transaction. The primitive does
	// not guard against negative stock; deduction callers pre-check availability.
	ApplyMovement(ctx context.Context, movement domain.StockMovement) (*domain.InventoryItem, error)

	// ApplyMovements appends several movement rows (one production log's
	// ingredient deductions) all-or-nothing.
	ApplyMovements(ctx context.Context, movements []domain.StockMovement) error

	// ReverseProductionDeductions restores stock for every negative movement
	// tied to the production log, then deletes those movement rows. Atomic;
	// returns the number of reversed movements.
	ReverseProductionDeductions(ctx context.Context, restaurantID, productionLogID string) (int, error)

	// SaveTransfer runs the whole cross-restaurant transfer in one transaction:
	// lock + re-check the source item's stock, resolve the target item by
	// name/category or insert targetItem as a new row, write the TRANSFER_OUT
	// and TRANSFER_IN movements, adjust both stocks, insert the transfer record.
	// Errors: ErrNotFound, ErrInsufficientStock.
	SaveTransfer(ctx context.Context, transfer domain.InventoryTransfer, outMovement, inMovement domain.StockMovement, targetItem domain.InventoryItem) (*domain.InventoryTransfer, error)
}

// InventoryRepositoryFacade combines all inventory repository interfaces.
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
}
