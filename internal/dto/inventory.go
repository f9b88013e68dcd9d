package dto

import (
	"time"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateItemRequest is the payload for registering an inventory item.
type CreateItemRequest struct {
	Name         string          `json:"name" binding:"required"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit" binding:"required"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	MinStock     decimal.Decimal `json:"minStock"`
	ReorderPoint decimal.Decimal `json:"reorderPoint"`
	UnitCostGNF  decimal.Decimal `json:"unitCostGNF"`
}

// ApplyMovementRequest is the payload for one stock ledger movement.
// Quantity is signed: negative decreases stock.
type ApplyMovementRequest struct {
	ItemID          string           `json:"itemID" binding:"required"`
	Type            string           `json:"type" binding:"required"`
	Quantity        decimal.Decimal  `json:"quantity" binding:"required"`
	UnitCost        *decimal.Decimal `json:"unitCost"`
	Reason          string           `json:"reason"`
	ProductionLogID *string          `json:"productionLogID"`
}

// IngredientUsage is one ingredient deduction within a production log.
type IngredientUsage struct {
	ItemID   string          `json:"itemID" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// ProductionDeductionRequest applies a production log's ingredient usage to stock.
type ProductionDeductionRequest struct {
	ProductionLogID string            `json:"productionLogID" binding:"required"`
	Ingredients     []IngredientUsage `json:"ingredients" binding:"required,min=1"`
}

// TransferRequest moves stock between two restaurants.
type TransferRequest struct {
	SourceItemID       string          `json:"sourceItemID" binding:"required"`
	TargetRestaurantID string          `json:"targetRestaurantID" binding:"required"`
	Quantity           decimal.Decimal `json:"quantity" binding:"required"`
	Reason             string          `json:"reason"`
}

// InventoryItemResponse defines the data returned for an inventory item.
type InventoryItemResponse struct {
	ItemID       string          `json:"itemID"`
	RestaurantID string          `json:"restaurantID"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	MinStock     decimal.Decimal `json:"minStock"`
	ReorderPoint decimal.Decimal `json:"reorderPoint"`
	UnitCostGNF  decimal.Decimal `json:"unitCostGNF"`
	IsActive     bool            `json:"isActive"`
}

// StockMovementResponse defines the data returned for a stock movement.
type StockMovementResponse struct {
	MovementID      string           `json:"movementID"`
	ItemID          string           `json:"itemID"`
	Type            string           `json:"type"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitCost        *decimal.Decimal `json:"unitCost,omitempty"`
	Reason          string           `json:"reason"`
	ProductionLogID *string          `json:"productionLogID,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	CreatedByName   string           `json:"createdByName"`
}

// InventoryTransferResponse defines the data returned for an inventory transfer.
type InventoryTransferResponse struct {
	TransferID         string          `json:"transferID"`
	SourceRestaurantID string          `json:"sourceRestaurantID"`
	TargetRestaurantID string          `json:"targetRestaurantID"`
	SourceItemID       string          `json:"sourceItemID"`
	TargetItemID       string          `json:"targetItemID"`
	Quantity           decimal.Decimal `json:"quantity"`
	Reason             string          `json:"reason"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// ToInventoryItemResponse converts a domain.InventoryItem to its response DTO.
func ToInventoryItemResponse(i *domain.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ItemID:       i.ItemID,
		RestaurantID: i.RestaurantID,
		Name:         i.Name,
		Category:     i.Category,
		Unit:         i.Unit,
		CurrentStock: i.CurrentStock,
		MinStock:     i.MinStock,
		ReorderPoint: i.ReorderPoint,
		UnitCostGNF:  i.UnitCostGNF,
		IsActive:     i.IsActive,
	}
}

// ToInventoryItemResponses converts a slice of items.
func ToInventoryItemResponses(items []domain.InventoryItem) []InventoryItemResponse {
	responses := make([]InventoryItemResponse, len(items))
	for i := range items {
		responses[i] = ToInventoryItemResponse(&items[i])
	}
	return responses
}

// ToStockMovementResponse converts a domain.StockMovement to its response DTO.
func ToStockMovementResponse(m *domain.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		MovementID:      m.MovementID,
		ItemID:          m.ItemID,
		Type:            string(m.Type),
		Quantity:        m.Quantity,
		UnitCost:        m.UnitCost,
		Reason:          m.Reason,
		ProductionLogID: m.ProductionLogID,
		CreatedAt:       m.CreatedAt,
		CreatedByName:   m.CreatedByName,
	}
}

// ToStockMovementResponses converts a slice of movements.
func ToStockMovementResponses(movements []domain.StockMovement) []StockMovementResponse {
	responses := make([]StockMovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToStockMovementResponse(&movements[i])
	}
	return responses
}

// ToInventoryTransferResponse converts a domain.InventoryTransfer to its response DTO.
func ToInventoryTransferResponse(t *domain.InventoryTransfer) InventoryTransferResponse {
	return InventoryTransferResponse{
		TransferID:         t.TransferID,
		SourceRestaurantID: t.SourceRestaurantID,
		TargetRestaurantID: t.TargetRestaurantID,
		SourceItemID:       t.SourceItemID,
		TargetItemID:       t.TargetItemID,
		Quantity:           t.Quantity,
		Reason:             t.Reason,
		CreatedAt:          t.CreatedAt,
	}
}
