package domain

import "github.com/shopspring/decimal"

// InventoryItem tracks one stocked ingredient or good. CurrentStock equals
// the signed sum of the item's movements, except right after an approved
// reconciliation forces it to the physical count.
type InventoryItem struct {
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
	AuditFields
}

// MovementType categorizes a stock ledger row.
type MovementType string

const (
	MovementPurchase    MovementType = "PURCHASE"
	MovementUsage       MovementType = "USAGE"
	MovementWaste       MovementType = "WASTE"
	MovementAdjustment  MovementType = "ADJUSTMENT"
	MovementTransferIn  MovementType = "TRANSFER_IN"
	MovementTransferOut MovementType = "TRANSFER_OUT"
)

func (t MovementType) Valid() bool {
	switch t {
	case MovementPurchase, MovementUsage, MovementWaste, MovementAdjustment,
		MovementTransferIn, MovementTransferOut:
		return true
	}
	return false
}

// StockMovement is an append-only stock ledger row. Quantity is signed:
// negative decreases stock. Rows are only ever deleted as part of the
// compensating reversal of a production log.
type StockMovement struct {
	MovementID      string           `json:"movementID"`
	RestaurantID    string           `json:"restaurantID"`
	ItemID          string           `json:"itemID"`
	Type            MovementType     `json:"type"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitCost        *decimal.Decimal `json:"unitCost,omitempty"`
	Reason          string           `json:"reason"`
	ProductionLogID *string          `json:"productionLogID,omitempty"`
	AuditFields
}

// InventoryTransfer is the immutable audit record pairing one TRANSFER_OUT
// movement on the source item with one TRANSFER_IN on the target item.
type InventoryTransfer struct {
	TransferID         string          `json:"transferID"`
	SourceRestaurantID string          `json:"sourceRestaurantID"`
	TargetRestaurantID string          `json:"targetRestaurantID"`
	SourceItemID       string          `json:"sourceItemID"`
	TargetItemID       string          `json:"targetItemID"`
	Quantity           decimal.Decimal `json:"quantity"`
	Reason             string          `json:"reason"`
	AuditFields
}
