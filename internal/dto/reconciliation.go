package dto

import (
	"time"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReconciliationCountItem is one physical count line in a reconciliation request.
type ReconciliationCountItem struct {
	ItemID        string          `json:"itemID" binding:"required"`
	PhysicalCount decimal.Decimal `json:"physicalCount"`
}

// CreateReconciliationRequest opens a PENDING stock reconciliation.
type CreateReconciliationRequest struct {
	Notes string                    `json:"notes"`
	Items []ReconciliationCountItem `json:"items" binding:"required,min=1"`
}

// ReconciliationItemResponse defines the data returned for one counted line.
type ReconciliationItemResponse struct {
	LineID            string          `json:"lineID"`
	InventoryItemID   string          `json:"inventoryItemID"`
	SystemStock       decimal.Decimal `json:"systemStock"`
	PhysicalCount     decimal.Decimal `json:"physicalCount"`
	Variance          decimal.Decimal `json:"variance"`
	AdjustmentApplied bool            `json:"adjustmentApplied"`
}

// ReconciliationResponse defines the data returned for a stock reconciliation.
type ReconciliationResponse struct {
	ReconciliationID string                       `json:"reconciliationID"`
	RestaurantID     string                       `json:"restaurantID"`
	Status           string                       `json:"status"`
	Notes            string                       `json:"notes"`
	ApprovedBy       *string                      `json:"approvedBy,omitempty"`
	ApprovedByName   string                       `json:"approvedByName,omitempty"`
	ApprovedAt       *time.Time                   `json:"approvedAt,omitempty"`
	Items            []ReconciliationItemResponse `json:"items"`
	CreatedAt        time.Time                    `json:"createdAt"`
	CreatedByName    string                       `json:"createdByName"`
}

// ToReconciliationResponse converts a domain.StockReconciliation to its response DTO.
func ToReconciliationResponse(r *domain.StockReconciliation) ReconciliationResponse {
	items := make([]ReconciliationItemResponse, len(r.Items))
	for i, it := range r.Items {
		items[i] = ReconciliationItemResponse{
			LineID:            it.LineID,
			InventoryItemID:   it.InventoryItemID,
			SystemStock:       it.SystemStock,
			PhysicalCount:     it.PhysicalCount,
			Variance:          it.Variance,
			AdjustmentApplied: it.AdjustmentApplied,
		}
	}
	return ReconciliationResponse{
		ReconciliationID: r.ReconciliationID,
		RestaurantID:     r.RestaurantID,
		Status:           string(r.Status),
		Notes:            r.Notes,
		ApprovedBy:       r.ApprovedBy,
		ApprovedByName:   r.ApprovedByName,
		ApprovedAt:       r.ApprovedAt,
		Items:            items,
		CreatedAt:        r.CreatedAt,
		CreatedByName:    r.CreatedByName,
	}
}

// ToReconciliationResponses converts a slice of reconciliations.
func ToReconciliationResponses(recons []domain.StockReconciliation) []ReconciliationResponse {
	responses := make([]ReconciliationResponse, len(recons))
	for i := range recons {
		responses[i] = ToReconciliationResponse(&recons[i])
	}
	return responses
}
