package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationStatus is the lifecycle state of a stock reconciliation.
// PENDING transitions exactly once, to APPROVED or REJECTED.
type ReconciliationStatus string

const (
	ReconciliationPending  ReconciliationStatus = "PENDING"
	ReconciliationApproved ReconciliationStatus = "APPROVED"
	ReconciliationRejected ReconciliationStatus = "REJECTED"
)

// StockReconciliation compares physical counts against recorded stock.
// Approving it writes corrective ADJUSTMENT movements and forces each
// counted item's stock to the physical count.
type StockReconciliation struct {
	ReconciliationID string               `json:"reconciliationID"`
	RestaurantID     string               `json:"restaurantID"`
	Status           ReconciliationStatus `json:"status"`
	Notes            string               `json:"notes"`
	ApprovedBy       *string              `json:"approvedBy,omitempty"`
	ApprovedByName   string               `json:"approvedByName,omitempty"`
	ApprovedAt       *time.Time           `json:"approvedAt,omitempty"`
	Items            []ReconciliationItem `json:"items,omitempty"`
	AuditFields
}

// ReconciliationItem is one counted line. SystemStock is snapshotted when the
// reconciliation is created; Variance = PhysicalCount - SystemStock.
type ReconciliationItem struct {
	LineID            string          `json:"lineID"`
	ReconciliationID  string          `json:"reconciliationID"`
	InventoryItemID   string          `json:"inventoryItemID"`
	SystemStock       decimal.Decimal `json:"systemStock"`
	PhysicalCount     decimal.Decimal `json:"physicalCount"`
	Variance          decimal.Decimal `json:"variance"`
	AdjustmentApplied bool            `json:"adjustmentApplied"`
}

// AdjustmentReason builds the audit reason for the corrective movement a line
// produces on approval. Both counts are embedded so the movement stays
// explainable on its own once the count sheet is archived.
func (i ReconciliationItem) AdjustmentReason(reconciliationID string) string {
	return fmt.Sprintf("Reconciliation %s: counted %s, system %s",
		reconciliationID, i.PhysicalCount.String(), i.SystemStock.String())
}
