package domain_test

import (
	"testing"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReconciliationItemAdjustmentReason(t *testing.T) {
	item := domain.ReconciliationItem{
		InventoryItemID: "item-1",
		SystemStock:     decimal.NewFromInt(48),
		PhysicalCount:   decimal.RequireFromString("45.5"),
		Variance:        decimal.RequireFromString("-2.5"),
	}

	reason := item.AdjustmentReason("recon-7")

	assert.Equal(t, "Reconciliation recon-7: counted 45.5, system 48", reason)
	// Both counts must survive in the movement's audit trail.
	assert.Contains(t, reason, "45.5")
	assert.Contains(t, reason, "48")
}
