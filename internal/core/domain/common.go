package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// CreatedByName denormalizes the operator's display name so ledger rows stay
// readable even after a user account is deactivated.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	CreatedByName string    `json:"createdByName"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}
