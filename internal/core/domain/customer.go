package domain

import "github.com/shopspring/decimal"

// Customer is a debtor account. CreditLimit, when set, caps the sum of
// outstanding receivables the customer may carry.
type Customer struct {
	CustomerID   string           `json:"customerID"`
	RestaurantID string           `json:"restaurantID"`
	Name         string           `json:"name"`
	Phone        string           `json:"phone"`
	CreditLimit  *decimal.Decimal `json:"creditLimit,omitempty"`
	IsActive     bool             `json:"isActive"`
	AuditFields
}
