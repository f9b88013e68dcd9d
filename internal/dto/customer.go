package dto

import (
	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest registers a debtor account.
type CreateCustomerRequest struct {
	Name        string           `json:"name" binding:"required"`
	Phone       string           `json:"phone"`
	CreditLimit *decimal.Decimal `json:"creditLimit"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID   string           `json:"customerID"`
	RestaurantID string           `json:"restaurantID"`
	Name         string           `json:"name"`
	Phone        string           `json:"phone"`
	CreditLimit  *decimal.Decimal `json:"creditLimit,omitempty"`
	IsActive     bool             `json:"isActive"`
}

// ToCustomerResponse converts a domain.Customer to its response DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:   c.CustomerID,
		RestaurantID: c.RestaurantID,
		Name:         c.Name,
		Phone:        c.Phone,
		CreditLimit:  c.CreditLimit,
		IsActive:     c.IsActive,
	}
}

// ToCustomerResponses converts a slice of customers.
func ToCustomerResponses(customers []domain.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}
