package dto

import (
	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRestaurantRequest registers a new tenant with its opening balances.
type CreateRestaurantRequest struct {
	Name                      string          `json:"name" binding:"required"`
	Address                   string          `json:"address"`
	OpeningCashBalance        decimal.Decimal `json:"openingCashBalance"`
	OpeningOrangeMoneyBalance decimal.Decimal `json:"openingOrangeMoneyBalance"`
	OpeningCardBalance        decimal.Decimal `json:"openingCardBalance"`
	StockDeductionMode        string          `json:"stockDeductionMode"`
}

// RestaurantResponse defines the data returned for a restaurant.
type RestaurantResponse struct {
	RestaurantID              string          `json:"restaurantID"`
	Name                      string          `json:"name"`
	Address                   string          `json:"address"`
	OpeningCashBalance        decimal.Decimal `json:"openingCashBalance"`
	OpeningOrangeMoneyBalance decimal.Decimal `json:"openingOrangeMoneyBalance"`
	OpeningCardBalance        decimal.Decimal `json:"openingCardBalance"`
	StockDeductionMode        string          `json:"stockDeductionMode"`
	IsActive                  bool            `json:"isActive"`
}

// ToRestaurantResponse converts a domain.Restaurant to its response DTO.
func ToRestaurantResponse(r *domain.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		RestaurantID:              r.RestaurantID,
		Name:                      r.Name,
		Address:                   r.Address,
		OpeningCashBalance:        r.OpeningCashBalance,
		OpeningOrangeMoneyBalance: r.OpeningOrangeMoneyBalance,
		OpeningCardBalance:        r.OpeningCardBalance,
		StockDeductionMode:        string(r.StockDeductionMode),
		IsActive:                  r.IsActive,
	}
}

// ToRestaurantResponses converts a slice of restaurants.
func ToRestaurantResponses(restaurants []domain.Restaurant) []RestaurantResponse {
	responses := make([]RestaurantResponse, len(restaurants))
	for i := range restaurants {
		responses[i] = ToRestaurantResponse(&restaurants[i])
	}
	return responses
}
