package domain

import "github.com/shopspring/decimal"

// StockDeductionMode controls when production ingredient usage hits the stock ledger.
type StockDeductionMode string

const (
	DeductImmediate StockDeductionMode = "IMMEDIATE"
	DeductDeferred  StockDeductionMode = "DEFERRED"
)

// Restaurant is the tenant unit. Every ledger row belongs to exactly one
// restaurant; opening balances seed the balance reconstruction fold.
type Restaurant struct {
	RestaurantID              string             `json:"restaurantID"`
	Name                      string             `json:"name"`
	Address                   string             `json:"address"`
	OpeningCashBalance        decimal.Decimal    `json:"openingCashBalance"`
	OpeningOrangeMoneyBalance decimal.Decimal    `json:"openingOrangeMoneyBalance"`
	OpeningCardBalance        decimal.Decimal    `json:"openingCardBalance"`
	StockDeductionMode        StockDeductionMode `json:"stockDeductionMode"`
	IsActive                  bool               `json:"isActive"`
	AuditFields
}

// OpeningBalances returns the per-method opening balances keyed by payment method.
func (r Restaurant) OpeningBalances() map[PaymentMethod]decimal.Decimal {
	return map[PaymentMethod]decimal.Decimal{
		MethodCash:        r.OpeningCashBalance,
		MethodOrangeMoney: r.OpeningOrangeMoneyBalance,
		MethodCard:        r.OpeningCardBalance,
	}
}
