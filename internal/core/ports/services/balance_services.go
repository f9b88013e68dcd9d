package services

import (
	"context"
	"time"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
)

// BalanceSvcFacade exposes the read-only balance reconstruction queries.
// All results are derived by replaying confirmed bank transactions over the
// restaurant's opening balances; nothing here mutates state.
type BalanceSvcFacade interface {
	// DailyCashFlow aggregates confirmed transactions per calendar day and
	// payment method within [from, to].
	DailyCashFlow(ctx context.Context, restaurantID string, from, to time.Time) ([]domain.DailyCashFlow, error)

	// BalanceHistory returns per-day closing balances for [from, to],
	// carrying the prior closing balance forward over inactive days.
	BalanceHistory(ctx context.Context, restaurantID string, from, to time.Time) ([]domain.DailyBalance, error)

	// Breakdown groups the window's confirmed transactions by reason and method.
	Breakdown(ctx context.Context, restaurantID string, from, to time.Time) (*domain.TransactionBreakdown, error)
}
