package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MethodFlow aggregates deposits and withdrawals for one payment method.
type MethodFlow struct {
	Deposits    decimal.Decimal `json:"deposits"`
	Withdrawals decimal.Decimal `json:"withdrawals"`
}

// Net returns deposits minus withdrawals.
func (f MethodFlow) Net() decimal.Decimal {
	return f.Deposits.Sub(f.Withdrawals)
}

// DailyCashFlow is the per-day aggregation of confirmed transactions.
type DailyCashFlow struct {
	Date             time.Time                    `json:"date"`
	ByMethod         map[PaymentMethod]MethodFlow `json:"byMethod"`
	TotalDeposits    decimal.Decimal              `json:"totalDeposits"`
	TotalWithdrawals decimal.Decimal              `json:"totalWithdrawals"`
}

// DailyBalance is the closing balance per method at the end of one calendar
// day, gap-filled for days without activity.
type DailyBalance struct {
	Date     time.Time                       `json:"date"`
	Balances map[PaymentMethod]decimal.Decimal `json:"balances"`
	Total    decimal.Decimal                 `json:"total"`
}

// ReasonBreakdownRow groups confirmed window transactions by reason.
type ReasonBreakdownRow struct {
	Reason     TransactionReason `json:"reason"`
	Amount     decimal.Decimal   `json:"amount"`
	Percentage decimal.Decimal   `json:"percentage"`
}

// MethodBreakdownRow groups confirmed window transactions by method.
type MethodBreakdownRow struct {
	Method      PaymentMethod   `json:"method"`
	Deposits    decimal.Decimal `json:"deposits"`
	Withdrawals decimal.Decimal `json:"withdrawals"`
	Net         decimal.Decimal `json:"net"`
}

// TransactionBreakdown is the reason/method grouping of a query window.
type TransactionBreakdown struct {
	From     time.Time            `json:"from"`
	To       time.Time            `json:"to"`
	Total    decimal.Decimal      `json:"total"`
	ByReason []ReasonBreakdownRow `json:"byReason"`
	ByMethod []MethodBreakdownRow `json:"byMethod"`
}
