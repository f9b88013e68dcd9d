package domain_test

import (
	"testing"
	"time"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeriveExpensePaymentStatus(t *testing.T) {
	tests := []struct {
		name      string
		amountGNF decimal.Decimal
		totalPaid decimal.Decimal
		want      domain.ExpensePaymentStatus
	}{
		{
			name:      "nothing paid",
			amountGNF: decimal.NewFromInt(50000),
			totalPaid: decimal.Zero,
			want:      domain.ExpenseUnpaid,
		},
		{
			name:      "partially paid",
			amountGNF: decimal.NewFromInt(50000),
			totalPaid: decimal.NewFromInt(20000),
			want:      domain.ExpensePartiallyPaid,
		},
		{
			name:      "exactly paid",
			amountGNF: decimal.NewFromInt(50000),
			totalPaid: decimal.NewFromInt(50000),
			want:      domain.ExpensePaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DeriveExpensePaymentStatus(tt.amountGNF, tt.totalPaid)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpenseApplyPayment(t *testing.T) {
	now := time.Now()
	stale := now.Add(-48 * time.Hour)

	tests := []struct {
		name            string
		expense         domain.Expense
		amount          decimal.Decimal
		wantStatus      domain.ExpensePaymentStatus
		wantFullyPaidAt *time.Time
	}{
		{
			name: "partial payment leaves fullyPaidAt unset",
			expense: domain.Expense{
				AmountGNF:     decimal.NewFromInt(50000),
				PaymentStatus: domain.ExpenseUnpaid,
			},
			amount:          decimal.NewFromInt(20000),
			wantStatus:      domain.ExpensePartiallyPaid,
			wantFullyPaidAt: nil,
		},
		{
			name: "final payment stamps fullyPaidAt",
			expense: domain.Expense{
				AmountGNF:       decimal.NewFromInt(50000),
				TotalPaidAmount: decimal.NewFromInt(30000),
				PaymentStatus:   domain.ExpensePartiallyPaid,
			},
			amount:          decimal.NewFromInt(20000),
			wantStatus:      domain.ExpensePaid,
			wantFullyPaidAt: &now,
		},
		{
			name: "single full payment stamps fullyPaidAt",
			expense: domain.Expense{
				AmountGNF:     decimal.NewFromInt(50000),
				PaymentStatus: domain.ExpenseUnpaid,
			},
			amount:          decimal.NewFromInt(50000),
			wantStatus:      domain.ExpensePaid,
			wantFullyPaidAt: &now,
		},
		{
			name: "stale fullyPaidAt cleared while still partial",
			expense: domain.Expense{
				AmountGNF:       decimal.NewFromInt(50000),
				TotalPaidAmount: decimal.NewFromInt(10000),
				PaymentStatus:   domain.ExpensePartiallyPaid,
				FullyPaidAt:     &stale,
			},
			amount:          decimal.NewFromInt(5000),
			wantStatus:      domain.ExpensePartiallyPaid,
			wantFullyPaidAt: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.expense.TotalPaidAmount
			tt.expense.ApplyPayment(tt.amount, now)

			assert.True(t, tt.expense.TotalPaidAmount.Equal(before.Add(tt.amount)))
			assert.Equal(t, tt.wantStatus, tt.expense.PaymentStatus)
			if tt.wantFullyPaidAt == nil {
				assert.Nil(t, tt.expense.FullyPaidAt)
			} else {
				if assert.NotNil(t, tt.expense.FullyPaidAt) {
					assert.True(t, tt.expense.FullyPaidAt.Equal(*tt.wantFullyPaidAt))
				}
			}
		})
	}
}

func TestExpenseRemainingAmount(t *testing.T) {
	e := domain.Expense{
		AmountGNF:       decimal.NewFromInt(50000),
		TotalPaidAmount: decimal.NewFromInt(12500),
	}
	assert.True(t, e.RemainingAmount().Equal(decimal.NewFromInt(37500)))
}
