package domain_test

import (
	"testing"
	"time"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestDeriveDebtStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	pastDue := timePtr(now.AddDate(0, 0, -3))
	futureDue := timePtr(now.AddDate(0, 0, 3))

	tests := []struct {
		name      string
		principal decimal.Decimal
		paid      decimal.Decimal
		dueDate   *time.Time
		want      domain.DebtStatus
	}{
		{
			name:      "no payment yet",
			principal: decimal.NewFromInt(10000),
			paid:      decimal.Zero,
			dueDate:   futureDue,
			want:      domain.DebtOutstanding,
		},
		{
			name:      "no payment stays outstanding even past due",
			principal: decimal.NewFromInt(10000),
			paid:      decimal.Zero,
			dueDate:   pastDue,
			want:      domain.DebtOutstanding,
		},
		{
			name:      "partial payment before due date",
			principal: decimal.NewFromInt(10000),
			paid:      decimal.NewFromInt(4000),
			dueDate:   futureDue,
			want:      domain.DebtPartiallyPaid,
		},
		{
			name:      "partial payment without due date",
			principal: decimal.NewFromInt(10000),
			paid:      decimal.NewFromInt(4000),
			dueDate:   nil,
			want:      domain.DebtPartiallyPaid,
		},
		{
			name:      "partial payment past due date",
			principal: decimal.NewFromInt(10000),
			paid:      decimal.NewFromInt(4000),
			dueDate:   pastDue,
			want:      domain.DebtOverdue,
		},
		{
			name:      "fully paid",
			principal: decimal.NewFromInt(10000),
			paid:      decimal.NewFromInt(10000),
			dueDate:   futureDue,
			want:      domain.DebtFullyPaid,
		},
		{
			name:      "fully paid wins over past due",
			principal: decimal.NewFromInt(10000),
			paid:      decimal.NewFromInt(10000),
			dueDate:   pastDue,
			want:      domain.DebtFullyPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DeriveDebtStatus(tt.principal, tt.paid, tt.dueDate, now)
			assert.Equal(t, tt.want, got)
		})
	}
}
