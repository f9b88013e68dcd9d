package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtStatus is derived from the numeric state of a debt; it is never set
// directly by callers except for the WRITTEN_OFF terminal state.
type DebtStatus string

const (
	DebtOutstanding   DebtStatus = "OUTSTANDING"
	DebtPartiallyPaid DebtStatus = "PARTIALLY_PAID"
	DebtFullyPaid     DebtStatus = "FULLY_PAID"
	DebtOverdue       DebtStatus = "OVERDUE"
	DebtWrittenOff    DebtStatus = "WRITTEN_OFF"
)

func (s DebtStatus) Valid() bool {
	switch s {
	case DebtOutstanding, DebtPartiallyPaid, DebtFullyPaid, DebtOverdue, DebtWrittenOff:
		return true
	}
	return false
}

// Debt is a customer receivable. PaidAmount + RemainingAmount always equals
// PrincipalAmount after a payment path; RemainingAmount never goes negative.
type Debt struct {
	DebtID          string          `json:"debtID"`
	RestaurantID    string          `json:"restaurantID"`
	CustomerID      string          `json:"customerID"`
	SaleID          *string         `json:"saleID,omitempty"`
	PrincipalAmount decimal.Decimal `json:"principalAmount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	Status          DebtStatus      `json:"status"`
	Notes           string          `json:"notes"`
	AuditFields
}

// DeriveDebtStatus computes the status from the numeric state.
// A debt with no payment at all stays OUTSTANDING even past its due date;
// only a partially paid debt can show OVERDUE.
func DeriveDebtStatus(principal, paid decimal.Decimal, dueDate *time.Time, now time.Time) DebtStatus {
	if paid.IsZero() {
		return DebtOutstanding
	}
	remaining := principal.Sub(paid)
	if remaining.LessThanOrEqual(decimal.Zero) {
		return DebtFullyPaid
	}
	if dueDate != nil && dueDate.Before(now) {
		return DebtOverdue
	}
	return DebtPartiallyPaid
}

// OutstandingDebtStatuses are the statuses that count toward a customer's
// credit exposure.
var OutstandingDebtStatuses = []DebtStatus{DebtOutstanding, DebtPartiallyPaid, DebtOverdue}

// DebtPayment is one payment against a debt. Immutable once written; it is
// only ever removed together with its debt update inside a rollback.
type DebtPayment struct {
	PaymentID     string          `json:"paymentID"`
	RestaurantID  string          `json:"restaurantID"`
	DebtID        string          `json:"debtID"`
	CustomerID    string          `json:"customerID"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	PaymentDate   time.Time       `json:"paymentDate"`
	ReceiptNumber string          `json:"receiptNumber"`
	AuditFields
}
