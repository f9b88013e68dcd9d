package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseApprovalStatus gates whether payments may be recorded at all.
type ExpenseApprovalStatus string

const (
	ExpensePendingApproval ExpenseApprovalStatus = "PENDING"
	ExpenseApproved        ExpenseApprovalStatus = "APPROVED"
	ExpenseRejected        ExpenseApprovalStatus = "REJECTED"
)

func (s ExpenseApprovalStatus) Valid() bool {
	switch s {
	case ExpensePendingApproval, ExpenseApproved, ExpenseRejected:
		return true
	}
	return false
}

// ExpensePaymentStatus is derived from TotalPaidAmount vs AmountGNF.
type ExpensePaymentStatus string

const (
	ExpenseUnpaid        ExpensePaymentStatus = "UNPAID"
	ExpensePartiallyPaid ExpensePaymentStatus = "PARTIALLY_PAID"
	ExpensePaid          ExpensePaymentStatus = "PAID"
)

// Expense is an approval-gated liability. TotalPaidAmount never exceeds AmountGNF.
type Expense struct {
	ExpenseID       string                `json:"expenseID"`
	RestaurantID    string                `json:"restaurantID"`
	Category        string                `json:"category"`
	Description     string                `json:"description"`
	AmountGNF       decimal.Decimal       `json:"amountGNF"`
	TotalPaidAmount decimal.Decimal       `json:"totalPaidAmount"`
	PaymentStatus   ExpensePaymentStatus  `json:"paymentStatus"`
	ApprovalStatus  ExpenseApprovalStatus `json:"approvalStatus"`
	ApprovedBy      *string               `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time            `json:"approvedAt,omitempty"`
	FullyPaidAt     *time.Time            `json:"fullyPaidAt,omitempty"`
	AuditFields
}

// RemainingAmount returns the unpaid part of the liability.
func (e Expense) RemainingAmount() decimal.Decimal {
	return e.AmountGNF.Sub(e.TotalPaidAmount)
}

// DeriveExpensePaymentStatus computes the payment status from the numeric state.
func DeriveExpensePaymentStatus(amountGNF, totalPaid decimal.Decimal) ExpensePaymentStatus {
	if totalPaid.GreaterThanOrEqual(amountGNF) && amountGNF.GreaterThan(decimal.Zero) {
		return ExpensePaid
	}
	if totalPaid.GreaterThan(decimal.Zero) {
		return ExpensePartiallyPaid
	}
	return ExpenseUnpaid
}

// ApplyPayment adds the amount to the running total and rolls the derived
// payment state forward. FullyPaidAt is stamped when the expense becomes PAID
// and cleared on any other outcome.
func (e *Expense) ApplyPayment(amount decimal.Decimal, now time.Time) {
	e.TotalPaidAmount = e.TotalPaidAmount.Add(amount)
	e.PaymentStatus = DeriveExpensePaymentStatus(e.AmountGNF, e.TotalPaidAmount)
	if e.PaymentStatus == ExpensePaid {
		e.FullyPaidAt = &now
	} else {
		e.FullyPaidAt = nil
	}
}

// ExpensePayment is one payment against an expense, linked 1:1 to the
// confirmed withdrawal bank transaction generated with it.
type ExpensePayment struct {
	PaymentID         string          `json:"paymentID"`
	RestaurantID      string          `json:"restaurantID"`
	ExpenseID         string          `json:"expenseID"`
	Amount            decimal.Decimal `json:"amount"`
	PaymentMethod     PaymentMethod   `json:"paymentMethod"`
	BankTransactionID string          `json:"bankTransactionID"`
	PaymentDate       time.Time       `json:"paymentDate"`
	AuditFields
}
