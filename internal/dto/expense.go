package dto

import (
	"time"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest is the payload for registering a liability. Expenses
// start PENDING approval and cannot be paid until approved.
type CreateExpenseRequest struct {
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	AmountGNF   decimal.Decimal `json:"amountGNF" binding:"required"`
}

// RecordExpensePaymentRequest is the payload for one payment against an approved expense.
type RecordExpensePaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"paymentMethod" binding:"required"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID       string          `json:"expenseID"`
	RestaurantID    string          `json:"restaurantID"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	AmountGNF       decimal.Decimal `json:"amountGNF"`
	TotalPaidAmount decimal.Decimal `json:"totalPaidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	PaymentStatus   string          `json:"paymentStatus"`
	ApprovalStatus  string          `json:"approvalStatus"`
	FullyPaidAt     *time.Time      `json:"fullyPaidAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ExpensePaymentResponse defines the data returned for an expense payment.
type ExpensePaymentResponse struct {
	PaymentID         string          `json:"paymentID"`
	ExpenseID         string          `json:"expenseID"`
	Amount            decimal.Decimal `json:"amount"`
	PaymentMethod     string          `json:"paymentMethod"`
	BankTransactionID string          `json:"bankTransactionID"`
	PaymentDate       time.Time       `json:"paymentDate"`
	PaidBy            string          `json:"paidBy"`
	PaidByName        string          `json:"paidByName"`
}

// ToExpenseResponse converts a domain.Expense to its response DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:       e.ExpenseID,
		RestaurantID:    e.RestaurantID,
		Category:        e.Category,
		Description:     e.Description,
		AmountGNF:       e.AmountGNF,
		TotalPaidAmount: e.TotalPaidAmount,
		RemainingAmount: e.RemainingAmount(),
		PaymentStatus:   string(e.PaymentStatus),
		ApprovalStatus:  string(e.ApprovalStatus),
		FullyPaidAt:     e.FullyPaidAt,
		CreatedAt:       e.CreatedAt,
	}
}

// ToExpenseResponses converts a slice of expenses.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}

// ToExpensePaymentResponse converts a domain.ExpensePayment to its response DTO.
func ToExpensePaymentResponse(p *domain.ExpensePayment) ExpensePaymentResponse {
	return ExpensePaymentResponse{
		PaymentID:         p.PaymentID,
		ExpenseID:         p.ExpenseID,
		Amount:            p.Amount,
		PaymentMethod:     string(p.PaymentMethod),
		BankTransactionID: p.BankTransactionID,
		PaymentDate:       p.PaymentDate,
		PaidBy:            p.CreatedBy,
		PaidByName:        p.CreatedByName,
	}
}

// ToExpensePaymentResponses converts a slice of expense payments.
func ToExpensePaymentResponses(payments []domain.ExpensePayment) []ExpensePaymentResponse {
	responses := make([]ExpensePaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToExpensePaymentResponse(&payments[i])
	}
	return responses
}
