package dto

import (
	"time"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDebtRequest is the payload for opening a customer receivable.
type CreateDebtRequest struct {
	CustomerID      string          `json:"customerID" binding:"required"`
	SaleID          *string         `json:"saleID"`
	PrincipalAmount decimal.Decimal `json:"principalAmount" binding:"required"`
	DueDate         *time.Time      `json:"dueDate"`
	Notes           string          `json:"notes"`
}

// RecordDebtPaymentRequest is the payload for one payment against a debt.
type RecordDebtPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"paymentMethod" binding:"required"`
	PaymentDate   *time.Time      `json:"paymentDate"`
}

// UpdateDebtPrincipalRequest edits the principal of an existing debt.
type UpdateDebtPrincipalRequest struct {
	PrincipalAmount decimal.Decimal `json:"principalAmount" binding:"required"`
}

// DebtResponse defines the data returned for a debt.
type DebtResponse struct {
	DebtID          string          `json:"debtID"`
	RestaurantID    string          `json:"restaurantID"`
	CustomerID      string          `json:"customerID"`
	SaleID          *string         `json:"saleID,omitempty"`
	PrincipalAmount decimal.Decimal `json:"principalAmount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// DebtPaymentResponse defines the data returned for a debt payment.
type DebtPaymentResponse struct {
	PaymentID     string          `json:"paymentID"`
	DebtID        string          `json:"debtID"`
	CustomerID    string          `json:"customerID"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentDate   time.Time       `json:"paymentDate"`
	ReceiptNumber string          `json:"receiptNumber"`
	ReceivedBy    string          `json:"receivedBy"`
	ReceivedByName string         `json:"receivedByName"`
}

// ToDebtResponse converts a domain.Debt to its response DTO.
func ToDebtResponse(d *domain.Debt) DebtResponse {
	return DebtResponse{
		DebtID:          d.DebtID,
		RestaurantID:    d.RestaurantID,
		CustomerID:      d.CustomerID,
		SaleID:          d.SaleID,
		PrincipalAmount: d.PrincipalAmount,
		PaidAmount:      d.PaidAmount,
		RemainingAmount: d.RemainingAmount,
		DueDate:         d.DueDate,
		Status:          string(d.Status),
		Notes:           d.Notes,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDebtResponses converts a slice of debts.
func ToDebtResponses(debts []domain.Debt) []DebtResponse {
	responses := make([]DebtResponse, len(debts))
	for i := range debts {
		responses[i] = ToDebtResponse(&debts[i])
	}
	return responses
}

// ToDebtPaymentResponse converts a domain.DebtPayment to its response DTO.
func ToDebtPaymentResponse(p *domain.DebtPayment) DebtPaymentResponse {
	return DebtPaymentResponse{
		PaymentID:      p.PaymentID,
		DebtID:         p.DebtID,
		CustomerID:     p.CustomerID,
		Amount:         p.Amount,
		PaymentMethod:  string(p.PaymentMethod),
		PaymentDate:    p.PaymentDate,
		ReceiptNumber:  p.ReceiptNumber,
		ReceivedBy:     p.CreatedBy,
		ReceivedByName: p.CreatedByName,
	}
}

// ToDebtPaymentResponses converts a slice of debt payments.
func ToDebtPaymentResponses(payments []domain.DebtPayment) []DebtPaymentResponse {
	responses := make([]DebtPaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToDebtPaymentResponse(&payments[i])
	}
	return responses
}
