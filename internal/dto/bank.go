package dto

import (
	"time"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordBankTransactionRequest is the payload for recording a money movement.
// At most one of SaleID/DebtPaymentID may be set; expense payment links are
// generated internally by the expense flow.
type RecordBankTransactionRequest struct {
	Date          *time.Time      `json:"date"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Type          string          `json:"type" binding:"required"`
	Method        string          `json:"method" binding:"required"`
	Reason        string          `json:"reason" binding:"required"`
	Description   string          `json:"description"`
	SaleID        *string         `json:"saleID"`
	DebtPaymentID *string         `json:"debtPaymentID"`
}

// BankTransactionResponse defines the data returned for a bank transaction.
type BankTransactionResponse struct {
	TransactionID    string          `json:"transactionID"`
	RestaurantID     string          `json:"restaurantID"`
	Date             time.Time       `json:"date"`
	Amount           decimal.Decimal `json:"amount"`
	Type             string          `json:"type"`
	Method           string          `json:"method"`
	Reason           string          `json:"reason"`
	Status           string          `json:"status"`
	SaleID           *string         `json:"saleID,omitempty"`
	DebtPaymentID    *string         `json:"debtPaymentID,omitempty"`
	ExpensePaymentID *string         `json:"expensePaymentID,omitempty"`
	ConfirmedAt      *time.Time      `json:"confirmedAt,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
	CreatedByName    string          `json:"createdByName"`
}

// ToBankTransactionResponse converts a domain.BankTransaction to its response DTO.
func ToBankTransactionResponse(t *domain.BankTransaction) BankTransactionResponse {
	return BankTransactionResponse{
		TransactionID:    t.TransactionID,
		RestaurantID:     t.RestaurantID,
		Date:             t.Date,
		Amount:           t.Amount,
		Type:             string(t.Type),
		Method:           string(t.Method),
		Reason:           string(t.Reason),
		Status:           string(t.Status),
		SaleID:           t.SaleID,
		DebtPaymentID:    t.DebtPaymentID,
		ExpensePaymentID: t.ExpensePaymentID,
		ConfirmedAt:      t.ConfirmedAt,
		CreatedAt:        t.CreatedAt,
		CreatedBy:        t.CreatedBy,
		CreatedByName:    t.CreatedByName,
	}
}

// ToBankTransactionResponses converts a slice of transactions.
func ToBankTransactionResponses(txns []domain.BankTransaction) []BankTransactionResponse {
	responses := make([]BankTransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToBankTransactionResponse(&txns[i])
	}
	return responses
}
