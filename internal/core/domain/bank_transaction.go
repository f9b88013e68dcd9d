package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of a bank transaction.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
)

// Valid reports whether the type is one of the allowed directions.
func (t TransactionType) Valid() bool {
	return t == Deposit || t == Withdrawal
}

// PaymentMethod is the money channel a transaction moved through.
type PaymentMethod string

const (
	MethodCash        PaymentMethod = "CASH"
	MethodOrangeMoney PaymentMethod = "ORANGE_MONEY"
	MethodCard        PaymentMethod = "CARD"
)

// PaymentMethods lists all supported methods in a stable order.
var PaymentMethods = []PaymentMethod{MethodCash, MethodOrangeMoney, MethodCard}

func (m PaymentMethod) Valid() bool {
	return m == MethodCash || m == MethodOrangeMoney || m == MethodCard
}

// TransactionReason categorizes why money moved.
type TransactionReason string

const (
	ReasonSalesDeposit     TransactionReason = "SALES_DEPOSIT"
	ReasonDebtCollection   TransactionReason = "DEBT_COLLECTION"
	ReasonExpensePayment   TransactionReason = "EXPENSE_PAYMENT"
	ReasonOwnerWithdrawal  TransactionReason = "OWNER_WITHDRAWAL"
	ReasonCapitalInjection TransactionReason = "CAPITAL_INJECTION"
	ReasonOther            TransactionReason = "OTHER"
)

func (r TransactionReason) Valid() bool {
	switch r {
	case ReasonSalesDeposit, ReasonDebtCollection, ReasonExpensePayment,
		ReasonOwnerWithdrawal, ReasonCapitalInjection, ReasonOther:
		return true
	}
	return false
}

// TransactionStatus is the confirmation state of a bank transaction.
type TransactionStatus string

const (
	TxnPending   TransactionStatus = "PENDING"
	TxnConfirmed TransactionStatus = "CONFIRMED"
)

// BankTransaction is one money movement in the journal. Rows are append-only:
// the only mutation ever applied is the PENDING -> CONFIRMED transition, and
// corrections are made with offsetting transactions.
type BankTransaction struct {
	TransactionID    string            `json:"transactionID"`
	RestaurantID     string            `json:"restaurantID"`
	Date             time.Time         `json:"date"`
	Amount           decimal.Decimal   `json:"amount"` // always positive; Type carries direction
	Type             TransactionType   `json:"type"`
	Method           PaymentMethod     `json:"method"`
	Reason           TransactionReason `json:"reason"`
	Status           TransactionStatus `json:"status"`
	SaleID           *string           `json:"saleID,omitempty"`           // 1:1 with a sale deposit
	DebtPaymentID    *string           `json:"debtPaymentID,omitempty"`    // 1:1 with a debt collection
	ExpensePaymentID *string           `json:"expensePaymentID,omitempty"` // 1:1 with an expense payment
	ConfirmedAt      *time.Time        `json:"confirmedAt,omitempty"`
	AuditFields
}

// SignedAmount returns the amount with the direction applied.
func (t BankTransaction) SignedAmount() decimal.Decimal {
	if t.Type == Withdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}
