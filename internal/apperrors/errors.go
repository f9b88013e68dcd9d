package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists,
// e.g. a second bank transaction linked to the same sale or debt payment.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates an action that is not legal in the entity's current
// lifecycle state, e.g. confirming an already confirmed transaction or paying a
// written-off debt.
var ErrInvalidState = errors.New("action not allowed in current state")

// ErrAmountExceedsRemaining indicates a payment larger than the outstanding balance.
var ErrAmountExceedsRemaining = errors.New("amount exceeds remaining balance")

// ErrCreditLimitExceeded indicates a debt that would push a customer past their credit limit.
var ErrCreditLimitExceeded = errors.New("customer credit limit exceeded")

// ErrInsufficientStock indicates a deduction larger than the item's current stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrInvalidTransfer indicates an inventory transfer with an invalid source/target pair.
var ErrInvalidTransfer = errors.New("invalid inventory transfer")

// ErrHasPayments indicates a debt deletion attempt while payments exist.
var ErrHasPayments = errors.New("debt has recorded payments")

// ErrAlreadyProcessed indicates a reconciliation that has already been approved or rejected.
var ErrAlreadyProcessed = errors.New("reconciliation already processed")

// ErrNotApproved indicates an expense payment against an unapproved expense.
var ErrNotApproved = errors.New("expense is not approved")

// ErrAlreadyPaid indicates an expense payment against a fully paid expense.
var ErrAlreadyPaid = errors.New("expense is already fully paid")

// ErrInvalidPrincipal indicates a principal edit below the already paid amount.
var ErrInvalidPrincipal = errors.New("principal cannot be lower than paid amount")

// ErrForbidden indicates the authenticated user may not act on the resource.
var ErrForbidden = errors.New("forbidden")
