package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	portssvc "github.com/fbangoura/bakery_ledger_app/internal/core/ports/services"
	"github.com/fbangoura/bakery_ledger_app/internal/dto"
	"github.com/fbangoura/bakery_ledger_app/internal/middleware"
)

// expenseHandler handles the expense liability endpoints.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

// registerExpenseRoutes registers expense routes under one restaurant.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:expenseID", h.getExpense)
		expenses.POST("/:expenseID/approve", h.approveExpense)
		expenses.POST("/:expenseID/reject", h.rejectExpense)
		expenses.GET("/:expenseID/payments", h.listPayments)
		expenses.POST("/:expenseID/payments", h.recordPayment)
	}
}

// expensePaymentResult pairs the payment with the expense state after it.
type expensePaymentResult struct {
	Payment dto.ExpensePaymentResponse `json:"payment"`
	Expense dto.ExpenseResponse        `json:"expense"`
}

// createExpense godoc
// @Summary Register an expense
// @Description Registers a liability; it starts PENDING approval and UNPAID.
// @Tags expenses
// @Accept json
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), c.Param("restaurantID"), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create expense")
		return
	}

	logger.Info("Expense created", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// getExpense godoc
// @Summary Get an expense by ID
// @Tags expenses
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/expenses/{expenseID} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), c.Param("restaurantID"), c.Param("expenseID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses of a restaurant
// @Tags expenses
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param approval query string false "Filter by approval status (PENDING, APPROVED, REJECTED)"
// @Success 200 {array} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	var approval *domain.ExpenseApprovalStatus
	if raw := c.Query("approval"); raw != "" {
		parsed := domain.ExpenseApprovalStatus(raw)
		if !parsed.Valid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("unknown approval status %q", raw)})
			return
		}
		approval = &parsed
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), c.Param("restaurantID"), approval)
	if err != nil {
		respondError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponses(expenses))
}

// approveExpense godoc
// @Summary Approve an expense
// @Description Approves a PENDING expense, unlocking payments against it.
// @Tags expenses
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Expense already decided"
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/expenses/{expenseID}/approve [post]
func (h *expenseHandler) approveExpense(c *gin.Context) {
	approverUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	expense, err := h.expenseService.ApproveExpense(c.Request.Context(), c.Param("restaurantID"), c.Param("expenseID"), approverUserID)
	if err != nil {
		respondError(c, err, "Failed to approve expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// rejectExpense godoc
// @Summary Reject an expense
// @Tags expenses
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Expense already decided"
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/expenses/{expenseID}/reject [post]
func (h *expenseHandler) rejectExpense(c *gin.Context) {
	approverUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	expense, err := h.expenseService.RejectExpense(c.Request.Context(), c.Param("restaurantID"), c.Param("expenseID"), approverUserID)
	if err != nil {
		respondError(c, err, "Failed to reject expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// recordPayment godoc
// @Summary Record a payment against an approved expense
// @Description Creates the payment together with its CONFIRMED withdrawal bank transaction.
// @Tags expenses
// @Accept json
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param expenseID path string true "Expense ID"
// @Param payment body dto.RecordExpensePaymentRequest true "Payment details"
// @Success 201 {object} expensePaymentResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Not approved or already fully paid"
// @Failure 422 {object} ErrorResponse "Payment exceeds remaining amount"
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/expenses/{expenseID}/payments [post]
func (h *expenseHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordExpensePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordExpensePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	payment, expense, err := h.expenseService.RecordExpensePayment(c.Request.Context(), c.Param("restaurantID"), c.Param("expenseID"), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to record expense payment")
		return
	}

	logger.Info("Expense payment recorded",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("bank_transaction_id", payment.BankTransactionID))
	c.JSON(http.StatusCreated, expensePaymentResult{
		Payment: dto.ToExpensePaymentResponse(payment),
		Expense: dto.ToExpenseResponse(expense),
	})
}

// listPayments godoc
// @Summary List payments of an expense
// @Tags expenses
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param expenseID path string true "Expense ID"
// @Success 200 {array} dto.ExpensePaymentResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/expenses/{expenseID}/payments [get]
func (h *expenseHandler) listPayments(c *gin.Context) {
	payments, err := h.expenseService.ListExpensePayments(c.Request.Context(), c.Param("restaurantID"), c.Param("expenseID"))
	if err != nil {
		respondError(c, err, "Failed to list expense payments")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpensePaymentResponses(payments))
}
