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

// debtHandler handles the customer receivable endpoints.
type debtHandler struct {
	debtService portssvc.DebtSvcFacade
}

func newDebtHandler(ds portssvc.DebtSvcFacade) *debtHandler {
	return &debtHandler{debtService: ds}
}

// registerDebtRoutes registers debt routes under one restaurant.
func registerDebtRoutes(rg *gin.RouterGroup, debtService portssvc.DebtSvcFacade) {
	h := newDebtHandler(debtService)

	debts := rg.Group("/debts")
	{
		debts.POST("", h.createDebt)
		debts.GET("", h.listDebts)
		debts.GET("/:debtID", h.getDebt)
		debts.DELETE("/:debtID", h.deleteDebt)
		debts.PUT("/:debtID/principal", h.updatePrincipal)
		debts.POST("/:debtID/writeoff", h.writeOff)
		debts.GET("/:debtID/payments", h.listPayments)
		debts.POST("/:debtID/payments", h.recordPayment)
	}

	rg.GET("/customers/:customerID/debts", h.listCustomerDebts)
}

// debtPaymentResult pairs the receipt with the debt state after the payment.
type debtPaymentResult struct {
	Payment dto.DebtPaymentResponse `json:"payment"`
	Debt    dto.DebtResponse        `json:"debt"`
}

// createDebt godoc
// @Summary Open a customer debt
// @Description Opens a receivable; rejected when it would push the customer past their credit limit.
// @Tags debts
// @Accept json
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param debt body dto.CreateDebtRequest true "Debt details"
// @Success 201 {object} dto.DebtResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Credit limit exceeded"
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/debts [post]
func (h *debtHandler) createDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDebt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	debt, err := h.debtService.CreateDebt(c.Request.Context(), c.Param("restaurantID"), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create debt")
		return
	}

	logger.Info("Debt created", slog.String("debt_id", debt.DebtID), slog.String("customer_id", debt.CustomerID))
	c.JSON(http.StatusCreated, dto.ToDebtResponse(debt))
}

// getDebt godoc
// @Summary Get a debt by ID
// @Tags debts
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param debtID path string true "Debt ID"
// @Success 200 {object} dto.DebtResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/debts/{debtID} [get]
func (h *debtHandler) getDebt(c *gin.Context) {
	debt, err := h.debtService.GetDebtByID(c.Request.Context(), c.Param("restaurantID"), c.Param("debtID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve debt")
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtResponse(debt))
}

// listDebts godoc
// @Summary List debts of a restaurant
// @Tags debts
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param status query string false "Filter by status (OUTSTANDING, PARTIALLY_PAID, FULLY_PAID, OVERDUE, WRITTEN_OFF)"
// @Success 200 {array} dto.DebtResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/debts [get]
func (h *debtHandler) listDebts(c *gin.Context) {
	var status *domain.DebtStatus
	if raw := c.Query("status"); raw != "" {
		parsed := domain.DebtStatus(raw)
		if !parsed.Valid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("unknown debt status %q", raw)})
			return
		}
		status = &parsed
	}

	debts, err := h.debtService.ListDebts(c.Request.Context(), c.Param("restaurantID"), status)
	if err != nil {
		respondError(c, err, "Failed to list debts")
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtResponses(debts))
}

// listCustomerDebts godoc
// @Summary List debts of a customer
// @Description Returns the customer's full debt history, written-off debts included.
// @Tags debts
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param customerID path string true "Customer ID"
// @Success 200 {array} dto.DebtResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/customers/{customerID}/debts [get]
func (h *debtHandler) listCustomerDebts(c *gin.Context) {
	debts, err := h.debtService.ListDebtsByCustomer(c.Request.Context(), c.Param("restaurantID"), c.Param("customerID"))
	if err != nil {
		respondError(c, err, "Failed to list customer debts")
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtResponses(debts))
}

// recordPayment godoc
// @Summary Record a payment against a debt
// @Description Applies a payment, updates the debt's totals and derived status, and issues a receipt number.
// @Tags debts
// @Accept json
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param debtID path string true "Debt ID"
// @Param payment body dto.RecordDebtPaymentRequest true "Payment details"
// @Success 201 {object} debtPaymentResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Debt written off"
// @Failure 422 {object} ErrorResponse "Payment exceeds remaining amount"
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/debts/{debtID}/payments [post]
func (h *debtHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordDebtPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	payment, debt, err := h.debtService.RecordPayment(c.Request.Context(), c.Param("restaurantID"), c.Param("debtID"), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to record payment")
		return
	}

	logger.Info("Debt payment recorded",
		slog.String("debt_id", debt.DebtID),
		slog.String("receipt_number", payment.ReceiptNumber))
	c.JSON(http.StatusCreated, debtPaymentResult{
		Payment: dto.ToDebtPaymentResponse(payment),
		Debt:    dto.ToDebtResponse(debt),
	})
}

// listPayments godoc
// @Summary List payments of a debt
// @Tags debts
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param debtID path string true "Debt ID"
// @Success 200 {array} dto.DebtPaymentResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/debts/{debtID}/payments [get]
func (h *debtHandler) listPayments(c *gin.Context) {
	payments, err := h.debtService.ListPayments(c.Request.Context(), c.Param("restaurantID"), c.Param("debtID"))
	if err != nil {
		respondError(c, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtPaymentResponses(payments))
}

// updatePrincipal godoc
// @Summary Update a debt's principal
// @Description Edits the principal; the status is left untouched even when the debt becomes settled by arithmetic.
// @Tags debts
// @Accept json
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param debtID path string true "Debt ID"
// @Param principal body dto.UpdateDebtPrincipalRequest true "New principal"
// @Success 200 {object} dto.DebtResponse
// @Failure 400 {object} ErrorResponse "New principal below the amount already paid"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/debts/{debtID}/principal [put]
func (h *debtHandler) updatePrincipal(c *gin.Context) {
	var req dto.UpdateDebtPrincipalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	debt, err := h.debtService.UpdatePrincipal(c.Request.Context(), c.Param("restaurantID"), c.Param("debtID"), req, updaterUserID)
	if err != nil {
		respondError(c, err, "Failed to update principal")
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtResponse(debt))
}

// writeOff godoc
// @Summary Write off a debt
// @Description Marks the debt WRITTEN_OFF; further payments are rejected.
// @Tags debts
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param debtID path string true "Debt ID"
// @Success 200 {object} dto.DebtResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already written off"
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/debts/{debtID}/writeoff [post]
func (h *debtHandler) writeOff(c *gin.Context) {
	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	debt, err := h.debtService.WriteOff(c.Request.Context(), c.Param("restaurantID"), c.Param("debtID"), updaterUserID)
	if err != nil {
		respondError(c, err, "Failed to write off debt")
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtResponse(debt))
}

// deleteDebt godoc
// @Summary Delete a debt
// @Description Removes a debt that has no recorded payments.
// @Tags debts
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param debtID path string true "Debt ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Debt has payments"
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/debts/{debtID} [delete]
func (h *debtHandler) deleteDebt(c *gin.Context) {
	if err := h.debtService.DeleteDebt(c.Request.Context(), c.Param("restaurantID"), c.Param("debtID")); err != nil {
		respondError(c, err, "Failed to delete debt")
		return
	}
	c.Status(http.StatusNoContent)
}
