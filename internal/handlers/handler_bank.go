package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fbangoura/bakery_ledger_app/internal/core/ports/services"
	"github.com/fbangoura/bakery_ledger_app/internal/dto"
	"github.com/fbangoura/bakery_ledger_app/internal/middleware"
)

// bankTransactionHandler handles the bank transaction journal endpoints.
type bankTransactionHandler struct {
	bankService portssvc.BankTransactionSvcFacade
}

func newBankTransactionHandler(bs portssvc.BankTransactionSvcFacade) *bankTransactionHandler {
	return &bankTransactionHandler{bankService: bs}
}

// registerBankTransactionRoutes registers transaction routes under one restaurant.
func registerBankTransactionRoutes(rg *gin.RouterGroup, bankService portssvc.BankTransactionSvcFacade) {
	h := newBankTransactionHandler(bankService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.recordTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.POST("/:transactionID/confirm", h.confirmTransaction)
	}
}

// recordTransaction godoc
// @Summary Record a bank transaction
// @Description Records a PENDING deposit or withdrawal in the journal.
// @Tags transactions
// @Accept json
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param transaction body dto.RecordBankTransactionRequest true "Transaction details"
// @Success 201 {object} dto.BankTransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Sale or debt payment already linked"
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/transactions [post]
func (h *bankTransactionHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordBankTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.bankService.RecordTransaction(c.Request.Context(), c.Param("restaurantID"), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to record transaction")
		return
	}

	logger.Info("Bank transaction recorded", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToBankTransactionResponse(txn))
}

// confirmTransaction godoc
// @Summary Confirm a pending transaction
// @Description Transitions a PENDING transaction to CONFIRMED, making it part of balance reconstruction.
// @Tags transactions
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.BankTransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transaction already confirmed"
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/transactions/{transactionID}/confirm [post]
func (h *bankTransactionHandler) confirmTransaction(c *gin.Context) {
	confirmerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.bankService.ConfirmTransaction(c.Request.Context(), c.Param("restaurantID"), c.Param("transactionID"), confirmerUserID)
	if err != nil {
		respondError(c, err, "Failed to confirm transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.BankTransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/transactions/{transactionID} [get]
func (h *bankTransactionHandler) getTransaction(c *gin.Context) {
	txn, err := h.bankService.GetTransactionByID(c.Request.Context(), c.Param("restaurantID"), c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions in a date window
// @Tags transactions
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {array} dto.BankTransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/transactions [get]
func (h *bankTransactionHandler) listTransactions(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	txns, err := h.bankService.ListTransactions(c.Request.Context(), c.Param("restaurantID"), from, to)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankTransactionResponses(txns))
}
