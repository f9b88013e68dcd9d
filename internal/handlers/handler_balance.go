package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fbangoura/bakery_ledger_app/internal/core/ports/services"
)

// balanceHandler exposes the read-only balance reconstruction queries. The
// domain read models are already response shaped, so no DTO mapping happens here.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newBalanceHandler(bs portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: bs}
}

// registerBalanceRoutes registers balance query routes under one restaurant.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	balance := rg.Group("/balance")
	{
		balance.GET("/daily-cash-flow", h.dailyCashFlow)
		balance.GET("/history", h.balanceHistory)
		balance.GET("/breakdown", h.breakdown)
	}
}

// dailyCashFlow godoc
// @Summary Daily cash flow
// @Description Aggregates confirmed transactions per calendar day and payment method in the window.
// @Tags balance
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {array} domain.DailyCashFlow
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/balance/daily-cash-flow [get]
func (h *balanceHandler) dailyCashFlow(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	flows, err := h.balanceService.DailyCashFlow(c.Request.Context(), c.Param("restaurantID"), from, to)
	if err != nil {
		respondError(c, err, "Failed to compute daily cash flow")
		return
	}
	c.JSON(http.StatusOK, flows)
}

// balanceHistory godoc
// @Summary Per-day balance history
// @Description Replays confirmed transactions over opening balances and returns each day's closing balance, carrying inactive days forward.
// @Tags balance
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {array} domain.DailyBalance
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/balance/history [get]
func (h *balanceHandler) balanceHistory(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	history, err := h.balanceService.BalanceHistory(c.Request.Context(), c.Param("restaurantID"), from, to)
	if err != nil {
		respondError(c, err, "Failed to reconstruct balance history")
		return
	}
	c.JSON(http.StatusOK, history)
}

// breakdown godoc
// @Summary Transaction breakdown
// @Description Groups the window's confirmed transactions by reason (with percentages) and by payment method.
// @Tags balance
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} domain.TransactionBreakdown
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/balance/breakdown [get]
func (h *balanceHandler) breakdown(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.balanceService.Breakdown(c.Request.Context(), c.Param("restaurantID"), from, to)
	if err != nil {
		respondError(c, err, "Failed to compute breakdown")
		return
	}
	c.JSON(http.StatusOK, result)
}
