package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fbangoura/bakery_ledger_app/internal/core/ports/services"
	"github.com/fbangoura/bakery_ledger_app/internal/dto"
	"github.com/fbangoura/bakery_ledger_app/internal/middleware"
)

// reconciliationHandler handles the stock reconciliation endpoints.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: rs}
}

// registerReconciliationRoutes registers reconciliation routes under one restaurant.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	reconciliations := rg.Group("/reconciliations")
	{
		reconciliations.POST("", h.createReconciliation)
		reconciliations.GET("", h.listReconciliations)
		reconciliations.GET("/:reconciliationID", h.getReconciliation)
		reconciliations.POST("/:reconciliationID/approve", h.approveReconciliation)
		reconciliations.POST("/:reconciliationID/reject", h.rejectReconciliation)
	}
}

// createReconciliation godoc
// @Summary Create a stock reconciliation
// @Description Snapshots system stock for every counted item and stores the variances as a PENDING reconciliation.
// @Tags reconciliations
// @Accept json
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param reconciliation body dto.CreateReconciliationRequest true "Physical counts"
// @Success 201 {object} dto.ReconciliationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/reconciliations [post]
func (h *reconciliationHandler) createReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateReconciliation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	recon, err := h.reconciliationService.CreateReconciliation(c.Request.Context(), c.Param("restaurantID"), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create reconciliation")
		return
	}

	logger.Info("Reconciliation created",
		slog.String("reconciliation_id", recon.ReconciliationID),
		slog.Int("items", len(recon.Items)))
	c.JSON(http.StatusCreated, dto.ToReconciliationResponse(recon))
}

// getReconciliation godoc
// @Summary Get a reconciliation by ID
// @Tags reconciliations
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param reconciliationID path string true "Reconciliation ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/reconciliations/{reconciliationID} [get]
func (h *reconciliationHandler) getReconciliation(c *gin.Context) {
	recon, err := h.reconciliationService.GetReconciliationByID(c.Request.Context(), c.Param("restaurantID"), c.Param("reconciliationID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve reconciliation")
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(recon))
}

// listReconciliations godoc
// @Summary List reconciliations of a restaurant
// @Tags reconciliations
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Success 200 {array} dto.ReconciliationResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/reconciliations [get]
func (h *reconciliationHandler) listReconciliations(c *gin.Context) {
	recons, err := h.reconciliationService.ListReconciliations(c.Request.Context(), c.Param("restaurantID"))
	if err != nil {
		respondError(c, err, "Failed to list reconciliations")
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationResponses(recons))
}

// approveReconciliation godoc
// @Summary Approve a reconciliation
// @Description Applies every variance as an ADJUSTMENT movement and forces counted items to their physical count.
// @Tags reconciliations
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param reconciliationID path string true "Reconciliation ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already approved or rejected"
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/reconciliations/{reconciliationID}/approve [post]
func (h *reconciliationHandler) approveReconciliation(c *gin.Context) {
	approverUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	recon, err := h.reconciliationService.Approve(c.Request.Context(), c.Param("restaurantID"), c.Param("reconciliationID"), approverUserID)
	if err != nil {
		respondError(c, err, "Failed to approve reconciliation")
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(recon))
}

// rejectReconciliation godoc
// @Summary Reject a reconciliation
// @Description Closes the reconciliation without touching stock.
// @Tags reconciliations
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param reconciliationID path string true "Reconciliation ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already approved or rejected"
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/reconciliations/{reconciliationID}/reject [post]
func (h *reconciliationHandler) rejectReconciliation(c *gin.Context) {
	approverUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	recon, err := h.reconciliationService.Reject(c.Request.Context(), c.Param("restaurantID"), c.Param("reconciliationID"), approverUserID)
	if err != nil {
		respondError(c, err, "Failed to reject reconciliation")
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(recon))
}
