package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fbangoura/bakery_ledger_app/internal/core/ports/services"
	"github.com/fbangoura/bakery_ledger_app/internal/dto"
	"github.com/fbangoura/bakery_ledger_app/internal/middleware"
)

// inventoryHandler handles the stock ledger endpoints.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is}
}

// registerInventoryRoutes registers inventory routes under one restaurant.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	inventory := rg.Group("/inventory")
	{
		inventory.POST("/items", h.createItem)
		inventory.GET("/items", h.listItems)
		inventory.GET("/items/:itemID", h.getItem)
		inventory.GET("/items/:itemID/movements", h.listMovements)
		inventory.POST("/movements", h.applyMovement)
		inventory.POST("/production-deductions", h.applyProductionDeductions)
		inventory.GET("/production-deductions/:productionLogID", h.listProductionDeductions)
		inventory.DELETE("/production-deductions/:productionLogID", h.reverseProductionDeductions)
		inventory.POST("/transfers", h.transfer)
	}
}

// movementResult pairs the appended movement with the item's new stock level.
type movementResult struct {
	Movement dto.StockMovementResponse `json:"movement"`
	Item     dto.InventoryItemResponse `json:"item"`
}

// createItem godoc
// @Summary Create an inventory item
// @Tags inventory
// @Accept json
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param item body dto.CreateItemRequest true "Item details"
// @Success 201 {object} dto.InventoryItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Name/category already taken"
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/inventory/items [post]
func (h *inventoryHandler) createItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), c.Param("restaurantID"), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create item")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInventoryItemResponse(item))
}

// getItem godoc
// @Summary Get an inventory item by ID
// @Tags inventory
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param itemID path string true "Item ID"
// @Success 200 {object} dto.InventoryItemResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/inventory/items/{itemID} [get]
func (h *inventoryHandler) getItem(c *gin.Context) {
	item, err := h.inventoryService.GetItemByID(c.Request.Context(), c.Param("restaurantID"), c.Param("itemID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve item")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

// listItems godoc
// @Summary List inventory items of a restaurant
// @Tags inventory
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Success 200 {array} dto.InventoryItemResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/inventory/items [get]
func (h *inventoryHandler) listItems(c *gin.Context) {
	items, err := h.inventoryService.ListItems(c.Request.Context(), c.Param("restaurantID"))
	if err != nil {
		respondError(c, err, "Failed to list items")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryItemResponses(items))
}

// listMovements godoc
// @Summary List movements of an item
// @Tags inventory
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param itemID path string true "Item ID"
// @Success 200 {array} dto.StockMovementResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/inventory/items/{itemID}/movements [get]
func (h *inventoryHandler) listMovements(c *gin.Context) {
	movements, err := h.inventoryService.ListMovements(c.Request.Context(), c.Param("restaurantID"), c.Param("itemID"))
	if err != nil {
		respondError(c, err, "Failed to list movements")
		return
	}
	c.JSON(http.StatusOK, dto.ToStockMovementResponses(movements))
}

// applyMovement godoc
// @Summary Apply a stock movement
// @Description Appends one signed movement to the stock ledger and adjusts the item's stock.
// @Tags inventory
// @Accept json
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param movement body dto.ApplyMovementRequest true "Movement details"
// @Success 201 {object} movementResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/inventory/movements [post]
func (h *inventoryHandler) applyMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ApplyMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApplyMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movement, item, err := h.inventoryService.ApplyMovement(c.Request.Context(), c.Param("restaurantID"), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to apply movement")
		return
	}

	logger.Info("Stock movement applied",
		slog.String("movement_id", movement.MovementID),
		slog.String("item_id", item.ItemID))
	c.JSON(http.StatusCreated, movementResult{
		Movement: dto.ToStockMovementResponse(movement),
		Item:     dto.ToInventoryItemResponse(item),
	})
}

// applyProductionDeductions godoc
// @Summary Deduct ingredients for a production log
// @Description Writes one USAGE movement per ingredient, all-or-nothing, after checking availability for every line.
// @Tags inventory
// @Accept json
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param deductions body dto.ProductionDeductionRequest true "Production log ingredient usage"
// @Success 201 {array} dto.StockMovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient stock for an ingredient"
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/inventory/production-deductions [post]
func (h *inventoryHandler) applyProductionDeductions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ProductionDeductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProductionDeductions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movements, err := h.inventoryService.ApplyProductionDeductions(c.Request.Context(), c.Param("restaurantID"), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to apply production deductions")
		return
	}

	logger.Info("Production deductions applied",
		slog.String("production_log_id", req.ProductionLogID),
		slog.Int("movements", len(movements)))
	c.JSON(http.StatusCreated, dto.ToStockMovementResponses(movements))
}

// listProductionDeductions godoc
// @Summary List the deductions of a production log
// @Tags inventory
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param productionLogID path string true "Production log ID"
// @Success 200 {array} dto.StockMovementResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/inventory/production-deductions/{productionLogID} [get]
func (h *inventoryHandler) listProductionDeductions(c *gin.Context) {
	movements, err := h.inventoryService.ListProductionDeductions(c.Request.Context(), c.Param("restaurantID"), c.Param("productionLogID"))
	if err != nil {
		respondError(c, err, "Failed to list production deductions")
		return
	}
	c.JSON(http.StatusOK, dto.ToStockMovementResponses(movements))
}

// reverseProductionDeductions godoc
// @Summary Reverse a production log's deductions
// @Description Restores stock consumed by the production log and removes its movement rows.
// @Tags inventory
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param productionLogID path string true "Production log ID"
// @Success 200 {object} map[string]int
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/inventory/production-deductions/{productionLogID} [delete]
func (h *inventoryHandler) reverseProductionDeductions(c *gin.Context) {
	reversed, err := h.inventoryService.ReverseProductionDeductions(c.Request.Context(), c.Param("restaurantID"), c.Param("productionLogID"))
	if err != nil {
		respondError(c, err, "Failed to reverse production deductions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reversedMovements": reversed})
}

// transfer godoc
// @Summary Transfer stock to another restaurant
// @Description Moves stock between restaurants, creating the target item when no name/category match exists there.
// @Tags inventory
// @Accept json
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.InventoryTransferResponse
// @Failure 400 {object} ErrorResponse "Source and target restaurants are the same"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient stock"
// @Security BearerAuth
// @Router /restaurants/{restaurantID}/inventory/transfers [post]
func (h *inventoryHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	transfer, err := h.inventoryService.Transfer(c.Request.Context(), c.Param("restaurantID"), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to transfer stock")
		return
	}

	logger.Info("Stock transferred",
		slog.String("transfer_id", transfer.TransferID),
		slog.String("target_restaurant_id", transfer.TargetRestaurantID))
	c.JSON(http.StatusCreated, dto.ToInventoryTransferResponse(transfer))
}
