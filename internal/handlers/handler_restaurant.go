package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fbangoura/bakery_ledger_app/internal/core/ports/services"
	"github.com/fbangoura/bakery_ledger_app/internal/dto"
	"github.com/fbangoura/bakery_ledger_app/internal/middleware"
)

// restaurantHandler handles tenant management requests.
type restaurantHandler struct {
	restaurantService portssvc.RestaurantSvcFacade
}

func newRestaurantHandler(rs portssvc.RestaurantSvcFacade) *restaurantHandler {
	return &restaurantHandler{restaurantService: rs}
}

// registerRestaurantRoutes registers the restaurant routes and nests every
// per-restaurant resource under /restaurants/:restaurantID.
func registerRestaurantRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newRestaurantHandler(services.Restaurant)

	restaurants := rg.Group("/restaurants")
	{
		restaurants.POST("", h.createRestaurant)
		restaurants.GET("", h.listRestaurants)
		restaurants.GET("/:restaurantID", h.getRestaurant)
	}

	scoped := restaurants.Group("/:restaurantID")
	registerCustomerRoutes(scoped, services.Customer)
	registerBankTransactionRoutes(scoped, services.BankTransaction)
	registerDebtRoutes(scoped, services.Debt)
	registerExpenseRoutes(scoped, services.Expense)
	registerInventoryRoutes(scoped, services.Inventory)
	registerReconciliationRoutes(scoped, services.Reconciliation)
	registerBalanceRoutes(scoped, services.Balance)
}

// createRestaurant godoc
// @Summary Create a restaurant
// @Description Creates a tenant with its opening balances.
// @Tags restaurants
// @Accept json
// @Produce json
// @Param restaurant body dto.CreateRestaurantRequest true "Restaurant details"
// @Success 201 {object} dto.RestaurantResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants [post]
func (h *restaurantHandler) createRestaurant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	restaurant, err := h.restaurantService.CreateRestaurant(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create restaurant")
		return
	}

	logger.Info("Restaurant created", slog.String("restaurant_id", restaurant.RestaurantID))
	c.JSON(http.StatusCreated, dto.ToRestaurantResponse(restaurant))
}

// getRestaurant godoc
// @Summary Get a restaurant by ID
// @Tags restaurants
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Success 200 {object} dto.RestaurantResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants/{restaurantID} [get]
func (h *restaurantHandler) getRestaurant(c *gin.Context) {
	restaurant, err := h.restaurantService.GetRestaurantByID(c.Request.Context(), c.Param("restaurantID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve restaurant")
		return
	}
	c.JSON(http.StatusOK, dto.ToRestaurantResponse(restaurant))
}

// listRestaurants godoc
// @Summary List restaurants
// @Tags restaurants
// @Produce json
// @Success 200 {array} dto.RestaurantResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /restaurants [get]
func (h *restaurantHandler) listRestaurants(c *gin.Context) {
	restaurants, err := h.restaurantService.ListRestaurants(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list restaurants")
		return
	}
	c.JSON(http.StatusOK, dto.ToRestaurantResponses(restaurants))
}
