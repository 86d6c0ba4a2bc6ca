package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
	logger *slog.Logger
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{facade: facade, logger: logger}
}

// Create handles POST /api/orders. The body userId wins over the bearer token.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "malformed order payload")
		return
	}

	userID := req.UserID
	if userID == 0 {
		userID = CurrentUserID(c)
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), userID, toModelLines(req.Lines))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateOrderResponse{OrderID: order.ID, TotalPrice: order.TotalPrice})
}

// Get handles GET /api/orders/:orderId and GET /api/payment/:orderId.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := idParam(c, "orderId")
	if !ok {
		return
	}

	order, err := h.facade.Order(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// ListByUser handles GET /api/orders/user/:userId.
func (h *OrderHandler) ListByUser(c *gin.Context) {
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}

	orders, err := h.facade.Orders(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}
