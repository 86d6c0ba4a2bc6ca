package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// PaymentHandler serves the callback encoded into order QR codes.
type PaymentHandler struct {
	facade OrderFacade
	logger *slog.Logger
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade OrderFacade, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{facade: facade, logger: logger}
}

// MarkPaid handles GET /api/payment/payment/:orderId.
func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	orderID, ok := idParam(c, "orderId")
	if !ok {
		return
	}

	alreadyPaid, err := h.facade.MarkPaid(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	message := "payment confirmed"
	if alreadyPaid {
		message = "order already paid"
	} else {
		h.logger.Info("order paid", slog.Int64("order_id", orderID))
	}

	c.JSON(http.StatusOK, dto.MarkPaidResponse{Message: message, OrderID: orderID, AlreadyPaid: alreadyPaid})
}
