package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondMessage(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func respondMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Message: message})
}

// respondError maps domain errors onto status codes. Internal details never reach the body.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		respondMessage(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domainErrors.ErrNotFound):
		respondMessage(c, http.StatusNotFound, "not found")
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		respondMessage(c, http.StatusConflict, "already exists")
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		respondMessage(c, http.StatusUnauthorized, "invalid credentials")
	default:
		logger.Error("request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		respondMessage(c, http.StatusInternalServerError, "internal server error")
	}
}

func toModelLines(lines []dto.OrderLine) []model.OrderLine {
	out := make([]model.OrderLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, model.OrderLine{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	return out
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	lines := make([]dto.OrderLine, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, dto.OrderLine{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	return dto.OrderResponse{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Lines:      lines,
		TotalPrice: order.TotalPrice,
		QRPayload:  order.QRPayload,
		IsPaid:     order.IsPaid,
		Status:     string(order.Status()),
		CreatedAt:  order.CreatedAt,
		PaidAt:     order.PaidAt,
	}
}

func toUserResponse(user model.User) dto.UserResponse {
	return dto.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email, CreatedAt: user.CreatedAt}
}
