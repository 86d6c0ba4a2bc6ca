package checkout

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// API is the subset of the storefront client used by the checkout flow.
type API interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	Order(ctx context.Context, orderID int64) (*dto.OrderResponse, error)
	UserOrders(ctx context.Context, userID int64) ([]dto.OrderResponse, error)
}

// CartItem is a product with the quantity to buy.
type CartItem struct {
	Product  Product
	Quantity int64
}

// Flow drives screens through calls to the order service.
type Flow struct {
	api    API
	logger *slog.Logger
}

// NewFlow constructs Flow.
func NewFlow(api API, logger *slog.Logger) *Flow {
	return &Flow{api: api, logger: logger}
}

// Checkout places an order for items and returns the payment screen.
// A zero userID lets the service take the user from the bearer token.
func (f *Flow) Checkout(ctx context.Context, current Screen, userID int64, items []CartItem) Screen {
	if len(items) == 0 {
		return Reduce(current, Failed{Message: "Your cart is empty."})
	}

	req := dto.CreateOrderRequest{UserID: userID, Lines: make([]dto.OrderLine, 0, len(items))}
	for _, item := range items {
		req.Lines = append(req.Lines, dto.OrderLine{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
		})
	}

	created, err := f.api.CreateOrder(ctx, req)
	if err != nil {
		return f.fail(current, "create order", err)
	}

	order, err := f.api.Order(ctx, created.OrderID)
	if err != nil {
		return f.fail(current, "fetch order", err)
	}

	f.logger.Info("order placed", slog.Int64("order_id", order.OrderID), slog.Int64("total", order.TotalPrice))
	next := Reduce(current, OrderPlaced{OrderID: order.OrderID, Total: order.TotalPrice, QRPayload: order.QRPayload})
	if order.IsPaid {
		next = Reduce(next, PaymentConfirmed{OrderID: order.OrderID})
	}
	return next
}

// LoadOrders fetches the orders of userID and returns the orders screen.
func (f *Flow) LoadOrders(ctx context.Context, current Screen, userID int64) Screen {
	orders, err := f.api.UserOrders(ctx, userID)
	if err != nil {
		return f.fail(current, "load orders", err)
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, OrderSummary{ID: o.OrderID, Total: o.TotalPrice, Paid: o.IsPaid, CreatedAt: o.CreatedAt})
	}
	return Reduce(current, OrdersLoaded{Orders: summaries})
}

// AwaitPayment blocks until the order on the payment screen is paid.
func (f *Flow) AwaitPayment(ctx context.Context, current Screen, watcher *PaymentWatcher) Screen {
	payment, ok := current.(PaymentScreen)
	if !ok || payment.Paid {
		return current
	}

	if _, err := watcher.Wait(ctx, payment.OrderID); err != nil {
		if errors.Is(err, ErrPaymentNotConfirmed) {
			return Reduce(current, Failed{Message: "Payment was not confirmed yet."})
		}
		return f.fail(current, "await payment", err)
	}
	return Reduce(current, PaymentConfirmed{OrderID: payment.OrderID})
}

func (f *Flow) fail(current Screen, op string, err error) Screen {
	f.logger.Error("checkout step failed", slog.String("op", op), slog.String("error", err.Error()))
	return Reduce(current, Failed{Message: userMessage(err)})
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		return "Please check your order and try again."
	case errors.Is(err, domainErrors.ErrNotFound):
		return "Order not found."
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		return "Please sign in again."
	default:
		return GenericErrorMessage
	}
}
