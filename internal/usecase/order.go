package usecase

import (
	"context"
	"slices"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// PayloadIssuer renders the QR payload for an order id.
type PayloadIssuer interface {
	Issue(orderID int64) (string, error)
}

// OrderObserver is notified about successful order transitions.
type OrderObserver interface {
	OrderCreated(total int64)
	OrderPaid()
}

type noopObserver struct{}

func (noopObserver) OrderCreated(int64) {}
func (noopObserver) OrderPaid()         {}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders   repository.OrderRepository
	issuer   PayloadIssuer
	observer OrderObserver
}

// NewOrderUseCase constructs OrderUseCase. A nil observer disables notifications.
func NewOrderUseCase(orders repository.OrderRepository, issuer PayloadIssuer, observer OrderObserver) *OrderUseCase {
	if observer == nil {
		observer = noopObserver{}
	}
	return &OrderUseCase{orders: orders, issuer: issuer, observer: observer}
}

// Create validates lines, computes the total and stores an unpaid order with its QR payload.
func (u *OrderUseCase) Create(ctx context.Context, userID int64, lines []model.OrderLine) (*model.Order, error) {
	if userID <= 0 {
		return nil, domainErrors.Validationf("user id must be positive")
	}

	total, err := OrderTotal(lines)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.Create(ctx, userID, slices.Clone(lines), total, u.issuer.Issue)
	if err != nil {
		return nil, err
	}

	u.observer.OrderCreated(total)
	return order, nil
}

// Get returns the order with its QR payload.
func (u *OrderUseCase) Get(ctx context.Context, orderID int64) (*model.Order, error) {
	if orderID <= 0 {
		return nil, domainErrors.Validationf("order id must be positive")
	}
	return u.orders.GetByID(ctx, orderID)
}

// ListByUser returns user orders, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if userID <= 0 {
		return nil, domainErrors.Validationf("user id must be positive")
	}
	return u.orders.ListByUser(ctx, userID)
}

// MarkPaid records payment. Paying an already paid order succeeds with alreadyPaid set.
func (u *OrderUseCase) MarkPaid(ctx context.Context, orderID int64) (alreadyPaid bool, err error) {
	if orderID <= 0 {
		return false, domainErrors.Validationf("order id must be positive")
	}

	transitioned, err := u.orders.MarkPaid(ctx, orderID)
	if err != nil {
		return false, err
	}

	if transitioned {
		u.observer.OrderPaid()
	}
	return !transitioned, nil
}
