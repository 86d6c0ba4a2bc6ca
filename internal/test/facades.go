package test

import (
	"context"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderFacadeStub provides controllable behaviour for order and payment endpoints.
type OrderFacadeStub struct {
	PlaceFn    func(context.Context, int64, []model.OrderLine) (*model.Order, error)
	OrderFn    func(context.Context, int64) (*model.Order, error)
	OrdersFn   func(context.Context, int64) ([]model.Order, error)
	MarkPaidFn func(context.Context, int64) (bool, error)
}

// PlaceOrder delegates to provided function or returns default order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, userID int64, lines []model.OrderLine) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, userID, lines)
	}
	var total int64
	for _, l := range lines {
		total += l.Quantity * l.UnitPrice
	}
	return &model.Order{ID: 1, UserID: userID, Lines: lines, TotalPrice: total}, nil
}

// Order returns predefined order for given identifier.
func (s OrderFacadeStub) Order(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, UserID: 1, TotalPrice: 100, QRPayload: "data:image/png;base64,AA==", CreatedAt: time.Unix(0, 0)}, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, UserID: userID}}, nil
}

// MarkPaid reports a fresh transition unless overridden.
func (s OrderFacadeStub) MarkPaid(ctx context.Context, orderID int64) (bool, error) {
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, orderID)
	}
	return false, nil
}

// HealthFacadeStub returns configured readiness.
type HealthFacadeStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthFacadeStub) HealthCheck(context.Context) error {
	return s.Err
}

// OrderObserverStub counts order notifications.
type OrderObserverStub struct {
	Created []int64
	Paid    int
}

// OrderCreated records created order total.
func (s *OrderObserverStub) OrderCreated(total int64) {
	s.Created = append(s.Created, total)
}

// OrderPaid records paid transition.
func (s *OrderObserverStub) OrderPaid() {
	s.Paid++
}

// PayloadIssuerStub renders predictable payloads.
type PayloadIssuerStub struct {
	IssueFn func(int64) (string, error)
}

// Issue returns "qr:<id>" unless overridden.
func (s PayloadIssuerStub) Issue(orderID int64) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(orderID)
	}
	return "qr:" + formatID(orderID), nil
}
