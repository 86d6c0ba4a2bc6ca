package test

import (
	"context"
	"sync"

	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// CheckoutAPIStub imitates the storefront client for checkout flow tests.
type CheckoutAPIStub struct {
	sync.Mutex

	CreateFn func(context.Context, dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	OrderFn  func(context.Context, int64) (*dto.OrderResponse, error)
	OrdersFn func(context.Context, int64) ([]dto.OrderResponse, error)

	Created    []dto.CreateOrderRequest
	OrderCalls int
}

// CreateOrder records the request and returns order 1 unless overridden.
func (s *CheckoutAPIStub) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	s.Lock()
	s.Created = append(s.Created, req)
	s.Unlock()
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	var total int64
	for _, l := range req.Lines {
		total += l.Quantity * l.UnitPrice
	}
	return &dto.CreateOrderResponse{OrderID: 1, TotalPrice: total}, nil
}

// Order counts calls and returns an unpaid order unless overridden.
func (s *CheckoutAPIStub) Order(ctx context.Context, orderID int64) (*dto.OrderResponse, error) {
	s.Lock()
	s.OrderCalls++
	s.Unlock()
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return &dto.OrderResponse{OrderID: orderID, TotalPrice: 100, QRPayload: "qr:" + formatID(orderID)}, nil
}

// UserOrders returns no orders unless overridden.
func (s *CheckoutAPIStub) UserOrders(ctx context.Context, userID int64) ([]dto.OrderResponse, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []dto.OrderResponse{}, nil
}

// Calls returns the number of Order invocations.
func (s *CheckoutAPIStub) Calls() int {
	s.Lock()
	defer s.Unlock()
	return s.OrderCalls
}
