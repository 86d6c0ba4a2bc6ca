package app

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/usecase"
)

// HealthChecker verifies backing services are reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StorefrontFacade exposes use cases to transport adapters.
type StorefrontFacade struct {
	auth   *usecase.AuthUseCase
	orders *usecase.OrderUseCase
	health HealthChecker
}

func NewStorefrontFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, health HealthChecker) *StorefrontFacade {
	return &StorefrontFacade{auth: auth, orders: orders, health: health}
}

func (f *StorefrontFacade) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	return f.auth.Register(ctx, name, email, password)
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *StorefrontFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.GetByID(ctx, userID)
}

func (f *StorefrontFacade) PlaceOrder(ctx context.Context, userID int64, lines []model.OrderLine) (*model.Order, error) {
	return f.orders.Create(ctx, userID, lines)
}

func (f *StorefrontFacade) Order(ctx context.Context, orderID int64) (*model.Order, error) {
	return f.orders.Get(ctx, orderID)
}

func (f *StorefrontFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *StorefrontFacade) MarkPaid(ctx context.Context, orderID int64) (bool, error) {
	return f.orders.MarkPaid(ctx, orderID)
}

func (f *StorefrontFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
