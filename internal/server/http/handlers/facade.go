package handlers

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (int64, error)
	Profile(ctx context.Context, userID int64) (*model.User, error)
}

// OrderFacade encapsulates order and payment operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, userID int64, lines []model.OrderLine) (*model.Order, error)
	Order(ctx context.Context, orderID int64) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	MarkPaid(ctx context.Context, orderID int64) (alreadyPaid bool, err error)
}

// HealthFacade reports readiness of backing services.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	OrderFacade
	HealthFacade
}
