package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// PayloadIssuer produces the QR payload for a freshly assigned order id.
type PayloadIssuer func(orderID int64) (string, error)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create stores the order and its QR payload atomically.
	Create(ctx context.Context, userID int64, lines []model.OrderLine, total int64, issue PayloadIssuer) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	// MarkPaid flips the paid flag. transitioned is false when the order was already paid.
	MarkPaid(ctx context.Context, id int64) (transitioned bool, err error)
}
