package dto

import "time"

// OrderLine is a single product entry of an order.
type OrderLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
	UnitPrice int64 `json:"unitPrice"`
}

// CreateOrderRequest is the POST /api/orders payload. UserID may be omitted for authenticated callers.
type CreateOrderRequest struct {
	UserID int64       `json:"userId,omitempty"`
	Lines  []OrderLine `json:"lines"`
}

// CreateOrderResponse is returned once the order row and its QR payload are stored.
type CreateOrderResponse struct {
	OrderID    int64 `json:"orderId"`
	TotalPrice int64 `json:"totalPrice"`
}

// OrderResponse describes an order together with its payment QR.
type OrderResponse struct {
	OrderID    int64       `json:"orderId"`
	UserID     int64       `json:"userId"`
	Lines      []OrderLine `json:"lines"`
	TotalPrice int64       `json:"totalPrice"`
	QRPayload  string      `json:"qrPayload"`
	IsPaid     bool        `json:"isPaid"`
	Status     string      `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	PaidAt     *time.Time  `json:"paidAt,omitempty"`
}

// MarkPaidResponse acknowledges a payment callback.
type MarkPaidResponse struct {
	Message     string `json:"message"`
	OrderID     int64  `json:"orderId"`
	AlreadyPaid bool   `json:"alreadyPaid"`
}
