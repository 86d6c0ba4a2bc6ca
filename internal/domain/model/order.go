package model

import "time"

// OrderStatus describes payment lifecycle derived from the paid flag.
type OrderStatus string

const (
	OrderStatusUnpaid OrderStatus = "UNPAID"
	OrderStatusPaid   OrderStatus = "PAID"
)

// OrderLine is a single purchased product captured on the order row.
type OrderLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
	UnitPrice int64 `json:"unitPrice"`
}

// Order describes a checkout transaction. Prices are in minor units.
type Order struct {
	ID         int64
	UserID     int64
	Lines      []OrderLine
	TotalPrice int64
	IsPaid     bool
	QRPayload  string
	CreatedAt  time.Time
	PaidAt     *time.Time
}

// Status reports the order state. PAID is terminal.
func (o Order) Status() OrderStatus {
	if o.IsPaid {
		return OrderStatusPaid
	}
	return OrderStatusUnpaid
}
