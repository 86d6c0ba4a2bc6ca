package checkout

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// GenericErrorMessage is shown for failures the user cannot act on.
const GenericErrorMessage = "Something went wrong. Please try again."

// Product is a catalog entry. Price is in minor units.
type Product struct {
	ID       int64
	Name     string
	Price    int64
	Favorite bool
}

// OrderSummary is a row of the orders screen.
type OrderSummary struct {
	ID        int64
	Total     int64
	Paid      bool
	CreatedAt time.Time
}

// Screen is one of HomeScreen, ProductDetailScreen, PaymentScreen, OrdersScreen or ErrorScreen.
type Screen interface {
	screen()
	previous() Screen
}

// HomeScreen lists the catalog.
type HomeScreen struct {
	Products []Product
}

// ProductDetailScreen shows a single product.
type ProductDetailScreen struct {
	Product Product
	prev    Screen
}

// PaymentScreen shows the QR of an order until it is paid.
type PaymentScreen struct {
	OrderID   int64
	Total     int64
	QRPayload string
	Paid      bool
	prev      Screen
}

// OrdersScreen lists the orders of the current user.
type OrdersScreen struct {
	Orders []OrderSummary
	prev   Screen
}

// ErrorScreen carries a user facing message.
type ErrorScreen struct {
	Message string
	prev    Screen
}

func (HomeScreen) screen()          {}
func (ProductDetailScreen) screen() {}
func (PaymentScreen) screen()       {}
func (OrdersScreen) screen()        {}
func (ErrorScreen) screen()         {}

func (HomeScreen) previous() Screen            { return nil }
func (s ProductDetailScreen) previous() Screen { return s.prev }
func (s PaymentScreen) previous() Screen       { return s.prev }
func (s OrdersScreen) previous() Screen        { return s.prev }
func (s ErrorScreen) previous() Screen         { return s.prev }

// NewHomeScreen copies products into a new home screen.
func NewHomeScreen(products []Product) (HomeScreen, error) {
	seen := make(map[int64]struct{}, len(products))
	for _, p := range products {
		if err := validateProduct(p); err != nil {
			return HomeScreen{}, err
		}
		if _, ok := seen[p.ID]; ok {
			return HomeScreen{}, fmt.Errorf("duplicate product %d", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return HomeScreen{Products: slices.Clone(products)}, nil
}

// NewProductDetailScreen validates the product shown on the detail screen.
func NewProductDetailScreen(p Product) (ProductDetailScreen, error) {
	if err := validateProduct(p); err != nil {
		return ProductDetailScreen{}, err
	}
	return ProductDetailScreen{Product: p}, nil
}

// NewPaymentScreen validates the order shown on the payment screen.
func NewPaymentScreen(orderID, total int64, qrPayload string, paid bool) (PaymentScreen, error) {
	if orderID <= 0 {
		return PaymentScreen{}, fmt.Errorf("order id must be positive")
	}
	if total < 0 {
		return PaymentScreen{}, fmt.Errorf("total must not be negative")
	}
	if qrPayload == "" {
		return PaymentScreen{}, fmt.Errorf("qr payload is required")
	}
	return PaymentScreen{OrderID: orderID, Total: total, QRPayload: qrPayload, Paid: paid}, nil
}

// NewOrdersScreen copies orders into a new orders screen.
func NewOrdersScreen(orders []OrderSummary) (OrdersScreen, error) {
	for _, o := range orders {
		if o.ID <= 0 {
			return OrdersScreen{}, fmt.Errorf("order id must be positive")
		}
	}
	return OrdersScreen{Orders: slices.Clone(orders)}, nil
}

// NewErrorScreen falls back to GenericErrorMessage for blank messages.
func NewErrorScreen(message string) ErrorScreen {
	message = strings.TrimSpace(message)
	if message == "" {
		message = GenericErrorMessage
	}
	return ErrorScreen{Message: message}
}

func validateProduct(p Product) error {
	if p.ID <= 0 {
		return fmt.Errorf("product id must be positive")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product %d: name is required", p.ID)
	}
	if p.Price < 0 {
		return fmt.Errorf("product %d: price must not be negative", p.ID)
	}
	return nil
}

// ToggleFavorite returns a copy of products with the favorite flag of id flipped.
func ToggleFavorite(products []Product, id int64) []Product {
	out := slices.Clone(products)
	for i := range out {
		if out[i].ID == id {
			out[i].Favorite = !out[i].Favorite
		}
	}
	return out
}
