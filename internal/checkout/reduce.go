package checkout

import "slices"

// Event drives a screen transition.
type Event interface {
	event()
}

// OpenProduct navigates from the catalog to a product.
type OpenProduct struct {
	ProductID int64
}

// FavoriteToggled flips the favorite flag of a product.
type FavoriteToggled struct {
	ProductID int64
}

// OrderPlaced shows the payment QR of a stored order.
type OrderPlaced struct {
	OrderID   int64
	Total     int64
	QRPayload string
}

// PaymentConfirmed marks the shown order as paid.
type PaymentConfirmed struct {
	OrderID int64
}

// OrdersLoaded shows the orders of the user.
type OrdersLoaded struct {
	Orders []OrderSummary
}

// Failed shows an error message.
type Failed struct {
	Message string
}

// Back returns to the previous screen.
type Back struct{}

func (OpenProduct) event()      {}
func (FavoriteToggled) event()  {}
func (OrderPlaced) event()      {}
func (PaymentConfirmed) event() {}
func (OrdersLoaded) event()     {}
func (Failed) event()           {}
func (Back) event()             {}

// Reduce returns the screen that follows current after ev. Inputs are never modified.
func Reduce(current Screen, ev Event) Screen {
	switch e := ev.(type) {
	case Back:
		if prev := current.previous(); prev != nil {
			return prev
		}
		return current

	case OpenProduct:
		home, ok := current.(HomeScreen)
		if !ok {
			return current
		}
		idx := slices.IndexFunc(home.Products, func(p Product) bool { return p.ID == e.ProductID })
		if idx < 0 {
			return withPrev(NewErrorScreen("Product not found."), current)
		}
		detail, err := NewProductDetailScreen(home.Products[idx])
		if err != nil {
			return withPrev(NewErrorScreen(""), current)
		}
		detail.prev = current
		return detail

	case FavoriteToggled:
		return toggle(current, e.ProductID)

	case OrderPlaced:
		payment, err := NewPaymentScreen(e.OrderID, e.Total, e.QRPayload, false)
		if err != nil {
			return withPrev(NewErrorScreen(""), current)
		}
		payment.prev = current
		return payment

	case PaymentConfirmed:
		payment, ok := current.(PaymentScreen)
		if !ok || payment.OrderID != e.OrderID {
			return current
		}
		payment.Paid = true
		return payment

	case OrdersLoaded:
		orders, err := NewOrdersScreen(e.Orders)
		if err != nil {
			return withPrev(NewErrorScreen(""), current)
		}
		orders.prev = current
		return orders

	case Failed:
		return withPrev(NewErrorScreen(e.Message), current)
	}

	return current
}

func withPrev(s ErrorScreen, prev Screen) ErrorScreen {
	s.prev = prev
	return s
}

func toggle(current Screen, id int64) Screen {
	switch s := current.(type) {
	case HomeScreen:
		return HomeScreen{Products: ToggleFavorite(s.Products, id)}
	case ProductDetailScreen:
		if s.Product.ID != id {
			return current
		}
		s.Product.Favorite = !s.Product.Favorite
		if s.prev != nil {
			s.prev = toggle(s.prev, id)
		}
		return s
	}
	return current
}
