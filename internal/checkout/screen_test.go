package checkout

import (
	"testing"
)

func catalog() []Product {
	return []Product{
		{ID: 1, Name: "Sneakers", Price: 4999},
		{ID: 2, Name: "Cap", Price: 1500, Favorite: true},
	}
}

func TestNewHomeScreen(t *testing.T) {
	products := catalog()
	home, err := NewHomeScreen(products)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	products[0].Name = "changed"
	if home.Products[0].Name != "Sneakers" {
		t.Fatal("expected home screen to own a copy of products")
	}

	invalid := []struct {
		name     string
		products []Product
	}{
		{"zero id", []Product{{ID: 0, Name: "x"}}},
		{"blank name", []Product{{ID: 1, Name: "  "}}},
		{"negative price", []Product{{ID: 1, Name: "x", Price: -1}}},
		{"duplicate", []Product{{ID: 1, Name: "x"}, {ID: 1, Name: "y"}}},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewHomeScreen(tc.products); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestNewProductDetailScreen(t *testing.T) {
	if _, err := NewProductDetailScreen(Product{ID: 3, Name: "Bag", Price: 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewProductDetailScreen(Product{ID: -1, Name: "Bag"}); err == nil {
		t.Fatal("expected error for negative id")
	}
}

func TestNewPaymentScreen(t *testing.T) {
	cases := []struct {
		name    string
		id      int64
		total   int64
		qr      string
		wantErr bool
	}{
		{"valid", 1, 100, "data:image/png;base64,AA==", false},
		{"free order", 1, 0, "qr", false},
		{"zero id", 0, 100, "qr", true},
		{"negative total", 1, -1, "qr", true},
		{"missing qr", 1, 100, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewPaymentScreen(tc.id, tc.total, tc.qr, false)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.OrderID != tc.id || s.Total != tc.total || s.QRPayload != tc.qr || s.Paid {
				t.Fatalf("unexpected screen %+v", s)
			}
		})
	}
}

func TestNewOrdersScreen(t *testing.T) {
	if _, err := NewOrdersScreen(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewOrdersScreen([]OrderSummary{{ID: 0}}); err == nil {
		t.Fatal("expected error for zero id")
	}
}

func TestNewErrorScreen(t *testing.T) {
	if got := NewErrorScreen("  ").Message; got != GenericErrorMessage {
		t.Fatalf("expected generic message, got %q", got)
	}
	if got := NewErrorScreen("Order not found.").Message; got != "Order not found." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestToggleFavorite(t *testing.T) {
	products := catalog()
	toggled := ToggleFavorite(products, 1)

	if !toggled[0].Favorite || !toggled[1].Favorite {
		t.Fatalf("unexpected toggled products %+v", toggled)
	}
	if products[0].Favorite {
		t.Fatal("input slice must not be modified")
	}

	again := ToggleFavorite(toggled, 1)
	if again[0].Favorite {
		t.Fatal("expected second toggle to clear favorite")
	}

	unknown := ToggleFavorite(products, 99)
	if len(unknown) != len(products) || unknown[0] != products[0] || unknown[1] != products[1] {
		t.Fatalf("unknown id must leave products unchanged, got %+v", unknown)
	}

	if got := ToggleFavorite(nil, 1); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}
