package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func newOrderUseCase(repo *testhelpers.OrderRepositoryStub, observer OrderObserver) *OrderUseCase {
	return NewOrderUseCase(repo, testhelpers.PayloadIssuerStub{}, observer)
}

func TestOrderUseCaseCreateComputesTotal(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{}
	observer := &testhelpers.OrderObserverStub{}
	uc := newOrderUseCase(repo, observer)

	lines := []model.OrderLine{
		{ProductID: 1, Quantity: 2, UnitPrice: 50000},
		{ProductID: 2, Quantity: 1, UnitPrice: 1999},
	}
	order, err := uc.Create(context.Background(), 7, lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.TotalPrice != 101999 {
		t.Fatalf("expected total 101999, got %d", order.TotalPrice)
	}
	if order.IsPaid {
		t.Fatal("new order must be unpaid")
	}
	if order.QRPayload != "qr:1" {
		t.Fatalf("expected payload issued for assigned id, got %q", order.QRPayload)
	}
	if len(observer.Created) != 1 || observer.Created[0] != 101999 {
		t.Fatalf("expected observer notified with total, got %v", observer.Created)
	}

	lines[0].Quantity = 100
	stored, _ := repo.GetByID(context.Background(), order.ID)
	if stored.Lines[0].Quantity != 2 {
		t.Fatal("stored lines must not alias caller slice")
	}
}

func TestOrderUseCaseCreateValidation(t *testing.T) {
	cases := []struct {
		name   string
		userID int64
		lines  []model.OrderLine
	}{
		{name: "empty lines", userID: 1},
		{name: "zero quantity", userID: 1, lines: []model.OrderLine{{ProductID: 1, Quantity: 0, UnitPrice: 1}}},
		{name: "negative quantity", userID: 1, lines: []model.OrderLine{{ProductID: 1, Quantity: -1, UnitPrice: 1}}},
		{name: "negative price", userID: 1, lines: []model.OrderLine{{ProductID: 1, Quantity: 1, UnitPrice: -1}}},
		{name: "bad product", userID: 1, lines: []model.OrderLine{{ProductID: 0, Quantity: 1, UnitPrice: 1}}},
		{name: "missing user", userID: 0, lines: []model.OrderLine{{ProductID: 1, Quantity: 1, UnitPrice: 1}}},
		{name: "subtotal overflow", userID: 1, lines: []model.OrderLine{{ProductID: 1, Quantity: 2, UnitPrice: math.MaxInt64}}},
		{name: "total overflow", userID: 1, lines: []model.OrderLine{
			{ProductID: 1, Quantity: 1, UnitPrice: math.MaxInt64},
			{ProductID: 2, Quantity: 1, UnitPrice: 1},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &testhelpers.OrderRepositoryStub{}
			observer := &testhelpers.OrderObserverStub{}
			uc := newOrderUseCase(repo, observer)

			if _, err := uc.Create(context.Background(), tc.userID, tc.lines); !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if repo.CreateCalls != 0 {
				t.Fatal("store must not be touched for invalid orders")
			}
			if len(observer.Created) != 0 {
				t.Fatal("observer must not be notified for invalid orders")
			}
		})
	}
}

func TestOrderUseCaseCreateZeroPriceAllowed(t *testing.T) {
	uc := newOrderUseCase(&testhelpers.OrderRepositoryStub{}, nil)
	order, err := uc.Create(context.Background(), 1, []model.OrderLine{{ProductID: 1, Quantity: 3, UnitPrice: 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.TotalPrice != 0 {
		t.Fatalf("expected zero total, got %d", order.TotalPrice)
	}
}

func TestOrderUseCaseCreateIssuerFailureLeavesNoOrder(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{}
	issueErr := errors.New("encode failed")
	uc := NewOrderUseCase(repo, testhelpers.PayloadIssuerStub{IssueFn: func(int64) (string, error) {
		return "", issueErr
	}}, nil)

	if _, err := uc.Create(context.Background(), 1, []model.OrderLine{{ProductID: 1, Quantity: 1, UnitPrice: 1}}); !errors.Is(err, issueErr) {
		t.Fatalf("expected issuer error, got %v", err)
	}
	orders, _ := repo.ListByUser(context.Background(), 1)
	if len(orders) != 0 {
		t.Fatalf("expected no stored orders, got %d", len(orders))
	}
}

func TestOrderUseCaseCreatePropagatesStoreError(t *testing.T) {
	storeErr := domainErrors.NewStoreError("create order", errors.New("db down"))
	repo := &testhelpers.OrderRepositoryStub{CreateFn: func(context.Context, int64, []model.OrderLine, int64, repository.PayloadIssuer) (*model.Order, error) {
		return nil, storeErr
	}}
	observer := &testhelpers.OrderObserverStub{}
	uc := newOrderUseCase(repo, observer)

	_, err := uc.Create(context.Background(), 1, []model.OrderLine{{ProductID: 1, Quantity: 1, UnitPrice: 1}})
	var target *domainErrors.StoreError
	if !errors.As(err, &target) {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(observer.Created) != 0 {
		t.Fatal("observer must not be notified on failure")
	}
}

func TestOrderUseCaseGet(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{}
	uc := newOrderUseCase(repo, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, 1, []model.OrderLine{{ProductID: 1, Quantity: 1, UnitPrice: 10}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := uc.Get(ctx, created.ID)
	if err != nil || got.QRPayload != created.QRPayload {
		t.Fatalf("unexpected order %+v err=%v", got, err)
	}

	if _, err := uc.Get(ctx, 999); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := uc.Get(ctx, 0); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOrderUseCaseMarkPaid(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{}
	observer := &testhelpers.OrderObserverStub{}
	uc := newOrderUseCase(repo, observer)
	ctx := context.Background()

	order, err := uc.Create(ctx, 1, []model.OrderLine{{ProductID: 1, Quantity: 1, UnitPrice: 10}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	alreadyPaid, err := uc.MarkPaid(ctx, order.ID)
	if err != nil || alreadyPaid {
		t.Fatalf("expected first payment to transition, got alreadyPaid=%v err=%v", alreadyPaid, err)
	}

	paid, err := uc.Get(ctx, order.ID)
	if err != nil || !paid.IsPaid || paid.Status() != model.OrderStatusPaid {
		t.Fatalf("expected paid order, got %+v err=%v", paid, err)
	}

	alreadyPaid, err = uc.MarkPaid(ctx, order.ID)
	if err != nil || !alreadyPaid {
		t.Fatalf("expected idempotent success, got alreadyPaid=%v err=%v", alreadyPaid, err)
	}
	if observer.Paid != 1 {
		t.Fatalf("expected exactly one paid notification, got %d", observer.Paid)
	}

	if _, err := uc.MarkPaid(ctx, 999); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := uc.MarkPaid(ctx, -1); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOrderUseCaseListByUser(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{}
	uc := newOrderUseCase(repo, nil)
	ctx := context.Background()

	orders, err := uc.ListByUser(ctx, 5)
	if err != nil || orders == nil || len(orders) != 0 {
		t.Fatalf("expected empty list, got %v err=%v", orders, err)
	}

	for i := 0; i < 2; i++ {
		if _, err := uc.Create(ctx, 5, []model.OrderLine{{ProductID: 1, Quantity: 1, UnitPrice: 1}}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := uc.Create(ctx, 6, []model.OrderLine{{ProductID: 1, Quantity: 1, UnitPrice: 1}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	orders, err = uc.ListByUser(ctx, 5)
	if err != nil || len(orders) != 2 || orders[0].ID != 2 {
		t.Fatalf("expected two orders newest first, got %+v err=%v", orders, err)
	}

	if _, err := uc.ListByUser(ctx, 0); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
