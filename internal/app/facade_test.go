package app

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	testhelpers "github.com/polkiloo/storefront/internal/test"
	"github.com/polkiloo/storefront/internal/usecase"
)

var _ handlers.StorefrontFacade = (*StorefrontFacade)(nil)

func newFacade(health HealthChecker) (*StorefrontFacade, *testhelpers.UserRepositoryStub, *testhelpers.OrderRepositoryStub) {
	userRepo := testhelpers.NewUserRepositoryStub()
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, error) { return 99, nil }}
	authUC := usecase.NewAuthUseCase(userRepo, testhelpers.HasherStub{}, strategy)

	orderRepo := &testhelpers.OrderRepositoryStub{}
	orderUC := usecase.NewOrderUseCase(orderRepo, testhelpers.PayloadIssuerStub{}, nil)

	if health == nil {
		health = testhelpers.HealthFacadeStub{}
	}
	return NewStorefrontFacade(authUC, orderUC, health), userRepo, orderRepo
}

func TestStorefrontFacadeAuth(t *testing.T) {
	facade, users, _ := newFacade(nil)
	ctx := context.Background()

	user, token, err := facade.Register(ctx, "user", "user@example.com", "pass")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" || user.ID == 0 {
		t.Fatalf("unexpected register result %+v %q", user, token)
	}

	if _, err := users.GetByEmail(ctx, "user@example.com"); err != nil {
		t.Fatalf("user not stored: %v", err)
	}

	token, err = facade.Authenticate(ctx, "user@example.com", "pass")
	if err != nil || token != "token" {
		t.Fatalf("unexpected authenticate result %q err=%v", token, err)
	}

	id, err := facade.ParseToken("anything")
	if err != nil || id != 99 {
		t.Fatalf("expected id 99, got %d err=%v", id, err)
	}

	profile, err := facade.Profile(ctx, user.ID)
	if err != nil || profile.Email != "user@example.com" {
		t.Fatalf("unexpected profile %+v err=%v", profile, err)
	}
}

func TestStorefrontFacadeOrderLifecycle(t *testing.T) {
	facade, _, _ := newFacade(nil)
	ctx := context.Background()

	order, err := facade.PlaceOrder(ctx, 7, []model.OrderLine{{ProductID: 3, Quantity: 2, UnitPrice: 50000}})
	if err != nil {
		t.Fatalf("place order returned error: %v", err)
	}
	if order.TotalPrice != 100000 || order.QRPayload == "" {
		t.Fatalf("unexpected order %+v", order)
	}

	fetched, err := facade.Order(ctx, order.ID)
	if err != nil || fetched.IsPaid {
		t.Fatalf("expected unpaid order, got %+v err=%v", fetched, err)
	}

	alreadyPaid, err := facade.MarkPaid(ctx, order.ID)
	if err != nil || alreadyPaid {
		t.Fatalf("expected transition, got alreadyPaid=%v err=%v", alreadyPaid, err)
	}

	listed, err := facade.Orders(ctx, 7)
	if err != nil || len(listed) != 1 || !listed[0].IsPaid {
		t.Fatalf("expected one paid order, got %+v err=%v", listed, err)
	}

	if _, err := facade.MarkPaid(ctx, 12345); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStorefrontFacadeHealth(t *testing.T) {
	facade, _, _ := newFacade(testhelpers.HealthFacadeStub{Err: errors.New("db down")})
	if err := facade.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected health error")
	}
}
