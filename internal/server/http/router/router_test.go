package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/metrics"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func newEngine(t *testing.T, facade handlers.StorefrontFacade, opts Options) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return Setup(facade, logger, opts)
}

func serve(engine *gin.Engine, method, target string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	return resp
}

func TestSetupRoutes(t *testing.T) {
	var (
		placedFor int64
		paidID    int64
	)
	facade := testhelpers.StorefrontFacadeStub{
		OrderFacadeStub: testhelpers.OrderFacadeStub{
			PlaceFn: func(_ context.Context, userID int64, lines []model.OrderLine) (*model.Order, error) {
				placedFor = userID
				return &model.Order{ID: 42, UserID: userID, TotalPrice: 100}, nil
			},
			MarkPaidFn: func(_ context.Context, id int64) (bool, error) {
				paidID = id
				return false, nil
			},
		},
	}
	engine := newEngine(t, facade, Options{})
	jsonHeaders := map[string]string{"Content-Type": "application/json"}

	resp := serve(engine, http.MethodPost, "/api/orders", []byte(`{"userId":3,"lines":[{"productId":1,"quantity":1,"unitPrice":100}]}`), jsonHeaders)
	if resp.Code != http.StatusCreated || placedFor != 3 {
		t.Fatalf("expected order created for user 3, got %d user=%d", resp.Code, placedFor)
	}

	resp = serve(engine, http.MethodPost, "/api/orders", []byte(`{"lines":[{"productId":1,"quantity":1,"unitPrice":100}]}`), map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer token",
	})
	if resp.Code != http.StatusCreated || placedFor != 1 {
		t.Fatalf("expected order created for token user, got %d user=%d", resp.Code, placedFor)
	}

	for _, target := range []string{"/api/orders/42", "/api/payment/42", "/api/orders/user/1"} {
		if resp = serve(engine, http.MethodGet, target, nil, nil); resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", target, resp.Code)
		}
	}

	resp = serve(engine, http.MethodGet, "/api/payment/payment/42", nil, nil)
	if resp.Code != http.StatusOK || paidID != 42 {
		t.Fatalf("expected mark paid for 42, got %d id=%d", resp.Code, paidID)
	}

	body, _ := json.Marshal(map[string]string{"name": "user", "email": "user@example.com", "password": "pass"})
	if resp = serve(engine, http.MethodPost, "/api/users/register", body, jsonHeaders); resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for register, got %d", resp.Code)
	}
	if resp = serve(engine, http.MethodPost, "/api/users/login", body, jsonHeaders); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for login, got %d", resp.Code)
	}

	if resp = serve(engine, http.MethodGet, "/api/users/me", nil, nil); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous profile, got %d", resp.Code)
	}
	if resp = serve(engine, http.MethodGet, "/api/users/me", nil, map[string]string{"Authorization": "Bearer token"}); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for profile, got %d", resp.Code)
	}

	if resp = serve(engine, http.MethodGet, "/healthz", nil, nil); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for healthz, got %d", resp.Code)
	}
	if resp = serve(engine, http.MethodGet, "/metrics", nil, nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected metrics disabled without handler, got %d", resp.Code)
	}
}

func TestSetupMetrics(t *testing.T) {
	m := metrics.New()
	engine := newEngine(t, testhelpers.StorefrontFacadeStub{}, Options{Observer: m, MetricsHandler: m.Handler()})

	serve(engine, http.MethodGet, "/api/orders/7", nil, nil)

	resp := serve(engine, http.MethodGet, "/metrics", nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for metrics, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `route="/api/orders/:orderId"`) {
		t.Fatalf("expected request counter labelled by route template:\n%s", resp.Body.String())
	}
}

func TestSetupRateLimit(t *testing.T) {
	engine := newEngine(t, testhelpers.StorefrontFacadeStub{}, Options{RateLimitRPS: 0.001, RateLimitBurst: 1})

	if resp := serve(engine, http.MethodGet, "/api/payment/payment/1", nil, nil); resp.Code != http.StatusOK {
		t.Fatalf("expected first call to pass, got %d", resp.Code)
	}
	if resp := serve(engine, http.MethodGet, "/api/payment/payment/1", nil, nil); resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	if resp := serve(engine, http.MethodGet, "/api/orders/1", nil, nil); resp.Code != http.StatusOK {
		t.Fatalf("expected reads to stay unlimited, got %d", resp.Code)
	}
}

func TestSetupCORS(t *testing.T) {
	engine := newEngine(t, testhelpers.StorefrontFacadeStub{}, Options{CORSOrigins: []string{"http://app.local"}})

	resp := serve(engine, http.MethodOptions, "/api/orders", nil, map[string]string{
		"Origin":                        "http://app.local",
		"Access-Control-Request-Method": http.MethodPost,
	})
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://app.local" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}

	resp = serve(engine, http.MethodGet, "/api/orders/1", nil, map[string]string{"Origin": "http://evil.local"})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected foreign origin to be rejected, got %d", resp.Code)
	}

	open := newEngine(t, testhelpers.StorefrontFacadeStub{}, Options{CORSOrigins: []string{"*"}})
	resp = serve(open, http.MethodGet, "/api/orders/1", nil, map[string]string{"Origin": "http://any.local"})
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
}

var _ handlers.StorefrontFacade = (*testhelpers.StorefrontFacadeStub)(nil)
