package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// TooManyRequestsError represents rate limiting signal from the order service.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// HTTPClient talks to the order service REST API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPClient creates storefront client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse storefront url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("storefront url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// SetToken sets the bearer token sent with every request.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Register signs up a user and remembers the issued token.
func (c *HTTPClient) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	var out dto.RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/register", req, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

// Login authenticates a user and remembers the issued token.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var out dto.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/login", dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return "", err
	}
	c.SetToken(out.Token)
	return out.Token, nil
}

// Me returns the profile of the token owner.
func (c *HTTPClient) Me(ctx context.Context) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOrder places an order.
func (c *HTTPClient) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	var out dto.CreateOrderResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Order fetches an order with its QR payload.
func (c *HTTPClient) Order(ctx context.Context, orderID int64) (*dto.OrderResponse, error) {
	var out dto.OrderResponse
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+strconv.FormatInt(orderID, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserOrders lists orders of a user, newest first.
func (c *HTTPClient) UserOrders(ctx context.Context, userID int64) ([]dto.OrderResponse, error) {
	var out []dto.OrderResponse
	if err := c.do(ctx, http.MethodGet, "/api/orders/user/"+strconv.FormatInt(userID, 10), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkPaid confirms payment of an order.
func (c *HTTPClient) MarkPaid(ctx context.Context, orderID int64) (*dto.MarkPaidResponse, error) {
	var out dto.MarkPaidResponse
	if err := c.do(ctx, http.MethodGet, "/api/payment/payment/"+strconv.FormatInt(orderID, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) do(ctx context.Context, method, route string, in, out any) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, route)

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, route, err)
		}
		return nil
	}

	return c.statusError(resp, raw)
}

func (c *HTTPClient) statusError(resp *http.Response, raw []byte) error {
	var msg dto.ErrorResponse
	_ = json.Unmarshal(raw, &msg)
	if msg.Message == "" {
		msg.Message = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", domainErrors.ErrValidation, msg.Message)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", domainErrors.ErrInvalidCredentials, msg.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domainErrors.ErrNotFound, msg.Message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", domainErrors.ErrAlreadyExists, msg.Message)
	case http.StatusTooManyRequests:
		return TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		c.logger.Error("storefront request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return fmt.Errorf("storefront error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
