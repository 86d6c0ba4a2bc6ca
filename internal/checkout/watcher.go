package checkout

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/polkiloo/storefront/internal/adapter/storefront"
	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// ErrPaymentNotConfirmed is returned when max attempts pass without payment.
var ErrPaymentNotConfirmed = errors.New("payment not confirmed")

// OrderFetcher loads a single order.
type OrderFetcher interface {
	Order(ctx context.Context, orderID int64) (*dto.OrderResponse, error)
}

// PaymentWatcher polls an order until it is paid.
type PaymentWatcher struct {
	api          OrderFetcher
	pollInterval time.Duration
	maxAttempts  int
	logger       *slog.Logger
}

// NewPaymentWatcher constructs watcher. maxAttempts <= 0 polls until ctx is done.
func NewPaymentWatcher(api OrderFetcher, pollInterval time.Duration, maxAttempts int, logger *slog.Logger) *PaymentWatcher {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &PaymentWatcher{
		api:          api,
		pollInterval: pollInterval,
		maxAttempts:  maxAttempts,
		logger:       logger,
	}
}

// Wait returns the paid order. The first poll happens immediately.
func (w *PaymentWatcher) Wait(ctx context.Context, orderID int64) (*dto.OrderResponse, error) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		order, err := w.api.Order(ctx, orderID)
		switch {
		case err == nil && order.IsPaid:
			return order, nil
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if errors.Is(err, domainErrors.ErrNotFound) || errors.Is(err, domainErrors.ErrValidation) {
				return nil, err
			}
			var tm storefront.TooManyRequestsError
			if errors.As(err, &tm) {
				w.logger.Warn("order service rate limited", slog.Duration("retry_after", tm.RetryAfter))
				if err := sleep(ctx, tm.RetryAfter); err != nil {
					return nil, err
				}
			} else {
				w.logger.Error("poll order failed", slog.Int64("order_id", orderID), slog.String("error", err.Error()))
			}
		}

		if w.maxAttempts > 0 && attempt >= w.maxAttempts {
			return nil, ErrPaymentNotConfirmed
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
