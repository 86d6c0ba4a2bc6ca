package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/metrics"
	"github.com/polkiloo/storefront/internal/pkg/qr"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewOrderUseCase,
	func(i *qr.Issuer) PayloadIssuer { return i },
	func(m *metrics.Metrics) OrderObserver { return m },
)
