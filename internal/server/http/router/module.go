package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/metrics"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newRouter)

type routerParams struct {
	fx.In

	Facade  handlers.StorefrontFacade
	Logger  *slog.Logger
	Config  *config.Config
	Metrics *metrics.Metrics
}

func newRouter(p routerParams) *gin.Engine {
	return Setup(p.Facade, p.Logger, Options{
		CORSOrigins:    p.Config.CORSAllowedOrigins,
		RateLimitRPS:   p.Config.RateLimitRPS,
		RateLimitBurst: p.Config.RateLimitBurst,
		Observer:       p.Metrics,
		MetricsHandler: p.Metrics.Handler(),
	})
}
