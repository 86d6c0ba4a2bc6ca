package router

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

const maxDecompressedBody = 1 << 20

// Options carries optional router collaborators. Zero values disable the feature.
type Options struct {
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	Observer       middleware.HTTPObserver
	MetricsHandler http.Handler
}

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger, opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	if opts.Observer != nil {
		engine.Use(middleware.Metrics(opts.Observer))
	}
	engine.Use(corsMiddleware(opts.CORSOrigins))
	engine.Use(middleware.DecompressRequest(maxDecompressedBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade, logger)
	orderHandler := handlers.NewOrderHandler(facade, logger)
	paymentHandler := handlers.NewPaymentHandler(facade, logger)
	healthHandler := handlers.NewHealthHandler(facade, logger)

	limited := func(c *gin.Context) { c.Next() }
	if opts.RateLimitRPS > 0 {
		limited = middleware.RateLimit(middleware.NewIPRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst))
	}

	engine.GET("/healthz", healthHandler.Check)
	if opts.MetricsHandler != nil {
		engine.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}

	api := engine.Group("/api")

	orders := api.Group("/orders")
	orders.POST("", limited, middleware.AuthOptional(facade), orderHandler.Create)
	orders.GET("/:orderId", orderHandler.Get)
	orders.GET("/user/:userId", orderHandler.ListByUser)

	payment := api.Group("/payment")
	payment.GET("/:orderId", orderHandler.Get)
	payment.GET("/payment/:orderId", limited, paymentHandler.MarkPaid)

	users := api.Group("/users")
	users.POST("/register", limited, authHandler.Register)
	users.POST("/login", limited, authHandler.Login)
	users.GET("/me", middleware.AuthRequired(facade), authHandler.Me)

	return engine
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Encoding", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Authorization", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
