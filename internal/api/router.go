package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/workleaf/resource-booking-backend/internal/auth"
	"github.com/workleaf/resource-booking-backend/internal/booking"
	bookingHttp "github.com/workleaf/resource-booking-backend/internal/booking/http"
	"github.com/workleaf/resource-booking-backend/internal/pkg/ratelimit"
	"github.com/workleaf/resource-booking-backend/internal/resource"
	resourceHttp "github.com/workleaf/resource-booking-backend/internal/resource/http"
	"github.com/workleaf/resource-booking-backend/internal/user"
	userHttp "github.com/workleaf/resource-booking-backend/internal/user/http"
)

// Config holds the settings and services the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService     user.Service
	ResourceService resource.Service
	BookingService  booking.Service

	JWTManager        *auth.JWTManager
	TrustProxyHeaders bool

	DBPool    *pgxpool.Pool
	UploadDir string

	// Optional. Nil disables the corresponding middleware.
	RateLimiter    *ratelimit.Limiter
	MetricsEnabled bool
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Identity) and
// registering routes for each module.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-User-Id", "X-Role"}
	r.Use(cors.New(corsConfig))

	if cfg.MetricsEnabled {
		metrics := NewMetrics(prometheus.DefaultRegisterer)
		r.Use(metrics.Middleware())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Middleware())
	}

	r.GET("/health", healthHandler(cfg.DBPool))

	// Uploaded resource images are served directly from local storage.
	r.Static("/uploads", cfg.UploadDir)

	// identityMiddleware: Resolves the caller from a Bearer token or trusted
	// gateway headers.
	identityMiddleware := auth.IdentityRequired(cfg.JWTManager, cfg.TrustProxyHeaders)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService)
	resourceHandler := resourceHttp.NewHandler(cfg.ResourceService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, identityMiddleware)
		resourceHttp.RegisterRoutes(v1, resourceHandler, identityMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, identityMiddleware)
	}

	return r
}

// healthHandler reports service liveness and database reachability.
func healthHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "ok"
		status := http.StatusOK

		if pool != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := pool.Ping(ctx); err != nil {
				dbStatus = "unreachable"
				status = http.StatusServiceUnavailable
			}
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}

		c.JSON(status, gin.H{
			"status":    overall,
			"service":   "resource-booking-backend",
			"db":        dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// splitOrigins parses a comma-separated origin list.
func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
