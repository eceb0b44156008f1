package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/workleaf/resource-booking-backend/internal/api"
	"github.com/workleaf/resource-booking-backend/internal/auth"
	"github.com/workleaf/resource-booking-backend/internal/booking"
	"github.com/workleaf/resource-booking-backend/internal/pkg/ratelimit"
	"github.com/workleaf/resource-booking-backend/internal/pkg/storage"
	"github.com/workleaf/resource-booking-backend/internal/resource"
	"github.com/workleaf/resource-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool

	JWTSecret         string
	TrustProxyHeaders bool

	UploadDir string

	// Optional. Empty RedisAddr disables rate limiting.
	RedisAddr          string
	RateLimitPerMinute int
	MetricsEnabled     bool
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, 24*time.Hour)

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Resource Module
	resourceRepo := resource.NewPgxRepository(cfg.DBPool)
	resourceService := resource.NewService(resourceRepo, store)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, userService, resourceService)

	// Shared rate limiter, enabled only when Redis is configured.
	var limiter *ratelimit.Limiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limiter = ratelimit.NewLimiter(rdb, cfg.RateLimitPerMinute, time.Minute, "api")
	}

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:      cfg.IsProduction,
		ProdOrigins:       cfg.ProdOrigins,
		UserService:       userService,
		ResourceService:   resourceService,
		BookingService:    bookingService,
		JWTManager:        jwtManager,
		TrustProxyHeaders: cfg.TrustProxyHeaders,
		DBPool:            cfg.DBPool,
		UploadDir:         cfg.UploadDir,
		RateLimiter:       limiter,
		MetricsEnabled:    cfg.MetricsEnabled,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
