package main // Entry point package

import (
	"context" // Context for the event publisher
	"log"     // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/restaurant-table-booking/internal/availability"
	"github.com/iliyamo/restaurant-table-booking/internal/booking"
	"github.com/iliyamo/restaurant-table-booking/internal/config"
	"github.com/iliyamo/restaurant-table-booking/internal/database"
	"github.com/iliyamo/restaurant-table-booking/internal/handler"
	"github.com/iliyamo/restaurant-table-booking/internal/middleware"
	"github.com/iliyamo/restaurant-table-booking/internal/queue"
	"github.com/iliyamo/restaurant-table-booking/internal/repository"
	"github.com/iliyamo/restaurant-table-booking/internal/router"
	queue_publisher "github.com/iliyamo/restaurant-table-booking/internal/service"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	// Connect to MySQL and verify the connection before serving traffic.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache and the rate limiter.  A nil client
	// disables both; the service keeps working without it.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limiting disabled")
	}

	// Repositories wrap all SQL access per entity.
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	restaurantRepo := repository.NewRestaurantRepo(db)
	tableRepo := repository.NewTableRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	reviewRepo := repository.NewReviewRepo(db)

	// The availability checker answers which table, if any, fits a party
	// at a given date and time.
	checker := availability.NewChecker(tableRepo, bookingRepo, restaurantRepo)

	// The booking service creates bookings through the checker and, when
	// configured, confirms them immediately and publishes the event.
	bookingSvc := booking.NewService(bookingRepo, checker, cfg.AutoConfirm,
		func(ctx context.Context, ev queue.BookingConfirmedEvent) error {
			return queue_publisher.PublishBookingConfirmed(ctx, ev)
		})

	// Consume confirmation events in the background and append them to the
	// booking log.  The consumer reconnects on broker failure.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance

	// Global middleware: Redis-backed token bucket rate limiting.  No-op
	// when rdb is nil.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	// The response cache is scoped to the public browse routes, which
	// serve identical data to every caller.  Per-user responses must
	// never pass through a shared cache.
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Handlers bundle the repositories per audience.
	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	publicHandler := handler.NewPublicHandler(restaurantRepo, reviewRepo, checker)
	customerHandler := handler.NewCustomerHandler(bookingSvc, bookingRepo, reviewRepo)
	ownerHandler := handler.NewOwnerHandler(restaurantRepo, tableRepo, bookingRepo)
	adminHandler := handler.NewAdminHandler(restaurantRepo)

	// Owner-side confirmation publishes the same event as auto-confirm.
	ownerHandler.Publish = func(c echo.Context, ev queue.BookingConfirmedEvent) {
		if err := queue_publisher.PublishBookingConfirmed(c.Request().Context(), ev); err != nil {
			c.Logger().Warnf("publish booking.confirmed: %v", err)
		}
	}

	router.RegisterRoutes(e) // Register application routes
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, cacheMW)
	router.RegisterCustomer(e, customerHandler, cfg.JWTSecret)
	router.RegisterOwner(e, ownerHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
