package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bus-ticketing/internal/config"
	"github.com/iliyamo/bus-ticketing/internal/database"
	"github.com/iliyamo/bus-ticketing/internal/handler"
	"github.com/iliyamo/bus-ticketing/internal/middleware"
	"github.com/iliyamo/bus-ticketing/internal/queue"
	"github.com/iliyamo/bus-ticketing/internal/repository"
	"github.com/iliyamo/bus-ticketing/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache and the rate limiter; nil means
	// both run disabled.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	routeRepo := repository.NewRouteRepo(db)
	vehicleRepo := repository.NewVehicleRepo(db)
	tripRepo := repository.NewTripRepo(db)
	seatLockRepo := repository.NewSeatLockRepo(db)
	bookingRepo := repository.NewBookingRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	operatorHandler := handler.NewOperatorHandler(routeRepo, vehicleRepo, tripRepo)
	operatorBookingHandler := handler.NewOperatorBookingHandler(bookingRepo)
	riderHandler := handler.NewRiderHandler(tripRepo, vehicleRepo, seatLockRepo, bookingRepo, routeRepo, cfg.EventsEnabled)
	publicHandler := &handler.PublicHandler{
		RouteRepo:    routeRepo,
		TripRepo:     tripRepo,
		VehicleRepo:  vehicleRepo,
		SeatLockRepo: seatLockRepo,
		BookingRepo:  bookingRepo,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler)
	router.RegisterOperator(e, operatorHandler, operatorBookingHandler, cfg.JWTSecret)
	router.RegisterRider(e, riderHandler, cfg.JWTSecret)

	if cfg.EventsEnabled {
		go func() {
			if err := queue.StartBookingConsumer(); err != nil {
				log.Printf("booking consumer stopped: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
