package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/localkart/core-api/config"
	"github.com/localkart/core-api/controllers"
	"github.com/localkart/core-api/cron"
	"github.com/localkart/core-api/db"
	"github.com/localkart/core-api/logger"
	"github.com/localkart/core-api/metrics"
	"github.com/localkart/core-api/middleware"
	"github.com/localkart/core-api/realtime"
	"github.com/localkart/core-api/redis"
	"github.com/localkart/core-api/routes"
	"github.com/localkart/core-api/utils"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration: ", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal("failed to build logger: ", err)
	}
	defer zlog.Sync()
	sugar := zlog.Sugar()

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		sugar.Fatalw("failed to connect to database", "error", err)
	}
	if err := db.Migrate(gdb); err != nil {
		sugar.Fatalw("failed to run migrations", "error", err)
	}
	sugar.Info("database connection established")

	rdb, err := redis.Connect(context.Background(), cfg.RedisAddr)
	if err != nil {
		sugar.Fatalw("failed to connect to redis", "error", err)
	}
	sugar.Info("redis connection established")

	metrics.Init()

	hub := realtime.NewHub(gdb, rdb, sugar)
	go hub.Run(context.Background())

	if _, err := cron.Start(gdb, sugar, cfg); err != nil {
		sugar.Fatalw("failed to start reminder scheduler", "error", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "LocalKart Core API",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.ClientURL,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 15 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return utils.Fail(c, fiber.StatusTooManyRequests, utils.CodeRateLimited,
				"Too many requests from this IP, please try again later")
		},
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":      "LocalKart Core API",
			"version":   version,
			"status":    "running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authCtl := controllers.NewAuthController(gdb, sugar, cfg)
	providerCtl := controllers.NewProviderController(gdb, sugar, cfg)
	bookingCtl := controllers.NewBookingController(gdb, sugar, cfg)
	healthCtl := controllers.NewHealthController(gdb, rdb)

	protected := middleware.Protected(gdb, cfg.JWTSecret)

	api := app.Group("/api")
	api.Get("/health", healthCtl.Check)
	routes.SetupAuthRoutes(api, authCtl, protected)
	routes.SetupProviderRoutes(api, providerCtl, protected)
	routes.SetupBookingRoutes(api, bookingCtl, protected)
	routes.SetupRealtimeRoutes(app, hub, cfg.JWTSecret)

	app.Use(func(c *fiber.Ctx) error {
		return utils.Fail(c, fiber.StatusNotFound, utils.CodeNotFound, "Route not found")
	})

	sugar.Infow("LocalKart Core API listening", "port", cfg.Port)
	sugar.Fatal(app.Listen(fmt.Sprintf(":%d", cfg.Port)))
}
