package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"ticketly/api/routes"
	"ticketly/internal/notifications"
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/database"
	"ticketly/pkg/logger"
	"ticketly/pkg/ratelimit"
)

func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db.GetPostgreSQL()); err != nil {
		appLogger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	rateLimiter := buildRateLimiter(cfg, db)

	dispatcher, producer := buildDispatcher(cfg)
	if producer != nil {
		defer producer.Close()
	}

	consumer := startConsumer(cfg)
	if consumer != nil {
		defer func() {
			appLogger.Info("Stopping notification consumer...")
			if err := consumer.Stop(); err != nil {
				appLogger.Error("Error stopping notification consumer", slog.Any("error", err))
			}
		}()
	}

	router := setupRouter(cfg, db, rateLimiter, dispatcher)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("version", cfg.APIVersion),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
			slog.Bool("notifications", producer != nil),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func buildRateLimiter(cfg *config.Config, db *database.DB) *ratelimit.RateLimiter {
	appLogger := logger.GetDefault()
	if !cfg.RateLimit.Enabled {
		appLogger.Info("Rate limiting disabled")
		return nil
	}

	rateLimiter := ratelimit.NewRateLimiter(db.GetRedisClient(), &ratelimit.Config{
		Enabled:           cfg.RateLimit.Enabled,
		WindowDuration:    cfg.RateLimit.WindowDuration,
		DefaultRequests:   cfg.RateLimit.DefaultRequests,
		PublicRequests:    cfg.RateLimit.PublicRequests,
		BookingRequests:   cfg.RateLimit.BookingRequests,
		AdmissionRequests: cfg.RateLimit.AdmissionRequests,
		HealthRequests:    cfg.RateLimit.HealthRequests,
		WhitelistedIPs:    cfg.RateLimit.WhitelistedIPs,
	})
	appLogger.Info("Rate limiter initialized",
		slog.Duration("window", cfg.RateLimit.WindowDuration),
		slog.Int("admission_requests", cfg.RateLimit.AdmissionRequests),
	)
	return rateLimiter
}

// buildDispatcher wires the outcome-notification pipeline. Without brokers
// configured the service still admits bookings; notifications are dropped.
func buildDispatcher(cfg *config.Config) (notifications.Dispatcher, notifications.Producer) {
	appLogger := logger.GetDefault()
	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Info("No Kafka brokers configured, notifications disabled")
		return notifications.NewNoopDispatcher(), nil
	}

	producer, err := notifications.NewKafkaProducer(
		notifications.DefaultProducerConfig(cfg.Kafka.Brokers, cfg.Kafka.NotificationTopic),
	)
	if err != nil {
		appLogger.Error("Failed to initialize notification producer, continuing without notifications",
			slog.Any("error", err))
		return notifications.NewNoopDispatcher(), nil
	}

	appLogger.Info("Notification producer initialized",
		slog.Any("brokers", cfg.Kafka.Brokers),
		slog.String("topic", cfg.Kafka.NotificationTopic),
	)
	return notifications.NewDispatcher(producer), producer
}

func startConsumer(cfg *config.Config) notifications.Consumer {
	appLogger := logger.GetDefault()
	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.ConsumerWorkers <= 0 {
		return nil
	}

	emailService, err := notifications.NewSMTPEmailService(cfg.Email)
	if err != nil {
		appLogger.Info("SMTP not configured, notification emails will be logged only",
			slog.Any("reason", err))
		emailService = notifications.NewLogEmailService()
	}

	consumer, err := notifications.NewKafkaConsumer(
		notifications.DefaultConsumerConfig(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroupID, cfg.Kafka.NotificationTopic),
		emailService,
	)
	if err != nil {
		appLogger.Error("Failed to initialize notification consumer", slog.Any("error", err))
		return nil
	}

	if err := consumer.Start(context.Background(), cfg.Kafka.ConsumerWorkers); err != nil {
		appLogger.Error("Failed to start notification consumer", slog.Any("error", err))
		return nil
	}
	return consumer
}

func setupRouter(cfg *config.Config, db *database.DB, rateLimiter *ratelimit.RateLimiter, dispatcher notifications.Dispatcher) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	appRouter := routes.NewRouter(cfg, db, dispatcher)
	appRouter.SetupRoutes(engine)

	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		l.LogHTTPRequest(c, duration)
	}
}
