package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shareit-rental/service-booking/internal/application"
	"github.com/shareit-rental/service-booking/internal/cache"
	"github.com/shareit-rental/service-booking/internal/config"
	bookingEvents "github.com/shareit-rental/service-booking/internal/events"
	"github.com/shareit-rental/service-booking/internal/handler"
	"github.com/shareit-rental/service-booking/internal/platform/database"
	"github.com/shareit-rental/service-booking/internal/platform/health"
	"github.com/shareit-rental/service-booking/internal/platform/kafka"
	"github.com/shareit-rental/service-booking/internal/platform/logger"
	"github.com/shareit-rental/service-booking/internal/repository"
)

const serviceName = "service-booking"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.Bool("kafka", cfg.KafkaConfig.Enabled),
		zap.Bool("redis", cfg.RedisConfig.Addr != ""),
	)

	// Connect to database and apply migrations
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), cfg.MigrationsDir, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	userRepo := repository.NewGormUserRepository(db)

	// Optional Redis: item snapshot cache and decision lock
	var (
		itemCache application.ItemCache
		opts      []application.BookingServiceOption
	)
	if cfg.RedisConfig.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.RedisConfig, cfg.Booking.ItemCacheTTL)
		defer func() { _ = redisCache.Close() }()

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			log.Warn("redis unreachable, cache and decision lock disabled", zap.Error(err))
		} else {
			itemCache = redisCache
			opts = append(opts, application.WithDecisionLocker(redisCache, cfg.Booking.DecisionLockTTL))
		}
		pingCancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional Kafka: lifecycle events and the notification consumer
	if cfg.KafkaConfig.Enabled {
		kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = kafkaProducer.Close() }()
		opts = append(opts, application.WithEventPublisher(kafkaProducer))

		groupID := cfg.KafkaConfig.GroupPrefix + "booking-notifications"
		notificationConsumer := bookingEvents.NewNotificationConsumer(
			cfg.KafkaConfig.Brokers,
			groupID,
			bookingEvents.NewLogNotifier(log),
			log,
		)
		defer func() { _ = notificationConsumer.Close() }()

		go func() {
			log.Info("starting notification consumer", zap.String("group_id", groupID))
			if err := notificationConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("notification consumer error", zap.Error(err))
			}
		}()
	}

	// Initialize application services
	directory := application.NewCachedDirectory(itemRepo, userRepo, itemCache, log)
	bookingService := application.NewBookingService(bookingRepo, directory, log, opts...)
	itemService := application.NewItemService(itemRepo, bookingRepo, commentRepo, directory, application.SystemClock, log)
	commentService := application.NewCommentService(commentRepo, itemRepo, userRepo, bookingRepo, application.SystemClock, log)
	userService := application.NewUserService(userRepo, application.SystemClock, log)

	docsHandler, err := handler.NewDocsHandler()
	if err != nil {
		log.Fatal("failed to load API docs", zap.Error(err))
	}

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router, err := handler.NewRouter(log, handler.Handlers{
		Health:   health.NewHandler(db, serviceName),
		Docs:     docsHandler,
		Users:    handler.NewUserHandler(userService),
		Items:    handler.NewItemHandler(itemService, commentService),
		Bookings: handler.NewBookingHandler(bookingService),
	})
	if err != nil {
		log.Fatal("failed to build router", zap.Error(err))
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}
