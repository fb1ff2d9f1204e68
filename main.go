package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"order-api/config"
	"order-api/consumers"
	"order-api/controllers"
	"order-api/database"
	"order-api/logger"
	"order-api/rabbitmq"
	"order-api/repository"
	"order-api/routes"
	"order-api/services"
	"order-api/utils"
)

func main() {
	cfg := config.LoadConfig()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Database initialization failed")
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.WithError(err).Fatal("Database migration failed")
		}
	}

	var events services.EventPublisher
	if cfg.RabbitMQEnabled {
		rmq, err := rabbitmq.NewRabbitMQ(cfg)
		if err != nil {
			log.WithError(err).Fatal("RabbitMQ initialization failed")
		}
		defer rmq.Close()

		if err := rmq.SetupQueues(); err != nil {
			log.WithError(err).Fatal("Failed to setup RabbitMQ queues")
		}
		if err := consumers.StartOrderConsumer(rmq.Channel, cfg, log); err != nil {
			log.WithError(err).Fatal("Failed to start order consumer")
		}
		events = rmq
	}

	tokens := utils.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	users := repository.NewUserRepository(db)
	orders := repository.NewOrderRepository(db)

	authService := services.NewAuthService(users, tokens, events, log)
	orderService := services.NewOrderService(orders, events, log)

	gin.SetMode(gin.ReleaseMode)
	router := routes.SetupRouter(routes.Dependencies{
		Auth:        controllers.NewAuthController(authService),
		Orders:      controllers.NewOrderController(orderService),
		Gate:        authService,
		TokenHeader: cfg.TokenHeader,
		DB:          db,
		Log:         log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("Order API starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}
