package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"buildmart/internal/auth"
	"buildmart/internal/booking"
	"buildmart/internal/commons"
	"buildmart/internal/config"
	"buildmart/internal/events"
	"buildmart/internal/infrastructure/kafkax"
	"buildmart/internal/infrastructure/logger"
	"buildmart/internal/infrastructure/mysql"
	"buildmart/internal/infrastructure/redisx"
	"buildmart/internal/material"
	"buildmart/internal/notification"
	notificationrepo "buildmart/internal/notification/repository"
	"buildmart/internal/order"
	"buildmart/internal/professional"
	"buildmart/internal/server"
	"buildmart/internal/validation"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	rdb := redisx.New(cfg.Redis.Addr)
	defer rdb.Close()

	producer := kafkax.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.Buffer)
	producerCtx, stopProducer := context.WithCancel(context.Background())
	producer.Start(producerCtx)
	publisher := events.NewPublisher(producer, "buildmart-api")

	validator := validation.New()
	notifRepo := notificationrepo.NewMySQLNotificationRepository(db)

	authCtrl := auth.NewModule(db, cfg, validator, zapLogger)
	professionalCtrl := professional.NewModule(db, validator, zapLogger)
	materialModule := material.NewModule(db, validator, zapLogger)
	orderCtrl := order.NewModule(db, rdb, publisher, notifRepo, cfg, validator, zapLogger)
	bookingCtrl := booking.NewModule(db, publisher, notifRepo, validator, zapLogger)
	notificationCtrl := notification.NewController(notifRepo, zapLogger)

	router := server.NewRouter(server.Controllers{
		Auth:         authCtrl,
		Professional: professionalCtrl,
		Material:     materialModule.Controller,
		Order:        orderCtrl,
		Booking:      bookingCtrl,
		Notification: notificationCtrl,
	}, cfg.Auth.JWTSecret, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	// Flush buffered events before exiting.
	stopProducer()
	producer.WaitClosed()

	zapLogger.Info("server stopped gracefully")
}

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return commons.LoadConfig(path)
	}
	return config.Load()
}
