package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/di"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/events"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/handler"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/config"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/database"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/logger"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/redisclient"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := "info"
	if cfg.App.Debug {
		logLevel = "debug"
	}
	if err := logger.Init(&logger.Config{
		Level:       logLevel,
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
		OutputPath:  "stdout",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
	}); err != nil {
		logger.Fatal("failed to init telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.NewPostgresDB(ctx, &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := redisclient.New(ctx, &redisclient.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	log := logger.Get()

	busOpts := []events.BusOption{}
	if cfg.Kafka.Enabled() {
		kafkaClient, err := events.NewKafkaClient(cfg.Kafka.Brokers)
		if err != nil {
			logger.Fatal("failed to create kafka producer", zap.Error(err))
		}
		busOpts = append(busOpts, events.WithKafka(kafkaClient, cfg.Kafka.Topic))
		logger.Info("kafka order event producer enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic))
	}
	bus := events.NewBus(redisClient, log, busOpts...)
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		bus.Close(flushCtx)
	}()

	container := di.NewContainer(&di.ContainerConfig{
		DB:                db,
		Redis:             redisClient,
		Publisher:         bus,
		Logger:            log,
		PublicBaseURL:     cfg.App.PublicBaseURL,
		WebhookSecret:     cfg.Webhook.SigningSecret,
		SessionBuffer:     cfg.Realtime.SessionBuffer,
		KeepaliveInterval: cfg.Realtime.KeepaliveInterval,
		RefreshMargin:     cfg.Realtime.RefreshMargin,
	})

	// Events published while the subscription was down are gone; tell every
	// connected dashboard to refetch.
	container.Hub.OnReconnect(func() {
		container.Hub.BroadcastAll(events.OrderEvent{
			Type:       events.OrderResync,
			OccurredAt: time.Now(),
		})
	})

	container.Hub.Start(ctx)
	defer container.Hub.Stop()

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	handler.SetupRoutes(router, container.Handlers, cfg.JWT.Secret)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server listening",
			zap.String("addr", server.Addr),
			zap.String("environment", cfg.App.Environment))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
}
