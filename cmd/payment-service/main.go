package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pagora/payment-service/internal/app/background"
	"github.com/pagora/payment-service/internal/config"
	"github.com/pagora/payment-service/internal/delivery/httpapi"
	"github.com/pagora/payment-service/internal/infrastructure/gateway"
	publisher "github.com/pagora/payment-service/internal/infrastructure/kafka"
	"github.com/pagora/payment-service/internal/infrastructure/metrics"
	"github.com/pagora/payment-service/internal/infrastructure/migrate"
	"github.com/pagora/payment-service/internal/infrastructure/postgres"
	"github.com/pagora/payment-service/internal/infrastructure/postgres/repository"
	"github.com/pagora/payment-service/internal/infrastructure/redislock"
	"github.com/pagora/payment-service/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.PaymentsDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.PaymentsDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Init repositories
	transactionRepo := repository.NewDefaultTransactionRepository(db)
	productRepo := repository.NewDefaultProductRepository(db)
	deliveryRepo := repository.NewDefaultDeliveryRepository(db)
	customerRepo := repository.NewDefaultCustomerRepository(db)

	paymentMetrics := metrics.NewPaymentMetrics(prometheus.DefaultRegisterer)

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := publisher.NewDefaultKafkaPublisher(brokers)

	paymentGateway := gateway.NewHTTPPaymentGateway(
		cfg.Gateway.BaseURL,
		cfg.Gateway.PrivateKey,
		time.Duration(cfg.Gateway.TimeoutSeconds)*time.Second,
	)

	// Init usecases
	stockUsecase := usecase.NewDefaultStockUsecase(productRepo, paymentMetrics)
	reconcileUsecase := usecase.NewDefaultReconcileUsecase(
		transactionRepo,
		deliveryRepo,
		stockUsecase,
		paymentGateway,
		pub,
		cfg.KafkaService.EventsTopic,
		paymentMetrics,
	)
	checkoutUsecase := usecase.NewDefaultCheckoutUsecase(
		transactionRepo,
		customerRepo,
		stockUsecase,
		reconcileUsecase,
		paymentGateway,
		paymentMetrics,
	)
	queryUsecase := usecase.NewDefaultTransactionQueryUsecase(transactionRepo, deliveryRepo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background reconciliation of pending transactions
	var pollLock redislock.TryLocker
	if cfg.RedisService.Addr != "" {
		pollLock = redislock.NewRedisLock(cfg.RedisService.Addr, cfg.RedisService.Password, cfg.RedisService.DB, "payment-service")
	}
	tasks := background.NewBackgroundTasks(
		reconcileUsecase,
		pollLock,
		time.Duration(cfg.Reconciler.PollIntervalSeconds)*time.Second,
		time.Duration(cfg.Reconciler.LockTTLSeconds)*time.Second,
		paymentMetrics,
	)
	tasks.StartAll(ctx)

	// HTTP server
	router := httpapi.NewRouter(
		httpapi.NewCheckoutHandler(checkoutUsecase),
		httpapi.NewWebhookHandler(reconcileUsecase),
		httpapi.NewTransactionHandler(queryUsecase),
	)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler: router,
	}

	go func() {
		slog.Info("payment service listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown failed", "error", err)
	}
}
