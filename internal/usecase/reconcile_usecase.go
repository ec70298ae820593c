package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pagora/payment-service/internal/domain"
	publisher "github.com/pagora/payment-service/internal/infrastructure/kafka"
	"github.com/pagora/payment-service/internal/infrastructure/metrics"
)

// Reconciliation sources. Both feed the same state machine and the same
// effect sequence.
const (
	SourceWebhook  = "webhook"
	SourcePoller   = "poller"
	SourceCheckout = "checkout"
)

type ReconcileUsecase interface {
	// HandleGatewayNotification is the inbound webhook path.
	HandleGatewayNotification(ctx context.Context, notification *domain.GatewayNotification) error

	// ApplyGatewayResult drives the transaction through the state machine
	// and, when this caller wins the PENDING transition into APPROVED,
	// runs the approved-effect sequence. Shared by every entry path.
	ApplyGatewayResult(ctx context.Context, tx *domain.Transaction, gw *domain.GatewayTransaction, source string, shipping *domain.ShippingDetails) (domain.TransactionStatus, error)

	// ReconcilePendingTransactions is one outbound polling pass over the
	// pollable transactions. Per-transaction failures are isolated.
	ReconcilePendingTransactions(ctx context.Context) error
}

type DefaultReconcileUsecase struct {
	TransactionRepo domain.TransactionRepository
	DeliveryRepo    domain.DeliveryRepository
	StockUsecase    StockUsecase
	Gateway         domain.PaymentGateway
	Publisher       domain.PublisherPort
	EventsTopic     string
	Metrics         *metrics.PaymentMetrics
}

func NewDefaultReconcileUsecase(
	transactionRepo domain.TransactionRepository,
	deliveryRepo domain.DeliveryRepository,
	stockUsecase StockUsecase,
	gateway domain.PaymentGateway,
	pub domain.PublisherPort,
	eventsTopic string,
	paymentMetrics *metrics.PaymentMetrics) *DefaultReconcileUsecase {

	return &DefaultReconcileUsecase{
		TransactionRepo: transactionRepo,
		DeliveryRepo:    deliveryRepo,
		StockUsecase:    stockUsecase,
		Gateway:         gateway,
		Publisher:       pub,
		EventsTopic:     eventsTopic,
		Metrics:         paymentMetrics,
	}
}

func (uc *DefaultReconcileUsecase) HandleGatewayNotification(ctx context.Context, notification *domain.GatewayNotification) error {
	uc.Metrics.RecordWebhookEvent(notification.Status)

	tx, err := uc.TransactionRepo.GetTransactionByNumber(notification.Reference)
	if err != nil {
		return fmt.Errorf("lookup transaction %s: %w", notification.Reference, err)
	}

	// Primary defense against duplicate webhook deliveries: a terminal
	// transaction is acknowledged without reprocessing.
	if tx.Status.IsTerminal() {
		uc.Metrics.DuplicateWebhooksTotal.Inc()
		slog.Info("webhook for terminal transaction ignored",
			"transaction_number", tx.TransactionNumber, "status", tx.Status)
		return nil
	}

	gw := &domain.GatewayTransaction{
		ID:            notification.GatewayTransactionID,
		Status:        notification.Status,
		StatusMessage: notification.StatusMessage,
		Reference:     notification.Reference,
	}

	_, err = uc.ApplyGatewayResult(ctx, tx, gw, SourceWebhook, notification.Shipping)
	return err
}

func (uc *DefaultReconcileUsecase) ApplyGatewayResult(ctx context.Context, tx *domain.Transaction, gw *domain.GatewayTransaction, source string, shipping *domain.ShippingDetails) (domain.TransactionStatus, error) {
	mapped := tx.UpdateFromGateway(gw.ID, gw.Status)
	if mapped == domain.StatusDeclined || mapped == domain.StatusError {
		tx.ErrorMessage = gw.StatusMessage
	}

	claimed, err := uc.TransactionRepo.SaveGatewayResult(tx)
	if err != nil {
		return mapped, fmt.Errorf("persist gateway result for %s: %w", tx.TransactionNumber, err)
	}

	// Another actor moved the row out of PENDING between our read and
	// this write. Its effects are already on the way; drop ours.
	if !claimed {
		uc.Metrics.LostTransitionRacesTotal.Inc()
		slog.Info("lost status transition race",
			"transaction_number", tx.TransactionNumber, "source", source)
		return mapped, nil
	}

	switch mapped {
	case domain.StatusApproved:
		uc.Metrics.RecordApproved(source, tx.Total.Currency, tx.Total.Amount)
		uc.applyApprovedEffects(tx, shipping)
		uc.publishPaymentEvent(tx, source)
	case domain.StatusDeclined:
		uc.Metrics.RecordDeclined(source)
		uc.publishPaymentEvent(tx, source)
	case domain.StatusError:
		uc.Metrics.RecordErrored(source)
		uc.publishPaymentEvent(tx, source)
	}

	return mapped, nil
}

// applyApprovedEffects runs the per-item stock decrement and the delivery
// creation for a transaction whose PENDING→APPROVED transition this
// process just claimed.
//
// Stock underflow here is a recoverable inconsistency, not a reason to
// roll back an already approved payment: failures are logged and counted
// for manual reconciliation and do not abort the remaining items.
func (uc *DefaultReconcileUsecase) applyApprovedEffects(tx *domain.Transaction, shipping *domain.ShippingDetails) {
	for _, item := range tx.Items {
		if err := uc.StockUsecase.ReduceStock(item.ProductID, item.Quantity); err != nil {
			uc.Metrics.RecordStockUnderflow(item.ProductID)
			slog.Error("stock decrement failed after approval",
				"transaction_number", tx.TransactionNumber,
				"product_id", item.ProductID,
				"quantity", item.Quantity,
				"error", err.Error())
		}
	}

	if err := uc.createDeliveryOnce(tx, shipping); err != nil {
		slog.Error("delivery creation failed",
			"transaction_number", tx.TransactionNumber, "error", err.Error())
	}
}

// createDeliveryOnce creates the delivery unless one already exists for
// this transaction. The existence check is the idempotency fence shared
// by the webhook and polling paths.
func (uc *DefaultReconcileUsecase) createDeliveryOnce(tx *domain.Transaction, shipping *domain.ShippingDetails) error {
	_, err := uc.DeliveryRepo.GetDeliveryByTransactionID(tx.ID)
	if err == nil {
		slog.Info("delivery already exists, skipping creation",
			"transaction_number", tx.TransactionNumber)
		return nil
	}
	if !errors.Is(err, domain.ErrDeliveryNotFound) {
		return err
	}

	// Best available address: webhook shipping block when present,
	// placeholders pending manual resolution otherwise.
	address, city, department := "PENDING CONFIRMATION", "PENDING CONFIRMATION", "PENDING CONFIRMATION"
	if shipping != nil {
		address, city, department = shipping.Address, shipping.City, shipping.Department
	}

	now := time.Now()
	delivery := &domain.Delivery{
		TransactionID:         tx.ID,
		Address:               address,
		City:                  city,
		Department:            department,
		TrackingNumber:        domain.NewTrackingNumber(),
		EstimatedDeliveryDate: domain.EstimateDeliveryDate(city, now),
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if _, err := uc.DeliveryRepo.CreateDelivery(delivery); err != nil {
		return err
	}

	uc.Metrics.DeliveriesCreatedTotal.Inc()
	slog.Info("delivery created",
		"transaction_number", tx.TransactionNumber,
		"tracking_number", delivery.TrackingNumber)
	return nil
}

func (uc *DefaultReconcileUsecase) ReconcilePendingTransactions(ctx context.Context) error {
	transactions, err := uc.TransactionRepo.FindPollableTransactions()
	if err != nil {
		return fmt.Errorf("fetch pollable transactions: %w", err)
	}

	uc.Metrics.PollBatchSize.Observe(float64(len(transactions)))

	for _, tx := range transactions {
		start := time.Now()
		gw, err := uc.Gateway.Fetch(ctx, tx.GatewayTransactionID)
		uc.Metrics.RecordGatewayRequest("fetch", time.Since(start).Seconds(), err != nil)
		if err != nil {
			slog.Error("gateway status fetch failed",
				"transaction_number", tx.TransactionNumber,
				"gateway_transaction_id", tx.GatewayTransactionID,
				"error", err.Error())
			continue
		}

		if _, err := uc.ApplyGatewayResult(ctx, tx, gw, SourcePoller, nil); err != nil {
			slog.Error("failed to apply polled gateway result",
				"transaction_number", tx.TransactionNumber, "error", err.Error())
			continue
		}
	}

	uc.Metrics.PollRunsTotal.Inc()
	return nil
}

func (uc *DefaultReconcileUsecase) publishPaymentEvent(tx *domain.Transaction, source string) {
	if uc.Publisher == nil {
		return
	}

	event := publisher.PaymentEvent{
		TransactionID:     tx.ID,
		TransactionNumber: tx.TransactionNumber,
		Status:            string(tx.Status),
		GatewayStatus:     tx.GatewayStatus,
		Amount:            tx.Total.Amount,
		Currency:          tx.Total.Currency,
		CustomerID:        tx.CustomerID,
		Source:            source,
	}

	go func() {
		msg, err := publisher.MarshalPaymentEvent(event)
		if err != nil {
			slog.Error("failed to marshal payment event", "error", err.Error())
			return
		}
		if err := uc.Publisher.Publish(uc.EventsTopic, msg); err != nil {
			slog.Error("failed to publish payment event",
				"transaction_number", tx.TransactionNumber, "error", err.Error())
		}
	}()
}
