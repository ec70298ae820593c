package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pagora/payment-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reconcileFixture struct {
	txRepo       *fakeTransactionRepo
	productRepo  *fakeProductRepo
	deliveryRepo *fakeDeliveryRepo
	gateway      *fakeGateway
	reconciler   *DefaultReconcileUsecase
}

func newReconcileFixture(products ...*domain.Product) *reconcileFixture {
	m := newTestMetrics()
	txRepo := newFakeTransactionRepo()
	productRepo := newFakeProductRepo(products...)
	deliveryRepo := newFakeDeliveryRepo()
	gateway := newFakeGateway()

	stock := NewDefaultStockUsecase(productRepo, m)
	reconciler := NewDefaultReconcileUsecase(txRepo, deliveryRepo, stock, gateway, nil, "payment-events", m)

	return &reconcileFixture{
		txRepo:       txRepo,
		productRepo:  productRepo,
		deliveryRepo: deliveryRepo,
		gateway:      gateway,
		reconciler:   reconciler,
	}
}

// seedPendingTransaction stores a priced PENDING transaction the way
// checkout would have left it.
func (f *reconcileFixture) seedPendingTransaction(t *testing.T, gatewayTxID string, items ...domain.TransactionItem) *domain.Transaction {
	t.Helper()

	subtotal := domain.Money{Currency: "COP"}
	for _, item := range items {
		var err error
		subtotal, err = subtotal.Add(item.LineSubtotal)
		require.NoError(t, err)
	}

	now := time.Now()
	tx := &domain.Transaction{
		TransactionNumber:    domain.NewTransactionNumber(),
		Status:               domain.StatusPending,
		CustomerID:           "customer-1",
		Subtotal:             subtotal,
		BaseFee:              domain.GetBaseFee(),
		DeliveryFee:          domain.GetDeliveryFee("Bogotá"),
		Items:                items,
		GatewayTransactionID: gatewayTxID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	total, err := tx.Subtotal.Add(tx.BaseFee)
	require.NoError(t, err)
	tx.Total, err = total.Add(tx.DeliveryFee)
	require.NoError(t, err)

	id, err := f.txRepo.CreateTransaction(tx)
	require.NoError(t, err)
	tx.ID = id
	return tx
}

func lineItem(productID string, quantity int, unitPrice float64) domain.TransactionItem {
	return domain.TransactionItem{
		ProductID:    productID,
		ProductName:  "product " + productID,
		Quantity:     quantity,
		UnitPrice:    domain.Money{Amount: unitPrice, Currency: "COP"},
		LineSubtotal: domain.Money{Amount: unitPrice * float64(quantity), Currency: "COP"},
		CreatedAt:    time.Now(),
	}
}

func TestWebhookApprovedRunsEffects(t *testing.T) {
	f := newReconcileFixture(testProduct("p1", 50000, 10))
	tx := f.seedPendingTransaction(t, "gw-1", lineItem("p1", 2, 50000))

	err := f.reconciler.HandleGatewayNotification(context.Background(), &domain.GatewayNotification{
		GatewayTransactionID: "gw-1",
		Reference:            tx.TransactionNumber,
		Status:               "approved", // gateway vocabularies are case-insensitive
	})
	require.NoError(t, err)

	stored, err := f.txRepo.GetTransactionByID(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, stored.Status)
	assert.Equal(t, "approved", stored.GatewayStatus)
	require.NotNil(t, stored.ProcessedAt)

	assert.Equal(t, 8, f.productRepo.stock("p1"))
	assert.Equal(t, 1, f.deliveryRepo.count())

	delivery, err := f.deliveryRepo.GetDeliveryByTransactionID(tx.ID)
	require.NoError(t, err)
	assert.Regexp(t, `^TRACK-\d{13}-[0-9A-Z]{6}$`, delivery.TrackingNumber)
}

func TestWebhookDuplicateDeliveryIsNoOp(t *testing.T) {
	f := newReconcileFixture(testProduct("p1", 50000, 10))
	tx := f.seedPendingTransaction(t, "gw-1", lineItem("p1", 2, 50000))

	notification := &domain.GatewayNotification{
		GatewayTransactionID: "gw-1",
		Reference:            tx.TransactionNumber,
		Status:               "APPROVED",
	}

	require.NoError(t, f.reconciler.HandleGatewayNotification(context.Background(), notification))
	require.NoError(t, f.reconciler.HandleGatewayNotification(context.Background(), notification))

	// second delivery short-circuits on the terminal state: one delivery,
	// stock decremented exactly once
	assert.Equal(t, 1, f.deliveryRepo.count())
	assert.Equal(t, 8, f.productRepo.stock("p1"))
}

func TestWebhookDeclined(t *testing.T) {
	f := newReconcileFixture(testProduct("p1", 50000, 10))
	tx := f.seedPendingTransaction(t, "gw-1", lineItem("p1", 1, 50000))

	err := f.reconciler.HandleGatewayNotification(context.Background(), &domain.GatewayNotification{
		GatewayTransactionID: "gw-1",
		Reference:            tx.TransactionNumber,
		Status:               "DECLINED",
		StatusMessage:        "insufficient funds",
	})
	require.NoError(t, err)

	stored, err := f.txRepo.GetTransactionByID(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeclined, stored.Status)
	assert.Equal(t, "insufficient funds", stored.ErrorMessage)

	// declined payments trigger no effects
	assert.Equal(t, 10, f.productRepo.stock("p1"))
	assert.Zero(t, f.deliveryRepo.count())
}

func TestWebhookVoidedMapsToDeclined(t *testing.T) {
	f := newReconcileFixture(testProduct("p1", 50000, 10))
	tx := f.seedPendingTransaction(t, "gw-1", lineItem("p1", 1, 50000))

	err := f.reconciler.HandleGatewayNotification(context.Background(), &domain.GatewayNotification{
		GatewayTransactionID: "gw-1",
		Reference:            tx.TransactionNumber,
		Status:               "voided",
	})
	require.NoError(t, err)

	stored, err := f.txRepo.GetTransactionByID(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeclined, stored.Status)
}

func TestWebhookUnknownTransaction(t *testing.T) {
	f := newReconcileFixture()

	err := f.reconciler.HandleGatewayNotification(context.Background(), &domain.GatewayNotification{
		GatewayTransactionID: "gw-404",
		Reference:            "TRX-0000000000000-zzzzzz",
		Status:               "APPROVED",
	})
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestWebhookShippingAddressUsedForDelivery(t *testing.T) {
	f := newReconcileFixture(testProduct("p1", 50000, 10))
	tx := f.seedPendingTransaction(t, "gw-1", lineItem("p1", 1, 50000))

	err := f.reconciler.HandleGatewayNotification(context.Background(), &domain.GatewayNotification{
		GatewayTransactionID: "gw-1",
		Reference:            tx.TransactionNumber,
		Status:               "APPROVED",
		Shipping: &domain.ShippingDetails{
			Address:    "Carrera 7 #71-21",
			City:       "Bogotá",
			Department: "Cundinamarca",
		},
	})
	require.NoError(t, err)

	delivery, err := f.deliveryRepo.GetDeliveryByTransactionID(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carrera 7 #71-21", delivery.Address)
	assert.Equal(t, "Bogotá", delivery.City)
}

func TestWebhookWithoutShippingUsesPlaceholders(t *testing.T) {
	f := newReconcileFixture(testProduct("p1", 50000, 10))
	tx := f.seedPendingTransaction(t, "gw-1", lineItem("p1", 1, 50000))

	err := f.reconciler.HandleGatewayNotification(context.Background(), &domain.GatewayNotification{
		GatewayTransactionID: "gw-1",
		Reference:            tx.TransactionNumber,
		Status:               "APPROVED",
	})
	require.NoError(t, err)

	delivery, err := f.deliveryRepo.GetDeliveryByTransactionID(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING CONFIRMATION", delivery.Address)
}

// Both reconciliation paths can read the same PENDING row before either
// writes. The conditional update lets exactly one of them claim the
// transition; the loser must apply no effects.
func TestConcurrentApplyRunsEffectsOnce(t *testing.T) {
	f := newReconcileFixture(testProduct("p1", 50000, 10))
	tx := f.seedPendingTransaction(t, "gw-1", lineItem("p1", 2, 50000))

	gw := &domain.GatewayTransaction{ID: "gw-1", Status: "APPROVED"}

	// two actors holding independent stale reads of the same row
	webhookView, err := f.txRepo.GetTransactionByID(tx.ID)
	require.NoError(t, err)
	pollerView, err := f.txRepo.GetTransactionByID(tx.ID)
	require.NoError(t, err)

	status, err := f.reconciler.ApplyGatewayResult(context.Background(), webhookView, gw, SourceWebhook, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, status)

	status, err = f.reconciler.ApplyGatewayResult(context.Background(), pollerView, gw, SourcePoller, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, status)

	// stock decremented once, exactly one delivery
	assert.Equal(t, 8, f.productRepo.stock("p1"))
	assert.Equal(t, 1, f.deliveryRepo.count())
}

func TestApprovedEffectsStockUnderflowIsNonFatal(t *testing.T) {
	f := newReconcileFixture(testProduct("p1", 50000, 1), testProduct("p2", 20000, 5))
	tx := f.seedPendingTransaction(t, "gw-1",
		lineItem("p1", 3, 50000), // more than remaining stock
		lineItem("p2", 2, 20000))

	err := f.reconciler.HandleGatewayNotification(context.Background(), &domain.GatewayNotification{
		GatewayTransactionID: "gw-1",
		Reference:            tx.TransactionNumber,
		Status:               "APPROVED",
	})
	require.NoError(t, err)

	// the underflowing item is logged and skipped, the rest of the
	// sequence still runs
	assert.Equal(t, 1, f.productRepo.stock("p1"))
	assert.Equal(t, 3, f.productRepo.stock("p2"))
	assert.Equal(t, 1, f.deliveryRepo.count())

	stored, err := f.txRepo.GetTransactionByID(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, stored.Status)
}

func TestPollReconcilesPendingTransactions(t *testing.T) {
	f := newReconcileFixture(testProduct("p1", 50000, 10))
	tx := f.seedPendingTransaction(t, "gw-1", lineItem("p1", 2, 50000))
	f.gateway.fetchResp["gw-1"] = &domain.GatewayTransaction{ID: "gw-1", Status: "APPROVED"}

	require.NoError(t, f.reconciler.ReconcilePendingTransactions(context.Background()))

	stored, err := f.txRepo.GetTransactionByID(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, stored.Status)
	assert.Equal(t, 8, f.productRepo.stock("p1"))
	assert.Equal(t, 1, f.deliveryRepo.count())
}

func TestPollExcludesTransactionsWithoutGatewayID(t *testing.T) {
	f := newReconcileFixture(testProduct("p1", 50000, 10))
	// never acknowledged by the gateway: nothing to poll by id
	f.seedPendingTransaction(t, "", lineItem("p1", 1, 50000))
	pollable := f.seedPendingTransaction(t, "gw-2", lineItem("p1", 1, 50000))
	f.gateway.fetchResp["gw-2"] = &domain.GatewayTransaction{ID: "gw-2", Status: "PENDING"}

	require.NoError(t, f.reconciler.ReconcilePendingTransactions(context.Background()))

	assert.Equal(t, []string{"gw-2"}, f.gateway.fetched())

	stored, err := f.txRepo.GetTransactionByID(pollable.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestPollIsolatesPerTransactionFailures(t *testing.T) {
	f := newReconcileFixture(testProduct("p1", 50000, 10))
	failing := f.seedPendingTransaction(t, "gw-bad", lineItem("p1", 1, 50000))
	ok := f.seedPendingTransaction(t, "gw-ok", lineItem("p1", 2, 50000))

	f.gateway.fetchErr["gw-bad"] = errors.New("gateway timeout")
	f.gateway.fetchResp["gw-ok"] = &domain.GatewayTransaction{ID: "gw-ok", Status: "APPROVED"}

	require.NoError(t, f.reconciler.ReconcilePendingTransactions(context.Background()))

	storedFailing, err := f.txRepo.GetTransactionByID(failing.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, storedFailing.Status)

	storedOK, err := f.txRepo.GetTransactionByID(ok.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, storedOK.Status)
}

func TestPollTerminalStatesAreNotPollable(t *testing.T) {
	f := newReconcileFixture(testProduct("p1", 50000, 10))
	tx := f.seedPendingTransaction(t, "gw-1", lineItem("p1", 1, 50000))
	f.gateway.fetchResp["gw-1"] = &domain.GatewayTransaction{ID: "gw-1", Status: "DECLINED"}

	require.NoError(t, f.reconciler.ReconcilePendingTransactions(context.Background()))
	require.NoError(t, f.reconciler.ReconcilePendingTransactions(context.Background()))

	// once terminal, the transaction drops out of the poll batch
	assert.Equal(t, []string{"gw-1"}, f.gateway.fetched())

	stored, err := f.txRepo.GetTransactionByID(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeclined, stored.Status)
}
