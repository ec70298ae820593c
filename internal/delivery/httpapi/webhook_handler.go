package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pagora/payment-service/internal/domain"
	"github.com/pagora/payment-service/internal/usecase"
)

type WebhookHandler struct {
	Reconciler usecase.ReconcileUsecase
}

func NewWebhookHandler(reconciler usecase.ReconcileUsecase) *WebhookHandler {
	return &WebhookHandler{Reconciler: reconciler}
}

// HandlePaymentEvent is the gateway's webhook endpoint. A 2xx response
// acknowledges the event; any 5xx makes the gateway retry, so transient
// processing failures return 500 on purpose.
func (h *WebhookHandler) HandlePaymentEvent(w http.ResponseWriter, r *http.Request) {
	var req GatewayEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	eventTx := req.Data.Transaction
	if eventTx.Reference == "" {
		writeError(w, http.StatusBadRequest, "missing_reference", "transaction reference is required")
		return
	}

	notification := &domain.GatewayNotification{
		GatewayTransactionID: eventTx.ID,
		Reference:            eventTx.Reference,
		Status:               eventTx.Status,
		StatusMessage:        eventTx.StatusMessage,
	}
	if addr := eventTx.ShippingAddress; addr != nil {
		notification.Shipping = &domain.ShippingDetails{
			Address:    addr.AddressLine,
			City:       addr.City,
			Department: addr.Region,
		}
	}

	if err := h.Reconciler.HandleGatewayNotification(r.Context(), notification); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			writeError(w, http.StatusNotFound, "transaction_not_found", "unknown reference "+eventTx.Reference)
			return
		}
		slog.Error("webhook processing failed", "reference", eventTx.Reference, "error", err)
		writeError(w, http.StatusInternalServerError, "webhook_failed", "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
