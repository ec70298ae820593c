package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pagora/payment-service/internal/domain"
	"github.com/pagora/payment-service/internal/usecase"
)

type TransactionHandler struct {
	Queries usecase.TransactionQueryUsecase
}

func NewTransactionHandler(queries usecase.TransactionQueryUsecase) *TransactionHandler {
	return &TransactionHandler{Queries: queries}
}

func (h *TransactionHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	transactionNumber := chi.URLParam(r, "number")
	if transactionNumber == "" {
		writeError(w, http.StatusBadRequest, "transaction_number_required", "")
		return
	}

	tx, err := h.Queries.GetTransactionByNumber(transactionNumber)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			writeError(w, http.StatusNotFound, "transaction_not_found", "")
			return
		}
		slog.Error("transaction lookup failed", "transaction_number", transactionNumber, "error", err)
		writeError(w, http.StatusInternalServerError, "lookup_failed", "")
		return
	}

	response := toTransactionResponse(tx)

	delivery, err := h.Queries.GetDeliveryByTransactionID(tx.ID)
	if err == nil {
		response.Delivery = &DeliveryResponse{
			TrackingNumber:        delivery.TrackingNumber,
			Address:               delivery.Address,
			City:                  delivery.City,
			Department:            delivery.Department,
			EstimatedDeliveryDate: delivery.EstimatedDeliveryDate.Format(time.RFC3339),
		}
	} else if !errors.Is(err, domain.ErrDeliveryNotFound) {
		slog.Error("delivery lookup failed", "transaction_id", tx.ID, "error", err)
	}

	writeJSON(w, http.StatusOK, response)
}

func toTransactionResponse(tx *domain.Transaction) TransactionResponse {
	items := make([]TransactionItemDTO, len(tx.Items))
	for i, item := range tx.Items {
		items[i] = TransactionItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Amount,
			Subtotal:    item.LineSubtotal.Amount,
		}
	}

	response := TransactionResponse{
		TransactionID:        tx.ID,
		TransactionNumber:    tx.TransactionNumber,
		Status:               string(tx.Status),
		Subtotal:             tx.Subtotal.Amount,
		BaseFee:              tx.BaseFee.Amount,
		DeliveryFee:          tx.DeliveryFee.Amount,
		Total:                tx.Total.Amount,
		Currency:             tx.Total.Currency,
		GatewayTransactionID: tx.GatewayTransactionID,
		GatewayStatus:        tx.GatewayStatus,
		ErrorMessage:         tx.ErrorMessage,
		Items:                items,
	}
	if tx.ProcessedAt != nil {
		response.ProcessedAt = tx.ProcessedAt.Format(time.RFC3339)
	}

	return response
}
