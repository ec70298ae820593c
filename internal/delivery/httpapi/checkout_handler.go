package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pagora/payment-service/internal/domain"
	"github.com/pagora/payment-service/internal/usecase"
)

type CheckoutHandler struct {
	CheckoutUsecase usecase.CheckoutUsecase
}

func NewCheckoutHandler(checkoutUsecase usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{CheckoutUsecase: checkoutUsecase}
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	output, err := h.CheckoutUsecase.Checkout(r.Context(), toCheckoutInput(&req))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyCart),
			errors.Is(err, domain.ErrMissingCardToken),
			errors.Is(err, domain.ErrInvalidQuantity):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		case errors.Is(err, domain.ErrProductNotFound):
			writeError(w, http.StatusNotFound, "product_not_found", err.Error())
		case errors.Is(err, domain.ErrInsufficientStock):
			writeError(w, http.StatusConflict, "insufficient_stock", err.Error())
		default:
			slog.Error("checkout failed", "error", err)
			writeError(w, http.StatusInternalServerError, "checkout_failed", "")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toCheckoutResponse(output))
}
