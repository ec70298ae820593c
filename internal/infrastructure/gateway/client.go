package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/pagora/payment-service/internal/domain"
)

type submitRequest struct {
	AmountInCents int64  `json:"amount_in_cents"`
	Currency      string `json:"currency"`
	Reference     string `json:"reference"`
	CustomerEmail string `json:"customer_email"`
	PaymentMethod struct {
		Type         string `json:"type"`
		Token        string `json:"token"`
		Installments int    `json:"installments"`
	} `json:"payment_method"`
}

type transactionResponse struct {
	Data transactionData `json:"data"`
}

type transactionData struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	StatusMessage string `json:"status_message"`
	Reference     string `json:"reference"`
	AmountInCents int64  `json:"amount_in_cents"`
	Currency      string `json:"currency"`
	PaymentMethodType string `json:"payment_method_type"`
	CreatedAt     string `json:"created_at"`
}

type errorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

// HTTPPaymentGateway talks to the card processor's REST API. Transport
// failures and 5xx responses wrap domain.ErrGatewayUnavailable so callers
// can tell a retryable outage from a definitive rejection.
type HTTPPaymentGateway struct {
	BaseURL    string
	PrivateKey string
	Client     *http.Client
}

func NewHTTPPaymentGateway(baseURL, privateKey string, timeout time.Duration) *HTTPPaymentGateway {
	return &HTTPPaymentGateway{
		BaseURL:    baseURL,
		PrivateKey: privateKey,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (g *HTTPPaymentGateway) Submit(ctx context.Context, req domain.PaymentRequest) (*domain.GatewayTransaction, error) {
	body := submitRequest{
		AmountInCents: int64(math.Round(req.Amount.Amount * 100)),
		Currency:      req.Amount.Currency,
		Reference:     req.Reference,
		CustomerEmail: req.CustomerEmail,
	}
	body.PaymentMethod.Type = "CARD"
	body.PaymentMethod.Token = req.CardToken
	body.PaymentMethod.Installments = req.Installments
	if body.PaymentMethod.Installments <= 0 {
		body.PaymentMethod.Installments = 1
	}

	requestBodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/v1/transactions", g.BaseURL), bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.PrivateKey)

	return g.doTransactionRequest(httpReq)
}

func (g *HTTPPaymentGateway) Fetch(ctx context.Context, gatewayTransactionID string) (*domain.GatewayTransaction, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v1/transactions/%s", g.BaseURL, gatewayTransactionID), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.PrivateKey)

	return g.doTransactionRequest(httpReq)
}

func (g *HTTPPaymentGateway) doTransactionRequest(httpReq *http.Request) (*domain.GatewayTransaction, error) {
	response, err := g.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer response.Body.Close()

	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrGatewayUnavailable, err)
	}

	if response.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: gateway returned %d", domain.ErrGatewayUnavailable, response.StatusCode)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		var txResponse transactionResponse
		if err := json.Unmarshal(responseBodyBytes, &txResponse); err != nil {
			return nil, fmt.Errorf("decoding gateway response: %w", err)
		}
		return toGatewayTransaction(txResponse.Data), nil
	}

	var errResponse errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errResponse); err != nil {
		return nil, fmt.Errorf("gateway rejected request with status %d", response.StatusCode)
	}
	return nil, fmt.Errorf("gateway rejected request: %s: %s", errResponse.Error.Type, errResponse.Error.Reason)
}

func toGatewayTransaction(data transactionData) *domain.GatewayTransaction {
	createdAt, err := time.Parse(time.RFC3339, data.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}

	return &domain.GatewayTransaction{
		ID:            data.ID,
		Status:        data.Status,
		StatusMessage: data.StatusMessage,
		Reference:     data.Reference,
		AmountInCents: data.AmountInCents,
		Currency:      data.Currency,
		PaymentMethod: data.PaymentMethodType,
		CreatedAt:     createdAt,
	}
}
