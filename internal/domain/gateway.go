package domain

import (
	"context"
	"time"
)

// PaymentRequest is what checkout submits to the external gateway.
// The card token is pre-tokenized client side and opaque to this service.
type PaymentRequest struct {
	Amount        Money
	Reference     string
	CustomerEmail string
	CardToken     string
	Installments  int
}

// GatewayTransaction is the gateway's view of a payment, shared by the
// submit acknowledgment and the fetched status.
type GatewayTransaction struct {
	ID            string
	Status        string
	StatusMessage string
	Reference     string
	AmountInCents int64
	Currency      string
	PaymentMethod string
	CreatedAt     time.Time
}

// PaymentGateway is the outbound port to the external payment processor.
type PaymentGateway interface {
	Submit(ctx context.Context, req PaymentRequest) (*GatewayTransaction, error)
	Fetch(ctx context.Context, gatewayTransactionID string) (*GatewayTransaction, error)
}

// GatewayNotification is the normalized inbound webhook payload the
// reconciler consumes. Signature verification happens upstream.
type GatewayNotification struct {
	GatewayTransactionID string
	Reference            string
	Status               string
	StatusMessage        string
	Shipping             *ShippingDetails
}

// ShippingDetails is the optional address block a webhook may carry.
type ShippingDetails struct {
	Address    string
	City       string
	Department string
}
