package httpapi

import paymentdto "github.com/pagora/payment-service/internal/usecase/dto/payment"

type CheckoutRequest struct {
	Customer CustomerDTO    `json:"customer"`
	Delivery AddressDTO     `json:"delivery"`
	Items    []CartItemDTO  `json:"items"`
	Payment  PaymentInfoDTO `json:"payment"`
}

type CustomerDTO struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
}

type AddressDTO struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	Department string `json:"department,omitempty"`
}

type CartItemDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type PaymentInfoDTO struct {
	CardToken    string `json:"card_token"`
	Installments int    `json:"installments,omitempty"`
}

type CheckoutResponse struct {
	TransactionID        string  `json:"transaction_id"`
	TransactionNumber    string  `json:"transaction_number"`
	Status               string  `json:"status"`
	Subtotal             float64 `json:"subtotal"`
	BaseFee              float64 `json:"base_fee"`
	DeliveryFee          float64 `json:"delivery_fee"`
	Total                float64 `json:"total"`
	Currency             string  `json:"currency"`
	GatewayTransactionID string  `json:"gateway_transaction_id,omitempty"`
	GatewayStatus        string  `json:"gateway_status,omitempty"`
	FailureReason        string  `json:"failure_reason,omitempty"`
}

// GatewayEventRequest mirrors the processor's webhook envelope. Only the
// transaction block is consumed; everything else is passthrough.
type GatewayEventRequest struct {
	Event string `json:"event"`
	Data  struct {
		Transaction GatewayEventTransaction `json:"transaction"`
	} `json:"data"`
	SentAt    string `json:"sent_at"`
	Timestamp int64  `json:"timestamp"`
	Signature struct {
		Checksum   string   `json:"checksum"`
		Properties []string `json:"properties"`
	} `json:"signature"`
}

type GatewayEventTransaction struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	StatusMessage   string `json:"status_message"`
	Reference       string `json:"reference"`
	AmountInCents   int64  `json:"amount_in_cents"`
	Currency        string `json:"currency"`
	PaymentMethodType string `json:"payment_method_type"`
	ShippingAddress *struct {
		AddressLine string `json:"address_line_1"`
		City        string `json:"city"`
		Region      string `json:"region"`
	} `json:"shipping_address"`
}

type TransactionResponse struct {
	TransactionID        string                `json:"transaction_id"`
	TransactionNumber    string                `json:"transaction_number"`
	Status               string                `json:"status"`
	Subtotal             float64               `json:"subtotal"`
	BaseFee              float64               `json:"base_fee"`
	DeliveryFee          float64               `json:"delivery_fee"`
	Total                float64               `json:"total"`
	Currency             string                `json:"currency"`
	GatewayTransactionID string                `json:"gateway_transaction_id,omitempty"`
	GatewayStatus        string                `json:"gateway_status,omitempty"`
	ErrorMessage         string                `json:"error_message,omitempty"`
	ProcessedAt          string                `json:"processed_at,omitempty"`
	Items                []TransactionItemDTO  `json:"items"`
	Delivery             *DeliveryResponse     `json:"delivery,omitempty"`
}

type TransactionItemDTO struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

type DeliveryResponse struct {
	TrackingNumber        string `json:"tracking_number"`
	Address               string `json:"address"`
	City                  string `json:"city"`
	Department            string `json:"department,omitempty"`
	EstimatedDeliveryDate string `json:"estimated_delivery_date"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func toCheckoutInput(req *CheckoutRequest) *paymentdto.CheckoutInput {
	items := make([]paymentdto.CartItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = paymentdto.CartItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	return &paymentdto.CheckoutInput{
		CustomerEmail:      req.Customer.Email,
		CustomerName:       req.Customer.FullName,
		CustomerPhone:      req.Customer.Phone,
		DeliveryAddress:    req.Delivery.Address,
		DeliveryCity:       req.Delivery.City,
		DeliveryDepartment: req.Delivery.Department,
		Items:              items,
		CardToken:          req.Payment.CardToken,
		Installments:       req.Payment.Installments,
	}
}

func toCheckoutResponse(output *paymentdto.CheckoutOutput) CheckoutResponse {
	return CheckoutResponse{
		TransactionID:        output.TransactionID,
		TransactionNumber:    output.TransactionNumber,
		Status:               output.Status,
		Subtotal:             output.Subtotal,
		BaseFee:              output.BaseFee,
		DeliveryFee:          output.DeliveryFee,
		Total:                output.Total,
		Currency:             output.Currency,
		GatewayTransactionID: output.GatewayTransactionID,
		GatewayStatus:        output.GatewayStatus,
		FailureReason:        output.FailureReason,
	}
}
