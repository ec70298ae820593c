package kafka

type PaymentEvent struct {
	TransactionID     string  `json:"transaction_id"`
	TransactionNumber string  `json:"transaction_number"`
	Status            string  `json:"status"`
	GatewayStatus     string  `json:"gateway_status"`
	Amount            float64 `json:"amount"`
	Currency          string  `json:"currency"`
	CustomerID        string  `json:"customer_id"`
	Source            string  `json:"source"`
}
