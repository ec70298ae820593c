package payment

// CheckoutOutput is the structured checkout result. Gateway failures are
// reported here instead of as errors: FailureReason carries the gateway's
// message and Status reflects where the transaction was left.
type CheckoutOutput struct {
	TransactionID        string
	TransactionNumber    string
	Status               string
	Subtotal             float64
	BaseFee              float64
	DeliveryFee          float64
	Total                float64
	Currency             string
	GatewayTransactionID string
	GatewayStatus        string
	FailureReason        string
}
