package domain

import "errors"

var (
	ErrNegativeAmount      = errors.New("amount cannot be negative")
	ErrMissingCurrency     = errors.New("currency is required")
	ErrCurrencyMismatch    = errors.New("currency mismatch")
	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
	ErrEmptyCart           = errors.New("cart must contain at least one item")
	ErrMissingCardToken    = errors.New("card token is required")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrProductNotFound     = errors.New("product not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDeliveryNotFound    = errors.New("delivery not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrGatewayUnavailable  = errors.New("payment gateway unavailable")
	ErrTransactionTerminal = errors.New("transaction already in terminal state")
)
