package domain

type TransactionRepository interface {
	CreateTransaction(tx *Transaction) (string, error)
	GetTransactionByID(id string) (*Transaction, error)
	GetTransactionByNumber(transactionNumber string) (*Transaction, error)

	// SaveGatewayResult persists the gateway-driven fields of an already
	// mutated aggregate with a conditional update guarded on the stored
	// row still being PENDING. It reports whether this caller won the
	// transition: only the winner may run the approved-effect sequence.
	SaveGatewayResult(tx *Transaction) (claimed bool, err error)

	// FindPollableTransactions returns PENDING transactions that carry a
	// gateway transaction id. Transactions never acknowledged by the
	// gateway are not pollable.
	FindPollableTransactions() ([]*Transaction, error)
}

type ProductRepository interface {
	GetProductByID(productID string) (*Product, error)

	// ReduceStock atomically decrements stock with a floor check.
	// Returns ErrInsufficientStock without modifying the row when the
	// remaining stock is lower than quantity.
	ReduceStock(productID string, quantity int) error
}

type DeliveryRepository interface {
	CreateDelivery(delivery *Delivery) (string, error)

	// GetDeliveryByTransactionID returns ErrDeliveryNotFound when no
	// delivery exists for the transaction.
	GetDeliveryByTransactionID(transactionID string) (*Delivery, error)
}

type CustomerRepository interface {
	CreateCustomer(customer *Customer) (string, error)

	// GetCustomerByEmail returns ErrCustomerNotFound on a miss.
	GetCustomerByEmail(email string) (*Customer, error)
}
