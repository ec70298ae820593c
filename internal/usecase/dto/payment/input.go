package payment

type CartItemInput struct {
	ProductID string
	Quantity  int
}

type CheckoutInput struct {
	CustomerEmail      string
	CustomerName       string
	CustomerPhone      string
	DeliveryAddress    string
	DeliveryCity       string
	DeliveryDepartment string
	Items              []CartItemInput
	CardToken          string
	Installments       int
}
