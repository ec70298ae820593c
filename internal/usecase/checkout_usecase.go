package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pagora/payment-service/internal/domain"
	"github.com/pagora/payment-service/internal/infrastructure/metrics"
	paymentdto "github.com/pagora/payment-service/internal/usecase/dto/payment"
)

type CheckoutUsecase interface {
	// Checkout prices the cart, creates the PENDING transaction and
	// submits it to the gateway. Validation failures return an error;
	// gateway failures return a structured result instead.
	Checkout(ctx context.Context, input *paymentdto.CheckoutInput) (*paymentdto.CheckoutOutput, error)
}

type DefaultCheckoutUsecase struct {
	TransactionRepo domain.TransactionRepository
	CustomerRepo    domain.CustomerRepository
	StockUsecase    StockUsecase
	Reconciler      ReconcileUsecase
	Gateway         domain.PaymentGateway
	Metrics         *metrics.PaymentMetrics
}

func NewDefaultCheckoutUsecase(
	transactionRepo domain.TransactionRepository,
	customerRepo domain.CustomerRepository,
	stockUsecase StockUsecase,
	reconciler ReconcileUsecase,
	gateway domain.PaymentGateway,
	paymentMetrics *metrics.PaymentMetrics) *DefaultCheckoutUsecase {

	return &DefaultCheckoutUsecase{
		TransactionRepo: transactionRepo,
		CustomerRepo:    customerRepo,
		StockUsecase:    stockUsecase,
		Reconciler:      reconciler,
		Gateway:         gateway,
		Metrics:         paymentMetrics,
	}
}

func (uc *DefaultCheckoutUsecase) Checkout(ctx context.Context, input *paymentdto.CheckoutInput) (*paymentdto.CheckoutOutput, error) {
	if len(input.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if input.CardToken == "" {
		return nil, domain.ErrMissingCardToken
	}

	items, subtotal, err := uc.priceCart(input.Items)
	if err != nil {
		return nil, err
	}

	baseFee := domain.GetBaseFee()
	deliveryFee := domain.GetDeliveryFee(input.DeliveryCity)

	total, err := subtotal.Add(baseFee)
	if err != nil {
		return nil, err
	}
	total, err = total.Add(deliveryFee)
	if err != nil {
		return nil, err
	}

	customer, err := uc.findOrCreateCustomer(input)
	if err != nil {
		return nil, fmt.Errorf("resolve customer: %w", err)
	}

	now := time.Now()
	tx := &domain.Transaction{
		TransactionNumber: domain.NewTransactionNumber(),
		Status:            domain.StatusPending,
		CustomerID:        customer.ID,
		Subtotal:          subtotal,
		BaseFee:           baseFee,
		DeliveryFee:       deliveryFee,
		Total:             total,
		Items:             items,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	txID, err := uc.TransactionRepo.CreateTransaction(tx)
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	tx.ID = txID

	uc.Metrics.RecordTransactionCreated(total.Currency)
	slog.Info("transaction created",
		"transaction_number", tx.TransactionNumber,
		"customer_id", customer.ID,
		"total", total.Amount,
		"currency", total.Currency)

	return uc.submitPayment(ctx, tx, customer, input)
}

// submitPayment sends the priced transaction to the gateway and applies
// the immediate acknowledgment through the shared reconciliation path.
func (uc *DefaultCheckoutUsecase) submitPayment(ctx context.Context, tx *domain.Transaction, customer *domain.Customer, input *paymentdto.CheckoutInput) (*paymentdto.CheckoutOutput, error) {
	start := time.Now()
	ack, err := uc.Gateway.Submit(ctx, domain.PaymentRequest{
		Amount:        tx.Total,
		Reference:     tx.TransactionNumber,
		CustomerEmail: customer.Email,
		CardToken:     input.CardToken,
		Installments:  input.Installments,
	})
	uc.Metrics.RecordGatewayRequest("submit", time.Since(start).Seconds(), err != nil)

	if err != nil {
		return uc.handleSubmitFailure(tx, err)
	}

	var shipping *domain.ShippingDetails
	if input.DeliveryAddress != "" || input.DeliveryCity != "" {
		shipping = &domain.ShippingDetails{
			Address:    input.DeliveryAddress,
			City:       input.DeliveryCity,
			Department: input.DeliveryDepartment,
		}
	}

	if _, err := uc.Reconciler.ApplyGatewayResult(ctx, tx, ack, SourceCheckout, shipping); err != nil {
		return nil, err
	}

	return buildCheckoutOutput(tx, ""), nil
}

// handleSubmitFailure distinguishes an unreachable gateway, where the
// payment may have been created remotely despite the local failure, from
// a definitive rejection. The former leaves the transaction PENDING for
// the reconciliation paths; the latter ends it in ERROR.
func (uc *DefaultCheckoutUsecase) handleSubmitFailure(tx *domain.Transaction, submitErr error) (*paymentdto.CheckoutOutput, error) {
	if errors.Is(submitErr, domain.ErrGatewayUnavailable) {
		slog.Warn("gateway unreachable on submit, leaving transaction pending",
			"transaction_number", tx.TransactionNumber, "error", submitErr.Error())
		return buildCheckoutOutput(tx, submitErr.Error()), nil
	}

	tx.SetError(submitErr.Error())
	if _, err := uc.TransactionRepo.SaveGatewayResult(tx); err != nil {
		slog.Error("failed to persist submit rejection",
			"transaction_number", tx.TransactionNumber, "error", err.Error())
	}
	uc.Metrics.RecordErrored(SourceCheckout)

	return buildCheckoutOutput(tx, submitErr.Error()), nil
}

func (uc *DefaultCheckoutUsecase) priceCart(inputs []paymentdto.CartItemInput) ([]domain.TransactionItem, domain.Money, error) {
	var subtotal domain.Money
	items := make([]domain.TransactionItem, 0, len(inputs))
	now := time.Now()

	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, domain.Money{}, fmt.Errorf("product %s: %w", in.ProductID, domain.ErrInvalidQuantity)
		}

		product, err := uc.StockUsecase.CheckAvailability(in.ProductID, in.Quantity)
		if err != nil {
			return nil, domain.Money{}, err
		}

		lineSubtotal, err := product.Price.Multiply(float64(in.Quantity))
		if err != nil {
			return nil, domain.Money{}, err
		}

		if subtotal.IsZero() && subtotal.Currency == "" {
			subtotal = domain.Money{Currency: lineSubtotal.Currency}
		}
		subtotal, err = subtotal.Add(lineSubtotal)
		if err != nil {
			return nil, domain.Money{}, err
		}

		items = append(items, domain.TransactionItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			Quantity:     in.Quantity,
			UnitPrice:    product.Price,
			LineSubtotal: lineSubtotal,
			CreatedAt:    now,
		})
	}

	return items, subtotal, nil
}

// findOrCreateCustomer is an idempotent upsert-by-email.
func (uc *DefaultCheckoutUsecase) findOrCreateCustomer(input *paymentdto.CheckoutInput) (*domain.Customer, error) {
	customer, err := uc.CustomerRepo.GetCustomerByEmail(input.CustomerEmail)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		return nil, err
	}

	now := time.Now()
	customer = &domain.Customer{
		Email:     input.CustomerEmail,
		FullName:  input.CustomerName,
		Phone:     input.CustomerPhone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := uc.CustomerRepo.CreateCustomer(customer)
	if err != nil {
		return nil, err
	}
	customer.ID = id

	return customer, nil
}

func buildCheckoutOutput(tx *domain.Transaction, failureReason string) *paymentdto.CheckoutOutput {
	return &paymentdto.CheckoutOutput{
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
		FailureReason:        failureReason,
	}
}
