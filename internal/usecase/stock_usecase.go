package usecase

import (
	"fmt"

	"github.com/pagora/payment-service/internal/domain"
	"github.com/pagora/payment-service/internal/infrastructure/metrics"
)

type StockUsecase interface {
	// CheckAvailability is the read-only pre-submit check. It does not
	// reserve stock: the later decrement in the approved-effect sequence
	// is a separate step.
	CheckAvailability(productID string, quantity int) (*domain.Product, error)

	// ReduceStock decrements stock for a sold product. The decrement is
	// atomic with a floor check; ErrInsufficientStock leaves the row
	// unchanged.
	ReduceStock(productID string, quantity int) error
}

type DefaultStockUsecase struct {
	ProductRepo domain.ProductRepository
	Metrics     *metrics.PaymentMetrics
}

func NewDefaultStockUsecase(productRepo domain.ProductRepository, paymentMetrics *metrics.PaymentMetrics) *DefaultStockUsecase {
	return &DefaultStockUsecase{
		ProductRepo: productRepo,
		Metrics:     paymentMetrics,
	}
}

func (uc *DefaultStockUsecase) CheckAvailability(productID string, quantity int) (*domain.Product, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := uc.ProductRepo.GetProductByID(productID)
	if err != nil {
		return nil, err
	}

	if product.Stock < quantity {
		return nil, fmt.Errorf("product %s: %w", productID, domain.ErrInsufficientStock)
	}

	return product, nil
}

func (uc *DefaultStockUsecase) ReduceStock(productID string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	if err := uc.ProductRepo.ReduceStock(productID, quantity); err != nil {
		return fmt.Errorf("reduce stock for product %s: %w", productID, err)
	}

	return nil
}
