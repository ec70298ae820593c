package usecase

import (
	"github.com/pagora/payment-service/internal/domain"
)

type TransactionQueryUsecase interface {
	GetTransactionByID(transactionID string) (*domain.Transaction, error)
	GetTransactionByNumber(transactionNumber string) (*domain.Transaction, error)
	GetDeliveryByTransactionID(transactionID string) (*domain.Delivery, error)
}

type DefaultTransactionQueryUsecase struct {
	TransactionRepo domain.TransactionRepository
	DeliveryRepo    domain.DeliveryRepository
}

func NewDefaultTransactionQueryUsecase(transactionRepo domain.TransactionRepository, deliveryRepo domain.DeliveryRepository) *DefaultTransactionQueryUsecase {
	return &DefaultTransactionQueryUsecase{
		TransactionRepo: transactionRepo,
		DeliveryRepo:    deliveryRepo,
	}
}

func (uc *DefaultTransactionQueryUsecase) GetTransactionByID(transactionID string) (*domain.Transaction, error) {
	return uc.TransactionRepo.GetTransactionByID(transactionID)
}

func (uc *DefaultTransactionQueryUsecase) GetTransactionByNumber(transactionNumber string) (*domain.Transaction, error) {
	return uc.TransactionRepo.GetTransactionByNumber(transactionNumber)
}

func (uc *DefaultTransactionQueryUsecase) GetDeliveryByTransactionID(transactionID string) (*domain.Delivery, error) {
	return uc.DeliveryRepo.GetDeliveryByTransactionID(transactionID)
}
