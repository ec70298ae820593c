package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pagora/payment-service/internal/domain"
	"github.com/pagora/payment-service/internal/infrastructure/postgres/mappers"
	"github.com/pagora/payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDeliveryRepository struct {
	DB *gorm.DB
}

func NewDefaultDeliveryRepository(db *gorm.DB) *DefaultDeliveryRepository {
	return &DefaultDeliveryRepository{DB: db}
}

// CreateDelivery relies on the unique index on transaction_id as the
// last line of defense: a concurrent duplicate creation fails here even
// if both writers passed the existence check.
func (r *DefaultDeliveryRepository) CreateDelivery(delivery *domain.Delivery) (string, error) {
	if delivery.ID == "" {
		delivery.ID = uuid.New().String()
	}

	model := mappers.ToGORMDelivery(delivery)
	if err := r.DB.Create(model).Error; err != nil {
		return "", fmt.Errorf("create delivery: %w", err)
	}

	return model.ID, nil
}

func (r *DefaultDeliveryRepository) GetDeliveryByTransactionID(transactionID string) (*domain.Delivery, error) {
	var model models.DeliveryModel
	if err := r.DB.First(&model, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDeliveryNotFound
		}
		return nil, err
	}

	return mappers.ToDomainDelivery(&model), nil
}
