package mappers

import (
	"github.com/pagora/payment-service/internal/domain"
	"github.com/pagora/payment-service/internal/infrastructure/postgres/models"
)

func ToDomainDelivery(model *models.DeliveryModel) *domain.Delivery {
	return &domain.Delivery{
		ID:                    model.ID,
		TransactionID:         model.TransactionID,
		Address:               model.Address,
		City:                  model.City,
		Department:            model.Department,
		TrackingNumber:        model.TrackingNumber,
		EstimatedDeliveryDate: model.EstimatedDeliveryDate,
		CreatedAt:             model.CreatedAt,
		UpdatedAt:             model.UpdatedAt,
	}
}

func ToGORMDelivery(delivery *domain.Delivery) *models.DeliveryModel {
	return &models.DeliveryModel{
		ID:                    delivery.ID,
		TransactionID:         delivery.TransactionID,
		Address:               delivery.Address,
		City:                  delivery.City,
		Department:            delivery.Department,
		TrackingNumber:        delivery.TrackingNumber,
		EstimatedDeliveryDate: delivery.EstimatedDeliveryDate,
		CreatedAt:             delivery.CreatedAt,
		UpdatedAt:             delivery.UpdatedAt,
	}
}
