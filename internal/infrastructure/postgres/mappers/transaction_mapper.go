package mappers

import (
	"github.com/pagora/payment-service/internal/domain"
	"github.com/pagora/payment-service/internal/infrastructure/postgres/models"
)

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	items := make([]domain.TransactionItem, len(model.Items))
	for i, item := range model.Items {
		items[i] = domain.TransactionItem{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			UnitPrice:    domain.Money{Amount: item.UnitPriceAmount, Currency: item.Currency},
			LineSubtotal: domain.Money{Amount: item.LineSubtotalAmount, Currency: item.Currency},
			CreatedAt:    item.CreatedAt,
		}
	}

	return &domain.Transaction{
		ID:                   model.ID,
		TransactionNumber:    model.TransactionNumber,
		Status:               model.Status,
		CustomerID:           model.CustomerID,
		Subtotal:             domain.Money{Amount: model.SubtotalAmount, Currency: model.Currency},
		BaseFee:              domain.Money{Amount: model.BaseFeeAmount, Currency: model.Currency},
		DeliveryFee:          domain.Money{Amount: model.DeliveryFeeAmount, Currency: model.Currency},
		Total:                domain.Money{Amount: model.TotalAmount, Currency: model.Currency},
		Items:                items,
		GatewayTransactionID: model.GatewayTransactionID,
		GatewayStatus:        model.GatewayStatus,
		ErrorMessage:         model.ErrorMessage,
		ProcessedAt:          model.ProcessedAt,
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
	}
}

func ToGORMTransaction(tx *domain.Transaction) *models.TransactionModel {
	items := make([]models.TransactionItemModel, len(tx.Items))
	for i, item := range tx.Items {
		items[i] = models.TransactionItemModel{
			ID:                 item.ID,
			TransactionID:      tx.ID,
			ProductID:          item.ProductID,
			ProductName:        item.ProductName,
			Quantity:           item.Quantity,
			UnitPriceAmount:    item.UnitPrice.Amount,
			LineSubtotalAmount: item.LineSubtotal.Amount,
			Currency:           item.UnitPrice.Currency,
			CreatedAt:          item.CreatedAt,
		}
	}

	return &models.TransactionModel{
		ID:                   tx.ID,
		TransactionNumber:    tx.TransactionNumber,
		Status:               tx.Status,
		CustomerID:           tx.CustomerID,
		SubtotalAmount:       tx.Subtotal.Amount,
		BaseFeeAmount:        tx.BaseFee.Amount,
		DeliveryFeeAmount:    tx.DeliveryFee.Amount,
		TotalAmount:          tx.Total.Amount,
		Currency:             tx.Total.Currency,
		GatewayTransactionID: tx.GatewayTransactionID,
		GatewayStatus:        tx.GatewayStatus,
		ErrorMessage:         tx.ErrorMessage,
		ProcessedAt:          tx.ProcessedAt,
		CreatedAt:            tx.CreatedAt,
		UpdatedAt:            tx.UpdatedAt,
		Items:                items,
	}
}
