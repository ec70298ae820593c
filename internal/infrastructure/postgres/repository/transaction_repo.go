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

type DefaultTransactionRepository struct {
	DB *gorm.DB
}

func NewDefaultTransactionRepository(db *gorm.DB) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{DB: db}
}

func (r *DefaultTransactionRepository) CreateTransaction(tx *domain.Transaction) (string, error) {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	for i := range tx.Items {
		if tx.Items[i].ID == "" {
			tx.Items[i].ID = uuid.New().String()
		}
	}

	model := mappers.ToGORMTransaction(tx)
	if err := r.DB.Create(model).Error; err != nil {
		return "", fmt.Errorf("create transaction: %w", err)
	}

	return model.ID, nil
}

func (r *DefaultTransactionRepository) GetTransactionByID(id string) (*domain.Transaction, error) {
	var model models.TransactionModel
	if err := r.DB.Preload("Items").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	return mappers.ToDomainTransaction(&model), nil
}

func (r *DefaultTransactionRepository) GetTransactionByNumber(transactionNumber string) (*domain.Transaction, error) {
	var model models.TransactionModel
	if err := r.DB.Preload("Items").First(&model, "transaction_number = ?", transactionNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	return mappers.ToDomainTransaction(&model), nil
}

// SaveGatewayResult writes the gateway-driven fields behind a conditional
// update on the row still being PENDING. The affected-row count tells the
// caller whether it won the status transition; the loser's write never
// lands, so effects cannot run twice for the same transaction.
func (r *DefaultTransactionRepository) SaveGatewayResult(tx *domain.Transaction) (bool, error) {
	result := r.DB.Model(&models.TransactionModel{}).
		Where("id = ? AND status = ?", tx.ID, domain.StatusPending).
		Updates(map[string]interface{}{
			"status":                 tx.Status,
			"gateway_transaction_id": tx.GatewayTransactionID,
			"gateway_status":         tx.GatewayStatus,
			"error_message":          tx.ErrorMessage,
			"processed_at":           tx.ProcessedAt,
			"updated_at":             tx.UpdatedAt,
		})
	if result.Error != nil {
		return false, fmt.Errorf("save gateway result: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}

func (r *DefaultTransactionRepository) FindPollableTransactions() ([]*domain.Transaction, error) {
	var txModels []models.TransactionModel
	if err := r.DB.Preload("Items").
		Where("status = ?", domain.StatusPending).
		Where("gateway_transaction_id <> ''").
		Order("created_at ASC").
		Find(&txModels).Error; err != nil {
		return nil, fmt.Errorf("find pollable transactions: %w", err)
	}

	transactions := make([]*domain.Transaction, len(txModels))
	for i, model := range txModels {
		transactions[i] = mappers.ToDomainTransaction(&model)
	}

	return transactions, nil
}
