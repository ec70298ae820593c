package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/pagora/payment-service/internal/domain"
	"github.com/pagora/payment-service/internal/infrastructure/postgres/mappers"
	"github.com/pagora/payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultProductRepository struct {
	DB *gorm.DB
}

func NewDefaultProductRepository(db *gorm.DB) *DefaultProductRepository {
	return &DefaultProductRepository{DB: db}
}

func (r *DefaultProductRepository) GetProductByID(productID string) (*domain.Product, error) {
	var model models.ProductModel
	if err := r.DB.First(&model, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	return mappers.ToDomainProduct(&model), nil
}

// ReduceStock decrements in a single statement with the floor check in
// the WHERE clause, so concurrent decrements of the last units cannot
// drive stock negative.
func (r *DefaultProductRepository) ReduceStock(productID string, quantity int) error {
	result := r.DB.Model(&models.ProductModel{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("reduce stock: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var model models.ProductModel
		if err := r.DB.First(&model, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProductNotFound
			}
			return err
		}
		return domain.ErrInsufficientStock
	}

	return nil
}
