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

type DefaultCustomerRepository struct {
	DB *gorm.DB
}

func NewDefaultCustomerRepository(db *gorm.DB) *DefaultCustomerRepository {
	return &DefaultCustomerRepository{DB: db}
}

func (r *DefaultCustomerRepository) CreateCustomer(customer *domain.Customer) (string, error) {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}

	model := mappers.ToGORMCustomer(customer)
	if err := r.DB.Create(model).Error; err != nil {
		return "", fmt.Errorf("create customer: %w", err)
	}

	return model.ID, nil
}

func (r *DefaultCustomerRepository) GetCustomerByEmail(email string) (*domain.Customer, error) {
	var model models.CustomerModel
	if err := r.DB.First(&model, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}

	return mappers.ToDomainCustomer(&model), nil
}
