package mappers

import (
	"github.com/pagora/payment-service/internal/domain"
	"github.com/pagora/payment-service/internal/infrastructure/postgres/models"
)

func ToDomainProduct(model *models.ProductModel) *domain.Product {
	return &domain.Product{
		ID:        model.ID,
		Name:      model.Name,
		Price:     domain.Money{Amount: model.PriceAmount, Currency: model.Currency},
		Stock:     model.Stock,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToDomainCustomer(model *models.CustomerModel) *domain.Customer {
	return &domain.Customer{
		ID:        model.ID,
		Email:     model.Email,
		FullName:  model.FullName,
		Phone:     model.Phone,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToGORMCustomer(customer *domain.Customer) *models.CustomerModel {
	return &models.CustomerModel{
		ID:        customer.ID,
		Email:     customer.Email,
		FullName:  customer.FullName,
		Phone:     customer.Phone,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}
