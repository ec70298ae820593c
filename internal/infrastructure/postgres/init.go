package postgres

import (
	"log"

	"github.com/pagora/payment-service/internal/config"
	"github.com/pagora/payment-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.PaymentConfig) *gorm.DB {
	dsn := cfg.PaymentsDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(&models.ProductModel{}, &models.CustomerModel{}, &models.TransactionModel{}, &models.TransactionItemModel{}, &models.DeliveryModel{})

	return db
}
