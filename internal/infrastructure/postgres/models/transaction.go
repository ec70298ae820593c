package models

import (
	"time"

	"github.com/pagora/payment-service/internal/domain"
)

type TransactionModel struct {
	ID                   string                   `gorm:"primaryKey;type:uuid"`
	TransactionNumber    string                   `gorm:"uniqueIndex"`
	Status               domain.TransactionStatus `gorm:"index:idx_status_gateway"`
	CustomerID           string                   `gorm:"type:uuid;index"`
	SubtotalAmount       float64
	BaseFeeAmount        float64
	DeliveryFeeAmount    float64
	TotalAmount          float64
	Currency             string
	GatewayTransactionID string `gorm:"index:idx_status_gateway"`
	GatewayStatus        string
	ErrorMessage         string
	ProcessedAt          *time.Time
	CreatedAt            time.Time `gorm:"index:idx_created_at"`
	UpdatedAt            time.Time
	Items                []TransactionItemModel `gorm:"foreignKey:TransactionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type TransactionItemModel struct {
	ID                 string `gorm:"primaryKey;type:uuid"`
	TransactionID      string `gorm:"type:uuid;index"`
	ProductID          string `gorm:"type:uuid"`
	ProductName        string
	Quantity           int
	UnitPriceAmount    float64
	LineSubtotalAmount float64
	Currency           string
	CreatedAt          time.Time
}
