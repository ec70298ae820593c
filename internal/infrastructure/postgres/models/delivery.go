package models

import "time"

type DeliveryModel struct {
	ID                    string `gorm:"primaryKey;type:uuid"`
	TransactionID         string `gorm:"type:uuid;uniqueIndex"`
	Address               string
	City                  string
	Department            string
	TrackingNumber        string `gorm:"uniqueIndex"`
	EstimatedDeliveryDate time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
