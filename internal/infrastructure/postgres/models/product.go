package models

import "time"

type ProductModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	Name        string
	PriceAmount float64
	Currency    string
	Stock       int `gorm:"check:stock >= 0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CustomerModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	Email     string `gorm:"uniqueIndex"`
	FullName  string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
