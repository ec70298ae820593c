package domain

import "time"

type Product struct {
	ID        string
	Name      string
	Price     Money
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Customer struct {
	ID        string
	Email     string
	FullName  string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
