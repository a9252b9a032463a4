package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies catalog products.
type Category string

const (
	CategoryVeg    Category = "VEG"
	CategoryNonVeg Category = "NON_VEG"
)

// Product is a read-only catalog entry.
type Product struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	Category    Category
	Price       decimal.Decimal
	ListerID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
