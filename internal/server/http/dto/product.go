package dto

import "time"

// ProductResponse is a catalog entry as returned to clients.
type ProductResponse struct {
	ID          string    `json:"id"`
	ProductName string    `json:"productName"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	ListerID    string    `json:"listerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductsResponse wraps the catalog listing.
type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
}
