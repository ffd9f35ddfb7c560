package shop

import "github.com/shopspring/decimal"

// InventoryProduct is a sellable item, sourced entirely from the commerce
// source. Read-only from this system's perspective.
type InventoryProduct struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Brand           string          `json:"brand"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price"`
	OriginalPrice   decimal.Decimal `json:"originalPrice,omitempty"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Stock           int             `json:"stock"`
	// Status is true when the product is published/active upstream.
	Status bool   `json:"status"`
	Img    string `json:"img"`
}

// Category is a commerce source product category.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}
