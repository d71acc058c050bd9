package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var Categories = []Category{
	{ID: "appetizers", Name: "Appetizers"},
	{ID: "main-dishes", Name: "Main Dishes"},
	{ID: "curries", Name: "Curries"},
	{ID: "noodles", Name: "Noodles"},
	{ID: "desserts", Name: "Desserts"},
	{ID: "beverages", Name: "Beverages"},
}

// CategoryName returns the display name for id, or "" if unknown.
func CategoryName(id string) string {
	for _, c := range Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

type MenuItem struct {
	ID          string          `json:"id"`
	VendorID    string          `json:"vendor_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	CategoryID  string          `json:"category_id"`
	Category    string          `json:"category"`
	Available   bool            `json:"available"`
	CreatedAt   time.Time       `json:"created_at"`
}
