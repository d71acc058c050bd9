package model

import "time"

// Vendor is the restaurant profile owned by a user.
type Vendor struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	OpeningTime string    `json:"opening_time"`
	ClosingTime string    `json:"closing_time"`
	CuisineType string    `json:"cuisine_type"`
	LogoURL     string    `json:"logo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
