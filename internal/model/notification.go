package model

import "time"

type Notification struct {
	ID          string    `json:"id"`
	VendorID    string    `json:"vendor_id"`
	OrderID     string    `json:"order_id,omitempty"`
	Status      Status    `json:"status,omitempty"`
	Message     string    `json:"message"`
	Description string    `json:"description,omitempty"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}
