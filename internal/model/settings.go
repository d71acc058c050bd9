package model

import "time"

type RestaurantSettings struct {
	ID                         string    `json:"id"`
	VendorID                   string    `json:"vendor_id"`
	RestaurantOpen             bool      `json:"restaurant_status"`
	AutoAcceptOrders           bool      `json:"auto_accept_orders"`
	ReceiveOrderNotifications  bool      `json:"receive_order_notifications"`
	ReceiveReviewNotifications bool      `json:"receive_review_notifications"`
	PreparationTimeMinutes     int       `json:"preparation_time_minutes"`
	CreatedAt                  time.Time `json:"created_at"`
	UpdatedAt                  time.Time `json:"updated_at"`
}

// DefaultSettings is what a vendor gets on first access.
func DefaultSettings(vendorID string) RestaurantSettings {
	return RestaurantSettings{
		VendorID:                   vendorID,
		RestaurantOpen:             true,
		AutoAcceptOrders:           false,
		ReceiveOrderNotifications:  true,
		ReceiveReviewNotifications: true,
		PreparationTimeMinutes:     20,
	}
}

type BankAccount struct {
	ID            string    `json:"id"`
	VendorID      string    `json:"vendor_id"`
	AccountName   string    `json:"account_name"`
	AccountNumber string    `json:"account_number"`
	BankName      string    `json:"bank_name"`
	Branch        string    `json:"branch,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func DefaultBankAccount(vendorID string) BankAccount {
	return BankAccount{
		VendorID:      vendorID,
		AccountName:   "Tour Der Wang Co., Ltd.",
		AccountNumber: "1234567890",
		BankName:      "Bangkok Bank",
		Branch:        "Sukhumvit",
	}
}
