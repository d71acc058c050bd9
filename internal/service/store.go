package service

import (
	"context"
	"time"

	"vendorhub/internal/model"
)

// The store interfaces below are satisfied by the postgres repositories in
// internal/repository.

type UserStore interface {
	CreateWithVendor(ctx context.Context, u *model.User, v *model.Vendor) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type VendorStore interface {
	GetByID(ctx context.Context, id string) (*model.Vendor, error)
	GetByUserID(ctx context.Context, userID string) (*model.Vendor, error)
	Update(ctx context.Context, v *model.Vendor) error
	UpdateLogo(ctx context.Context, vendorID, logoURL string) error
}

type OrderStore interface {
	ListByVendor(ctx context.Context, vendorID string) ([]model.Order, error)
	ListSince(ctx context.Context, vendorID string, since time.Time) ([]model.Order, error)
	ListByStatus(ctx context.Context, vendorID string, status model.Status, limit int) ([]model.Order, error)
	Get(ctx context.Context, vendorID, id string) (*model.Order, error)
	UpdateStatus(ctx context.Context, vendorID, id string, from, to model.Status, changedBy string) error
}

type MenuStore interface {
	List(ctx context.Context, vendorID string) ([]model.MenuItem, error)
	Get(ctx context.Context, vendorID, id string) (*model.MenuItem, error)
	Create(ctx context.Context, m *model.MenuItem) error
	Update(ctx context.Context, m *model.MenuItem) error
	SetAvailability(ctx context.Context, vendorID, id string, available bool) error
	Delete(ctx context.Context, vendorID, id string) error
	CountAvailable(ctx context.Context, vendorID string) (int, error)
}

type SettingsStore interface {
	GetSettings(ctx context.Context, vendorID string) (*model.RestaurantSettings, error)
	CreateSettings(ctx context.Context, s model.RestaurantSettings) (*model.RestaurantSettings, error)
	UpdateSettings(ctx context.Context, s *model.RestaurantSettings) error
	ListAutoAcceptVendors(ctx context.Context) ([]string, error)
	GetBankAccount(ctx context.Context, vendorID string) (*model.BankAccount, error)
	CreateBankAccount(ctx context.Context, b model.BankAccount) (*model.BankAccount, error)
	UpdateBankAccount(ctx context.Context, b *model.BankAccount) error
}

type AssetStore interface {
	Put(path, contentType string, data []byte) error
}
