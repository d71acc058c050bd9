package handler

import (
	"context"

	"vendorhub/internal/analytics"
	"vendorhub/internal/model"
	"vendorhub/internal/service"
	"vendorhub/internal/workflow"
)

// The interfaces below are implemented by the services in internal/service.

type AuthService interface {
	Register(ctx context.Context, email, password, restaurantName string) (*model.User, *model.Vendor, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, *model.Vendor, error)
	IssueToken(userID, vendorID string) (string, error)
}

type OrderService interface {
	List(ctx context.Context, vendorID string, filter workflow.StatusFilter, query string) (*service.OrderList, error)
	Get(ctx context.Context, vendorID, id string) (*service.OrderDetail, error)
	Transition(ctx context.Context, vendorID, id string, target model.Status, actor string) (*service.OrderDetail, error)
}

type MenuService interface {
	List(ctx context.Context, vendorID, query, categoryID string) ([]model.MenuItem, error)
	Get(ctx context.Context, vendorID, id string) (*model.MenuItem, error)
	Create(ctx context.Context, vendorID string, in service.MenuInput) (*model.MenuItem, error)
	Update(ctx context.Context, vendorID, id string, in service.MenuInput) (*model.MenuItem, error)
	SetAvailability(ctx context.Context, vendorID, id string, available bool) error
	Delete(ctx context.Context, vendorID, id string) error
	Categories() []model.Category
}

type ProfileService interface {
	Get(ctx context.Context, vendorID string) (*model.Vendor, error)
	Update(ctx context.Context, vendorID string, in service.ProfileInput) (*model.Vendor, error)
	UploadLogo(ctx context.Context, vendorID, filename string, data []byte) (string, error)
}

type SettingsService interface {
	GetSettings(ctx context.Context, vendorID string) (*model.RestaurantSettings, error)
	UpdateSettings(ctx context.Context, vendorID string, patch service.SettingsPatch) (*model.RestaurantSettings, error)
	GetBankAccount(ctx context.Context, vendorID string) (*model.BankAccount, error)
	UpdateBankAccount(ctx context.Context, vendorID string, in service.BankAccountInput) (*model.BankAccount, error)
}

type AnalyticsService interface {
	Report(ctx context.Context, vendorID string, tf analytics.Timeframe) (*analytics.Summary, error)
	Dashboard(ctx context.Context, vendorID string) (*analytics.Dashboard, error)
}

type NotificationService interface {
	List(ctx context.Context, vendorID string) (*service.NotificationList, error)
	MarkRead(ctx context.Context, vendorID, id string) error
	MarkAllRead(ctx context.Context, vendorID string) error
}
