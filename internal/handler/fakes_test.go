package handler

import (
	"context"

	"vendorhub/internal/analytics"
	"vendorhub/internal/model"
	"vendorhub/internal/service"
	"vendorhub/internal/workflow"
)

type fakeAuth struct {
	register     func(ctx context.Context, email, password, name string) (*model.User, *model.Vendor, error)
	authenticate func(ctx context.Context, email, password string) (*model.User, *model.Vendor, error)
	*service.AuthService
}

func (f *fakeAuth) Register(ctx context.Context, email, password, name string) (*model.User, *model.Vendor, error) {
	return f.register(ctx, email, password, name)
}

func (f *fakeAuth) Authenticate(ctx context.Context, email, password string) (*model.User, *model.Vendor, error) {
	return f.authenticate(ctx, email, password)
}

type fakeOrders struct {
	list       func(ctx context.Context, vendorID string, filter workflow.StatusFilter, query string) (*service.OrderList, error)
	get        func(ctx context.Context, vendorID, id string) (*service.OrderDetail, error)
	transition func(ctx context.Context, vendorID, id string, target model.Status, actor string) (*service.OrderDetail, error)
}

func (f *fakeOrders) List(ctx context.Context, vendorID string, filter workflow.StatusFilter, query string) (*service.OrderList, error) {
	return f.list(ctx, vendorID, filter, query)
}

func (f *fakeOrders) Get(ctx context.Context, vendorID, id string) (*service.OrderDetail, error) {
	return f.get(ctx, vendorID, id)
}

func (f *fakeOrders) Transition(ctx context.Context, vendorID, id string, target model.Status, actor string) (*service.OrderDetail, error) {
	return f.transition(ctx, vendorID, id, target, actor)
}

type fakeMenu struct {
	list            func(ctx context.Context, vendorID, query, categoryID string) ([]model.MenuItem, error)
	create          func(ctx context.Context, vendorID string, in service.MenuInput) (*model.MenuItem, error)
	setAvailability func(ctx context.Context, vendorID, id string, available bool) error
	delete          func(ctx context.Context, vendorID, id string) error
}

func (f *fakeMenu) List(ctx context.Context, vendorID, query, categoryID string) ([]model.MenuItem, error) {
	return f.list(ctx, vendorID, query, categoryID)
}

func (f *fakeMenu) Get(context.Context, string, string) (*model.MenuItem, error) {
	return nil, service.ErrNotFound
}

func (f *fakeMenu) Create(ctx context.Context, vendorID string, in service.MenuInput) (*model.MenuItem, error) {
	return f.create(ctx, vendorID, in)
}

func (f *fakeMenu) Update(context.Context, string, string, service.MenuInput) (*model.MenuItem, error) {
	return nil, service.ErrNotFound
}

func (f *fakeMenu) SetAvailability(ctx context.Context, vendorID, id string, available bool) error {
	return f.setAvailability(ctx, vendorID, id, available)
}

func (f *fakeMenu) Delete(ctx context.Context, vendorID, id string) error {
	return f.delete(ctx, vendorID, id)
}

func (f *fakeMenu) Categories() []model.Category { return model.Categories }

type fakeProfile struct {
	uploadLogo func(ctx context.Context, vendorID, filename string, data []byte) (string, error)
}

func (f *fakeProfile) Get(_ context.Context, vendorID string) (*model.Vendor, error) {
	return &model.Vendor{ID: vendorID, Name: "Thai Delight"}, nil
}

func (f *fakeProfile) Update(context.Context, string, service.ProfileInput) (*model.Vendor, error) {
	return nil, &service.ValidationError{Fields: map[string]string{"name": "too short"}}
}

func (f *fakeProfile) UploadLogo(ctx context.Context, vendorID, filename string, data []byte) (string, error) {
	return f.uploadLogo(ctx, vendorID, filename, data)
}

type fakeSettings struct {
	update func(ctx context.Context, vendorID string, patch service.SettingsPatch) (*model.RestaurantSettings, error)
}

func (f *fakeSettings) GetSettings(_ context.Context, vendorID string) (*model.RestaurantSettings, error) {
	s := model.DefaultSettings(vendorID)
	return &s, nil
}

func (f *fakeSettings) UpdateSettings(ctx context.Context, vendorID string, patch service.SettingsPatch) (*model.RestaurantSettings, error) {
	return f.update(ctx, vendorID, patch)
}

func (f *fakeSettings) GetBankAccount(_ context.Context, vendorID string) (*model.BankAccount, error) {
	b := model.DefaultBankAccount(vendorID)
	return &b, nil
}

func (f *fakeSettings) UpdateBankAccount(_ context.Context, vendorID string, in service.BankAccountInput) (*model.BankAccount, error) {
	return &model.BankAccount{VendorID: vendorID, AccountName: in.AccountName}, nil
}

type fakeAnalytics struct {
	report func(ctx context.Context, vendorID string, tf analytics.Timeframe) (*analytics.Summary, error)
}

func (f *fakeAnalytics) Report(ctx context.Context, vendorID string, tf analytics.Timeframe) (*analytics.Summary, error) {
	return f.report(ctx, vendorID, tf)
}

func (f *fakeAnalytics) Dashboard(context.Context, string) (*analytics.Dashboard, error) {
	return &analytics.Dashboard{ActiveMenuItems: 3}, nil
}

type fakeNotifications struct {
	markRead func(ctx context.Context, vendorID, id string) error
}

func (f *fakeNotifications) List(context.Context, string) (*service.NotificationList, error) {
	return &service.NotificationList{Notifications: []model.Notification{}}, nil
}

func (f *fakeNotifications) MarkRead(ctx context.Context, vendorID, id string) error {
	return f.markRead(ctx, vendorID, id)
}

func (f *fakeNotifications) MarkAllRead(context.Context, string) error { return nil }
