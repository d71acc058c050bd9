package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vendorhub/internal/model"
	"vendorhub/internal/repository"
)

const (
	minPreparationTime = 5
	maxPreparationTime = 60
)

// SettingsPatch changes only the fields that are set.
type SettingsPatch struct {
	RestaurantOpen             *bool `json:"restaurant_status,omitempty"`
	AutoAcceptOrders           *bool `json:"auto_accept_orders,omitempty"`
	ReceiveOrderNotifications  *bool `json:"receive_order_notifications,omitempty"`
	ReceiveReviewNotifications *bool `json:"receive_review_notifications,omitempty"`
	PreparationTimeMinutes     *int  `json:"preparation_time_minutes,omitempty"`
}

func (p SettingsPatch) apply(s *model.RestaurantSettings) {
	if p.RestaurantOpen != nil {
		s.RestaurantOpen = *p.RestaurantOpen
	}
	if p.AutoAcceptOrders != nil {
		s.AutoAcceptOrders = *p.AutoAcceptOrders
	}
	if p.ReceiveOrderNotifications != nil {
		s.ReceiveOrderNotifications = *p.ReceiveOrderNotifications
	}
	if p.ReceiveReviewNotifications != nil {
		s.ReceiveReviewNotifications = *p.ReceiveReviewNotifications
	}
	if p.PreparationTimeMinutes != nil {
		s.PreparationTimeMinutes = *p.PreparationTimeMinutes
	}
}

type BankAccountInput struct {
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	Branch        string `json:"branch"`
}

func (in BankAccountInput) validate() error {
	var v validator
	v.minLen("account_name", in.AccountName, 2, "Account name must be at least 2 characters.")
	v.minLen("account_number", in.AccountNumber, 10, "Account number must be at least 10 digits.")
	v.minLen("bank_name", in.BankName, 2, "Bank name must be at least 2 characters.")
	return v.err()
}

type SettingsService struct {
	settings SettingsStore
}

func NewSettingsService(settings SettingsStore) *SettingsService {
	return &SettingsService{settings: settings}
}

// GetSettings returns the vendor's settings, creating the defaults on first
// access.
func (s *SettingsService) GetSettings(ctx context.Context, vendorID string) (*model.RestaurantSettings, error) {
	st, err := s.settings.GetSettings(ctx, vendorID)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	st, err = s.settings.CreateSettings(ctx, model.DefaultSettings(vendorID))
	if err != nil {
		return nil, fmt.Errorf("create default settings: %w", err)
	}
	return st, nil
}

func (s *SettingsService) UpdateSettings(ctx context.Context, vendorID string, patch SettingsPatch) (*model.RestaurantSettings, error) {
	if p := patch.PreparationTimeMinutes; p != nil && (*p < minPreparationTime || *p > maxPreparationTime) {
		return nil, &ValidationError{Fields: map[string]string{
			"preparation_time_minutes": fmt.Sprintf("Preparation time must be between %d and %d minutes.", minPreparationTime, maxPreparationTime),
		}}
	}

	st, err := s.GetSettings(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	patch.apply(st)

	if err := s.settings.UpdateSettings(ctx, st); err != nil {
		return nil, storeErr("update settings", err)
	}
	return st, nil
}

// AutoAcceptVendors lists the open vendors that accept new orders
// automatically.
func (s *SettingsService) AutoAcceptVendors(ctx context.Context) ([]string, error) {
	ids, err := s.settings.ListAutoAcceptVendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list auto-accept vendors: %w", err)
	}
	return ids, nil
}

func (s *SettingsService) GetBankAccount(ctx context.Context, vendorID string) (*model.BankAccount, error) {
	b, err := s.settings.GetBankAccount(ctx, vendorID)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("get bank account: %w", err)
	}

	b, err = s.settings.CreateBankAccount(ctx, model.DefaultBankAccount(vendorID))
	if err != nil {
		return nil, fmt.Errorf("create default bank account: %w", err)
	}
	return b, nil
}

func (s *SettingsService) UpdateBankAccount(ctx context.Context, vendorID string, in BankAccountInput) (*model.BankAccount, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	b, err := s.GetBankAccount(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	b.AccountName = strings.TrimSpace(in.AccountName)
	b.AccountNumber = strings.TrimSpace(in.AccountNumber)
	b.BankName = strings.TrimSpace(in.BankName)
	b.Branch = strings.TrimSpace(in.Branch)

	if err := s.settings.UpdateBankAccount(ctx, b); err != nil {
		return nil, storeErr("update bank account", err)
	}
	return b, nil
}
