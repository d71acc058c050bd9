package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vendorhub/internal/model"
)

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

const settingsColumns = `id, vendor_id, restaurant_status, auto_accept_orders, receive_order_notifications,
	receive_review_notifications, preparation_time_minutes, created_at, updated_at`

func scanSettings(row interface{ Scan(...any) error }) (*model.RestaurantSettings, error) {
	var s model.RestaurantSettings
	if err := row.Scan(&s.ID, &s.VendorID, &s.RestaurantOpen, &s.AutoAcceptOrders,
		&s.ReceiveOrderNotifications, &s.ReceiveReviewNotifications,
		&s.PreparationTimeMinutes, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepository) GetSettings(ctx context.Context, vendorID string) (*model.RestaurantSettings, error) {
	s, err := scanSettings(r.db.QueryRowContext(ctx,
		`SELECT `+settingsColumns+` FROM restaurant_settings WHERE vendor_id = $1`, vendorID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return s, nil
}

// CreateSettings inserts s, or returns the existing row when another
// request created it first.
func (r *SettingsRepository) CreateSettings(ctx context.Context, s model.RestaurantSettings) (*model.RestaurantSettings, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO restaurant_settings (vendor_id, restaurant_status, auto_accept_orders,
			receive_order_notifications, receive_review_notifications, preparation_time_minutes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (vendor_id) DO NOTHING`,
		s.VendorID, s.RestaurantOpen, s.AutoAcceptOrders,
		s.ReceiveOrderNotifications, s.ReceiveReviewNotifications, s.PreparationTimeMinutes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert settings: %w", err)
	}
	return r.GetSettings(ctx, s.VendorID)
}

func (r *SettingsRepository) UpdateSettings(ctx context.Context, s *model.RestaurantSettings) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE restaurant_settings SET restaurant_status = $1, auto_accept_orders = $2,
			receive_order_notifications = $3, receive_review_notifications = $4,
			preparation_time_minutes = $5, updated_at = NOW()
		WHERE vendor_id = $6
		RETURNING updated_at`,
		s.RestaurantOpen, s.AutoAcceptOrders, s.ReceiveOrderNotifications,
		s.ReceiveReviewNotifications, s.PreparationTimeMinutes, s.VendorID,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}

// ListAutoAcceptVendors returns vendors that are open and accept orders
// automatically.
func (r *SettingsRepository) ListAutoAcceptVendors(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT vendor_id FROM restaurant_settings
		WHERE auto_accept_orders AND restaurant_status
		ORDER BY vendor_id`)
	if err != nil {
		return nil, fmt.Errorf("query auto-accept vendors: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan vendor id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return ids, nil
}

const bankColumns = `id, vendor_id, account_name, account_number, bank_name, branch, created_at, updated_at`

func (r *SettingsRepository) GetBankAccount(ctx context.Context, vendorID string) (*model.BankAccount, error) {
	var b model.BankAccount
	err := r.db.QueryRowContext(ctx,
		`SELECT `+bankColumns+` FROM bank_accounts WHERE vendor_id = $1`, vendorID,
	).Scan(&b.ID, &b.VendorID, &b.AccountName, &b.AccountNumber, &b.BankName, &b.Branch, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get bank account: %w", err)
	}
	return &b, nil
}

func (r *SettingsRepository) CreateBankAccount(ctx context.Context, b model.BankAccount) (*model.BankAccount, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bank_accounts (vendor_id, account_name, account_number, bank_name, branch)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (vendor_id) DO NOTHING`,
		b.VendorID, b.AccountName, b.AccountNumber, b.BankName, b.Branch,
	)
	if err != nil {
		return nil, fmt.Errorf("insert bank account: %w", err)
	}
	return r.GetBankAccount(ctx, b.VendorID)
}

func (r *SettingsRepository) UpdateBankAccount(ctx context.Context, b *model.BankAccount) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE bank_accounts SET account_name = $1, account_number = $2, bank_name = $3,
			branch = $4, updated_at = NOW()
		WHERE vendor_id = $5
		RETURNING id, created_at, updated_at`,
		b.AccountName, b.AccountNumber, b.BankName, b.Branch, b.VendorID,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update bank account: %w", err)
	}
	return nil
}
