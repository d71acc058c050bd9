package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vendorhub/internal/model"
)

type VendorRepository struct {
	db *sql.DB
}

func NewVendorRepository(db *sql.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

const vendorColumns = `id, user_id, name, description, phone_number, email, address,
	opening_time, closing_time, cuisine_type, logo_url, created_at`

func scanVendor(row interface{ Scan(...any) error }) (*model.Vendor, error) {
	var v model.Vendor
	err := row.Scan(&v.ID, &v.UserID, &v.Name, &v.Description, &v.PhoneNumber, &v.Email,
		&v.Address, &v.OpeningTime, &v.ClosingTime, &v.CuisineType, &v.LogoURL, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VendorRepository) GetByID(ctx context.Context, id string) (*model.Vendor, error) {
	v, err := scanVendor(r.db.QueryRowContext(ctx,
		`SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return v, nil
}

func (r *VendorRepository) GetByUserID(ctx context.Context, userID string) (*model.Vendor, error) {
	v, err := scanVendor(r.db.QueryRowContext(ctx,
		`SELECT `+vendorColumns+` FROM vendors WHERE user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return v, nil
}

func (r *VendorRepository) GetByEmail(ctx context.Context, email string) (*model.Vendor, error) {
	v, err := scanVendor(r.db.QueryRowContext(ctx, `
		SELECT `+vendorColumns+` FROM vendors
		WHERE user_id = (SELECT id FROM users WHERE email = $1)`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return v, nil
}

// Update writes the editable profile fields. LogoURL is handled by
// UpdateLogo.
func (r *VendorRepository) Update(ctx context.Context, v *model.Vendor) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vendors SET name = $1, description = $2, phone_number = $3, email = $4,
			address = $5, opening_time = $6, closing_time = $7, cuisine_type = $8
		WHERE id = $9`,
		v.Name, v.Description, v.PhoneNumber, v.Email, v.Address,
		v.OpeningTime, v.ClosingTime, v.CuisineType, v.ID,
	)
	if err != nil {
		return fmt.Errorf("update vendor: %w", err)
	}
	return expectOne(res)
}

func (r *VendorRepository) UpdateLogo(ctx context.Context, vendorID, logoURL string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE vendors SET logo_url = $1 WHERE id = $2`, logoURL, vendorID)
	if err != nil {
		return fmt.Errorf("update logo: %w", err)
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
