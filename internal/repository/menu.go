package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vendorhub/internal/model"
)

type MenuRepository struct {
	db *sql.DB
}

func NewMenuRepository(db *sql.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

const menuColumns = `id, vendor_id, name, description, price, image_url, category_id, available, created_at`

func scanMenuItem(row interface{ Scan(...any) error }) (*model.MenuItem, error) {
	var m model.MenuItem
	if err := row.Scan(&m.ID, &m.VendorID, &m.Name, &m.Description, &m.Price,
		&m.ImageURL, &m.CategoryID, &m.Available, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Category = model.CategoryName(m.CategoryID)
	return &m, nil
}

// List returns the vendor's menu in creation order.
func (r *MenuRepository) List(ctx context.Context, vendorID string) ([]model.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE vendor_id = $1 ORDER BY created_at, name`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("query menu: %w", err)
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, *m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return items, nil
}

func (r *MenuRepository) Get(ctx context.Context, vendorID, id string) (*model.MenuItem, error) {
	m, err := scanMenuItem(r.db.QueryRowContext(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE vendor_id = $1 AND id = $2`, vendorID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return m, nil
}

func (r *MenuRepository) Create(ctx context.Context, m *model.MenuItem) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO menu_items (id, vendor_id, name, description, price, image_url, category_id, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		m.ID, m.VendorID, m.Name, m.Description, m.Price, m.ImageURL, m.CategoryID, m.Available,
	).Scan(&m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert menu item: %w", err)
	}
	return nil
}

func (r *MenuRepository) Update(ctx context.Context, m *model.MenuItem) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE menu_items SET name = $1, description = $2, price = $3, image_url = $4, category_id = $5
		WHERE vendor_id = $6 AND id = $7`,
		m.Name, m.Description, m.Price, m.ImageURL, m.CategoryID, m.VendorID, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	return expectOne(res)
}

func (r *MenuRepository) SetAvailability(ctx context.Context, vendorID, id string, available bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE menu_items SET available = $1 WHERE vendor_id = $2 AND id = $3`, available, vendorID, id)
	if err != nil {
		return fmt.Errorf("update availability: %w", err)
	}
	return expectOne(res)
}

func (r *MenuRepository) Delete(ctx context.Context, vendorID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE vendor_id = $1 AND id = $2`, vendorID, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return expectOne(res)
}

func (r *MenuRepository) CountAvailable(ctx context.Context, vendorID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM menu_items WHERE vendor_id = $1 AND available`, vendorID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count menu items: %w", err)
	}
	return n, nil
}
