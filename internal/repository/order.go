package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"vendorhub/internal/model"
)

// OrderRepository is the order store. Orders are written by an external
// ordering system; here they are read and their status is advanced.
type OrderRepository struct {
	db    *sql.DB
	types *pgtype.Map
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db, types: pgtype.NewMap()}
}

const orderColumns = `id, vendor_id, customer_name, customer_phone, customer_address,
	delivery_fee, total, status, notes, created_at`

// ListByVendor returns all orders of a vendor, newest first.
func (r *OrderRepository) ListByVendor(ctx context.Context, vendorID string) ([]model.Order, error) {
	return r.query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE vendor_id = $1
		ORDER BY created_at DESC`, vendorID)
}

// ListSince returns orders created at or after since, newest first.
func (r *OrderRepository) ListSince(ctx context.Context, vendorID string, since time.Time) ([]model.Order, error) {
	return r.query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE vendor_id = $1 AND created_at >= $2
		ORDER BY created_at DESC`, vendorID, since)
}

// ListByStatus returns the oldest orders in status first.
func (r *OrderRepository) ListByStatus(ctx context.Context, vendorID string, status model.Status, limit int) ([]model.Order, error) {
	return r.query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE vendor_id = $1 AND status = $2
		ORDER BY created_at ASC
		LIMIT $3`, vendorID, string(status), limit)
}

func (r *OrderRepository) Get(ctx context.Context, vendorID, id string) (*model.Order, error) {
	orders, err := r.query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE vendor_id = $1 AND id = $2`, vendorID, id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNotFound
	}
	return &orders[0], nil
}

// UpdateStatus moves the order from one status to another. The write only
// applies while the stored status still equals from; otherwise
// ErrStatusConflict is returned and nothing changes.
func (r *OrderRepository) UpdateStatus(ctx context.Context, vendorID, id string, from, to model.Status, changedBy string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE vendor_id = $2 AND id = $3 AND status = $4`,
		string(to), vendorID, id, string(from),
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		var exists bool
		err = tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM orders WHERE vendor_id = $1 AND id = $2)`, vendorID, id,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check order: %w", err)
		}
		if !exists {
			return ErrNotFound
		}
		return ErrStatusConflict
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_status_log (vendor_id, order_id, from_status, to_status, changed_by)
		VALUES ($1, $2, $3, $4, $5)`,
		vendorID, id, string(from), string(to), changedBy,
	)
	if err != nil {
		return fmt.Errorf("insert status log: %w", err)
	}

	return tx.Commit()
}

// Insert stores a complete order with its items. Used by the seed tool.
func (r *OrderRepository) Insert(ctx context.Context, o *model.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	createdAt := o.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, vendor_id, customer_name, customer_phone, customer_address,
			delivery_fee, total, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		o.ID, o.VendorID, o.CustomerName, o.CustomerPhone, o.CustomerAddress,
		o.DeliveryFee, o.Total, string(o.Status), o.Notes, createdAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for i, it := range o.Items {
		options := it.Options
		if options == nil {
			options = []string{}
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (vendor_id, order_id, position, name, quantity, price, options)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			o.VendorID, o.ID, i, it.Name, it.Quantity, it.Price, options,
		)
		if err != nil {
			return fmt.Errorf("insert order item %s: %w", it.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	o.CreatedAt = createdAt
	return nil
}

func (r *OrderRepository) query(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.VendorID, &o.CustomerName, &o.CustomerPhone, &o.CustomerAddress,
			&o.DeliveryFee, &o.Total, &o.Status, &o.Notes, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	// Order ids are only unique per vendor.
	type orderKey struct{ vendorID, id string }
	vendorIDs := make([]string, len(orders))
	ids := make([]string, len(orders))
	index := make(map[orderKey]int, len(orders))
	for i, o := range orders {
		vendorIDs[i] = o.VendorID
		ids[i] = o.ID
		index[orderKey{o.VendorID, o.ID}] = i
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT vendor_id, order_id, name, quantity, price, options
		FROM order_items
		WHERE (vendor_id, order_id) IN (SELECT * FROM unnest($1::uuid[], $2::text[]))
		ORDER BY vendor_id, order_id, position`, vendorIDs, ids)
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key orderKey
			it  model.OrderItem
		)
		if err := rows.Scan(&key.vendorID, &key.id, &it.Name, &it.Quantity, &it.Price, r.types.SQLScanner(&it.Options)); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if i, ok := index[key]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration failed: %w", err)
	}
	return nil
}

