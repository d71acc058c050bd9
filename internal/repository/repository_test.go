package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorhub/internal/database"
	"vendorhub/internal/model"
)

// Integration tests run against a disposable Postgres pointed to by
// VENDORHUB_TEST_DATABASE_URI and are skipped otherwise.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	uri := os.Getenv("VENDORHUB_TEST_DATABASE_URI")
	if uri == "" {
		t.Skip("VENDORHUB_TEST_DATABASE_URI not set")
	}
	ctx := context.Background()
	db, err := database.NewDB(ctx, uri)
	require.NoError(t, err)
	require.NoError(t, database.InitSchema(ctx, db))
	t.Cleanup(func() { database.CloseDB(db) })
	return db
}

func createVendor(t *testing.T, db *sql.DB) *model.Vendor {
	t.Helper()
	u := &model.User{
		Email:        fmt.Sprintf("repo-%d@example.com", time.Now().UnixNano()),
		PasswordHash: []byte("x"),
	}
	v := &model.Vendor{Name: "Test Kitchen", Email: u.Email, OpeningTime: "10:00", ClosingTime: "22:00"}
	require.NoError(t, NewUserRepository(db).CreateWithVendor(context.Background(), u, v))
	return v
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	v := createVendor(t, db)

	err := NewUserRepository(db).CreateWithVendor(context.Background(),
		&model.User{Email: v.Email, PasswordHash: []byte("y")}, &model.Vendor{Name: "Other"})
	assert.ErrorIs(t, err, ErrDuplicate)

	got, err := NewVendorRepository(db).GetByEmail(context.Background(), v.Email)
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.ID)
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	db := openTestDB(t)
	v := createVendor(t, db)
	ctx := context.Background()
	repo := NewOrderRepository(db)

	o := &model.Order{
		ID:           fmt.Sprintf("T%d", time.Now().UnixNano()),
		VendorID:     v.ID,
		CustomerName: "Ann",
		Items: []model.OrderItem{
			{Name: "Pad Thai", Quantity: 2, Price: decimal.RequireFromString("12.50"), Options: []string{"Spicy"}},
		},
		DeliveryFee: decimal.RequireFromString("3.00"),
		Total:       decimal.RequireFromString("28.00"),
		Status:      model.StatusNew,
	}
	require.NoError(t, repo.Insert(ctx, o))
	assert.ErrorIs(t, repo.Insert(ctx, o), ErrDuplicate)

	require.NoError(t, repo.UpdateStatus(ctx, v.ID, o.ID, model.StatusNew, model.StatusProcessing, "test"))

	got, err := repo.Get(ctx, v.ID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusProcessing, got.Status)
	require.Len(t, got.Items, 1)
	assert.Equal(t, []string{"Spicy"}, got.Items[0].Options)

	err = repo.UpdateStatus(ctx, v.ID, o.ID, model.StatusNew, model.StatusCancelled, "test")
	assert.ErrorIs(t, err, ErrStatusConflict)

	err = repo.UpdateStatus(ctx, v.ID, "missing", model.StatusNew, model.StatusProcessing, "test")
	assert.ErrorIs(t, err, ErrNotFound)

	var logged int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM order_status_log WHERE vendor_id = $1 AND order_id = $2`, v.ID, o.ID).Scan(&logged))
	assert.Equal(t, 1, logged)
}

func TestOrderIDsAreScopedToVendor(t *testing.T) {
	db := openTestDB(t)
	a, b := createVendor(t, db), createVendor(t, db)
	ctx := context.Background()
	repo := NewOrderRepository(db)

	id := fmt.Sprintf("S%d", time.Now().UnixNano())
	for _, v := range []*model.Vendor{a, b} {
		require.NoError(t, repo.Insert(ctx, &model.Order{
			ID:           id,
			VendorID:     v.ID,
			CustomerName: v.Name,
			Items:        []model.OrderItem{{Name: "Rice", Quantity: 1, Price: decimal.NewFromInt(40)}},
			Total:        decimal.NewFromInt(40),
			Status:       model.StatusNew,
		}))
	}

	require.NoError(t, repo.UpdateStatus(ctx, a.ID, id, model.StatusNew, model.StatusCancelled, "test"))

	got, err := repo.Get(ctx, b.ID, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusNew, got.Status)
	assert.Len(t, got.Items, 1)

	orders, err := repo.ListByVendor(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, model.StatusCancelled, orders[0].Status)
	assert.Len(t, orders[0].Items, 1)
}

func TestSettingsRepositoryAutoAcceptVendors(t *testing.T) {
	db := openTestDB(t)
	v := createVendor(t, db)
	ctx := context.Background()
	repo := NewSettingsRepository(db)

	_, err := repo.GetSettings(ctx, v.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	s, err := repo.CreateSettings(ctx, model.RestaurantSettings{
		VendorID:               v.ID,
		RestaurantOpen:         true,
		AutoAcceptOrders:       true,
		PreparationTimeMinutes: 20,
	})
	require.NoError(t, err)

	ids, err := repo.ListAutoAcceptVendors(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, v.ID)

	s.RestaurantOpen = false
	require.NoError(t, repo.UpdateSettings(ctx, s))
	ids, err = repo.ListAutoAcceptVendors(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, v.ID)
}
