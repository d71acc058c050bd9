// Command seed loads sample menu items and orders for an existing vendor
// account, for local development.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vendorhub/internal/config"
	"vendorhub/internal/database"
	"vendorhub/internal/model"
	"vendorhub/internal/repository"
)

func main() {
	cfg, err := config.Load(nil)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	email := flag.String("email", "", "email of the vendor account to seed")
	dbURI := flag.String("d", cfg.DatabaseURI, "database URI")
	flag.Parse()

	if *email == "" {
		slog.Error("-email is required")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.NewDB(ctx, *dbURI)
	if err != nil {
		slog.Error("failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer database.CloseDB(db)

	if err := database.InitSchema(ctx, db); err != nil {
		slog.Error("failed to init DB schema", "error", err)
		os.Exit(1)
	}

	vendor, err := repository.NewVendorRepository(db).GetByEmail(ctx, *email)
	if err != nil {
		slog.Error("vendor not found", "email", *email, "error", err)
		os.Exit(1)
	}

	menu := repository.NewMenuRepository(db)
	existing, err := menu.List(ctx, vendor.ID)
	if err != nil {
		slog.Error("failed to list menu", "error", err)
		os.Exit(1)
	}
	if len(existing) > 0 {
		slog.Warn("vendor already has a menu, skipping menu items", "count", len(existing))
	} else {
		for _, it := range sampleMenu(vendor.ID) {
			if err := menu.Create(ctx, &it); err != nil {
				slog.Error("failed to insert menu item", "name", it.Name, "error", err)
				os.Exit(1)
			}
		}
	}

	orders := repository.NewOrderRepository(db)
	inserted := 0
	for _, o := range sampleOrders(vendor.ID, time.Now()) {
		err := orders.Insert(ctx, &o)
		if errors.Is(err, repository.ErrDuplicate) {
			slog.Warn("order already exists, skipping", "order_id", o.ID)
			continue
		}
		if err != nil {
			slog.Error("failed to insert order", "order_id", o.ID, "error", err)
			os.Exit(1)
		}
		inserted++
	}

	slog.Info("seed complete", "vendor_id", vendor.ID, "orders", inserted)
}

func baht(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func sampleMenu(vendorID string) []model.MenuItem {
	item := func(name, desc string, price int64, category string, available bool) model.MenuItem {
		return model.MenuItem{
			ID:          uuid.NewString(),
			VendorID:    vendorID,
			Name:        name,
			Description: desc,
			Price:       baht(price),
			CategoryID:  category,
			Category:    model.CategoryName(category),
			Available:   available,
		}
	}
	return []model.MenuItem{
		item("Pad Thai", "Stir-fried rice noodles with eggs, tofu, bean sprouts, and peanuts.", 150, "noodles", true),
		item("Green Curry", "Spicy curry with coconut milk, Thai eggplant, and basil.", 180, "curries", true),
		item("Tom Yum Goong", "Hot and sour soup with shrimp, lemongrass, and lime leaves.", 220, "main-dishes", true),
		item("Spring Rolls", "Crispy rolls filled with vegetables and glass noodles.", 80, "appetizers", true),
		item("Mango Sticky Rice", "Sweet sticky rice with fresh mango and coconut cream.", 100, "desserts", true),
		item("Thai Iced Tea", "Strong black tea with condensed milk over ice.", 60, "beverages", false),
	}
}

func sampleOrders(vendorID string, now time.Time) []model.Order {
	line := func(name string, qty int, price int64, options ...string) model.OrderItem {
		return model.OrderItem{Name: name, Quantity: qty, Price: baht(price), Options: options}
	}
	orders := []model.Order{
		{
			ID:              "ORD123",
			CustomerName:    "Somchai K.",
			CustomerPhone:   "081-234-5678",
			CustomerAddress: "123 Sukhumvit Road, Khlong Toei, Bangkok 10110",
			Items: []model.OrderItem{
				line("Pad Thai", 1, 150, "No peanuts", "Extra spicy"),
				line("Tom Yum Goong", 1, 220),
				line("Rice", 2, 40),
			},
			DeliveryFee: baht(40),
			Total:       baht(450),
			Status:      model.StatusNew,
			Notes:       "Please include extra napkins and utensils.",
			CreatedAt:   now,
		},
		{
			ID:           "ORD122",
			CustomerName: "Wanida S.",
			Items: []model.OrderItem{
				line("Green Curry", 1, 180),
				line("Mango Sticky Rice", 1, 100),
			},
			Total:     baht(280),
			Status:    model.StatusProcessing,
			CreatedAt: now.Add(-30 * time.Minute),
		},
		{
			ID:           "ORD121",
			CustomerName: "Nattapong P.",
			Items: []model.OrderItem{
				line("Papaya Salad", 1, 120),
				line("Grilled Chicken", 1, 220),
				line("Sticky Rice", 2, 80),
				line("Thai Iced Tea", 2, 120),
			},
			Total:     baht(540),
			Status:    model.StatusReady,
			CreatedAt: now.Add(-time.Hour),
		},
		{
			ID:           "ORD120",
			CustomerName: "Apinya L.",
			Items: []model.OrderItem{
				line("Massaman Curry", 1, 250),
				line("Rice", 2, 80),
			},
			Total:     baht(330),
			Status:    model.StatusCompleted,
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:           "ORD119",
			CustomerName: "Chatchai T.",
			Items: []model.OrderItem{
				line("Pad See Ew", 1, 140),
				line("Spring Rolls", 2, 160),
			},
			Total:     baht(300),
			Status:    model.StatusCancelled,
			CreatedAt: now.Add(-3 * time.Hour),
		},
	}
	for i := range orders {
		orders[i].VendorID = vendorID
	}
	return orders
}
