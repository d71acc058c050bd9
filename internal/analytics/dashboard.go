package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"vendorhub/internal/model"
)

const RecentOrdersLimit = 5

type Dashboard struct {
	TodayOrders       int             `json:"today_orders"`
	TodayOrdersTrend  Trend           `json:"today_orders_trend"`
	TodayRevenue      decimal.Decimal `json:"today_revenue"`
	TodayRevenueTrend Trend           `json:"today_revenue_trend"`
	ActiveMenuItems   int             `json:"active_menu_items"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	AverageTrend      Trend           `json:"average_trend"`
	RecentOrders      []model.Order   `json:"recent_orders"`
	WeeklySales       []Bucket        `json:"weekly_sales"`
}

// BuildDashboard derives the dashboard cards from orders covering at least
// the current and previous week.
func BuildDashboard(orders []model.Order, activeMenuItems int, now time.Time) Dashboard {
	today := Summarize(orders, now, Day)
	week := Summarize(orders, now, Week)

	return Dashboard{
		TodayOrders:       today.TotalOrders,
		TodayOrdersTrend:  today.OrdersTrend,
		TodayRevenue:      today.Revenue,
		TodayRevenueTrend: today.RevenueTrend,
		ActiveMenuItems:   activeMenuItems,
		AverageOrderValue: week.AverageOrderValue,
		AverageTrend:      week.AverageTrend,
		RecentOrders:      Recent(orders, RecentOrdersLimit),
		WeeklySales:       week.Sales,
	}
}

// Recent returns up to limit orders, newest first.
func Recent(orders []model.Order, limit int) []model.Order {
	out := make([]model.Order, len(orders))
	copy(out, orders)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
