// Package analytics aggregates a vendor's orders into the figures shown on
// the dashboard and analytics pages. Everything here is pure: callers load
// the orders and pass the clock in.
package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"vendorhub/internal/model"
)

type Timeframe string

const (
	Day   Timeframe = "day"
	Week  Timeframe = "week"
	Month Timeframe = "month"
	Year  Timeframe = "year"
)

// TopItemsLimit is how many best sellers a summary carries.
const TopItemsLimit = 5

// ParseTimeframe maps the query value to a Timeframe. Empty means Week.
func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(s) {
	case "":
		return Week, nil
	case Day, Week, Month, Year:
		return Timeframe(s), nil
	}
	return "", fmt.Errorf("unknown timeframe %q", s)
}

// Period is a half-open time range [Start, End).
type Period struct {
	Timeframe Timeframe `json:"timeframe"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// PeriodFor returns the calendar period of the given timeframe containing now.
// Weeks start on Monday.
func PeriodFor(now time.Time, tf Timeframe) Period {
	y, m, d := now.Date()
	loc := now.Location()

	var start time.Time
	switch tf {
	case Day:
		start = time.Date(y, m, d, 0, 0, 0, 0, loc)
	case Month:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case Year:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	default:
		tf = Week
		offset := (int(now.Weekday()) + 6) % 7
		start = time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	}
	return Period{Timeframe: tf, Start: start, End: shift(start, tf, 1)}
}

// Previous returns the period of the same length right before p.
func (p Period) Previous() Period {
	start := shift(p.Start, p.Timeframe, -1)
	return Period{Timeframe: p.Timeframe, Start: start, End: p.Start}
}

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

func shift(t time.Time, tf Timeframe, n int) time.Time {
	switch tf {
	case Day:
		return t.AddDate(0, 0, n)
	case Month:
		return t.AddDate(0, n, 0)
	case Year:
		return t.AddDate(n, 0, 0)
	default:
		return t.AddDate(0, 0, 7*n)
	}
}

// Trend compares a figure with the previous period.
type Trend struct {
	Percent float64 `json:"percent"`
	Up      bool    `json:"up"`
}

func trend(cur, prev decimal.Decimal) Trend {
	if prev.IsZero() {
		if cur.IsPositive() {
			return Trend{Percent: 100, Up: true}
		}
		return Trend{Up: true}
	}
	change := cur.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Round(1)
	return Trend{Percent: change.Abs().InexactFloat64(), Up: !change.IsNegative()}
}

type Bucket struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Orders int             `json:"orders"`
}

type ItemSales struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Summary struct {
	Period            Period          `json:"period"`
	TotalOrders       int             `json:"total_orders"`
	Revenue           decimal.Decimal `json:"revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	CancelledOrders   int             `json:"cancelled_orders"`

	OrdersTrend    Trend `json:"orders_trend"`
	RevenueTrend   Trend `json:"revenue_trend"`
	AverageTrend   Trend `json:"average_trend"`
	CancelledTrend Trend `json:"cancelled_trend"`

	Sales    []Bucket    `json:"sales"`
	TopItems []ItemSales `json:"top_items"`
}

type totals struct {
	orders    int
	billable  int
	cancelled int
	revenue   decimal.Decimal
}

func (t totals) average() decimal.Decimal {
	if t.billable == 0 {
		return decimal.Zero
	}
	return t.revenue.Div(decimal.NewFromInt(int64(t.billable))).Round(2)
}

func sum(orders []model.Order, p Period) totals {
	var t totals
	for _, o := range orders {
		if !p.Contains(o.CreatedAt) {
			continue
		}
		t.orders++
		if o.Status == model.StatusCancelled {
			t.cancelled++
			continue
		}
		t.billable++
		t.revenue = t.revenue.Add(o.Total)
	}
	return t
}

// Summarize aggregates orders for the period of tf containing now. Orders
// outside the current and previous period are ignored. Revenue and the
// average exclude cancelled orders.
func Summarize(orders []model.Order, now time.Time, tf Timeframe) Summary {
	p := PeriodFor(now, tf)
	cur := sum(orders, p)
	prev := sum(orders, p.Previous())

	return Summary{
		Period:            p,
		TotalOrders:       cur.orders,
		Revenue:           cur.revenue,
		AverageOrderValue: cur.average(),
		CancelledOrders:   cur.cancelled,

		OrdersTrend:    trend(decimal.NewFromInt(int64(cur.orders)), decimal.NewFromInt(int64(prev.orders))),
		RevenueTrend:   trend(cur.revenue, prev.revenue),
		AverageTrend:   trend(cur.average(), prev.average()),
		CancelledTrend: trend(decimal.NewFromInt(int64(cur.cancelled)), decimal.NewFromInt(int64(prev.cancelled))),

		Sales:    Sales(orders, p),
		TopItems: TopItems(orders, p, TopItemsLimit),
	}
}

// Sales splits p into buckets: hours of a day, weekdays of a week, days of a
// month or months of a year.
func Sales(orders []model.Order, p Period) []Bucket {
	buckets := emptyBuckets(p)
	loc := p.Start.Location()
	for _, o := range orders {
		if !p.Contains(o.CreatedAt) {
			continue
		}
		i := bucketIndex(o.CreatedAt.In(loc), p.Timeframe)
		if i < 0 || i >= len(buckets) {
			continue
		}
		buckets[i].Orders++
		if o.Status != model.StatusCancelled {
			buckets[i].Amount = buckets[i].Amount.Add(o.Total)
		}
	}
	return buckets
}

var weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func emptyBuckets(p Period) []Bucket {
	var labels []string
	switch p.Timeframe {
	case Day:
		for h := 0; h < 24; h++ {
			labels = append(labels, fmt.Sprintf("%02d:00", h))
		}
	case Month:
		days := p.End.AddDate(0, 0, -1).Day()
		for d := 1; d <= days; d++ {
			labels = append(labels, strconv.Itoa(d))
		}
	case Year:
		for m := time.January; m <= time.December; m++ {
			labels = append(labels, m.String()[:3])
		}
	default:
		labels = weekdays
	}

	buckets := make([]Bucket, len(labels))
	for i, l := range labels {
		buckets[i] = Bucket{Label: l, Amount: decimal.Zero}
	}
	return buckets
}

func bucketIndex(t time.Time, tf Timeframe) int {
	switch tf {
	case Day:
		return t.Hour()
	case Month:
		return t.Day() - 1
	case Year:
		return int(t.Month()) - 1
	default:
		return (int(t.Weekday()) + 6) % 7
	}
}

// TopItems ranks items of non-cancelled orders in p by quantity sold. Ties
// are broken by name.
func TopItems(orders []model.Order, p Period, limit int) []ItemSales {
	qty := make(map[string]int)
	for _, o := range orders {
		if !p.Contains(o.CreatedAt) || o.Status == model.StatusCancelled {
			continue
		}
		for _, it := range o.Items {
			qty[it.Name] += it.Quantity
		}
	}

	items := make([]ItemSales, 0, len(qty))
	for name, q := range qty {
		items = append(items, ItemSales{Name: name, Quantity: q})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Quantity != items[j].Quantity {
			return items[i].Quantity > items[j].Quantity
		}
		return items[i].Name < items[j].Name
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
