package workflow

import (
	"fmt"
	"strings"

	"vendorhub/internal/model"
)

// StatusFilter selects orders by status. The zero value is not valid; use
// All or FilterFor.
type StatusFilter struct {
	status model.Status
	all    bool
}

// All matches every order.
var All = StatusFilter{all: true}

const allName = "all"

func FilterFor(s model.Status) StatusFilter { return StatusFilter{status: s} }

// ParseFilter accepts "all" or any status name. An empty string means all.
func ParseFilter(s string) (StatusFilter, error) {
	if s == "" || s == allName {
		return All, nil
	}
	st, err := model.ParseStatus(s)
	if err != nil {
		return StatusFilter{}, fmt.Errorf("parse filter: %w", err)
	}
	return FilterFor(st), nil
}

func (f StatusFilter) IsAll() bool { return f.all }

func (f StatusFilter) String() string {
	if f.all {
		return allName
	}
	return string(f.status)
}

func (f StatusFilter) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f StatusFilter) Match(o model.Order) bool {
	return f.all || o.Status == f.status
}

// FilterByStatus keeps the orders f matches, in input order. The result
// never aliases the input slice.
func FilterByStatus(orders []model.Order, f StatusFilter) []model.Order {
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if f.Match(o) {
			out = append(out, o)
		}
	}
	return out
}

// MatchesQuery reports whether text occurs in the order id or customer name,
// ignoring case. Empty text matches everything.
func MatchesQuery(o model.Order, text string) bool {
	if text == "" {
		return true
	}
	q := strings.ToLower(text)
	return strings.Contains(strings.ToLower(o.ID), q) ||
		strings.Contains(strings.ToLower(o.CustomerName), q)
}

// Search applies the text query and then the status filter.
func Search(orders []model.Order, f StatusFilter, query string) []model.Order {
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if MatchesQuery(o, query) && f.Match(o) {
			out = append(out, o)
		}
	}
	return out
}

// CountByStatus returns the tab counters keyed by filter name: "all" plus
// one entry per status, zeros included.
func CountByStatus(orders []model.Order) map[string]int {
	counts := make(map[string]int, len(model.Statuses)+1)
	counts[allName] = len(orders)
	for _, s := range model.Statuses {
		counts[string(s)] = 0
	}
	for _, o := range orders {
		counts[string(o.Status)]++
	}
	return counts
}
