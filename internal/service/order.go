package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"vendorhub/internal/metrics"
	"vendorhub/internal/model"
	"vendorhub/internal/notify"
	"vendorhub/internal/workflow"
)

// OrderList is the orders page: the filtered rows plus the per-tab counts
// over all of the vendor's orders.
type OrderList struct {
	Orders []model.Order         `json:"orders"`
	Counts map[string]int        `json:"counts"`
	Filter workflow.StatusFilter `json:"filter"`
	Query  string                `json:"query,omitempty"`
}

// OrderDetail is an order as shown on its detail page.
type OrderDetail struct {
	model.Order
	StatusLabel string            `json:"status_label"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
	ItemCount   int               `json:"item_count"`
	Actions     []workflow.Action `json:"actions"`
}

func newOrderDetail(o model.Order) *OrderDetail {
	return &OrderDetail{
		Order:       o,
		StatusLabel: o.Status.Label(),
		Subtotal:    o.Subtotal(),
		ItemCount:   o.ItemCount(),
		Actions:     workflow.AvailableActions(o.Status),
	}
}

type OrderService struct {
	orders   OrderStore
	notifier notify.Notifier
	metrics  *metrics.Registry
	now      func() time.Time
}

func NewOrderService(orders OrderStore, notifier notify.Notifier, m *metrics.Registry) *OrderService {
	return &OrderService{
		orders:   orders,
		notifier: notifier,
		metrics:  m,
		now:      time.Now,
	}
}

func (s *OrderService) List(ctx context.Context, vendorID string, filter workflow.StatusFilter, query string) (*OrderList, error) {
	orders, err := s.orders.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, storeErr("list orders", err)
	}

	// Tab counts follow the search box but ignore the selected tab.
	matched := workflow.Search(orders, workflow.All, query)
	found := workflow.FilterByStatus(matched, filter)
	if found == nil {
		found = []model.Order{}
	}
	return &OrderList{
		Orders: found,
		Counts: workflow.CountByStatus(matched),
		Filter: filter,
		Query:  query,
	}, nil
}

func (s *OrderService) Get(ctx context.Context, vendorID, id string) (*OrderDetail, error) {
	o, err := s.orders.Get(ctx, vendorID, id)
	if err != nil {
		return nil, storeErr("get order", err)
	}
	return newOrderDetail(*o), nil
}

// Transition moves an order to target. The change is validated against the
// workflow, stored only if the order still has the status it was read with,
// and then announced to the notifier. Delivery failures are logged and
// counted; they do not undo or fail the stored change.
func (s *OrderService) Transition(ctx context.Context, vendorID, id string, target model.Status, actor string) (*OrderDetail, error) {
	current, err := s.orders.Get(ctx, vendorID, id)
	if err != nil {
		return nil, storeErr("get order", err)
	}

	updated, err := workflow.ApplyTransition(*current, target)
	if err != nil {
		s.metrics.RejectedTransitions.WithLabelValues(current.Status.String(), target.String()).Inc()
		return nil, err
	}

	if err := s.orders.UpdateStatus(ctx, vendorID, id, current.Status, target, actor); err != nil {
		return nil, storeErr("update order status", err)
	}
	s.metrics.Transitions.WithLabelValues(current.Status.String(), target.String()).Inc()

	slog.Info("order transition stored",
		"vendor_id", vendorID,
		"order_id", id,
		"from", current.Status,
		"to", target,
		"by", actor,
	)

	s.announce(ctx, vendorID, updated, current.Status, actor)

	return newOrderDetail(updated), nil
}

func (s *OrderService) announce(ctx context.Context, vendorID string, o model.Order, from model.Status, actor string) {
	event, err := notify.NewEvent(vendorID, o.ID, from, o.Status, actor, s.now())
	if err != nil {
		slog.Warn("no status event", "order_id", o.ID, "error", err)
		return
	}

	if err := s.notifier.Notify(ctx, event); err != nil {
		for _, sink := range failedSinks(err) {
			s.metrics.NotificationsFailed.WithLabelValues(sink).Inc()
		}
		slog.Error("failed to deliver status event", "order_id", o.ID, "to", o.Status, "error", err)
	}
}

func failedSinks(err error) []string {
	var sinks []string
	var walk func(error)
	walk = func(e error) {
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
			return
		}
		var se *notify.SinkError
		if errors.As(e, &se) {
			sinks = append(sinks, se.Sink)
			return
		}
		sinks = append(sinks, "unknown")
	}
	walk(err)
	return sinks
}

// PendingForAutoAccept returns the oldest new orders of a vendor.
func (s *OrderService) PendingForAutoAccept(ctx context.Context, vendorID string, limit int) ([]model.Order, error) {
	orders, err := s.orders.ListByStatus(ctx, vendorID, model.StatusNew, limit)
	if err != nil {
		return nil, fmt.Errorf("list new orders: %w", err)
	}
	return orders, nil
}
