// Package notify delivers order status events to the vendor's
// notification feed and to external consumers.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"vendorhub/internal/model"
	"vendorhub/internal/workflow"
)

// Event is published after an order status change has been stored.
type Event struct {
	VendorID    string       `json:"vendor_id"`
	OrderID     string       `json:"order_id"`
	From        model.Status `json:"old_status"`
	To          model.Status `json:"new_status"`
	Message     string       `json:"message"`
	Description string       `json:"description"`
	ChangedBy   string       `json:"changed_by"`
	Timestamp   time.Time    `json:"timestamp"`
}

// NewEvent builds the event for an order that moved from -> to.
func NewEvent(vendorID, orderID string, from, to model.Status, changedBy string, at time.Time) (Event, error) {
	msg, ok := workflow.NotificationMessage(to)
	if !ok {
		return Event{}, fmt.Errorf("no notification for status %s", to)
	}
	return Event{
		VendorID:    vendorID,
		OrderID:     orderID,
		From:        from,
		To:          to,
		Message:     msg,
		Description: workflow.NotificationDescription(orderID),
		ChangedBy:   changedBy,
		Timestamp:   at.UTC(),
	}, nil
}

type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// SinkError tags a delivery failure with the sink that produced it.
type SinkError struct {
	Sink string
	Err  error
}

func (e *SinkError) Error() string { return e.Sink + ": " + e.Err.Error() }
func (e *SinkError) Unwrap() error { return e.Err }

type namedNotifier struct {
	name string
	n    Notifier
}

// Multi sends every event to all registered sinks. One failing sink does
// not stop the others.
type Multi struct {
	sinks []namedNotifier
}

func NewMulti() *Multi { return &Multi{} }

func (m *Multi) Add(name string, n Notifier) *Multi {
	m.sinks = append(m.sinks, namedNotifier{name: name, n: n})
	return m
}

func (m *Multi) Len() int { return len(m.sinks) }

// Notify returns the joined *SinkError values of the sinks that failed.
func (m *Multi) Notify(ctx context.Context, e Event) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.n.Notify(ctx, e); err != nil {
			errs = append(errs, &SinkError{Sink: s.name, Err: err})
		}
	}
	return errors.Join(errs...)
}

// LogNotifier writes events to the structured log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, e Event) error {
	slog.Info("order status changed",
		"vendor_id", e.VendorID,
		"order_id", e.OrderID,
		"from", e.From,
		"to", e.To,
		"changed_by", e.ChangedBy,
	)
	return nil
}
