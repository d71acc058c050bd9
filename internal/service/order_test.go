package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorhub/internal/metrics"
	"vendorhub/internal/model"
	"vendorhub/internal/notify"
	"vendorhub/internal/repository"
	"vendorhub/internal/workflow"
)

const vendorID = "vendor-1"

var baseTime = time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)

func testOrder(id string, status model.Status, minutesAgo int) model.Order {
	return model.Order{
		ID:           id,
		VendorID:     vendorID,
		CustomerName: "Somchai K.",
		Items: []model.OrderItem{
			{Name: "Pad Thai", Quantity: 2, Price: decimal.NewFromInt(150)},
			{Name: "Thai Iced Tea", Quantity: 1, Price: decimal.NewFromInt(60)},
		},
		DeliveryFee: decimal.NewFromInt(40),
		Total:       decimal.NewFromInt(400),
		Status:      status,
		CreatedAt:   baseTime.Add(-time.Duration(minutesAgo) * time.Minute),
	}
}

func newOrderFixture() (*OrderService, *stubOrders, *recordingNotifier, *metrics.Registry) {
	store := newStubOrders(
		testOrder("ORD123", model.StatusNew, 1),
		testOrder("ORD122", model.StatusProcessing, 2),
		testOrder("ORD121", model.StatusReady, 3),
		testOrder("ORD120", model.StatusCompleted, 4),
		testOrder("ORD119", model.StatusCancelled, 5),
	)
	n := &recordingNotifier{}
	m := metrics.NewRegistry()
	svc := NewOrderService(store, n, m)
	svc.now = func() time.Time { return baseTime }
	return svc, store, n, m
}

func TestOrderList(t *testing.T) {
	svc, _, _, _ := newOrderFixture()
	ctx := context.Background()

	list, err := svc.List(ctx, vendorID, workflow.All, "")
	require.NoError(t, err)
	require.Len(t, list.Orders, 5)
	assert.Equal(t, "ORD123", list.Orders[0].ID)
	assert.Equal(t, 5, list.Counts["all"])
	assert.Equal(t, 1, list.Counts["ready"])

	list, err = svc.List(ctx, vendorID, workflow.FilterFor(model.StatusReady), "")
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, "ORD121", list.Orders[0].ID)
	assert.Equal(t, 5, list.Counts["all"])

	list, err = svc.List(ctx, vendorID, workflow.All, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, list.Orders)
	assert.Empty(t, list.Orders)

	list, err = svc.List(ctx, "other-vendor", workflow.All, "")
	require.NoError(t, err)
	assert.Empty(t, list.Orders)
	assert.Equal(t, 0, list.Counts["all"])
}

func TestOrderListCountsFollowQuery(t *testing.T) {
	svc, store, _, _ := newOrderFixture()
	o := testOrder("ORD118", model.StatusProcessing, 6)
	o.CustomerName = "Wanida S."
	store.orders[o.ID] = o
	ctx := context.Background()

	list, err := svc.List(ctx, vendorID, workflow.All, "wanida")
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, 1, list.Counts["all"])
	assert.Equal(t, 1, list.Counts["processing"])
	assert.Equal(t, 0, list.Counts["new"])

	list, err = svc.List(ctx, vendorID, workflow.FilterFor(model.StatusNew), "wanida")
	require.NoError(t, err)
	assert.Empty(t, list.Orders)
	assert.Equal(t, 1, list.Counts["all"])
	assert.Equal(t, 1, list.Counts["processing"])
}

func TestOrderGet(t *testing.T) {
	svc, _, _, _ := newOrderFixture()

	d, err := svc.Get(context.Background(), vendorID, "ORD123")
	require.NoError(t, err)
	assert.Equal(t, "New Order", d.StatusLabel)
	assert.True(t, d.Subtotal.Equal(decimal.NewFromInt(360)))
	assert.Equal(t, 3, d.ItemCount)
	assert.Equal(t, workflow.AvailableActions(model.StatusNew), d.Actions)

	_, err = svc.Get(context.Background(), vendorID, "ORD999")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), "other-vendor", "ORD123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderTransition(t *testing.T) {
	svc, store, n, m := newOrderFixture()

	d, err := svc.Transition(context.Background(), vendorID, "ORD123", model.StatusProcessing, "user-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusProcessing, d.Status)
	assert.Equal(t, "Processing", d.StatusLabel)
	assert.Equal(t, model.StatusProcessing, store.status("ORD123"))
	assert.Equal(t, []string{"ORD123:processing:user-1"}, store.updates)

	require.Len(t, n.events, 1)
	e := n.events[0]
	assert.Equal(t, vendorID, e.VendorID)
	assert.Equal(t, "ORD123", e.OrderID)
	assert.Equal(t, model.StatusNew, e.From)
	assert.Equal(t, model.StatusProcessing, e.To)
	assert.Equal(t, "Order accepted and being processed", e.Message)
	assert.Equal(t, "Order #ORD123 status updated.", e.Description)
	assert.Equal(t, baseTime, e.Timestamp)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("new", "processing")))
}

func TestOrderTransitionRejected(t *testing.T) {
	svc, store, n, m := newOrderFixture()

	_, err := svc.Transition(context.Background(), vendorID, "ORD119", model.StatusProcessing, "user-1")
	require.ErrorIs(t, err, workflow.ErrInvalidTransition)

	var ite *workflow.InvalidTransitionError
	require.True(t, errors.As(err, &ite))
	assert.Equal(t, model.StatusCancelled, ite.From)

	assert.Equal(t, model.StatusCancelled, store.status("ORD119"))
	assert.Empty(t, store.updates)
	assert.Empty(t, n.events)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RejectedTransitions.WithLabelValues("cancelled", "processing")))
}

func TestOrderTransitionConflict(t *testing.T) {
	svc, store, n, _ := newOrderFixture()
	store.updateErr = repository.ErrStatusConflict

	_, err := svc.Transition(context.Background(), vendorID, "ORD123", model.StatusProcessing, "user-1")
	assert.ErrorIs(t, err, ErrStatusConflict)
	assert.Empty(t, n.events)
}

func TestOrderTransitionNotFound(t *testing.T) {
	svc, _, _, _ := newOrderFixture()

	_, err := svc.Transition(context.Background(), vendorID, "ORD999", model.StatusProcessing, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderTransitionSurvivesNotifyFailure(t *testing.T) {
	svc, store, _, m := newOrderFixture()
	failing := notify.NewMulti().
		Add("feed", &recordingNotifier{}).
		Add("rabbitmq", &recordingNotifier{err: errors.New("connection closed")})
	svc.notifier = failing

	d, err := svc.Transition(context.Background(), vendorID, "ORD121", model.StatusCompleted, "user-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, d.Status)
	assert.Empty(t, d.Actions)
	assert.Equal(t, model.StatusCompleted, store.status("ORD121"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsFailed.WithLabelValues("rabbitmq")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.NotificationsFailed.WithLabelValues("feed")))
}

func TestPendingForAutoAccept(t *testing.T) {
	store := newStubOrders(
		testOrder("A", model.StatusNew, 1),
		testOrder("B", model.StatusNew, 10),
		testOrder("C", model.StatusReady, 20),
	)
	svc := NewOrderService(store, &recordingNotifier{}, metrics.NewRegistry())

	orders, err := svc.PendingForAutoAccept(context.Background(), vendorID, 20)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "B", orders[0].ID)
	assert.Equal(t, "A", orders[1].ID)
}

func TestFailedSinks(t *testing.T) {
	err := errors.Join(
		&notify.SinkError{Sink: "kafka", Err: errors.New("x")},
		errors.New("plain"),
	)
	assert.Equal(t, []string{"kafka", "unknown"}, failedSinks(err))
}
