package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorhub/internal/model"
)

// fakeConfirmation answers after delay unless its context ends first.
type fakeConfirmation struct {
	ack   bool
	delay time.Duration

	mu     sync.Mutex
	waited bool
}

func (c *fakeConfirmation) WaitContext(ctx context.Context) (bool, error) {
	c.mu.Lock()
	c.waited = true
	c.mu.Unlock()
	select {
	case <-time.After(c.delay):
		return c.ack, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

type fakeRabbit struct {
	publishErr error
	confirms   []*fakeConfirmation
	msgs       []amqp.Publishing
	ctxErrs    []error
	closed     bool
}

func (f *fakeRabbit) Publish(ctx context.Context, exchange string, msg amqp.Publishing) (confirmation, error) {
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	f.msgs = append(f.msgs, msg)
	c := f.confirms[0]
	f.confirms = f.confirms[1:]
	return c, nil
}

func (f *fakeRabbit) Close() error {
	f.closed = true
	return nil
}

func rabbitEvent(t *testing.T, orderID string) Event {
	t.Helper()
	e, err := NewEvent("vendor-1", orderID, model.StatusNew, model.StatusProcessing, "user-1", time.Now())
	require.NoError(t, err)
	return e
}

func TestRabbitNotifierPublishes(t *testing.T) {
	pub := &fakeRabbit{confirms: []*fakeConfirmation{{ack: true}}}
	n := newRabbitNotifierWith(pub, "orders")

	require.NoError(t, n.Notify(context.Background(), rabbitEvent(t, "ORD123")))
	require.Len(t, pub.msgs, 1)

	msg := pub.msgs[0]
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, "ORD123", msg.CorrelationId)
	assert.Equal(t, "vendor-1", msg.Headers["x-vendor-id"])

	var got Event
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, model.StatusProcessing, got.To)

	require.NoError(t, n.Close())
	assert.True(t, pub.closed)
}

func TestRabbitNotifierNack(t *testing.T) {
	pub := &fakeRabbit{confirms: []*fakeConfirmation{{ack: false}}}
	n := newRabbitNotifierWith(pub, "orders")

	assert.ErrorContains(t, n.Notify(context.Background(), rabbitEvent(t, "ORD123")), "NACK")
}

func TestRabbitNotifierPublishError(t *testing.T) {
	pub := &fakeRabbit{publishErr: errors.New("channel closed")}
	n := newRabbitNotifierWith(pub, "orders")

	assert.ErrorContains(t, n.Notify(context.Background(), rabbitEvent(t, "ORD123")), "channel closed")
}

func TestRabbitNotifierWaitsPastCancelledRequest(t *testing.T) {
	first := &fakeConfirmation{ack: true, delay: 20 * time.Millisecond}
	second := &fakeConfirmation{ack: false}
	pub := &fakeRabbit{confirms: []*fakeConfirmation{first, second}}
	n := newRabbitNotifierWith(pub, "orders")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The request is gone, but its own confirmation is still collected.
	require.NoError(t, n.Notify(ctx, rabbitEvent(t, "ORD123")))
	assert.True(t, first.waited)
	assert.NoError(t, pub.ctxErrs[0])

	// The next publish is judged by its own confirmation only.
	assert.ErrorContains(t, n.Notify(context.Background(), rabbitEvent(t, "ORD122")), "NACK")
	assert.True(t, second.waited)
}

func TestRabbitNotifierConfirmTimeout(t *testing.T) {
	pub := &fakeRabbit{confirms: []*fakeConfirmation{{ack: true, delay: time.Second}}}
	n := newRabbitNotifierWith(pub, "orders")
	n.timeout = 10 * time.Millisecond

	err := n.Notify(context.Background(), rabbitEvent(t, "ORD123"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
