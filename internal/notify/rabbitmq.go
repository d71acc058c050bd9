package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const confirmTimeout = 5 * time.Second

// confirmation is the broker's answer to one publish.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

type rabbitPublisher interface {
	Publish(ctx context.Context, exchange string, msg amqp.Publishing) (confirmation, error)
	Close() error
}

// amqpChannel publishes on a channel in confirm mode. Every publish gets
// its own deferred confirmation, so an abandoned wait cannot be mistaken
// for the answer to a later message.
type amqpChannel struct {
	ch *amqp.Channel
}

func (c amqpChannel) Publish(ctx context.Context, exchange string, msg amqp.Publishing) (confirmation, error) {
	dc, err := c.ch.PublishWithDeferredConfirmWithContext(ctx, exchange, "", false, false, msg)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, errors.New("channel is not in confirm mode")
	}
	return dc, nil
}

func (c amqpChannel) Close() error { return c.ch.Close() }

// RabbitNotifier publishes events to a fanout exchange and waits for the
// broker to confirm each one.
type RabbitNotifier struct {
	conn     *amqp.Connection
	pub      rabbitPublisher
	exchange string
	timeout  time.Duration
}

func NewRabbitNotifier(url, exchange string) (*RabbitNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("confirm mode: %w", err)
	}

	n := newRabbitNotifierWith(amqpChannel{ch: ch}, exchange)
	n.conn = conn
	return n, nil
}

func newRabbitNotifierWith(pub rabbitPublisher, exchange string) *RabbitNotifier {
	return &RabbitNotifier{pub: pub, exchange: exchange, timeout: confirmTimeout}
}

// Notify publishes e and waits for its confirmation. The publish and the
// wait are detached from ctx cancellation and bounded by the confirm
// timeout, so a caller that goes away never leaves a confirmation behind.
func (r *RabbitNotifier) Notify(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	conf, err := r.pub.Publish(pctx, r.exchange, amqp.Publishing{
		DeliveryMode:  amqp.Persistent,
		ContentType:   "application/json",
		MessageId:     uuid.NewString(),
		CorrelationId: e.OrderID,
		Timestamp:     time.Now().UTC(),
		Headers: amqp.Table{
			"x-source":    "vendorhub",
			"x-vendor-id": e.VendorID,
		},
		Body: body,
	})
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	acked, err := conf.WaitContext(pctx)
	if err != nil {
		return fmt.Errorf("wait for confirm: %w", err)
	}
	if !acked {
		return errors.New("publish NACK from broker")
	}
	return nil
}

func (r *RabbitNotifier) Close() error {
	err := r.pub.Close()
	if r.conn != nil {
		err = errors.Join(err, r.conn.Close())
	}
	return err
}
