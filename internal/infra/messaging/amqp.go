package messaging

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"coworking-reservations/internal/pkg/errs"
	"coworking-reservations/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrBrokerUnavailable is returned without dialing while a previous dial
// failure is still backing off.
var ErrBrokerUnavailable = errs.New("message broker unavailable")

const defaultDialTimeout = 2 * time.Second

// AMQPPublisher sends reservation events as persistent JSON messages to a
// durable queue through the default exchange.
type AMQPPublisher struct {
	url         string
	queue       string
	dialTimeout time.Duration
	now         func() time.Time

	mu         sync.Mutex
	conn       *amqp.Connection
	ch         *amqp.Channel
	retryAfter time.Time
}

// NewAMQPPublisher bounds each connection attempt by dialTimeout, covering
// both the TCP connect and the AMQP handshake. After a failed attempt no
// redial happens for another dialTimeout.
func NewAMQPPublisher(url, queue string, dialTimeout time.Duration) *AMQPPublisher {
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}
	return &AMQPPublisher{url: url, queue: queue, dialTimeout: dialTimeout, now: time.Now}
}

func (p *AMQPPublisher) Publish(ctx context.Context, event shared.ReservationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "failed to marshal reservation event")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel(ctx)
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         string(event.Type),
		MessageId:    event.ReservationID.String(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.reset()
		return errs.Wrap(err, "failed to publish reservation event")
	}
	return nil
}

// channel lazily dials and declares the queue. Caller holds p.mu.
func (p *AMQPPublisher) channel(ctx context.Context) (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	now := p.now()
	if now.Before(p.retryAfter) {
		return nil, ErrBrokerUnavailable
	}

	timeout := p.dialTimeout
	if deadline, ok := ctx.Deadline(); ok && deadline.Sub(now) < timeout {
		timeout = max(deadline.Sub(now), time.Millisecond)
	}
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		p.retryAfter = p.now().Add(p.dialTimeout)
		return nil, errs.Wrap(err, "failed to dial broker")
	}
	p.retryAfter = time.Time{}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to open channel")
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrapf(err, "failed to declare queue %s", p.queue)
	}

	p.conn, p.ch = conn, ch
	return ch, nil
}

// caller holds p.mu
func (p *AMQPPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}
