// Package rabbitmq publishes domain events to a RabbitMQ topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange       = "dispatch.events"
	DefaultPublishTimeout = 5 * time.Second
)

// Channel is the part of *amqp.Channel the publisher needs.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// EventPublisher sends events as persistent JSON messages. The event name is
// the routing key.
type EventPublisher struct {
	conn     *amqp.Connection
	ch       Channel
	exchange string
	timeout  time.Duration
	now      func() time.Time

	mu     sync.Mutex
	closed bool
}

var _ ports.EventPublisher = (*EventPublisher)(nil)

// Dial connects to url, opens a channel and declares a durable topic
// exchange.
func Dial(url, exchange string) (*EventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := NewEventPublisher(ch, exchange)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

// NewEventPublisher declares the exchange on an already open channel.
func NewEventPublisher(ch Channel, exchange string) (*EventPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &EventPublisher{
		ch:       ch,
		exchange: exchange,
		timeout:  DefaultPublishTimeout,
		now:      time.Now,
	}, nil
}

func (p *EventPublisher) PublishRouteAssigned(ctx context.Context, event assignment.RouteAssigned) error {
	return p.publish(ctx, event.Name(), event)
}

func (p *EventPublisher) publish(ctx context.Context, routingKey string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("event", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return errs.NewInfrastructureFailureError("publish "+routingKey, errors.New("publisher is closed"))
	}

	publishCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.ch.PublishWithContext(publishCtx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now(),
		Type:         routingKey,
		Body:         body,
	})
	if err != nil {
		return errs.NewInfrastructureFailureError("publish "+routingKey, err)
	}
	return nil
}

// Close closes the channel and, when the publisher dialled it, the
// connection. It is safe to call more than once.
func (p *EventPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	err := p.ch.Close()
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}

// NopEventPublisher drops every event. It stands in when no broker is
// configured.
type NopEventPublisher struct{}

func (NopEventPublisher) PublishRouteAssigned(context.Context, assignment.RouteAssigned) error {
	return nil
}
