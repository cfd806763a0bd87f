package events

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPForwarder relays bus events to a durable RabbitMQ queue.
type AMQPForwarder struct {
	conn    *amqp.Connection
	ch      amqpChannel
	queue   string
	timeout time.Duration
	logger  *zerolog.Logger
}

// DialAMQP connects to the broker and declares the target queue.
func DialAMQP(url, queue string, logger *zerolog.Logger) (*AMQPForwarder, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	// durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp queue declare: %w", err)
	}

	f := newAMQPForwarder(ch, queue, logger)
	f.conn = conn
	return f, nil
}

func newAMQPForwarder(ch amqpChannel, queue string, logger *zerolog.Logger) *AMQPForwarder {
	return &AMQPForwarder{ch: ch, queue: queue, timeout: 5 * time.Second, logger: logger}
}

// Handle is an EventHandler; subscribe it with AllEvents.
func (f *AMQPForwarder) Handle(event *Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Type:         event.Type,
		Timestamp:    event.CreatedAt.UTC(),
		Body:         event.Payload,
	}
	if err := f.ch.PublishWithContext(ctx, "", f.queue, false, false, msg); err != nil {
		return fmt.Errorf("amqp publish %s: %w", event.Type, err)
	}

	f.logger.Debug().Str("event_type", event.Type).Str("queue", f.queue).Msg("event forwarded")
	return nil
}

func (f *AMQPForwarder) Close() error {
	var firstErr error
	if f.ch != nil {
		firstErr = f.ch.Close()
	}
	if f.conn != nil {
		if err := f.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
