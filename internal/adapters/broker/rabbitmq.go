package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"eventadmission/internal/correlation"
	"eventadmission/internal/domain"
)

// ExchangeName is the durable topic exchange lifecycle messages are published to.
// The routing key is the message type, e.g. "request.confirmed".
const ExchangeName = "eventadmission.lifecycle"

const (
	dialAttempts   = 30
	dialBackoff    = 2 * time.Second
	publishTimeout = 10 * time.Second
)

// Dial connects to RabbitMQ, retrying until ctx ends or the attempts run out.
func Dial(ctx context.Context, url string, logger *slog.Logger) (*amqp.Connection, error) {
	var err error
	for attempt := 1; attempt <= dialAttempts; attempt++ {
		var conn *amqp.Connection
		conn, err = amqp.Dial(url)
		if err == nil {
			logger.InfoContext(ctx, "connected to rabbitmq", "attempt", attempt)
			return conn, nil
		}
		logger.WarnContext(ctx, "rabbitmq not ready", "attempt", attempt, "err", err)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("connect to rabbitmq: %w", ctx.Err())
		case <-time.After(dialBackoff):
		}
	}
	return nil, fmt.Errorf("could not connect to rabbitmq after %d attempts: %w", dialAttempts, err)
}

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher publishes lifecycle messages as persistent JSON messages.
type Publisher struct {
	mu      sync.Mutex
	channel Channel
	logger  *slog.Logger
	now     func() time.Time
}

// NewPublisher declares the exchange on ch and returns a publisher using it.
func NewPublisher(ch Channel, logger *slog.Logger) (*Publisher, error) {
	err := ch.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{channel: ch, logger: logger, now: time.Now}, nil
}

func (p *Publisher) Publish(ctx context.Context, msg domain.LifecycleMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal lifecycle message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	corrID := correlation.IDFromContext(ctx)
	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.PublishWithContext(
		ctx,
		ExchangeName,
		string(msg.Type),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			MessageId:     uuid.NewString(),
			CorrelationId: corrID,
			Body:          body,
			DeliveryMode:  amqp.Persistent,
			Timestamp:     p.now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", msg.Type, err)
	}
	p.logger.DebugContext(ctx, "lifecycle message published", "type", msg.Type, "event_id", msg.EventID, "correlation_id", corrID)
	return nil
}

// Close closes the underlying channel.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.Close()
}

// LogPublisher stands in for the broker when none is configured. It only logs.
type LogPublisher struct {
	Logger *slog.Logger
}

func (p LogPublisher) Publish(ctx context.Context, msg domain.LifecycleMessage) error {
	p.Logger.InfoContext(ctx, "lifecycle message",
		"type", msg.Type, "event_id", msg.EventID, "request_ids", msg.RequestIDs,
		"correlation_id", correlation.IDFromContext(ctx))
	return nil
}
