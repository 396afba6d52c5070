// Package notify publishes scoring run events to RabbitMQ.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/vijay-prabhu/empscore/internal/config"
)

// RunEvent is published once a batch finishes
type RunEvent struct {
	BatchID    int       `json:"batch_id"`
	Status     string    `json:"status"`
	Inserted   int       `json:"inserted"`
	Updated    int       `json:"updated"`
	Stale      int       `json:"stale"`
	Failures   int       `json:"failures"`
	FinishedAt time.Time `json:"finished_at"`
}

// Publisher sends run events
type Publisher interface {
	Publish(ctx context.Context, event RunEvent) error
}

// New returns a RabbitMQ publisher when enabled, or a Dummy
func New(cfg config.RabbitMQConfig, logger *zap.Logger) Publisher {
	if !cfg.Enabled {
		return &Dummy{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rabbit{
		url:        cfg.URL,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger,
	}
}

// Rabbit publishes to a topic exchange, dialing per publish
type Rabbit struct {
	url        string
	exchange   string
	routingKey string
	logger     *zap.Logger
}

// Publish sends event as a persistent JSON message
func (r *Rabbit) Publish(ctx context.Context, event RunEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode run event: %w", err)
	}

	conn, err := amqp.Dial(r.url)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(r.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", r.exchange, err)
	}

	err = ch.PublishWithContext(ctx, r.exchange, r.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.FinishedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish run event: %w", err)
	}

	r.logger.Info("published run event",
		zap.Int("batch_id", event.BatchID),
		zap.String("exchange", r.exchange),
		zap.String("routing_key", r.routingKey))
	return nil
}

// Dummy drops every event
type Dummy struct{}

func (d *Dummy) Publish(ctx context.Context, event RunEvent) error {
	return nil
}
