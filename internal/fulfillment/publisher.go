// Package fulfillment hands confirmed orders to the ticket delivery queue
// on RabbitMQ.
package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"tourdesk/internal/models"
)

const DefaultQueue = "order.fulfillment"

type Config struct {
	Enabled bool
	URL     string
	Queue   string
}

// Publisher keeps one connection and channel open. The durable queue is
// declared on connect.
type Publisher struct {
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(cfg Config) (*Publisher, error) {
	queue := cfg.Queue
	if queue == "" {
		queue = DefaultQueue
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel open: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	slog.Info("Connected to RabbitMQ", "queue", queue)
	return &Publisher{queue: queue, conn: conn, ch: ch}, nil
}

// PublishOrder enqueues a persistent fulfillment request
func (p *Publisher) PublishOrder(ctx context.Context, req models.FulfillmentRequest) error {
	msg, err := newPublishing(req, time.Now())
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}

	slog.Info("Queued order for fulfillment", "order_id", req.OrderID, "queue", p.queue)
	return nil
}

func newPublishing(req models.FulfillmentRequest, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal fulfillment request: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    req.OrderID,
		Timestamp:    now.UTC(),
		Body:         body,
	}, nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
