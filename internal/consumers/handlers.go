package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/stan.go"

	"tourdesk/internal/checkout"
	"tourdesk/internal/models"
)

// Fulfiller is the sink for confirmed orders
type Fulfiller interface {
	PublishOrder(ctx context.Context, req models.FulfillmentRequest) error
}

type Handlers struct {
	fulfiller Fulfiller
	timeout   time.Duration
}

func NewHandlers(fulfiller Fulfiller) *Handlers {
	return &Handlers{fulfiller: fulfiller, timeout: 10 * time.Second}
}

// HandleOrderConfirmed forwards a confirmed order to fulfillment. The
// message is left unacked on failure so it is redelivered.
func (h *Handlers) HandleOrderConfirmed(m *stan.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	if err := h.processOrderConfirmed(ctx, m.Data); err != nil {
		slog.Error("Failed to process order confirmed event", "error", err)
		return
	}
	if err := m.Ack(); err != nil {
		slog.Error("Failed to ack order confirmed event", "error", err)
	}
}

func (h *Handlers) processOrderConfirmed(ctx context.Context, data []byte) error {
	var event models.OrderConfirmedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		// a malformed message will never succeed; drop it
		slog.Error("Failed to unmarshal order confirmed event", "error", err)
		return nil
	}

	if event.Outcome != string(checkout.OutcomeSuccess) {
		slog.Info("Skipping unsuccessful order", "order_id", event.Order.ID, "outcome", event.Outcome)
		return nil
	}

	slog.Info("Processing order confirmed event", "order_id", event.Order.ID, "session_id", event.Order.SessionID)
	if err := h.fulfiller.PublishOrder(ctx, models.NewFulfillmentRequest(event.Order)); err != nil {
		return fmt.Errorf("publish order %s: %w", event.Order.ID, err)
	}
	return nil
}

// HandleStepChanged only logs the funnel progress
func (h *Handlers) HandleStepChanged(m *stan.Msg) {
	var event models.CheckoutStepChangedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal step changed event", "error", err)
	} else {
		slog.Info("Checkout step changed", "session_id", event.SessionID, "from", event.From, "to", event.To)
	}
	_ = m.Ack()
}
