package messaging

import (
	"context"
	"log/slog"
	"time"

	"tourdesk/internal/checkout"
	"tourdesk/internal/models"
)

// Publisher is the part of NATSClient the notifier needs
type Publisher interface {
	Publish(subject string, data any) error
}

// EventNotifier publishes checkout signals as NATS events. Publish errors
// are logged and swallowed.
type EventNotifier struct {
	pub Publisher
	now func() time.Time
}

func NewEventNotifier(pub Publisher) *EventNotifier {
	return &EventNotifier{pub: pub, now: time.Now}
}

func (n *EventNotifier) StepChanged(_ context.Context, sessionID string, from, to checkout.Step) {
	subject := models.EventCheckoutStepChanged
	if from == "" {
		subject = models.EventCheckoutStarted
	}
	event := models.CheckoutStepChangedEvent{
		SessionID: sessionID,
		From:      from.String(),
		To:        to.String(),
		Timestamp: n.now(),
	}
	if err := n.pub.Publish(subject, event); err != nil {
		slog.Warn("Failed to publish step change", "session_id", sessionID, "error", err)
	}
}

func (n *EventNotifier) StepCompleted(_ context.Context, outcome checkout.Outcome, order models.OrderSummary) {
	event := models.OrderConfirmedEvent{
		Outcome:   string(outcome),
		Order:     order,
		Timestamp: n.now(),
	}
	if err := n.pub.Publish(models.EventOrderConfirmed, event); err != nil {
		slog.Warn("Failed to publish order confirmation", "order_id", order.ID, "error", err)
	}
}
