package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourdesk/internal/checkout"
	"tourdesk/internal/models"
)

type published struct {
	subject string
	data    any
}

type fakePublisher struct {
	msgs []published
	err  error
}

func (f *fakePublisher) Publish(subject string, data any) error {
	f.msgs = append(f.msgs, published{subject, data})
	return f.err
}

func TestEventNotifierStepChanged(t *testing.T) {
	pub := &fakePublisher{}
	n := NewEventNotifier(pub)
	fixed := time.Date(2025, 12, 3, 20, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return fixed }

	n.StepChanged(context.Background(), "s1", "", checkout.StepSelecting)
	n.StepChanged(context.Background(), "s1", checkout.StepSelecting, checkout.StepEnteringInfo)

	require.Len(t, pub.msgs, 2)
	assert.Equal(t, models.EventCheckoutStarted, pub.msgs[0].subject)
	assert.Equal(t, models.EventCheckoutStepChanged, pub.msgs[1].subject)
	assert.Equal(t, models.CheckoutStepChangedEvent{
		SessionID: "s1",
		From:      "SELECTING",
		To:        "ENTERING_INFO",
		Timestamp: fixed,
	}, pub.msgs[1].data)
}

func TestEventNotifierSwallowsErrors(t *testing.T) {
	pub := &fakePublisher{err: errors.New("nats down")}
	n := NewEventNotifier(pub)

	assert.NotPanics(t, func() {
		n.StepCompleted(context.Background(), checkout.OutcomeSuccess, models.OrderSummary{ID: "o1"})
	})
	require.Len(t, pub.msgs, 1)
	assert.Equal(t, models.EventOrderConfirmed, pub.msgs[0].subject)
	ev := pub.msgs[0].data.(models.OrderConfirmedEvent)
	assert.Equal(t, "success", ev.Outcome)
	assert.Equal(t, "o1", ev.Order.ID)
}
