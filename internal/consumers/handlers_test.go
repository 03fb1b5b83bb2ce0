package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourdesk/internal/models"
)

type fakeFulfiller struct {
	got []models.FulfillmentRequest
	err error
}

func (f *fakeFulfiller) PublishOrder(_ context.Context, req models.FulfillmentRequest) error {
	f.got = append(f.got, req)
	return f.err
}

func event(t *testing.T, outcome string) []byte {
	t.Helper()
	data, err := json.Marshal(models.OrderConfirmedEvent{
		Outcome: outcome,
		Order:   models.OrderSummary{ID: "o-7", BuyerEmail: "kim@example.com", Quantity: 3},
	})
	require.NoError(t, err)
	return data
}

func TestProcessOrderConfirmedForwards(t *testing.T) {
	f := &fakeFulfiller{}
	h := NewHandlers(f)

	require.NoError(t, h.processOrderConfirmed(context.Background(), event(t, "success")))
	require.Len(t, f.got, 1)
	assert.Equal(t, "o-7", f.got[0].OrderID)
	assert.Equal(t, 3, f.got[0].Quantity)
}

func TestProcessOrderConfirmedSkipsOtherOutcomes(t *testing.T) {
	f := &fakeFulfiller{}
	h := NewHandlers(f)

	require.NoError(t, h.processOrderConfirmed(context.Background(), event(t, "warning")))
	assert.Empty(t, f.got)
}

func TestProcessOrderConfirmedDropsGarbage(t *testing.T) {
	f := &fakeFulfiller{}
	h := NewHandlers(f)

	assert.NoError(t, h.processOrderConfirmed(context.Background(), []byte("{not json")))
	assert.Empty(t, f.got)
}

func TestProcessOrderConfirmedReturnsPublishError(t *testing.T) {
	f := &fakeFulfiller{err: errors.New("broker down")}
	h := NewHandlers(f)

	err := h.processOrderConfirmed(context.Background(), event(t, "success"))
	assert.ErrorContains(t, err, "broker down")
}
