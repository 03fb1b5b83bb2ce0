package models

import "time"

// NATS Event Types
const (
	EventCheckoutStarted     = "checkout.started"
	EventCheckoutStepChanged = "checkout.step_changed"
	EventOrderConfirmed      = "order.confirmed"
)

// CheckoutStepChangedEvent is published on every step transition of a checkout session
type CheckoutStepChangedEvent struct {
	SessionID string    `json:"session_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderConfirmedEvent is published when a checkout reaches the confirmed step
type OrderConfirmedEvent struct {
	Outcome   string       `json:"outcome"`
	Order     OrderSummary `json:"order"`
	Timestamp time.Time    `json:"timestamp"`
}
