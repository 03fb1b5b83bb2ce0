package checkout

import (
	"context"
	"log/slog"

	"tourdesk/internal/models"
)

// Outcome is the qualitative tag attached to a completed flow. Sessions
// only ever complete with OutcomeSuccess; sinks treat anything else as
// not sold.
type Outcome string

const OutcomeSuccess Outcome = "success"

// Notifier receives fire-and-forget signals from a checkout session.
// Implementations handle their own failures; the machine never sees them.
type Notifier interface {
	StepChanged(ctx context.Context, sessionID string, from, to Step)
	StepCompleted(ctx context.Context, outcome Outcome, order models.OrderSummary)
}

// NopNotifier drops every signal
type NopNotifier struct{}

func (NopNotifier) StepChanged(context.Context, string, Step, Step)             {}
func (NopNotifier) StepCompleted(context.Context, Outcome, models.OrderSummary) {}

// Notifiers fans a signal out to several sinks
type Notifiers []Notifier

func (ns Notifiers) StepChanged(ctx context.Context, sessionID string, from, to Step) {
	for _, n := range ns {
		safely(func() { n.StepChanged(ctx, sessionID, from, to) })
	}
}

func (ns Notifiers) StepCompleted(ctx context.Context, outcome Outcome, order models.OrderSummary) {
	for _, n := range ns {
		safely(func() { n.StepCompleted(ctx, outcome, order) })
	}
}

func safely(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Checkout notifier panicked", "panic", r)
		}
	}()
	fn()
}
