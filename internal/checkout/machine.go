package checkout

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"tourdesk/internal/models"
)

// Machine drives a single checkout session from ticket selection to a
// confirmed order. All methods are safe for concurrent use. A blocked
// transition returns an error and leaves the state untouched.
type Machine struct {
	id       string
	cfg      Config
	clock    clockwork.Clock
	notifier Notifier

	mu           sync.Mutex
	state        State
	countdown    *Countdown
	confirmTimer clockwork.Timer
	generation   uint64
	closed       bool
	lastActivity time.Time
}

// Open is New for shows that may have no seats at all. It returns
// ErrTierUnavailable when neither tier can be bought.
func Open(id string, show models.Show, cfg Config, clock clockwork.Clock, notifier Notifier) (*Machine, error) {
	if !TierAvailable(show, DefaultTier(show)) {
		return nil, ErrTierUnavailable
	}
	return New(id, show, cfg, clock, notifier), nil
}

// New opens a session for show. The VIP tier is preselected when it has
// seats, the quantity starts at 1. The show must have seats in at least one
// tier, otherwise the quantity is above its bound; use Open when that is
// not known.
func New(id string, show models.Show, cfg Config, clock clockwork.Clock, notifier Notifier) *Machine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}

	return &Machine{
		id:       id,
		cfg:      cfg.withDefaults(),
		clock:    clock,
		notifier: notifier,
		state: Selecting{Selection: Selection{
			Show:     show,
			Tier:     DefaultTier(show),
			Quantity: 1,
		}},
		lastActivity: clock.Now(),
	}
}

func (m *Machine) ID() string {
	return m.id
}

// State returns the current state value
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) Step() Step {
	return m.State().Step()
}

// Countdown returns the running payment countdown, or nil outside the
// payment step.
func (m *Machine) Countdown() *Countdown {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countdown
}

// Order returns the sealed order once payment was declared sent
func (m *Machine) Order() (models.OrderSummary, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch st := m.state.(type) {
	case Submitted:
		return st.Order, true
	case Confirmed:
		return st.Order, true
	}
	return models.OrderSummary{}, false
}

// LastActivity is the time of the last successful operation
func (m *Machine) LastActivity() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastActivity
}

// Closed reports whether the session was cancelled or closed
func (m *Machine) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// SelectTier switches the ticket tier. The quantity is pulled down to the
// new tier's bound when it exceeds it.
func (m *Machine) SelectTier(tier models.Tier) error {
	return m.do(func() error {
		st, ok := m.state.(Selecting)
		if !ok {
			return wrongStep(m.state.Step(), "change tier")
		}
		if !tier.Valid() {
			return ErrUnknownTier
		}
		if !TierAvailable(st.Selection.Show, tier) {
			return ErrTierUnavailable
		}

		st.Selection.Tier = tier
		bound := MaxQuantity(st.Selection.Show, tier, m.cfg.MaxPerOrder)
		if st.Selection.Quantity > bound {
			st.Selection.Quantity = ClampQuantity(st.Selection.Quantity, bound)
		}
		m.state = st
		return nil
	})
}

// Increment adds one ticket, saturating at the tier bound
func (m *Machine) Increment() error {
	return m.changeQuantity(func(q int) int { return q + 1 })
}

// Decrement removes one ticket, saturating at 1
func (m *Machine) Decrement() error {
	return m.changeQuantity(func(q int) int { return q - 1 })
}

// SetQuantity sets the quantity, clamped into [1, bound]
func (m *Machine) SetQuantity(q int) error {
	return m.changeQuantity(func(int) int { return q })
}

func (m *Machine) changeQuantity(next func(q int) int) error {
	return m.do(func() error {
		st, ok := m.state.(Selecting)
		if !ok {
			return wrongStep(m.state.Step(), "change quantity")
		}
		bound := MaxQuantity(st.Selection.Show, st.Selection.Tier, m.cfg.MaxPerOrder)
		st.Selection.Quantity = ClampQuantity(next(st.Selection.Quantity), bound)
		m.state = st
		return nil
	})
}

// Continue moves from ticket selection to buyer details
func (m *Machine) Continue() error {
	return m.do(func() error {
		st, ok := m.state.(Selecting)
		if !ok {
			return wrongStep(m.state.Step(), "continue")
		}
		m.state = EnteringInfo(st)
		return nil
	})
}

// SetBuyerInfo stores the buyer details as typed
func (m *Machine) SetBuyerInfo(name, email string) error {
	return m.do(func() error {
		st, ok := m.state.(EnteringInfo)
		if !ok {
			return wrongStep(m.state.Step(), "edit buyer info")
		}
		st.Contact = Contact{Name: name, Email: email}
		m.state = st
		return nil
	})
}

// Proceed seals the draft and starts the payment window. Both buyer fields
// must be non-blank after trimming.
func (m *Machine) Proceed() error {
	return m.do(func() error {
		st, ok := m.state.(EnteringInfo)
		if !ok {
			return wrongStep(m.state.Step(), "proceed to payment")
		}
		name := strings.TrimSpace(st.Contact.Name)
		email := strings.TrimSpace(st.Contact.Email)
		if name == "" || email == "" {
			return ErrBuyerInfoRequired
		}

		sel := st.Selection
		m.state = AwaitingPayment{Snapshot: Snapshot{
			Show:       sel.Show,
			Tier:       sel.Tier,
			Quantity:   sel.Quantity,
			UnitPrice:  sel.Tier.UnitPrice(sel.Show),
			Total:      sel.Total(),
			BuyerName:  name,
			BuyerEmail: email,
			SealedAt:   m.clock.Now(),
		}}
		m.startCountdown()
		return nil
	})
}

// SetTxHash records the optional transaction reference. It is never validated.
func (m *Machine) SetTxHash(hash string) error {
	return m.do(func() error {
		st, ok := m.state.(AwaitingPayment)
		if !ok {
			return wrongStep(m.state.Step(), "set transaction hash")
		}
		st.TxHash = strings.TrimSpace(hash)
		m.state = st
		return nil
	})
}

// SentPayment records the buyer's claim of payment. The countdown stops and
// the order confirms after the verification delay. A non-empty txHash
// replaces the one stored earlier.
func (m *Machine) SentPayment(txHash string) error {
	return m.do(func() error {
		st, ok := m.state.(AwaitingPayment)
		if !ok {
			return wrongStep(m.state.Step(), "send payment")
		}
		if h := strings.TrimSpace(txHash); h != "" {
			st.TxHash = h
		}
		m.stopCountdown()

		snap := st.Snapshot
		m.state = Submitted{Order: models.OrderSummary{
			ID:            uuid.NewString(),
			SessionID:     m.id,
			Show:          snap.Show,
			Tier:          snap.Tier,
			Quantity:      snap.Quantity,
			UnitPrice:     snap.UnitPrice,
			Total:         snap.Total,
			Currency:      m.cfg.Currency,
			BuyerName:     snap.BuyerName,
			BuyerEmail:    snap.BuyerEmail,
			TxHash:        st.TxHash,
			WalletAddress: m.cfg.WalletAddress,
			SubmittedAt:   m.clock.Now(),
		}}

		m.generation++
		gen := m.generation
		m.confirmTimer = m.clock.AfterFunc(m.cfg.VerificationDelay, func() {
			m.confirm(gen)
		})
		return nil
	})
}

// Back returns to the previous editable step. Leaving the payment step
// stops the countdown; the draft and buyer details are kept.
func (m *Machine) Back() error {
	return m.do(func() error {
		switch st := m.state.(type) {
		case EnteringInfo:
			m.state = Selecting(st)
		case AwaitingPayment:
			m.stopCountdown()
			snap := st.Snapshot
			m.state = EnteringInfo{
				Selection: Selection{Show: snap.Show, Tier: snap.Tier, Quantity: snap.Quantity},
				Contact:   Contact{Name: snap.BuyerName, Email: snap.BuyerEmail},
			}
		default:
			return wrongStep(m.state.Step(), "go back")
		}
		return nil
	})
}

// Cancel discards the session at any step and releases its timers.
// Returns the step the session was in.
func (m *Machine) Cancel() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.stopTimers()
		m.closed = true
		m.generation++
	}
	return m.state.Step()
}

// Close releases a finished session
func (m *Machine) Close() {
	m.Cancel()
}

func (m *Machine) confirm(gen uint64) {
	m.mu.Lock()
	st, ok := m.state.(Submitted)
	if m.closed || gen != m.generation || !ok {
		m.mu.Unlock()
		return
	}
	order := st.Order
	order.ConfirmedAt = m.clock.Now()
	m.state = Confirmed{Order: order}
	m.confirmTimer = nil
	m.lastActivity = order.ConfirmedAt
	m.mu.Unlock()

	slog.Info("Order confirmed", "session_id", m.id, "order_id", order.ID, "total", order.Total.String())
	m.emitStep(StepSubmitted, StepConfirmed)
	safely(func() { m.notifier.StepCompleted(context.Background(), OutcomeSuccess, order) })
}

// do runs fn under the lock and emits a step change after unlocking
func (m *Machine) do(fn func() error) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrSessionClosed
	}
	from := m.state.Step()
	err := fn()
	to := m.state.Step()
	if err == nil {
		m.lastActivity = m.clock.Now()
	}
	m.mu.Unlock()

	if err == nil && from != to {
		m.emitStep(from, to)
	}
	return err
}

func (m *Machine) emitStep(from, to Step) {
	slog.Debug("Checkout step changed", "session_id", m.id, "from", from, "to", to)
	safely(func() { m.notifier.StepChanged(context.Background(), m.id, from, to) })
}

func (m *Machine) startCountdown() {
	m.stopCountdown()
	id := m.id
	m.countdown = StartCountdown(m.clock, m.cfg.PaymentWindow, func(remaining time.Duration) {
		if remaining == 0 {
			slog.Info("Payment window elapsed", "session_id", id)
		}
	})
}

func (m *Machine) stopCountdown() {
	if m.countdown != nil {
		m.countdown.Stop()
		m.countdown = nil
	}
}

func (m *Machine) stopTimers() {
	m.stopCountdown()
	if m.confirmTimer != nil {
		m.confirmTimer.Stop()
		m.confirmTimer = nil
	}
}
