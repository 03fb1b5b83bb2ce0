package checkout

import (
	"time"

	"github.com/shopspring/decimal"

	"tourdesk/internal/models"
)

// Step identifies where a checkout session is in the purchase flow
type Step string

const (
	StepSelecting       Step = "SELECTING"
	StepEnteringInfo    Step = "ENTERING_INFO"
	StepAwaitingPayment Step = "AWAITING_PAYMENT"
	StepSubmitted       Step = "SUBMITTED"
	StepConfirmed       Step = "CONFIRMED"
)

// IsTerminal reports whether no further transition can happen
func (s Step) IsTerminal() bool {
	return s == StepConfirmed
}

func (s Step) String() string {
	return string(s)
}

// State is the current step together with exactly the data valid in it.
// It is one of Selecting, EnteringInfo, AwaitingPayment, Submitted or Confirmed.
type State interface {
	Step() Step
	isState()
}

// Selection is the ticket choice of a draft
type Selection struct {
	Show     models.Show
	Tier     models.Tier
	Quantity int
}

// Total is the price of the selection
func (s Selection) Total() decimal.Decimal {
	return Total(s.Show, s.Tier, s.Quantity)
}

// Contact holds buyer details as typed, untrimmed
type Contact struct {
	Name  string
	Email string
}

// Selecting is the ticket selection step. Contact carries details typed
// before the buyer navigated back.
type Selecting struct {
	Selection Selection
	Contact   Contact
}

// EnteringInfo is the buyer details step
type EnteringInfo struct {
	Selection Selection
	Contact   Contact
}

// Snapshot is the draft frozen on entry to the payment step. Catalog
// changes after this point never reach it.
type Snapshot struct {
	Show       models.Show
	Tier       models.Tier
	Quantity   int
	UnitPrice  decimal.Decimal
	Total      decimal.Decimal
	BuyerName  string
	BuyerEmail string
	SealedAt   time.Time
}

// AwaitingPayment shows payment instructions for the sealed snapshot
type AwaitingPayment struct {
	Snapshot Snapshot
	TxHash   string
}

// Submitted is the transient step between "payment sent" and confirmation
type Submitted struct {
	Order models.OrderSummary
}

// Confirmed is the terminal step
type Confirmed struct {
	Order models.OrderSummary
}

func (Selecting) Step() Step       { return StepSelecting }
func (EnteringInfo) Step() Step    { return StepEnteringInfo }
func (AwaitingPayment) Step() Step { return StepAwaitingPayment }
func (Submitted) Step() Step       { return StepSubmitted }
func (Confirmed) Step() Step       { return StepConfirmed }

func (Selecting) isState()       {}
func (EnteringInfo) isState()    {}
func (AwaitingPayment) isState() {}
func (Submitted) isState()       {}
func (Confirmed) isState()       {}
