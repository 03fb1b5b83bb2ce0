package checkout

import (
	"github.com/shopspring/decimal"

	"tourdesk/internal/models"
)

// TierOption describes one tier choice on the selection step
type TierOption struct {
	Tier           models.Tier     `json:"tier"`
	Label          string          `json:"label"`
	Price          decimal.Decimal `json:"price"`
	PriceLabel     string          `json:"price_label"`
	SeatsRemaining int             `json:"seats_remaining"`
	Available      bool            `json:"available"`
	Selected       bool            `json:"selected"`
}

// PaymentView holds the payment instructions. Amount is the plain number
// for copying into a wallet.
type PaymentView struct {
	WalletAddress string `json:"wallet_address"`
	Network       string `json:"network"`
	Amount        string `json:"amount"`
	AmountLabel   string `json:"amount_label"`
	SecondsLeft   int    `json:"seconds_left"`
	TimeLeft      string `json:"time_left"`
	Urgent        bool   `json:"urgent"`
	Expired       bool   `json:"expired"`
	TxHash        string `json:"tx_hash,omitempty"`
}

// View is a read-only rendering of a session for clients
type View struct {
	SessionID   string               `json:"session_id"`
	Step        Step                 `json:"step"`
	Show        models.Show          `json:"show"`
	Tier        models.Tier          `json:"tier"`
	Quantity    int                  `json:"quantity"`
	MaxQuantity int                  `json:"max_quantity,omitempty"`
	UnitPrice   decimal.Decimal      `json:"unit_price"`
	Total       decimal.Decimal      `json:"total"`
	TotalLabel  string               `json:"total_label"`
	Tiers       []TierOption         `json:"tiers,omitempty"`
	BuyerName   string               `json:"buyer_name,omitempty"`
	BuyerEmail  string               `json:"buyer_email,omitempty"`
	Payment     *PaymentView         `json:"payment,omitempty"`
	Order       *models.OrderSummary `json:"order,omitempty"`
}

// View renders the current state
func (m *Machine) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := View{SessionID: m.id, Step: m.state.Step()}
	switch st := m.state.(type) {
	case Selecting:
		v.fillSelection(st.Selection)
		v.BuyerName, v.BuyerEmail = st.Contact.Name, st.Contact.Email
		v.MaxQuantity = MaxQuantity(st.Selection.Show, st.Selection.Tier, m.cfg.MaxPerOrder)
		v.Tiers = tierOptions(st.Selection)
	case EnteringInfo:
		v.fillSelection(st.Selection)
		v.BuyerName, v.BuyerEmail = st.Contact.Name, st.Contact.Email
	case AwaitingPayment:
		s := st.Snapshot
		v.Show, v.Tier, v.Quantity = s.Show, s.Tier, s.Quantity
		v.UnitPrice, v.Total, v.TotalLabel = s.UnitPrice, s.Total, FormatPrice(s.Total)
		v.BuyerName, v.BuyerEmail = s.BuyerName, s.BuyerEmail
		p := &PaymentView{
			WalletAddress: m.cfg.WalletAddress,
			Network:       m.cfg.Network,
			Amount:        s.Total.String(),
			AmountLabel:   FormatPrice(s.Total) + " " + m.cfg.Currency,
			TxHash:        st.TxHash,
		}
		if m.countdown != nil {
			p.SecondsLeft = m.countdown.Seconds()
			p.TimeLeft = m.countdown.Label()
			p.Urgent = m.countdown.Urgent()
			p.Expired = m.countdown.Expired()
		}
		v.Payment = p
	case Submitted:
		v.fillOrder(st.Order)
	case Confirmed:
		v.fillOrder(st.Order)
	}
	return v
}

func (v *View) fillSelection(s Selection) {
	v.Show, v.Tier, v.Quantity = s.Show, s.Tier, s.Quantity
	v.UnitPrice = s.Tier.UnitPrice(s.Show)
	v.Total = s.Total()
	v.TotalLabel = FormatPrice(v.Total)
}

func (v *View) fillOrder(o models.OrderSummary) {
	v.Show, v.Tier, v.Quantity = o.Show, o.Tier, o.Quantity
	v.UnitPrice, v.Total, v.TotalLabel = o.UnitPrice, o.Total, FormatPrice(o.Total)
	v.BuyerName, v.BuyerEmail = o.BuyerName, o.BuyerEmail
	v.Order = &o
}

func tierOptions(s Selection) []TierOption {
	opts := make([]TierOption, 0, len(models.Tiers))
	for _, t := range models.Tiers {
		price := t.UnitPrice(s.Show)
		opts = append(opts, TierOption{
			Tier:           t,
			Label:          t.Label(),
			Price:          price,
			PriceLabel:     FormatPrice(price),
			SeatsRemaining: t.SeatsRemaining(s.Show),
			Available:      TierAvailable(s.Show, t),
			Selected:       t == s.Tier,
		})
	}
	return opts
}
