package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSummary is the sealed record of a checkout, produced once the buyer
// declares the payment sent. It is never mutated after ConfirmedAt is set.
type OrderSummary struct {
	ID            string          `json:"id"`
	SessionID     string          `json:"session_id"`
	Show          Show            `json:"show"`
	Tier          Tier            `json:"tier"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	BuyerName     string          `json:"buyer_name"`
	BuyerEmail    string          `json:"buyer_email"`
	TxHash        string          `json:"tx_hash,omitempty"`
	WalletAddress string          `json:"wallet_address"`
	SubmittedAt   time.Time       `json:"submitted_at"`
	ConfirmedAt   time.Time       `json:"confirmed_at,omitzero"`
}

// FulfillmentRequest is handed to the out-of-band fulfillment process
// (ticket e-mailing) once an order is confirmed.
type FulfillmentRequest struct {
	OrderID     string    `json:"order_id"`
	BuyerName   string    `json:"buyer_name"`
	BuyerEmail  string    `json:"buyer_email"`
	ShowID      string    `json:"show_id"`
	City        string    `json:"city"`
	Venue       string    `json:"venue"`
	Date        string    `json:"date"`
	Tier        Tier      `json:"tier"`
	Quantity    int       `json:"quantity"`
	Total       string    `json:"total"`
	Currency    string    `json:"currency"`
	TxHash      string    `json:"tx_hash,omitempty"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// NewFulfillmentRequest flattens a confirmed order for the fulfillment queue
func NewFulfillmentRequest(o OrderSummary) FulfillmentRequest {
	req := FulfillmentRequest{
		OrderID:     o.ID,
		BuyerName:   o.BuyerName,
		BuyerEmail:  o.BuyerEmail,
		ShowID:      o.Show.ID,
		City:        o.Show.City,
		Venue:       o.Show.Venue,
		Date:        o.Show.Date,
		Tier:        o.Tier,
		Quantity:    o.Quantity,
		Total:       o.Total.String(),
		Currency:    o.Currency,
		TxHash:      o.TxHash,
		ConfirmedAt: o.ConfirmedAt,
	}
	return req
}
