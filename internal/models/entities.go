package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Show represents a single scheduled date of the tour
type Show struct {
	ID            string          `json:"id" db:"id"`
	Date          string          `json:"date" db:"date"`
	City          string          `json:"city" db:"city"`
	Venue         string          `json:"venue" db:"venue"`
	Address       string          `json:"address" db:"address"`
	Day           string          `json:"day" db:"day"`
	StandardPrice decimal.Decimal `json:"standard_price" db:"standard_price"`
	VIPPrice      decimal.Decimal `json:"vip_price" db:"vip_price"`
	StandardSeats int             `json:"standard_seats" db:"standard_seats"`
	VIPSeats      int             `json:"vip_seats" db:"vip_seats"`
	SoldOut       bool            `json:"sold_out" db:"sold_out"`
}

// Country groups the shows played in one country (or a pair of neighbouring ones)
type Country struct {
	Name  string `json:"name" db:"name"`
	Flag  string `json:"flag" db:"flag"`
	Shows []Show `json:"shows"`
}

// AllSoldOut reports whether every show of the country is sold out
func (c Country) AllSoldOut() bool {
	for _, s := range c.Shows {
		if !s.SoldOut {
			return false
		}
	}
	return true
}

// Region groups countries by continent
type Region struct {
	Name      string    `json:"name" db:"name"`
	Emoji     string    `json:"emoji" db:"emoji"`
	Countries []Country `json:"countries"`
}

// ShowID builds the stable identifier of a show from its city and "MM.DD" date.
func ShowID(city, date string) string {
	slug := strings.ToLower(strings.TrimSpace(city))
	slug = strings.NewReplacer(" ", "-", ".", "-", "ã", "a", "é", "e", "í", "i").Replace(slug)
	return fmt.Sprintf("%s-%s", slug, strings.ReplaceAll(date, ".", "-"))
}

// Tier is a ticket class
type Tier string

const (
	TierStandard Tier = "STANDARD"
	TierVIP      Tier = "VIP"
)

// Tiers lists ticket classes in display order
var Tiers = []Tier{TierStandard, TierVIP}

// ParseTier parses a tier name case-insensitively
func ParseTier(s string) (Tier, error) {
	switch Tier(strings.ToUpper(strings.TrimSpace(s))) {
	case TierStandard:
		return TierStandard, nil
	case TierVIP:
		return TierVIP, nil
	default:
		return "", fmt.Errorf("unknown ticket tier: %q", s)
	}
}

// Valid reports whether t is a known tier
func (t Tier) Valid() bool {
	return t == TierStandard || t == TierVIP
}

// UnitPrice returns the price of one ticket of this tier for the show
func (t Tier) UnitPrice(s Show) decimal.Decimal {
	if t == TierVIP {
		return s.VIPPrice
	}
	return s.StandardPrice
}

// SeatsRemaining returns the seat counter of this tier for the show
func (t Tier) SeatsRemaining(s Show) int {
	if t == TierVIP {
		return s.VIPSeats
	}
	return s.StandardSeats
}

// Label returns the human-readable tier name
func (t Tier) Label() string {
	if t == TierVIP {
		return "VIP"
	}
	return "Standard"
}

func (t Tier) String() string {
	return string(t)
}
