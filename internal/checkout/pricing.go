package checkout

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tourdesk/internal/models"
)

// DefaultMaxPerOrder is the hard cap of tickets in one order
const DefaultMaxPerOrder = 10

// Total is the only place an order total is computed
func Total(show models.Show, tier models.Tier, quantity int) decimal.Decimal {
	return tier.UnitPrice(show).Mul(decimal.NewFromInt(int64(quantity)))
}

// MaxQuantity is the upper bound of the quantity for a tier:
// min(maxPerOrder, seats remaining).
func MaxQuantity(show models.Show, tier models.Tier, maxPerOrder int) int {
	seats := tier.SeatsRemaining(show)
	if seats < maxPerOrder {
		return seats
	}
	return maxPerOrder
}

// ClampQuantity brings q into [1, bound]. A bound below 1 yields 1.
func ClampQuantity(q, bound int) int {
	if q > bound {
		q = bound
	}
	if q < 1 {
		q = 1
	}
	return q
}

// TierAvailable reports whether the tier can be selected for the show
func TierAvailable(show models.Show, tier models.Tier) bool {
	return tier.Valid() && tier.SeatsRemaining(show) > 0
}

// DefaultTier is VIP when it has seats, Standard otherwise
func DefaultTier(show models.Show) models.Tier {
	if show.VIPSeats > 0 {
		return models.TierVIP
	}
	return models.TierStandard
}

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders an amount the way the storefront shows it, e.g. "$1,500"
// or "$1,500.50".
func FormatPrice(amount decimal.Decimal) string {
	amount = amount.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	whole := amount.Truncate(0)
	frac := amount.Sub(whole)

	out := sign + "$" + pricePrinter.Sprintf("%d", whole.IntPart())
	if !frac.IsZero() {
		out += strings.TrimPrefix(frac.StringFixed(2), "0")
	}
	return out
}
