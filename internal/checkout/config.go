package checkout

import "time"

const (
	DefaultVerificationDelay = 1500 * time.Millisecond
	DefaultWalletAddress     = "TAeD9UfPwHjpaR7pSMv4LtJRWsdx8iy5Fx"
	DefaultNetwork           = "USDT (TRC-20)"
	DefaultCurrency          = "USDT"
)

// Config holds the checkout business constants
type Config struct {
	MaxPerOrder       int
	PaymentWindow     time.Duration
	VerificationDelay time.Duration
	WalletAddress     string
	Network           string
	Currency          string
}

// DefaultConfig returns the storefront defaults
func DefaultConfig() Config {
	return Config{
		MaxPerOrder:       DefaultMaxPerOrder,
		PaymentWindow:     DefaultPaymentWindow,
		VerificationDelay: DefaultVerificationDelay,
		WalletAddress:     DefaultWalletAddress,
		Network:           DefaultNetwork,
		Currency:          DefaultCurrency,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxPerOrder <= 0 {
		c.MaxPerOrder = d.MaxPerOrder
	}
	if c.PaymentWindow <= 0 {
		c.PaymentWindow = d.PaymentWindow
	}
	if c.VerificationDelay < 0 {
		c.VerificationDelay = d.VerificationDelay
	}
	if c.WalletAddress == "" {
		c.WalletAddress = d.WalletAddress
	}
	if c.Network == "" {
		c.Network = d.Network
	}
	if c.Currency == "" {
		c.Currency = d.Currency
	}
	return c
}
