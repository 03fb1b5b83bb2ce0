package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrWrongStep         = errors.New("action is not allowed at the current checkout step")
	ErrTierUnavailable   = errors.New("ticket tier has no seats left")
	ErrUnknownTier       = errors.New("unknown ticket tier")
	ErrBuyerInfoRequired = errors.New("buyer name and email are required")
	ErrSessionClosed     = errors.New("checkout session is closed")
)

func wrongStep(current Step, action string) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrWrongStep, action, current)
}
