package errors

import "errors"

var (
	ErrShowNotFound    = errors.New("show not found")
	ErrNotPurchasable  = errors.New("show is not on sale")
	ErrSessionNotFound = errors.New("checkout session not found")
	ErrInvalidRequest  = errors.New("invalid request")
)
