package orderbook

import "errors"

var (
	// ErrInvalidOrderType is returned for an order type outside {LIMIT, MARKET}.
	// It is a contract violation: the call is rejected, the book is untouched.
	ErrInvalidOrderType = errors.New("invalid order type")

	// ErrEmptyBook is returned when a quote is requested for a side with no
	// resting orders. Callers must treat it as "no liquidity", never as a
	// zero price.
	ErrEmptyBook = errors.New("no resting orders on side")

	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrInvalidSide     = errors.New("invalid side")
)
