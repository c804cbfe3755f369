package clp

import "errors"

// Sentinel errors surfaced by the concentrated-liquidity simulator. Callers
// at the HTTP boundary map these onto the error kinds described in the
// engine's failure taxonomy.
var (
	ErrInvalidPriceLimit = errors.New("clp: price limit is not strictly on the correct side of the current price")
	ErrNonPositiveAmount = errors.New("clp: amount specified must be positive")
	ErrEmptyTicks        = errors.New("clp: tick table has no initialized ticks")
	ErrZeroLiquidity     = errors.New("clp: pool has no liquidity")
)
