package clp

import "math/big"

// Snapshot is an immutable read of a concentrated-liquidity pool's state at
// a point in time: current sqrt price, current tick, in-range liquidity,
// and the ordered tick table. Snapshots are created by a Chain Reader,
// consumed by the simulator, and never mutated: ExactIn keeps its running
// swap state in local variables.
type Snapshot struct {
	Key          PoolKey
	SqrtPriceX96 *big.Int
	Tick         int32
	Liquidity    *big.Int
	Ticks        *TickTable

	// Diagnostic is set when this snapshot was produced by the synthetic-tick
	// fallback rather than a real tick-bitmap scan; never used for
	// production pricing, only surfaced to operators.
	Diagnostic string
}

// syntheticLiquidity is the constant liquidity assigned to the fabricated
// wide ranges used by the empty-bitmap fallback. It is large enough that a
// probe-sized trade produces a finite, non-degenerate quote.
var syntheticLiquidity = new(big.Int).SetUint64(1_000_000_000_000_000_000)

// NewSyntheticSnapshot fabricates a tick table with one wide synthetic
// range (two initialized ticks) bracketing the current tick, for use only when a real tick-bitmap
// scan returns no initialized ticks (e.g. a pruned or test/dev RPC). The
// result is marked via Diagnostic so callers can flag it in responses.
func NewSyntheticSnapshot(key PoolKey, sqrtPriceX96 *big.Int, tick int32, liquidity *big.Int) *Snapshot {
	spacing := key.TickSpacing
	if spacing <= 0 {
		spacing = 60
	}
	lower := (tick/spacing - 1000) * spacing
	upper := (tick/spacing + 1000) * spacing

	delta := new(big.Int).Set(syntheticLiquidity)
	negDelta := new(big.Int).Neg(delta)

	ticks := NewTickTable(map[int32]TickInfo{
		lower: {LiquidityGross: delta, LiquidityNet: delta},
		upper: {LiquidityGross: delta, LiquidityNet: negDelta},
	})

	effectiveLiquidity := liquidity
	if effectiveLiquidity == nil || effectiveLiquidity.Sign() == 0 {
		effectiveLiquidity = syntheticLiquidity
	}

	return &Snapshot{
		Key:          key,
		SqrtPriceX96: sqrtPriceX96,
		Tick:         tick,
		Liquidity:    effectiveLiquidity,
		Ticks:        ticks,
		Diagnostic:   "synthetic tick range fallback: tick-bitmap scan returned no initialized ticks",
	}
}
