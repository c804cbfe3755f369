package clp

import (
	"math/big"

	"github.com/pal9000i/arb-engine/pkg/clpmath"
)

// SwapParams configures one exact-input simulated swap.
type SwapParams struct {
	Direction Direction
	AmountIn  *big.Int // gross input, including the fee that will be taken

	// SqrtPriceLimitX96, if non-nil, bounds how far the price may move.
	// If nil, the direction's safety bound is used.
	SqrtPriceLimitX96 *big.Int

	// FeeOverridePpm, if non-nil, replaces the pool's recorded fee for
	// this simulation only.
	FeeOverridePpm *uint32
}

// SwapResult is the outcome of a simulated swap: signed per-side amounts
// (input negative including fee, output positive) and the resulting pool
// state.
type SwapResult struct {
	Amount0            *big.Int
	Amount1            *big.Int
	SqrtPriceX96After  *big.Int
	TickAfter          int32
	LiquidityAfter     *big.Int
	TicksCrossed       int
}

// defaultPriceLimit returns the direction's safety bound: one tick inside
// MinTick/MaxTick, matching the canonical pool's own defaulting behavior.
func defaultPriceLimit(dir Direction) (*big.Int, error) {
	if dir == ZeroForOne {
		return clpmath.GetSqrtRatioAtTick(clpmath.MinTick + 1)
	}
	return clpmath.GetSqrtRatioAtTick(clpmath.MaxTick - 1)
}

// ExactIn simulates a swap of exactly params.AmountIn gross input against
// snap, returning the signed amounts and resulting state. snap is never
// mutated.
func ExactIn(snap *Snapshot, params SwapParams) (SwapResult, error) {
	if params.AmountIn == nil || params.AmountIn.Sign() <= 0 {
		return SwapResult{}, ErrNonPositiveAmount
	}
	if snap.Ticks == nil || snap.Ticks.Len() == 0 {
		return SwapResult{}, ErrEmptyTicks
	}
	if snap.Liquidity == nil || snap.Liquidity.Sign() <= 0 {
		return SwapResult{}, ErrZeroLiquidity
	}

	priceLimit := params.SqrtPriceLimitX96
	if priceLimit == nil {
		var err error
		priceLimit, err = defaultPriceLimit(params.Direction)
		if err != nil {
			return SwapResult{}, err
		}
	} else {
		if params.Direction == ZeroForOne {
			if priceLimit.Cmp(snap.SqrtPriceX96) >= 0 || priceLimit.Cmp(clpmath.MinSqrtRatio) <= 0 {
				return SwapResult{}, ErrInvalidPriceLimit
			}
		} else {
			if priceLimit.Cmp(snap.SqrtPriceX96) <= 0 || priceLimit.Cmp(clpmath.MaxSqrtRatio) >= 0 {
				return SwapResult{}, ErrInvalidPriceLimit
			}
		}
	}

	feePpm := snap.Key.Fee
	if params.FeeOverridePpm != nil {
		feePpm = *params.FeeOverridePpm
	}
	feePpmBig := big.NewInt(int64(feePpm))

	currentSqrtPrice := new(big.Int).Set(snap.SqrtPriceX96)
	currentTick := snap.Tick
	liquidity := new(big.Int).Set(snap.Liquidity)
	remaining := new(big.Int).Set(params.AmountIn)

	amount0 := big.NewInt(0)
	amount1 := big.NewInt(0)
	ticksCrossed := 0

	zeroForOne := params.Direction == ZeroForOne

	for remaining.Sign() > 0 && liquidity.Sign() > 0 {
		var nextTick int32
		var hasNext bool
		var boundSqrtPrice *big.Int
		var err error

		if zeroForOne {
			nextTick, hasNext = snap.Ticks.NextInitializedTickLeft(currentTick)
			if !hasNext {
				boundSqrtPrice, err = clpmath.GetSqrtRatioAtTick(clpmath.MinTick + 1)
			} else {
				boundSqrtPrice, err = clpmath.GetSqrtRatioAtTick(nextTick)
			}
		} else {
			nextTick, hasNext = snap.Ticks.NextInitializedTickRight(currentTick)
			if !hasNext {
				boundSqrtPrice, err = clpmath.GetSqrtRatioAtTick(clpmath.MaxTick - 1)
			} else {
				boundSqrtPrice, err = clpmath.GetSqrtRatioAtTick(nextTick)
			}
		}
		if err != nil {
			return SwapResult{}, err
		}

		stepTarget := boundSqrtPrice
		if zeroForOne {
			if priceLimit.Cmp(stepTarget) > 0 {
				stepTarget = priceLimit
			}
		} else {
			if priceLimit.Cmp(stepTarget) < 0 {
				stepTarget = priceLimit
			}
		}

		step, err := clpmath.ComputeSwapStep(currentSqrtPrice, stepTarget, liquidity, remaining, feePpmBig)
		if err != nil {
			return SwapResult{}, err
		}

		grossUsed := new(big.Int).Add(step.AmountIn, step.FeeAmount)
		remaining.Sub(remaining, grossUsed)

		if zeroForOne {
			amount0.Sub(amount0, grossUsed)
			amount1.Add(amount1, step.AmountOut)
		} else {
			amount1.Sub(amount1, grossUsed)
			amount0.Add(amount0, step.AmountOut)
		}

		currentSqrtPrice = step.SqrtRatioNextX96

		reachedBoundTick := hasNext && currentSqrtPrice.Cmp(boundSqrtPrice) == 0
		if reachedBoundTick {
			info, _ := snap.Ticks.Get(nextTick)
			if zeroForOne {
				liquidity.Sub(liquidity, info.LiquidityNet)
				currentTick = nextTick - 1
			} else {
				liquidity.Add(liquidity, info.LiquidityNet)
				currentTick = nextTick
			}
			ticksCrossed++
			continue
		}

		tick, err := clpmath.GetTickAtSqrtRatio(currentSqrtPrice)
		if err != nil {
			return SwapResult{}, err
		}
		currentTick = tick
		break
	}

	if remaining.Sign() > 0 {
		return SwapResult{}, ErrZeroLiquidity
	}

	return SwapResult{
		Amount0:           amount0,
		Amount1:           amount1,
		SqrtPriceX96After: currentSqrtPrice,
		TickAfter:         currentTick,
		LiquidityAfter:    liquidity,
		TicksCrossed:       ticksCrossed,
	}, nil
}
